package controllers

import (
	"net/http"

	"github.com/beemsaisuoy/my-salon-app/api/responses"
	"github.com/beemsaisuoy/my-salon-app/api/validators"
	"github.com/beemsaisuoy/my-salon-app/internal/checkout"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

// Checkout turns the caller's cart into an order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		who, err := currentCaller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input checkout.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), checkout.Customer{ID: who.UserID, Name: who.Name}, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
