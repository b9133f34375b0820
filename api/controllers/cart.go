package controllers

import (
	"net/http"

	"github.com/beemsaisuoy/my-salon-app/api/responses"
	"github.com/beemsaisuoy/my-salon-app/api/validators"
	"github.com/beemsaisuoy/my-salon-app/internal/cart"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

// CartQuote prices a cart server-side. The endpoint is public: the storefront
// shows live totals before the shopper signs in.
func CartQuote(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var input cart.QuoteInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
