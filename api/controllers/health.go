package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beemsaisuoy/my-salon-app/api/responses"
	"github.com/beemsaisuoy/my-salon-app/pkg/config"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func chiURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MySalon-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db pinger, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MySalon-Env", cfg.App.Env)

		checks := map[string]pinger{"database": db, "redis": cache}
		for name, dep := range checks {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
