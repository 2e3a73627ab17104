package controllers

import (
	"context"
	"net/http"

	"github.com/Rehan-4778/JobHunt-BE/api/responses"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
)

// Pinger is the health-check surface shared by the datastore clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JobHunt-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and the session store
// both answer a ping.
func HealthReady(cfg *config.Config, database, sessions Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JobHunt-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if sessions != nil {
			if err := sessions.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
