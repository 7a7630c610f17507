package app

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	authapi "jobdeck/cmd/internal/auth/api"
	"jobdeck/cmd/internal/feed"
	"jobdeck/cmd/internal/jobs"
)

func registerHTTP(
	mux *http.ServeMux,
	log Logger,
	cfg Config,
	pool *pgxpool.Pool,
	metrics *Metrics,
	auth *authapi.Handler,
	jobsHandler *jobs.Handler,
	gateway *feed.Gateway,
) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.ReadinessRequireDB {
			if pool == nil {
				http.Error(w, "db not configured", http.StatusServiceUnavailable)
				return
			}
			if err := PingDB(r.Context(), pool, 2*time.Second); err != nil {
				log.Info("readyz.db.not_ready", "err", err)
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	mux.Handle("/metrics", metrics.Handler())

	auth.Register(mux)
	jobsHandler.Register(mux, auth.RequireAuth)
	mux.Handle("/job/feed", auth.RequireAuth(gateway))
}
