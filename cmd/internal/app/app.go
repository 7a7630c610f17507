// Package app wires the jobdeck server runtime: config, logging, metrics,
// the postgres pool, HTTP routes, and the live posting feed.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobdeck/cmd/identity"
	authapi "jobdeck/cmd/internal/auth/api"
	"jobdeck/cmd/internal/auth/session"
	"jobdeck/cmd/internal/feed"
	"jobdeck/cmd/internal/jobs"
)

// App is the jobdeck server runtime. It owns the pgx pool and the HTTP
// server wiring; stores and handlers borrow the pool and never close it.
type App struct {
	cfg Config
	log Logger

	pool    *pgxpool.Pool
	metrics *Metrics

	auth    *authapi.Handler
	jobs    *jobs.Handler
	gateway *feed.Gateway
}

// New constructs a fully wired App instance from config and logger.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("app: JOBDECK_DATABASE_URL is required")
	}
	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: connect postgres: %w", err)
	}
	log.Info("db.connected", "schema", cfg.DBSchema)

	ok := false
	defer func() {
		if !ok {
			pool.Close()
		}
	}()

	idStore, err := identity.NewPostgresStore(pool, identity.WithSchema(cfg.DBSchema))
	if err != nil {
		return nil, err
	}
	jobStore, err := jobs.NewPostgresStore(pool, jobs.WithSchema(cfg.DBSchema))
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	tokens, err := session.NewJWTHS256Manager(sessCfg)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()

	authCfg, err := authapi.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	auth, err := authapi.NewHandler(log, authCfg, idStore, tokens, authapi.NewMetrics(metrics.Registry))
	if err != nil {
		return nil, err
	}

	hub := feed.NewHub(log)
	gateway := feed.NewGateway(log, hub)

	jobsHandler, err := jobs.NewHandler(log, jobStore, idStore,
		jobs.WithNotifier(hub),
		jobs.WithMetrics(jobs.NewMetrics(metrics.Registry)),
	)
	if err != nil {
		return nil, err
	}

	ok = true
	return &App{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		metrics: metrics,
		auth:    auth,
		jobs:    jobsHandler,
		gateway: gateway,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.pool, a.metrics, a.auth, a.jobs, a.gateway)

	var handler http.Handler = mux
	handler = a.metrics.WithHTTPMetrics(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithSecurityHeaders(handler)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.pool.Close()

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
