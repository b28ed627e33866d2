package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"paystub/internal/domain/employee"
	"paystub/internal/domain/payroll"
	"paystub/internal/domain/timesheet"
	"paystub/internal/platform/config"
	"paystub/internal/platform/crypto"
	"paystub/internal/platform/docstore"
	"paystub/internal/platform/metrics"
	"paystub/internal/transport/http/api"
	employeehandler "paystub/internal/transport/http/handlers/employee"
	payrollhandler "paystub/internal/transport/http/handlers/payroll"
	timesheethandler "paystub/internal/transport/http/handlers/timesheet"
	"paystub/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Store   *docstore.Store
	Metrics *metrics.Collector
	Router  http.Handler
}

// New opens the document store, loads the payroll policy and builds the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := docstore.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	policy, err := payroll.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	if cfg.BucketMode != "" {
		policy.BucketMode = payroll.BucketMode(cfg.BucketMode)
	}
	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}
	collector := metrics.New()

	employees := employee.NewService(store)
	timesheets := timesheet.NewService(store, policy.Hours)
	paystubs := payroll.NewService(store, policy, collector)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		employeehandler.NewHandler(employees).RegisterRoutes(r)
		timesheethandler.NewHandler(timesheets).RegisterRoutes(r)
		payrollhandler.NewHandler(paystubs, cfg.PaystubDir, sealer).RegisterRoutes(r)
	})

	slog.InfoContext(ctx, "paystub app ready",
		"dataDir", cfg.DataDir,
		"bucketMode", policy.BucketMode,
		"encryptedArchive", sealer.Configured(),
	)
	return &App{Config: cfg, Store: store, Metrics: collector, Router: router}, nil
}

// Close releases app resources. Every store write is already durable.
func (a *App) Close() error {
	return nil
}

// Run serves the app until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("paystub server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	slog.Info("paystub server shutting down")
	return srv.Shutdown(shutdownCtx)
}
