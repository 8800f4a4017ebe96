// Package main provides the entry point for the inquiry service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/config"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/diagnostics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/flightsearch"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/form"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/handler"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/logger"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/metrics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/middleware"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/submitter"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/validation"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogFile)
	defer func() { _ = log.Sync() }()
	log.Info("Starting Royal Gate inquiry service",
		zap.String("addr", cfg.Addr),
		zap.String("schema", string(cfg.Schema())),
	)

	reporter, err := diagnostics.New(cfg.SentryDSN, cfg.Env)
	if err != nil {
		log.Warn("diagnostics disabled", zap.Error(err))
		reporter = diagnostics.Nop{}
	}
	defer diagnostics.Flush(reporter, 2*time.Second)

	dir, err := flightsearch.LoadDirectory(cfg.AirportsFile)
	if err != nil {
		return fmt.Errorf("load airports: %w", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	validate := validation.New(cfg.Schema())
	sub := submitter.New(cfg, log, m, reporter)

	forms := form.NewRegistry(func() *form.Form {
		return form.New(validate, sub, log, m)
	})
	h := handler.New(log, forms, flightsearch.NewBuilder(dir, cfg.MessagingURL), m)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Metrics(m))

	r.Get("/healthz", h.Healthz)
	r.With(middleware.RateLimit(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}, log)).Post("/inquiries", h.SubmitInquiry)
	r.Get("/flights/search", h.SearchFlights)
	r.Get("/flights/search/qr", h.FlightQRCode)
	r.Get("/airports", h.Airports)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
		return err
	}

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctxShutdown)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
