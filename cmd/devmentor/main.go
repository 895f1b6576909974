package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/devhearts/devmentor/internal/application"
	"github.com/devhearts/devmentor/internal/config"
	httptransport "github.com/devhearts/devmentor/internal/http"
	"github.com/devhearts/devmentor/internal/logging"
	"github.com/devhearts/devmentor/internal/observability/metrics"
	"github.com/devhearts/devmentor/internal/observability/tracing"
	"github.com/devhearts/devmentor/internal/persistence/memory"
)

const serviceName = "devmentor"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	logger.Info("starting DevMentor API", "environment", cfg.Environment)

	shutdownTracing, err := tracing.Init(ctx, logger, serviceName, cfg.Environment)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	store := memory.New()
	if err := prometheus.Register(metrics.NewStoreCollector(store.Counts)); err != nil {
		logger.Warn("store collector not registered", "error", err)
	}

	handler, err := buildHandler(cfg, store, metrics.Events{}, promhttp.Handler(), logger)
	if err != nil {
		logger.Error("failed to build handler", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           otelhttp.NewHandler(handler, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	logger.Info("DevMentor API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// buildHandler wires services and handlers over store.
func buildHandler(cfg config.Config, store *memory.Store, events application.EventRecorder, metricsHandler http.Handler, logger *slog.Logger) (http.Handler, error) {
	tokens, err := application.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL, nil)
	if err != nil {
		return nil, err
	}
	hasher := application.NewPasswordHasher(application.DefaultArgon2idParams)

	accounts := application.NewAccountService(store, hasher, tokens, events, logger)
	courses := application.NewCourseService(store, events, logger)
	enrollments := application.NewEnrollmentService(store, events, logger)
	messages := application.NewMessageService(store, events, logger)
	mentoring := application.NewMentoringService(store, events, logger)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Auth:            httptransport.NewAuthHandler(accounts, logger),
		Users:           httptransport.NewUserHandler(accounts, logger),
		Courses:         httptransport.NewCourseHandler(courses, logger),
		Enrollments:     httptransport.NewEnrollmentHandler(enrollments, logger),
		Messages:        httptransport.NewMessageHandler(messages, logger),
		Sessions:        httptransport.NewSessionHandler(mentoring, logger),
		Health:          store,
		Metrics:         metricsHandler,
		RouteMiddleware: []mux.MiddlewareFunc{metrics.HTTPMetricsMiddleware},
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.CORS(cfg.CORSOrigins),
			httptransport.Timeout(cfg.RequestTimeout),
		},
	}), nil
}
