package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/KativuCraig/manymor-frontend/internal/catalog"
	"github.com/KativuCraig/manymor-frontend/internal/config"
	"github.com/KativuCraig/manymor-frontend/internal/gateway"
	"github.com/KativuCraig/manymor-frontend/internal/payment"
	"github.com/KativuCraig/manymor-frontend/internal/payment/poller"
	"github.com/KativuCraig/manymor-frontend/internal/session"
	sessionhttp "github.com/KativuCraig/manymor-frontend/internal/session/delivery/http"
	"github.com/KativuCraig/manymor-frontend/internal/web"
	"github.com/KativuCraig/manymor-frontend/kafka"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
	"github.com/KativuCraig/manymor-frontend/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Client-side state store: Redis when configured, in-process otherwise
	var store kvstore.Store = kvstore.NewMemoryStore()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err := kvstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ServiceName)
		cancel()
		if err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, falling back to in-memory store")
		} else {
			defer redisStore.Close()
			store = redisStore
			logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis client state store")
		}
	}

	// Session and gateway client. The manager supplies bearer tokens to
	// every outgoing gateway request.
	sessionManager := session.NewManager(store)
	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout, sessionManager)
	sessionService := session.NewService(gatewayClient, sessionManager)

	// Outcome events are optional; without brokers the poller just skips
	// publishing.
	var publisher poller.OutcomePublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Kafka unavailable, outcome events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
			logger.Logger.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Kafka outcome publisher initialized")
		}
	}

	// Initialize handlers with Wire DI
	catalogHandler, err := catalog.InitializeHandler(gatewayClient)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}

	pollerConfig := poller.Config{
		Interval:     cfg.PollInterval,
		MaxAttempts:  cfg.MaxPollAttempts,
		SuccessDelay: cfg.PaymentSuccessDelay,
	}
	paymentHandler, err := payment.InitializeHandler(payment.HandlerDeps{
		Source:    gatewayClient,
		Gateway:   gatewayClient,
		Store:     store,
		Publisher: publisher,
		Config:    pollerConfig,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize payment handler")
	}
	defer paymentHandler.Close()

	sessionHandler := sessionhttp.NewSessionHandler(sessionService)

	// Setup router
	router := mux.NewRouter()
	catalogHandler.RegisterRoutes(router)
	paymentHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		web.RespondJSON(w, http.StatusOK, web.Response{
			Success: true,
			Message: "healthy",
		})
	}).Methods(http.MethodGet)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = router
	handler = web.LoggingMiddleware(handler)
	handler = web.TracingMiddleware("storefront", handler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: c.Handler(handler),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("gateway", cfg.GatewayBaseURL).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
