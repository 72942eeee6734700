package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/usecase"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/service"
	"github.com/Shivendra-1710/fraud-detection-system/internal/infrastructure/config"
	"github.com/Shivendra-1710/fraud-detection-system/internal/infrastructure/messaging"
	"github.com/Shivendra-1710/fraud-detection-system/internal/infrastructure/ml"
	riskpg "github.com/Shivendra-1710/fraud-detection-system/internal/infrastructure/postgres"
	grpcpresentation "github.com/Shivendra-1710/fraud-detection-system/internal/presentation/grpc"
	"github.com/Shivendra-1710/fraud-detection-system/internal/presentation/rest"
	"github.com/Shivendra-1710/fraud-detection-system/pkg/kafka"
	"github.com/Shivendra-1710/fraud-detection-system/pkg/observability"
	"github.com/Shivendra-1710/fraud-detection-system/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"model_versions", cfg.ModelVersions,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "risk-service",
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "risk-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.MigrationsDir != "" {
		if migErr := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}
	}

	// Scoring policy: blend weights, thresholds, rule parameters.
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logger.Error("failed to load scoring policy", "error", err)
		os.Exit(1)
	}
	scorerCfg, err := policy.ScorerConfig()
	if err != nil {
		logger.Error("invalid scoring policy", "error", err)
		os.Exit(1)
	}
	scorer, err := service.NewRiskScorer(scorerCfg)
	if err != nil {
		logger.Error("failed to build risk scorer", "error", err)
		os.Exit(1)
	}

	extractor := feature.NewExtractor(policy.MerchantRisk, policy.UnknownMerchantRisk)
	history := riskpg.NewAccountHistoryReader(pool, cfg.HistoryWindow)

	// Model artifacts: one pipeline per configured version.
	store := ml.NewFilesystemStore(cfg.ModelDir)
	pipelines := make(map[string]*service.DecisionPipeline, len(cfg.ModelVersions))
	for _, version := range cfg.ModelVersions {
		models, err := store.Load(ctx, version)
		if err != nil {
			logger.Error("failed to load model artifact", "version", version, "error", err)
			os.Exit(1)
		}
		pipeline, err := service.NewDecisionPipeline(
			extractor, models, version, scorer, history, cfg.InferenceTimeout, logger,
		)
		if err != nil {
			logger.Error("failed to build pipeline", "version", version, "error", err)
			os.Exit(1)
		}
		pipelines[version] = pipeline
		logger.Info("model artifact loaded", "version", version, "models", len(models))
	}

	// Wire infrastructure adapters.
	verdictRepo := riskpg.NewVerdictRepository(pool)

	kafkaCfg := kafka.Config{
		Brokers:       []string{cfg.KafkaBroker},
		ConsumerGroup: cfg.ConsumerGroup,
	}
	producer, err := kafka.NewProducer(kafkaCfg)
	if err != nil {
		logger.Error("failed to build kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()
	publisher := messaging.NewKafkaPublisher(producer, cfg.AlertsTopic, logger)

	// Wire use cases.
	assessUC, err := usecase.NewAssessTransaction(pipelines, cfg.DefaultModelVersion(), verdictRepo, publisher, logger)
	if err != nil {
		logger.Error("failed to build assess use case", "error", err)
		os.Exit(1)
	}
	batchUC := usecase.NewBatchAssess(assessUC, logger)
	getUC := usecase.NewGetVerdict(verdictRepo)
	listUC := usecase.NewListAccountVerdicts(verdictRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(assessUC, batchUC, getUC, listUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger)

	// HTTP server: health checks and metrics.
	healthHandler := rest.NewHealthHandler(logger, pool)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Optional streaming consumer: scores transactions published by
	// upstream services.
	var consumer *messaging.TransactionConsumer
	if cfg.TransactionsTopic != "" {
		consumer, err = messaging.NewTransactionConsumer(kafkaCfg, cfg.TransactionsTopic, assessUC, logger)
		if err != nil {
			logger.Error("failed to build transaction consumer", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("transaction consumer error: %w", err)
			}
		}()
	}

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("consumer close error", "error", err)
		}
	}

	logger.Info("risk-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
