package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"ideaforge.app/evaluator/common/id"
	"ideaforge.app/evaluator/common/llm"
	"ideaforge.app/evaluator/common/logger"
	"ideaforge.app/evaluator/common/otel"
	"ideaforge.app/evaluator/core/config"
	"ideaforge.app/evaluator/core/db"
	"ideaforge.app/evaluator/internal/analytics"
	"ideaforge.app/evaluator/internal/http/middleware"
	httprouter "ideaforge.app/evaluator/internal/http/router"
	"ideaforge.app/evaluator/internal/service"
	"ideaforge.app/evaluator/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "evaluator starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "migrations applied")
	}

	stores := store.NewStores(database.Pool())

	var recorder *analytics.Recorder
	if cfg.Analytics.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Analytics.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Analytics.RedisStream)
		recorder = analytics.NewRecorder(stores.EventLogs(), redisClient, cfg.Analytics.RedisStream)
	} else {
		slog.InfoContext(ctx, "analytics stream disabled (no redis url configured)")
		recorder = analytics.NewRecorder(stores.EventLogs(), nil, "")
	}
	defer recorder.Close()

	var scoringLLM llm.Client
	if cfg.ScoringLLM.Enabled() {
		client, err := llm.NewClient(llm.Config{
			Provider:  cfg.ScoringLLM.Provider,
			APIKey:    cfg.ScoringLLM.APIKey,
			BaseURL:   cfg.ScoringLLM.BaseURL,
			Model:     cfg.ScoringLLM.Model,
			MaxTokens: cfg.ScoringLLM.MaxTokens,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create scoring llm client", "error", err)
			os.Exit(1)
		}
		scoringLLM = llm.WithRetry(client, llm.RetryOptions{
			MaxAttempts: cfg.ScoringLLM.MaxAttempts,
			Timeout:     cfg.ScoringLLM.Timeout,
		})
		slog.InfoContext(ctx, "scoring llm configured", "provider", cfg.ScoringLLM.Provider, "model", client.Model())
	} else {
		slog.InfoContext(ctx, "scoring llm disabled (no api key configured)")
	}

	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		scoringLLM,
		service.NewLogNotifier(),
		recorder,
		service.NewNopCompletionChecker(),
		cfg.Evaluation,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services)

	return router
}
