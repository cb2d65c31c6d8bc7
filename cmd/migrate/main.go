package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ideaforge.app/evaluator/common/logger"
	"ideaforge.app/evaluator/core/config"
	"ideaforge.app/evaluator/core/db"
)

func main() {
	command := flag.String("command", "up", "migration command: up or status")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	switch *command {
	case "up":
		if err := database.Migrate(ctx); err != nil {
			slog.ErrorContext(ctx, "migration failed", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "migrations applied")
	case "status":
		if err := database.MigrationStatus(ctx); err != nil {
			slog.ErrorContext(ctx, "migration status failed", "error", err)
			os.Exit(1)
		}
	default:
		slog.ErrorContext(ctx, "unknown command", "command", *command)
		os.Exit(1)
	}
}
