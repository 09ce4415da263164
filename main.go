package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/krshsl/interview-simulator/backend/repository"
	"github.com/krshsl/interview-simulator/backend/services"
)

func main() {
	// Setup structured logging with JSON format
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := services.LoadConfig()
	server := services.NewServer(config)

	if config.Database.URL != "" {
		db, pool, err := repository.OpenDatabase(context.Background(), repository.DatabaseOptions{
			URL:          config.Database.URL,
			LogLevel:     config.Database.LogLevel,
			MaxIdleConns: config.Database.MaxIdleConns,
			MaxOpenConns: config.Database.MaxOpenConns,
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo := repository.NewGORMRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			slog.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migration completed")
		server.SetRepository(repo, true)
	} else {
		slog.Warn("Database URL not configured, using in-memory store")
		server.SetRepository(repository.NewMemoryRepository(), false)
	}

	if err := server.InitializeServices(); err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if config.Database.Seed {
		if err := server.Seed(context.Background()); err != nil {
			slog.Error("Failed to seed database", "error", err)
		}
	}

	server.Start()
}
