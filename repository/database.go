package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseOptions controls how the PostgreSQL connection is opened
type DatabaseOptions struct {
	URL          string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

// OpenDatabase builds a pgx pool and hands it to GORM. The returned pool must
// be closed by the caller after the GORM handle is no longer used.
func OpenDatabase(ctx context.Context, opts DatabaseOptions) (*gorm.DB, *pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxOpenConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(opts.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	slog.Info("Connected to database", "max_conns", poolConfig.MaxConns)
	return db, pool, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
