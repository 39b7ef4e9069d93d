// Package database opens the gorm connection for a DATABASE_URL.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	// PGDriver selects the database/sql driver for postgres URLs:
	// "pgx" (default) or "postgres" for lib/pq.
	PGDriver string
	Debug    bool

	// Logger receives gorm's warnings and, with Debug, every statement.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Dialector picks the gorm dialector for databaseURL.
func Dialector(databaseURL string, opts Options) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		if opts.PGDriver == "postgres" {
			return postgres.New(postgres.Config{DriverName: "postgres", DSN: databaseURL}), nil
		}
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("missing sqlite path in %s", databaseURL)
		}
		return sqlite.Open(sqliteDSN(path)), nil
	}
	return nil, fmt.Errorf("unsupported database URL: %s", databaseURL)
}

// sqliteDSN turns on foreign keys, which sqlite leaves off per connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Open connects and verifies the connection with a ping.
func Open(ctx context.Context, databaseURL string, opts Options) (*gorm.DB, error) {
	dialector, err := Dialector(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Ping(ctx, db); err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}

func newLogger(opts Options) logger.Interface {
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	return logger.NewSlogLogger(l, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
