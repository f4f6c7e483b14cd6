// Package pgtest starts throwaway databases and seeds reference data for
// integration and end-to-end tests.
package pgtest

import (
	"context"
	"strings"
	"time"

	pizzeriapg "pizzeria/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the GORM configuration every test database is opened with. It
// matches production in translating constraint errors.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// StartPostgres runs a PostgreSQL container and returns a migrated database.
// The caller terminates the container.
func StartPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), Config())
	if err != nil {
		return container, nil, err
	}

	if err = pizzeriapg.Migrate(db); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Reset empties every table.
func Reset(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + strings.Join(pizzeriapg.Tables(), ", ") + " CASCADE").Error
}
