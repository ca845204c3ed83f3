package internal

import (
	"database/sql"
	"fmt"

	"github.com/azorix/solarstore/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies any pending schema and catalog-seed migrations
// embedded in the binary. Called at startup, before the pgx pool is
// opened, over a plain database/sql connection on the pgx stdlib driver.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
