// Package migration creates the schema on startup so the service is usable
// out of the box for local and self-hosted environments.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the embedded SQL migrations. Postgres only; other
// dialects go through AutoMigrateFallback.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrateFallback builds the schema from the gorm models for dialects
// the embedded SQL does not target (sqlite dev databases, mysql).
func AutoMigrateFallback(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerdomain.Customer{},
		&tariffdomain.Tier{},
		&settingsdomain.AppSettings{},
		&readingdomain.MeterReading{},
		&invoicedomain.Invoice{},
		&ledgerdomain.AccountTransaction{},
	)
}
