package migration

import (
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/config"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, billing config.BillingConfig) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrateFallback(conn); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn, billing)
	}),
)
