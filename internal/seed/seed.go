// Package seed bootstraps the settings singleton and the default tariff
// schedule so a fresh install can bill immediately.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/config"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"gorm.io/gorm"
)

// EnsureDefaults is idempotent: rows are only written when the tables are
// still empty, so operator edits survive restarts.
func EnsureDefaults(db *gorm.DB, billing config.BillingConfig) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSettings(ctx, tx, node, billing); err != nil {
			return err
		}
		return ensureTariffSchedule(ctx, tx, node, billing)
	})
}

func ensureSettings(ctx context.Context, tx *gorm.DB, node *snowflake.Node, billing config.BillingConfig) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&settingsdomain.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&settingsdomain.AppSettings{
		ID:         node.Generate(),
		AdminFee:   billing.AdminFee,
		PumpStatus: settingsdomain.PumpStatusOff,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error
}

func ensureTariffSchedule(ctx context.Context, tx *gorm.DB, node *snowflake.Node, billing config.BillingConfig) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&tariffdomain.Tier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, seed := range billing.DefaultTiers {
		tier := tariffdomain.Tier{
			ID:         node.Generate(),
			MinUsage:   seed.MinUsage,
			MaxUsage:   seed.MaxUsage,
			PricePerM3: seed.PricePerM3,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(&tier).Error; err != nil {
			return err
		}
	}
	return nil
}
