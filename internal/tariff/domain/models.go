// Package domain contains the water tariff schedule and pricing rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tier is one usage band of the tariff schedule. MaxUsage nil marks the
// open-ended top band. Tiers partition the usage axis without gaps and are
// kept sorted ascending by MinUsage.
type Tier struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	MinUsage   float64      `gorm:"type:numeric;not null" json:"min_usage"`
	MaxUsage   *float64     `gorm:"type:numeric" json:"max_usage,omitempty"`
	PricePerM3 int64        `gorm:"not null" json:"price_per_m3"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tier) TableName() string { return "tariff_tiers" }
