// Package domain holds the operational settings singleton.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PumpStatus reflects whether the utility pump is running.
type PumpStatus string

const (
	PumpStatusOn  PumpStatus = "on"
	PumpStatusOff PumpStatus = "off"
)

// AppSettings is a single-row table. AdminFee is the flat charge added to
// every invoice; the remaining fields are operational flags the dashboard
// displays.
type AppSettings struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	AdminFee   int64             `gorm:"not null;default:0" json:"admin_fee"`
	PumpStatus PumpStatus        `gorm:"type:text;not null;default:'off'" json:"pump_status"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AppSettings) TableName() string { return "app_settings" }

type Service interface {
	Get(ctx context.Context) (AppSettings, error)
	Update(ctx context.Context, req UpdateRequest) (AppSettings, error)
}

type UpdateRequest struct {
	AdminFee   *int64      `json:"admin_fee"`
	PumpStatus *PumpStatus `json:"pump_status"`
}

var (
	ErrNotSeeded        = errors.New("settings_not_seeded")
	ErrInvalidAdminFee  = errors.New("invalid_admin_fee")
	ErrInvalidPumpState = errors.New("invalid_pump_status")
)
