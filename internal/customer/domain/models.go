package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status is the customer lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Customer is a metered connection. CurrentBalance is a materialized view of
// the account transaction set (negative = debt, positive = prepaid credit)
// and is only ever written by the ledger reconciler, inside the same database
// transaction as the mutation that invalidates it.
type Customer struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	Code           string            `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name           string            `gorm:"not null" json:"name"`
	Phone          string            `gorm:"type:text" json:"phone,omitempty"`
	Address        string            `gorm:"type:text" json:"address,omitempty"`
	MeterSerial    string            `gorm:"type:text" json:"meter_serial,omitempty"`
	Status         Status            `gorm:"type:text;not null;default:'active'" json:"status"`
	CurrentBalance int64             `gorm:"not null;default:0" json:"current_balance"`
	TotalUsageM3   float64           `gorm:"type:numeric;not null;default:0" json:"total_usage_m3"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
