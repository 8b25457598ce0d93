// Package domain contains the meter reading pipeline models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MeterReading is one cumulative meter observation priced for a billing
// period. Rows are immutable once created; corrections happen through ledger
// adjustments, never by editing a reading.
//
// Chain invariant: PreviousValue equals the customer's latest prior
// CurrentValue (0 for the first reading), and CurrentValue never decreases.
type MeterReading struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_readings_period,priority:1" json:"customer_id"`
	ReadingDate   time.Time    `gorm:"not null" json:"reading_date"`
	PeriodMonth   int          `gorm:"not null;uniqueIndex:ux_readings_period,priority:3" json:"period_month"`
	PeriodYear    int          `gorm:"not null;uniqueIndex:ux_readings_period,priority:2" json:"period_year"`
	PreviousValue float64      `gorm:"type:numeric;not null" json:"previous_value"`
	CurrentValue  float64      `gorm:"type:numeric;not null" json:"current_value"`
	UsageAmount   float64      `gorm:"type:numeric;not null" json:"usage_amount"`
	WaterCost     int64        `gorm:"not null" json:"water_cost"`
	AdminFee      int64        `gorm:"not null" json:"admin_fee"`
	TotalAmount   int64        `gorm:"not null" json:"total_amount"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (MeterReading) TableName() string { return "meter_readings" }
