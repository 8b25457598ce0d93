// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceStatus represents invoice lifecycle states. UNPAID -> PAID is the
// only transition in normal operation; CANCELLED is reserved for manual
// corrections and is never re-opened.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice bills exactly one meter reading. The reading is the authority for
// the billed period; month lookups join through ReadingID rather than relying
// on creation timestamps, which may lag the period they bill.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID    snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	ReadingID     snowflake.ID  `gorm:"not null;uniqueIndex:ux_invoices_reading" json:"reading_id"`
	InvoiceNumber string        `gorm:"type:text;not null;uniqueIndex:ux_invoices_number" json:"invoice_number"`
	Period        string        `gorm:"type:text;not null" json:"period"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	Status        InvoiceStatus `gorm:"type:text;not null;default:'UNPAID'" json:"status"`
	PaidAt        *time.Time    `gorm:"" json:"paid_at,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
