// Package domain contains the customer account ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TransactionType distinguishes money received from money applied.
type TransactionType string

const (
	// TransactionIn is money received from the customer (top-up or additive
	// adjustment); it increases the balance.
	TransactionIn TransactionType = "IN"
	// TransactionOut is money applied against the account (invoice payment or
	// deductive adjustment); it decreases the balance.
	TransactionOut TransactionType = "OUT"
)

// Transaction categories as shown in the account history.
const (
	CategoryTopUp      = "topup"
	CategoryPayment    = "payment"
	CategoryAdjustment = "adjustment"
)

// AccountTransaction is one immutable ledger row. The customer balance and
// invoice statuses are derived from the transaction set; the cached columns
// on customers/invoices are recomputed in the same database transaction that
// appends rows here.
type AccountTransaction struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID      snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	Type            TransactionType `gorm:"type:text;not null" json:"type"`
	Amount          int64           `gorm:"not null" json:"amount"`
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`
	InvoiceID       *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	Category        string          `gorm:"type:text;not null" json:"category"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AccountTransaction) TableName() string { return "account_transactions" }
