package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ReadingSource is the slice of a persisted meter reading the generator
// needs. Keeping it here avoids a dependency from invoicing back onto the
// reading pipeline.
type ReadingSource struct {
	ReadingID   snowflake.ID
	CustomerID  snowflake.ID
	PeriodMonth int
	PeriodYear  int
	TotalAmount int64
}

type Service interface {
	// GenerateForReading creates the invoice billing a freshly persisted
	// reading. It must run inside the same transaction that created the
	// reading so a reading is never left without its invoice.
	GenerateForReading(ctx context.Context, tx *gorm.DB, src ReadingSource) (Invoice, error)

	GetByID(ctx context.Context, id string) (Invoice, error)
	ListByCustomer(ctx context.Context, customerID string, status InvoiceStatus) ([]Invoice, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidSource = errors.New("invalid_reading_source")
	ErrNotFound      = errors.New("invoice_not_found")
)
