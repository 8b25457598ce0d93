package domain

import (
	"context"
	"errors"
	"time"

	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
)

type ProcessRequest struct {
	CustomerID        string    `json:"customer_id"`
	ReadingDate       time.Time `json:"reading_date"`
	PeriodMonth       int       `json:"period_month"`
	PeriodYear        int       `json:"period_year"`
	TotalMeterReading *float64  `json:"total_meter_reading"`
	Notes             string    `json:"notes"`
}

// ProcessResult pairs the persisted reading with the invoice generated for it
// in the same transaction.
type ProcessResult struct {
	Reading MeterReading          `json:"reading"`
	Invoice invoicedomain.Invoice `json:"invoice"`
}

type Service interface {
	// Process validates and prices a new cumulative reading, then persists
	// the reading and its invoice atomically.
	Process(ctx context.Context, req ProcessRequest) (ProcessResult, error)

	ListByCustomer(ctx context.Context, customerID string) ([]MeterReading, error)
	Latest(ctx context.Context, customerID string) (*MeterReading, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrMissingReading  = errors.New("missing_meter_reading")
	ErrNegativeReading = errors.New("negative_meter_reading")
	ErrReadingDecrease = errors.New("meter_reading_decreased")
	ErrPeriodBilled    = errors.New("period_already_billed")
)
