package domain

import (
	"context"
	"errors"
	"fmt"
)

// AdjustDirection selects the sign of a manual balance correction.
type AdjustDirection string

const (
	AdjustAdd    AdjustDirection = "add"
	AdjustDeduct AdjustDirection = "deduct"
)

type TopUpResult struct {
	Transaction AccountTransaction `json:"transaction"`
	NewBalance  int64              `json:"new_balance"`
}

type AutoPayResult struct {
	InvoicesPaid int   `json:"invoices_paid"`
	TotalApplied int64 `json:"total_amount_paid"`
	NewBalance   int64 `json:"new_balance"`
}

type PayAllResult struct {
	InvoicesPaid int   `json:"invoices_paid"`
	TotalPaid    int64 `json:"total_amount_paid"`
	NewBalance   int64 `json:"new_balance"`
}

type Service interface {
	// TopUp records money received from the customer and raises the balance.
	TopUp(ctx context.Context, customerID string, amount int64, description string) (TopUpResult, error)

	// AutoPayAfterTopUp settles unpaid invoices oldest period first, spending
	// at most the given amount. Partial settlement is allowed; leftover stays
	// as credit. A zero or negative amount settles nothing.
	AutoPayAfterTopUp(ctx context.Context, customerID string, available int64) (AutoPayResult, error)

	// PayAllUnpaid settles every unpaid invoice from the current balance.
	// All-or-nothing: an insufficient balance fails the whole call with zero
	// writes.
	PayAllUnpaid(ctx context.Context, customerID string) (PayAllResult, error)

	// Adjust applies an invoice-independent balance correction.
	Adjust(ctx context.Context, customerID string, amount int64, direction AdjustDirection, description string) (TopUpResult, error)

	ListByCustomer(ctx context.Context, customerID string) ([]AccountTransaction, error)
}

// InsufficientBalanceError reports how much is missing so the caller can
// offer the top-up flow instead.
type InsufficientBalanceError struct {
	Shortfall int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, short %d", e.Shortfall)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidDirection = errors.New("invalid_direction")
)
