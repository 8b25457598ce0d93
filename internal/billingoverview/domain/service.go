// Package domain defines the read-side rollups the dashboard renders.
package domain

import (
	"context"

	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
)

// UnpaidInvoice pairs an invoice with the amount still owed on it. The
// remaining amount is derived from the payment transactions, so an invoice
// whose stored status lags its payments never shows a stale debt.
type UnpaidInvoice struct {
	Invoice         invoicedomain.Invoice `json:"invoice"`
	PeriodMonth     int                   `json:"period_month"`
	PeriodYear      int                   `json:"period_year"`
	RemainingAmount int64                 `json:"remaining_amount"`
}

// MonthTotals is one month's row in the per-customer yearly summary. Months
// without a reading are omitted from the summary entirely.
type MonthTotals struct {
	Month        int     `json:"month"`
	Period       string  `json:"period"`
	UsageM3      float64 `json:"usage_m3"`
	TotalBilled  int64   `json:"total_billed"`
	TotalPaid    int64   `json:"total_paid"`
	InvoiceCount int     `json:"invoice_count"`
	PaidCount    int     `json:"paid_count"`
}

type CustomerYearSummary struct {
	CustomerID  string        `json:"customer_id"`
	Year        int           `json:"year"`
	Months      []MonthTotals `json:"months"`
	TotalBilled int64         `json:"total_billed"`
	TotalPaid   int64         `json:"total_paid"`
	Outstanding int64         `json:"outstanding"`
}

// UtilityOverview backs the dashboard header cards.
type UtilityOverview struct {
	TotalCustomers    int64                     `json:"total_customers"`
	ActiveCustomers   int64                     `json:"active_customers"`
	UnpaidInvoices    int64                     `json:"unpaid_invoices"`
	OutstandingAmount int64                     `json:"outstanding_amount"`
	RevenueThisMonth  int64                     `json:"revenue_this_month"`
	TotalUsageM3      float64                   `json:"total_usage_m3"`
	PumpStatus        settingsdomain.PumpStatus `json:"pump_status"`
}

type Service interface {
	// UnpaidInvoices lists a customer's invoices with money still owed,
	// oldest billed period first.
	UnpaidInvoices(ctx context.Context, customerID string) ([]UnpaidInvoice, error)

	// YearSummary rolls up a customer's billed months for one year.
	YearSummary(ctx context.Context, customerID string, year int) (CustomerYearSummary, error)

	// Overview rolls up utility-wide totals.
	Overview(ctx context.Context) (UtilityOverview, error)
}

// RemainingAmount derives what is still owed on an invoice from its payment
// transactions. OUT rows attributed to other invoices (or to none) are
// ignored; overpayment clamps to zero rather than going negative.
func RemainingAmount(inv invoicedomain.Invoice, txns []ledgerdomain.AccountTransaction) int64 {
	var paid int64
	for i := range txns {
		txn := &txns[i]
		if txn.Type != ledgerdomain.TransactionOut {
			continue
		}
		if txn.InvoiceID == nil || *txn.InvoiceID != inv.ID {
			continue
		}
		paid += txn.Amount
	}
	remaining := inv.TotalAmount - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}
