package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview/domain"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidYear = errors.New("invalid_year")

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	CustomerRepo customerdomain.Repository
	Settings     settingsdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	customerRepo customerdomain.Repository
	settings     settingsdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("billingoverview.service"),
		customerRepo: p.CustomerRepo,
		settings:     p.Settings,
	}
}

// invoiceWithPeriod joins the billed period and the paid sum onto the
// invoice row in one query.
type invoiceWithPeriod struct {
	invoicedomain.Invoice
	PeriodMonth int     `gorm:"column:period_month"`
	PeriodYear  int     `gorm:"column:period_year"`
	UsageAmount float64 `gorm:"column:usage_amount"`
	PaidAmount  int64   `gorm:"column:paid_amount"`
}

func (s *Service) UnpaidInvoices(ctx context.Context, customerID string) ([]domain.UnpaidInvoice, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.invoicesWithPeriod(ctx, id, 0)
	if err != nil {
		return nil, err
	}

	unpaid := make([]domain.UnpaidInvoice, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		remaining := row.TotalAmount - row.PaidAmount
		if remaining <= 0 {
			continue
		}
		unpaid = append(unpaid, domain.UnpaidInvoice{
			Invoice:         row.Invoice,
			PeriodMonth:     row.PeriodMonth,
			PeriodYear:      row.PeriodYear,
			RemainingAmount: remaining,
		})
	}
	return unpaid, nil
}

func (s *Service) YearSummary(ctx context.Context, customerID string, year int) (domain.CustomerYearSummary, error) {
	id, err := s.resolveCustomer(ctx, customerID)
	if err != nil {
		return domain.CustomerYearSummary{}, err
	}
	if year < 2000 || year > 2200 {
		return domain.CustomerYearSummary{}, ErrInvalidYear
	}

	rows, err := s.invoicesWithPeriod(ctx, id, year)
	if err != nil {
		return domain.CustomerYearSummary{}, err
	}

	summary := domain.CustomerYearSummary{CustomerID: id.String(), Year: year}
	byMonth := make(map[int]*domain.MonthTotals)
	order := make([]int, 0, 12)
	for i := range rows {
		row := &rows[i]
		month, ok := byMonth[row.PeriodMonth]
		if !ok {
			month = &domain.MonthTotals{
				Month:  row.PeriodMonth,
				Period: invoicedomain.PeriodLabel(row.PeriodMonth, year),
			}
			byMonth[row.PeriodMonth] = month
			order = append(order, row.PeriodMonth)
		}

		paid := row.PaidAmount
		if paid > row.TotalAmount {
			paid = row.TotalAmount
		}
		month.UsageM3 += row.UsageAmount
		month.TotalBilled += row.TotalAmount
		month.TotalPaid += paid
		month.InvoiceCount++
		if paid >= row.TotalAmount {
			month.PaidCount++
		}
	}

	for _, m := range order {
		month := byMonth[m]
		summary.Months = append(summary.Months, *month)
		summary.TotalBilled += month.TotalBilled
		summary.TotalPaid += month.TotalPaid
	}
	summary.Outstanding = summary.TotalBilled - summary.TotalPaid
	return summary, nil
}

func (s *Service) Overview(ctx context.Context) (domain.UtilityOverview, error) {
	var overview domain.UtilityOverview

	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active,
		        COALESCE(SUM(total_usage_m3), 0) AS usage
		 FROM customers`,
		customerdomain.StatusActive,
	).Row().Scan(&overview.TotalCustomers, &overview.ActiveCustomers, &overview.TotalUsageM3)
	if err != nil {
		return domain.UtilityOverview{}, err
	}

	// Outstanding = unsettled portion of UNPAID invoices. Invoices whose
	// payments already cover the total are excluded even if the stored
	// status is stale.
	err = s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*), COALESCE(SUM(remaining), 0) FROM (
		    SELECT i.total_amount - COALESCE((
		        SELECT SUM(t.amount) FROM account_transactions t
		        WHERE t.invoice_id = i.id AND t.type = ?
		    ), 0) AS remaining
		    FROM invoices i
		    WHERE i.status = ?
		 ) due WHERE due.remaining > 0`,
		ledgerdomain.TransactionOut,
		invoicedomain.InvoiceStatusUnpaid,
	).Row().Scan(&overview.UnpaidInvoices, &overview.OutstandingAmount)
	if err != nil {
		return domain.UtilityOverview{}, err
	}

	monthStart := startOfMonth(time.Now().UTC())
	err = s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0)
		 FROM account_transactions
		 WHERE type = ? AND category = ? AND transaction_date >= ?`,
		ledgerdomain.TransactionOut,
		ledgerdomain.CategoryPayment,
		monthStart,
	).Scan(&overview.RevenueThisMonth).Error
	if err != nil {
		return domain.UtilityOverview{}, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil && !errors.Is(err, settingsdomain.ErrNotSeeded) {
		return domain.UtilityOverview{}, err
	}
	overview.PumpStatus = settings.PumpStatus
	return overview, nil
}

func (s *Service) invoicesWithPeriod(ctx context.Context, customerID snowflake.ID, year int) ([]invoiceWithPeriod, error) {
	query := `SELECT i.*, r.period_month, r.period_year, r.usage_amount,
	                 COALESCE((
	                     SELECT SUM(t.amount) FROM account_transactions t
	                     WHERE t.invoice_id = i.id AND t.type = ?
	                 ), 0) AS paid_amount
	          FROM invoices i
	          JOIN meter_readings r ON r.id = i.reading_id
	          WHERE i.customer_id = ? AND i.status <> ?`
	args := []any{ledgerdomain.TransactionOut, customerID, invoicedomain.InvoiceStatusCancelled}
	if year > 0 {
		query += ` AND r.period_year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY r.period_year ASC, r.period_month ASC, i.id ASC`

	var rows []invoiceWithPeriod
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) resolveCustomer(ctx context.Context, customerID string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil || id == 0 {
		return 0, customerdomain.ErrInvalidID
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, customerdomain.ErrNotFound
	}
	return id, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
