package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview/domain"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	customerrepo "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/repository"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	settingssvc "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  *Service
	db   *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&readingdomain.MeterReading{},
		&invoicedomain.Invoice{},
		&ledgerdomain.AccountTransaction{},
		&settingsdomain.AppSettings{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	settings := settingssvc.New(settingssvc.Params{DB: db, Log: zap.NewNop()})
	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		CustomerRepo: customerrepo.Provide(),
		Settings:     settings,
	}).(*Service)

	return fixture{svc: svc, db: db, node: node}
}

func (f fixture) customer(t *testing.T) customerdomain.Customer {
	t.Helper()

	c := customerdomain.Customer{
		ID:     f.node.Generate(),
		Code:   "siti-" + f.node.Generate().String(),
		Name:   "Siti Rahma",
		Status: customerdomain.StatusActive,
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func (f fixture) invoice(t *testing.T, customerID snowflake.ID, year, month int, amount int64, status invoicedomain.InvoiceStatus) invoicedomain.Invoice {
	t.Helper()

	reading := readingdomain.MeterReading{
		ID:          f.node.Generate(),
		CustomerID:  customerID,
		ReadingDate: time.Date(year, time.Month(month), 28, 0, 0, 0, 0, time.UTC),
		PeriodMonth: month,
		PeriodYear:  year,
		UsageAmount: float64(amount) / 5000,
		TotalAmount: amount,
	}
	require.NoError(t, f.db.Create(&reading).Error)

	inv := invoicedomain.Invoice{
		ID:            f.node.Generate(),
		CustomerID:    customerID,
		ReadingID:     reading.ID,
		InvoiceNumber: "INV-TEST-" + reading.ID.String(),
		Period:        invoicedomain.PeriodLabel(month, year),
		TotalAmount:   amount,
		Status:        status,
	}
	require.NoError(t, f.db.Create(&inv).Error)
	return inv
}

func (f fixture) payment(t *testing.T, customerID, invoiceID snowflake.ID, amount int64, at time.Time) {
	t.Helper()

	txn := ledgerdomain.AccountTransaction{
		ID:              f.node.Generate(),
		CustomerID:      customerID,
		Type:            ledgerdomain.TransactionOut,
		Amount:          amount,
		TransactionDate: at,
		InvoiceID:       &invoiceID,
		Category:        ledgerdomain.CategoryPayment,
	}
	require.NoError(t, f.db.Create(&txn).Error)
}

func TestRemainingAmount(t *testing.T) {
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	inv := invoicedomain.Invoice{ID: node.Generate(), TotalAmount: 50000}
	other := node.Generate()

	require.Equal(t, int64(50000), domain.RemainingAmount(inv, nil))

	txns := []ledgerdomain.AccountTransaction{
		{Type: ledgerdomain.TransactionOut, InvoiceID: &inv.ID, Amount: 20000},
		{Type: ledgerdomain.TransactionOut, InvoiceID: &other, Amount: 99999},
		{Type: ledgerdomain.TransactionIn, Amount: 10000},
		{Type: ledgerdomain.TransactionOut, Amount: 7000},
	}
	require.Equal(t, int64(30000), domain.RemainingAmount(inv, txns))

	txns = append(txns, ledgerdomain.AccountTransaction{
		Type: ledgerdomain.TransactionOut, InvoiceID: &inv.ID, Amount: 40000,
	})
	require.Equal(t, int64(0), domain.RemainingAmount(inv, txns))
}

func TestUnpaidInvoicesDerivedFromPayments(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t)

	partial := f.invoice(t, customer.ID, 2025, 1, 50000, invoicedomain.InvoiceStatusUnpaid)
	f.payment(t, customer.ID, partial.ID, 20000, time.Now().UTC())

	// Stored status says UNPAID but the payments cover the total; the view
	// must not report it as owed.
	settled := f.invoice(t, customer.ID, 2025, 2, 30000, invoicedomain.InvoiceStatusUnpaid)
	f.payment(t, customer.ID, settled.ID, 30000, time.Now().UTC())

	untouched := f.invoice(t, customer.ID, 2025, 3, 40000, invoicedomain.InvoiceStatusUnpaid)

	unpaid, err := f.svc.UnpaidInvoices(context.Background(), customer.ID.String())
	require.NoError(t, err)
	require.Len(t, unpaid, 2)

	require.Equal(t, partial.ID, unpaid[0].Invoice.ID)
	require.Equal(t, int64(30000), unpaid[0].RemainingAmount)
	require.Equal(t, 1, unpaid[0].PeriodMonth)

	require.Equal(t, untouched.ID, unpaid[1].Invoice.ID)
	require.Equal(t, int64(40000), unpaid[1].RemainingAmount)
}

func TestYearSummaryIsSparse(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t)

	jan := f.invoice(t, customer.ID, 2025, 1, 50000, invoicedomain.InvoiceStatusPaid)
	f.payment(t, customer.ID, jan.ID, 50000, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	f.invoice(t, customer.ID, 2025, 4, 30000, invoicedomain.InvoiceStatusUnpaid)
	// Different year, must not appear.
	f.invoice(t, customer.ID, 2024, 12, 99999, invoicedomain.InvoiceStatusUnpaid)

	summary, err := f.svc.YearSummary(context.Background(), customer.ID.String(), 2025)
	require.NoError(t, err)

	require.Equal(t, 2025, summary.Year)
	require.Len(t, summary.Months, 2)
	require.Equal(t, 1, summary.Months[0].Month)
	require.Equal(t, "Januari 2025", summary.Months[0].Period)
	require.Equal(t, int64(50000), summary.Months[0].TotalPaid)
	require.Equal(t, 1, summary.Months[0].PaidCount)
	require.Equal(t, 4, summary.Months[1].Month)
	require.Equal(t, int64(0), summary.Months[1].TotalPaid)

	require.Equal(t, int64(80000), summary.TotalBilled)
	require.Equal(t, int64(50000), summary.TotalPaid)
	require.Equal(t, int64(30000), summary.Outstanding)
}

func TestOverviewTotals(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.db.Create(&settingsdomain.AppSettings{
		ID:         f.node.Generate(),
		AdminFee:   5000,
		PumpStatus: settingsdomain.PumpStatusOn,
	}).Error)

	active := f.customer(t)
	inactive := f.customer(t)
	require.NoError(t, f.db.Model(&customerdomain.Customer{}).
		Where("id = ?", inactive.ID).
		Update("status", customerdomain.StatusInactive).Error)

	owed := f.invoice(t, active.ID, 2025, 1, 60000, invoicedomain.InvoiceStatusUnpaid)
	f.payment(t, active.ID, owed.ID, 25000, time.Now().UTC())
	f.invoice(t, inactive.ID, 2025, 2, 15000, invoicedomain.InvoiceStatusUnpaid)

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), overview.TotalCustomers)
	require.Equal(t, int64(1), overview.ActiveCustomers)
	require.Equal(t, int64(2), overview.UnpaidInvoices)
	require.Equal(t, int64(50000), overview.OutstandingAmount)
	require.Equal(t, int64(25000), overview.RevenueThisMonth)
	require.Equal(t, settingsdomain.PumpStatusOn, overview.PumpStatus)
}

func TestOverviewWithoutSettingsRow(t *testing.T) {
	f := newFixture(t)

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	require.Empty(t, overview.PumpStatus)
	require.Zero(t, overview.TotalCustomers)
}
