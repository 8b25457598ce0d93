package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	customerrepo "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/repository"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	invoicesvc "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/service"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	readingrepo "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/repository"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	settingssvc "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/service"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	tariffsvc "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
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
		&tariffdomain.Tier{},
		&settingsdomain.AppSettings{},
		&domain.MeterReading{},
		&invoicedomain.Invoice{},
	))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	log := zap.NewNop()
	svc := New(Params{
		DB:           db,
		Log:          log,
		GenID:        node,
		Repo:         readingrepo.Provide(),
		CustomerRepo: customerrepo.Provide(),
		TariffSvc:    tariffsvc.New(tariffsvc.Params{DB: db, Log: log, GenID: node}),
		SettingsSvc:  settingssvc.New(settingssvc.Params{DB: db, Log: log}),
		InvoiceSvc:   invoicesvc.New(invoicesvc.Params{DB: db, Log: log, GenID: node}),
	})

	return fixture{svc: svc, db: db, node: node}
}

// seedBillingDefaults installs the standard two-band schedule (0-5 at 3,000,
// above 5 at 5,000) and a 5,000 admin fee.
func (f fixture) seedBillingDefaults(t *testing.T) {
	t.Helper()

	five := 5.0
	now := time.Now().UTC()
	require.NoError(t, f.db.Create(&tariffdomain.Tier{
		ID: f.node.Generate(), MinUsage: 0, MaxUsage: &five, PricePerM3: 3000,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&tariffdomain.Tier{
		ID: f.node.Generate(), MinUsage: 5, PricePerM3: 5000,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&settingsdomain.AppSettings{
		ID: f.node.Generate(), AdminFee: 5000, PumpStatus: settingsdomain.PumpStatusOff,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
}

func (f fixture) customer(t *testing.T) customerdomain.Customer {
	t.Helper()

	c := customerdomain.Customer{
		ID:     f.node.Generate(),
		Code:   "agus-" + f.node.Generate().String(),
		Name:   "Agus Wijaya",
		Status: customerdomain.StatusActive,
	}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func float64Ptr(v float64) *float64 { return &v }

func TestProcessFirstReading(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	result, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(8.5),
	})
	require.NoError(t, err)

	require.Equal(t, 0.0, result.Reading.PreviousValue)
	require.Equal(t, 8.5, result.Reading.CurrentValue)
	require.Equal(t, 8.5, result.Reading.UsageAmount)
	require.Equal(t, int64(42500), result.Reading.WaterCost)
	require.Equal(t, int64(5000), result.Reading.AdminFee)
	require.Equal(t, int64(47500), result.Reading.TotalAmount)

	require.Equal(t, result.Reading.ID, result.Invoice.ReadingID)
	require.Equal(t, result.Reading.TotalAmount, result.Invoice.TotalAmount)
	require.Equal(t, invoicedomain.InvoiceStatusUnpaid, result.Invoice.Status)
	require.Equal(t, "Januari 2025", result.Invoice.Period)

	// Lifetime usage on the customer follows the reading.
	var reloaded customerdomain.Customer
	require.NoError(t, f.db.First(&reloaded, "id = ?", customer.ID).Error)
	require.Equal(t, 8.5, reloaded.TotalUsageM3)
}

func TestProcessChainsFromPreviousReading(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(8.5),
	})
	require.NoError(t, err)

	result, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       2,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(20.5),
	})
	require.NoError(t, err)

	require.Equal(t, 8.5, result.Reading.PreviousValue)
	require.Equal(t, 12.0, result.Reading.UsageAmount)
	// 12 m3 lands in the upper band.
	require.Equal(t, int64(60000), result.Reading.WaterCost)
	require.Equal(t, int64(65000), result.Reading.TotalAmount)
}

func TestProcessRejectsDecreasingReadingWithoutWrites(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(8.5),
	})
	require.NoError(t, err)

	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       2,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(7.0),
	})
	require.ErrorIs(t, err, domain.ErrReadingDecrease)

	var readings, invoices int64
	require.NoError(t, f.db.Model(&domain.MeterReading{}).Count(&readings).Error)
	require.NoError(t, f.db.Model(&invoicedomain.Invoice{}).Count(&invoices).Error)
	require.Equal(t, int64(1), readings)
	require.Equal(t, int64(1), invoices)
}

func TestProcessRejectsDuplicatePeriod(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(8.5),
	})
	require.NoError(t, err)

	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(9.0),
	})
	require.ErrorIs(t, err, domain.ErrPeriodBilled)
}

func TestProcessValidation(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:  customer.ID.String(),
		PeriodMonth: 1,
		PeriodYear:  2025,
	})
	require.ErrorIs(t, err, domain.ErrMissingReading)

	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(-1),
	})
	require.ErrorIs(t, err, domain.ErrNegativeReading)

	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       13,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        f.node.Generate().String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(1),
	})
	require.ErrorIs(t, err, customerdomain.ErrNotFound)
}

func TestProcessZeroUsageStillBillsAdminFee(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(5),
	})
	require.NoError(t, err)

	result, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		PeriodMonth:       2,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(5),
	})
	require.NoError(t, err)

	require.Equal(t, 0.0, result.Reading.UsageAmount)
	require.Equal(t, int64(0), result.Reading.WaterCost)
	require.Equal(t, int64(5000), result.Reading.TotalAmount)
}

func TestLatestFollowsReadingDate(t *testing.T) {
	f := newFixture(t)
	f.seedBillingDefaults(t)
	customer := f.customer(t)

	_, err := f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		ReadingDate:       time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
		PeriodMonth:       1,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(8.5),
	})
	require.NoError(t, err)
	_, err = f.svc.Process(context.Background(), domain.ProcessRequest{
		CustomerID:        customer.ID.String(),
		ReadingDate:       time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
		PeriodMonth:       2,
		PeriodYear:        2025,
		TotalMeterReading: float64Ptr(12),
	})
	require.NoError(t, err)

	latest, err := f.svc.Latest(context.Background(), customer.ID.String())
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, 12.0, latest.CurrentValue)
	require.Equal(t, 2, latest.PeriodMonth)
}
