package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&domain.Invoice{}))

	node, err := snowflake.NewNode(8)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node}), node
}

func TestGenerateForReading(t *testing.T) {
	svc, node := newTestService(t)

	src := domain.ReadingSource{
		ReadingID:   node.Generate(),
		CustomerID:  node.Generate(),
		PeriodMonth: 3,
		PeriodYear:  2025,
		TotalAmount: 47500,
	}
	inv, err := svc.GenerateForReading(context.Background(), nil, src)
	require.NoError(t, err)

	require.Equal(t, src.ReadingID, inv.ReadingID)
	require.Equal(t, int64(47500), inv.TotalAmount)
	require.Equal(t, domain.InvoiceStatusUnpaid, inv.Status)
	require.Equal(t, "Maret 2025", inv.Period)
	require.Contains(t, inv.InvoiceNumber, "INV-202503-")
	require.Nil(t, inv.PaidAt)

	found, err := svc.GetByID(context.Background(), inv.ID.String())
	require.NoError(t, err)
	require.Equal(t, inv.InvoiceNumber, found.InvoiceNumber)
}

func TestGenerateForReadingValidation(t *testing.T) {
	svc, node := newTestService(t)

	_, err := svc.GenerateForReading(context.Background(), nil, domain.ReadingSource{
		CustomerID:  node.Generate(),
		PeriodMonth: 1,
		PeriodYear:  2025,
	})
	require.ErrorIs(t, err, domain.ErrInvalidSource)

	_, err = svc.GenerateForReading(context.Background(), nil, domain.ReadingSource{
		ReadingID:   node.Generate(),
		CustomerID:  node.Generate(),
		PeriodMonth: 0,
		PeriodYear:  2025,
	})
	require.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestListByCustomerFiltersStatus(t *testing.T) {
	svc, node := newTestService(t)
	customerID := node.Generate()

	for month := 1; month <= 3; month++ {
		_, err := svc.GenerateForReading(context.Background(), nil, domain.ReadingSource{
			ReadingID:   node.Generate(),
			CustomerID:  customerID,
			PeriodMonth: month,
			PeriodYear:  2025,
			TotalAmount: 10000,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListByCustomer(context.Background(), customerID.String(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	unpaid, err := svc.ListByCustomer(context.Background(), customerID.String(), domain.InvoiceStatusUnpaid)
	require.NoError(t, err)
	require.Len(t, unpaid, 3)

	paid, err := svc.ListByCustomer(context.Background(), customerID.String(), domain.InvoiceStatusPaid)
	require.NoError(t, err)
	require.Empty(t, paid)

	_, err = svc.ListByCustomer(context.Background(), customerID.String(), domain.InvoiceStatus("stale"))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}
