package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&domain.AppSettings{}))

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop()}), db, node
}

func TestGetRequiresSeededRow(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrNotSeeded)
}

func TestUpdate(t *testing.T) {
	svc, db, node := newTestService(t)
	require.NoError(t, db.Create(&domain.AppSettings{
		ID:         node.Generate(),
		AdminFee:   5000,
		PumpStatus: domain.PumpStatusOff,
	}).Error)

	fee := int64(7500)
	on := domain.PumpStatusOn
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{
		AdminFee:   &fee,
		PumpStatus: &on,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7500), updated.AdminFee)
	require.Equal(t, domain.PumpStatusOn, updated.PumpStatus)

	// Partial update leaves the other field alone.
	off := domain.PumpStatusOff
	updated, err = svc.Update(context.Background(), domain.UpdateRequest{PumpStatus: &off})
	require.NoError(t, err)
	require.Equal(t, int64(7500), updated.AdminFee)
	require.Equal(t, domain.PumpStatusOff, updated.PumpStatus)

	negative := int64(-1)
	_, err = svc.Update(context.Background(), domain.UpdateRequest{AdminFee: &negative})
	require.ErrorIs(t, err, domain.ErrInvalidAdminFee)

	bogus := domain.PumpStatus("maybe")
	_, err = svc.Update(context.Background(), domain.UpdateRequest{PumpStatus: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidPumpState)
}
