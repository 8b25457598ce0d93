package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&domain.Tier{}))

	node, err := snowflake.NewNode(9)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestScheduleSortedAscending(t *testing.T) {
	svc := newTestService(t)

	ten := 10.0
	// Insert the upper band first; the schedule must come back ordered.
	_, err := svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: 10, PricePerM3: 5000})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: 0, MaxUsage: &ten, PricePerM3: 3000})
	require.NoError(t, err)

	tiers, err := svc.Schedule(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	require.Equal(t, 0.0, tiers[0].MinUsage)
	require.Equal(t, 10.0, tiers[1].MinUsage)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: -1, PricePerM3: 3000})
	require.ErrorIs(t, err, domain.ErrInvalidUsageRange)

	five := 5.0
	_, err = svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: 5, MaxUsage: &five, PricePerM3: 3000})
	require.ErrorIs(t, err, domain.ErrInvalidUsageRange)

	_, err = svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: 0, PricePerM3: 0})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateTier(t *testing.T) {
	svc := newTestService(t)

	tier, err := svc.Create(context.Background(), domain.CreateTierRequest{MinUsage: 10, PricePerM3: 5000})
	require.NoError(t, err)

	price := int64(6000)
	updated, err := svc.Update(context.Background(), tier.ID.String(), domain.UpdateTierRequest{PricePerM3: &price})
	require.NoError(t, err)
	require.Equal(t, int64(6000), updated.PricePerM3)
	require.Equal(t, 10.0, updated.MinUsage)

	bad := 9.0
	_, err = svc.Update(context.Background(), tier.ID.String(), domain.UpdateTierRequest{MaxUsage: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidUsageRange)

	node, err := snowflake.NewNode(10)
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), node.Generate().String(), domain.UpdateTierRequest{PricePerM3: &price})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
