package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db/option"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Tier]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tariff.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Tier](p.DB),
	}
}

func (s *Service) Schedule(ctx context.Context) ([]domain.Tier, error) {
	rows, err := s.repo.Find(ctx, &domain.Tier{}, option.WithOrder("min_usage asc"))
	if err != nil {
		return nil, err
	}

	tiers := make([]domain.Tier, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		tiers = append(tiers, *row)
	}
	domain.SortTiers(tiers)
	return tiers, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateTierRequest) (domain.Tier, error) {
	if req.MinUsage < 0 {
		return domain.Tier{}, domain.ErrInvalidUsageRange
	}
	if req.MaxUsage != nil && *req.MaxUsage <= req.MinUsage {
		return domain.Tier{}, domain.ErrInvalidUsageRange
	}
	if req.PricePerM3 <= 0 {
		return domain.Tier{}, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	tier := domain.Tier{
		ID:         s.genID.Generate(),
		MinUsage:   req.MinUsage,
		MaxUsage:   req.MaxUsage,
		PricePerM3: req.PricePerM3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, &tier); err != nil {
		return domain.Tier{}, err
	}
	return tier, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateTierRequest) (domain.Tier, error) {
	tierID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || tierID == 0 {
		return domain.Tier{}, domain.ErrInvalidID
	}

	existing, err := s.repo.FindOne(ctx, &domain.Tier{ID: tierID})
	if err != nil {
		return domain.Tier{}, err
	}
	if existing == nil {
		return domain.Tier{}, domain.ErrNotFound
	}

	if req.MinUsage != nil {
		if *req.MinUsage < 0 {
			return domain.Tier{}, domain.ErrInvalidUsageRange
		}
		existing.MinUsage = *req.MinUsage
	}
	if req.MaxUsage != nil {
		existing.MaxUsage = req.MaxUsage
	}
	if req.PricePerM3 != nil {
		if *req.PricePerM3 <= 0 {
			return domain.Tier{}, domain.ErrInvalidPrice
		}
		existing.PricePerM3 = *req.PricePerM3
	}
	if existing.MaxUsage != nil && *existing.MaxUsage <= existing.MinUsage {
		return domain.Tier{}, domain.ErrInvalidUsageRange
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return domain.Tier{}, err
	}
	return *existing, nil
}
