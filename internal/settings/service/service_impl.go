package service

import (
	"context"
	"time"

	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo repository.Repository[domain.AppSettings]
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("settings.service"),
		repo: repository.ProvideStore[domain.AppSettings](p.DB),
	}
}

func (s *Service) Get(ctx context.Context) (domain.AppSettings, error) {
	row, err := s.repo.FindOne(ctx, &domain.AppSettings{})
	if err != nil {
		return domain.AppSettings{}, err
	}
	if row == nil {
		return domain.AppSettings{}, domain.ErrNotSeeded
	}
	return *row, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.AppSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.AppSettings{}, err
	}

	if req.AdminFee != nil {
		if *req.AdminFee < 0 {
			return domain.AppSettings{}, domain.ErrInvalidAdminFee
		}
		current.AdminFee = *req.AdminFee
	}
	if req.PumpStatus != nil {
		switch *req.PumpStatus {
		case domain.PumpStatusOn, domain.PumpStatusOff:
			current.PumpStatus = *req.PumpStatus
		default:
			return domain.AppSettings{}, domain.ErrInvalidPumpState
		}
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&current).Error; err != nil {
		return domain.AppSettings{}, err
	}
	return current, nil
}
