package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	TariffSvc    tariffdomain.Service
	SettingsSvc  settingsdomain.Service
	InvoiceSvc   invoicedomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	customerRepo customerdomain.Repository
	tariffSvc    tariffdomain.Service
	settingsSvc  settingsdomain.Service
	invoiceSvc   invoicedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("reading.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		tariffSvc:    p.TariffSvc,
		settingsSvc:  p.SettingsSvc,
		invoiceSvc:   p.InvoiceSvc,
	}
}

func (s *Service) Process(ctx context.Context, req domain.ProcessRequest) (domain.ProcessResult, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	if req.PeriodMonth < 1 || req.PeriodMonth > 12 || req.PeriodYear < 2000 {
		return domain.ProcessResult{}, domain.ErrInvalidPeriod
	}
	if req.TotalMeterReading == nil {
		return domain.ProcessResult{}, domain.ErrMissingReading
	}
	currentValue := *req.TotalMeterReading
	if currentValue < 0 {
		return domain.ProcessResult{}, domain.ErrNegativeReading
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	if customer == nil {
		return domain.ProcessResult{}, customerdomain.ErrNotFound
	}

	// Reject before any write: the cumulative chain must not decrease and a
	// period is billed at most once.
	previous, err := s.repo.Latest(ctx, s.db, customerID)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	previousValue := 0.0
	if previous != nil {
		previousValue = previous.CurrentValue
	}
	if currentValue < previousValue {
		return domain.ProcessResult{}, domain.ErrReadingDecrease
	}

	existing, err := s.repo.FindByPeriod(ctx, s.db, customerID, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	if existing != nil {
		return domain.ProcessResult{}, domain.ErrPeriodBilled
	}

	tiers, err := s.tariffSvc.Schedule(ctx)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	appSettings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	usage := currentValue - previousValue
	waterCost := tariffdomain.PriceUsage(usage, tiers)

	readingDate := req.ReadingDate
	if readingDate.IsZero() {
		readingDate = time.Now().UTC()
	}

	reading := domain.MeterReading{
		ID:            s.genID.Generate(),
		CustomerID:    customerID,
		ReadingDate:   readingDate,
		PeriodMonth:   req.PeriodMonth,
		PeriodYear:    req.PeriodYear,
		PreviousValue: previousValue,
		CurrentValue:  currentValue,
		UsageAmount:   usage,
		WaterCost:     waterCost,
		AdminFee:      appSettings.AdminFee,
		TotalAmount:   waterCost + appSettings.AdminFee,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     time.Now().UTC(),
	}

	var inv invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &reading); err != nil {
			return err
		}

		inv, err = s.invoiceSvc.GenerateForReading(ctx, tx, invoicedomain.ReadingSource{
			ReadingID:   reading.ID,
			CustomerID:  customerID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
			TotalAmount: reading.TotalAmount,
		})
		if err != nil {
			return err
		}

		customer.TotalUsageM3 += usage
		customer.UpdatedAt = time.Now().UTC()
		return s.customerRepo.Save(ctx, tx, customer)
	})
	if err != nil {
		return domain.ProcessResult{}, err
	}

	s.log.Info("reading processed",
		zap.String("customer_id", customerID.String()),
		zap.Int("period_year", req.PeriodYear),
		zap.Int("period_month", req.PeriodMonth),
		zap.Float64("usage_m3", usage),
		zap.Int64("total_amount", reading.TotalAmount),
	)

	return domain.ProcessResult{Reading: reading, Invoice: inv}, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.MeterReading, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, s.db, id)
}

func (s *Service) Latest(ctx context.Context, customerID string) (*domain.MeterReading, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	return s.repo.Latest(ctx, s.db, id)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
