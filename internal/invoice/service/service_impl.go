package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
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
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
	}
}

func (s *Service) GenerateForReading(ctx context.Context, tx *gorm.DB, src domain.ReadingSource) (domain.Invoice, error) {
	if tx == nil {
		tx = s.db
	}
	if src.ReadingID == 0 || src.CustomerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidSource
	}
	if src.PeriodMonth < 1 || src.PeriodMonth > 12 {
		return domain.Invoice{}, domain.ErrInvalidSource
	}

	now := time.Now().UTC()
	id := s.genID.Generate()
	inv := domain.Invoice{
		ID:            id,
		CustomerID:    src.CustomerID,
		ReadingID:     src.ReadingID,
		InvoiceNumber: invoiceNumber(src.PeriodYear, src.PeriodMonth, id),
		Period:        domain.PeriodLabel(src.PeriodMonth, src.PeriodYear),
		TotalAmount:   src.TotalAmount,
		Status:        domain.InvoiceStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := tx.WithContext(ctx).Create(&inv).Error; err != nil {
		return domain.Invoice{}, err
	}

	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	var inv domain.Invoice
	err = s.db.WithContext(ctx).Where("id = ?", invoiceID).First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Invoice{}, domain.ErrNotFound
		}
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}

	stmt := s.db.WithContext(ctx).Where("customer_id = ?", id)
	if status != "" {
		switch status {
		case domain.InvoiceStatusUnpaid, domain.InvoiceStatusPaid, domain.InvoiceStatusCancelled:
			stmt = stmt.Where("status = ?", status)
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	var invoices []domain.Invoice
	if err := stmt.Order("created_at desc, id desc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// invoiceNumber is unique by construction: the snowflake ID is embedded in
// base36 after the billed period.
func invoiceNumber(year, month int, id snowflake.ID) string {
	return fmt.Sprintf("INV-%04d%02d-%s", year, month, strings.ToUpper(strconv.FormatInt(int64(id), 36)))
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
