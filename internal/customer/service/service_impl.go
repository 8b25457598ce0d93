package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	code, err := s.uniqueCode(ctx, name)
	if err != nil {
		return domain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		MeterSerial: strings.TrimSpace(req.MeterSerial),
		Status:      domain.StatusActive,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	if req.Status != "" {
		switch domain.Status(req.Status) {
		case domain.StatusActive, domain.StatusInactive, domain.StatusSuspended:
		default:
			return domain.ListCustomerResponse{}, domain.ErrInvalidStatus
		}
	}

	items, err := s.repo.List(ctx, s.db, domain.ListCustomerFilter{
		Name:   strings.TrimSpace(req.Name),
		Status: req.Status,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(customer *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        customer.ID.String(),
			CreatedAt: customer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomerResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Customer, error) {
	switch status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusSuspended:
	default:
		return domain.Customer{}, domain.ErrInvalidStatus
	}

	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	customer.Status = status
	customer.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

// uniqueCode derives a slug from the customer name and suffixes it until it is
// free. Codes show up on printed invoices, so readability beats entropy.
func (s *Service) uniqueCode(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "pelanggan"
	}

	code := base
	for i := 2; ; i++ {
		existing, err := s.repo.FindByCode(ctx, s.db, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
		code = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
