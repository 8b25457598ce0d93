package domain

import (
	"context"
	"errors"

	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	MeterSerial string `json:"meter_serial"`
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	Status    string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Customer, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("customer_not_found")
)
