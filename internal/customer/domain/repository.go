package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListCustomerFilter struct {
	Name   string
	Status string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, error)
	Save(ctx context.Context, db *gorm.DB, customer *Customer) error
}
