package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *MeterReading) error
	Latest(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*MeterReading, error)
	List(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]MeterReading, error)
	FindByPeriod(ctx context.Context, db *gorm.DB, customerID snowflake.ID, year, month int) (*MeterReading, error)
}
