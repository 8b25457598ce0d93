package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *domain.MeterReading) error {
	return db.WithContext(ctx).Create(reading).Error
}

// Latest returns the customer's most recent reading by reading date, falling
// back to creation order for same-day submissions.
func (r *repo) Latest(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*domain.MeterReading, error) {
	var reading domain.MeterReading
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("reading_date desc, id desc").
		First(&reading).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.MeterReading, error) {
	var readings []domain.MeterReading
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("reading_date desc, id desc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) FindByPeriod(ctx context.Context, db *gorm.DB, customerID snowflake.ID, year, month int) (*domain.MeterReading, error) {
	var reading domain.MeterReading
	err := db.WithContext(ctx).
		Where("customer_id = ? AND period_year = ? AND period_month = ?", customerID, year, month).
		First(&reading).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}
