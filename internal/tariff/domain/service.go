package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Schedule returns the full tariff schedule sorted ascending by MinUsage.
	Schedule(ctx context.Context) ([]Tier, error)
	Create(ctx context.Context, req CreateTierRequest) (Tier, error)
	Update(ctx context.Context, id string, req UpdateTierRequest) (Tier, error)
}

type CreateTierRequest struct {
	MinUsage   float64  `json:"min_usage"`
	MaxUsage   *float64 `json:"max_usage"`
	PricePerM3 int64    `json:"price_per_m3"`
}

type UpdateTierRequest struct {
	MinUsage   *float64 `json:"min_usage"`
	MaxUsage   *float64 `json:"max_usage"`
	PricePerM3 *int64   `json:"price_per_m3"`
}

var (
	ErrInvalidUsageRange = errors.New("invalid_usage_range")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("tier_not_found")
)
