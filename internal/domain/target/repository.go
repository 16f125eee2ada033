package target

import (
	"context"

	"github.com/shopspring/decimal"
)

type TargetRepository interface {
	Create(ctx context.Context, target PerformanceTarget) (PerformanceTarget, error)
	// List returns targets newest first. staffID filters when non-nil.
	List(ctx context.Context, companyID string, staffID *string) ([]PerformanceTarget, error)
	// UpdateCurrentValue is reserved for the sales attribution feed.
	UpdateCurrentValue(ctx context.Context, id string, companyID string, value decimal.Decimal) error
}
