package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for shift assignments.
type ShiftRepository interface {
	Create(ctx context.Context, shift ShiftAssignment) (ShiftAssignment, error)
	Delete(ctx context.Context, id string, companyID string) error
	// ListOverlapping returns shifts whose [start, end] interval intersects [from, to).
	ListOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]ShiftAssignment, error)
}
