package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access attacks.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (AttendanceRecord, error)
	// GetOpenRecord returns ErrNotCheckedIn when the staff has no open record.
	GetOpenRecord(ctx context.Context, staffID string, companyID string) (AttendanceRecord, error)
	Update(ctx context.Context, record AttendanceRecord) error
	Delete(ctx context.Context, id string, companyID string) error
	// List returns records ordered by check-in. staffID filters when non-nil.
	List(ctx context.Context, companyID string, staffID *string) ([]AttendanceRecord, error)
	// ListByDateRange returns records whose date is in [from, to).
	ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]AttendanceRecord, error)
}
