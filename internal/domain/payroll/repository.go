package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	// GetByStaffPeriod returns ErrPayrollRecordNotFound when no record exists yet.
	GetByStaffPeriod(ctx context.Context, staffID string, period string, companyID string) (PayrollRecord, error)
	// UpdateAmounts rewrites salary, bonus, deductions, net pay and notes of a pending record.
	UpdateAmounts(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	// MarkPaid flips a pending record to paid. It returns ErrPayrollRecordAlreadyPaid when
	// no pending row matched, so concurrent callers cannot both succeed.
	MarkPaid(ctx context.Context, id string, companyID string, paidBy string, paidAt time.Time) (PayrollRecord, error)
	List(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollRecord, error)
	// ListStaffIDsWithRecord returns the staff ids that already have a record for period.
	ListStaffIDsWithRecord(ctx context.Context, period string, companyID string) (map[string]struct{}, error)
}
