package staff

import "context"

// StaffRepository defines data access methods for staff.
// All methods include companyID parameter to prevent cross-company data access.
type StaffRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Staff, error)
	// ListActive returns active, non-deleted staff ordered by name. branch filters when non-nil.
	ListActive(ctx context.Context, companyID string, branch *string) ([]Staff, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
