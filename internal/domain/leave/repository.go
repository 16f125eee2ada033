package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	// List returns requests newest first. staffID filters when non-nil.
	List(ctx context.Context, companyID string, staffID *string) ([]LeaveRequest, error)
	// ListOverlapping returns requests of any status intersecting [from, to] (inclusive dates).
	ListOverlapping(ctx context.Context, companyID string, from, to time.Time) ([]LeaveRequest, error)
	// UpdateStatus moves a pending request to status; returns ErrLeaveRequestAlreadyProcessed
	// when the request is no longer pending.
	UpdateStatus(ctx context.Context, id string, companyID string, status LeaveRequestStatus, approvedBy string) (LeaveRequest, error)
}
