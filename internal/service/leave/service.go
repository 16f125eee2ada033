package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRequestRepository
	staffRepo staff.StaffRepository
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository, staffRepo staff.StaffRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo: leaveRepo,
		staffRepo: staffRepo,
	}
}

func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		CompanyID: claims.CompanyID,
		StaffID:   member.ID,
		Type:      leave.LeaveType(req.Type),
		StartDate: req.ParsedStart,
		EndDate:   req.ParsedEnd,
		Status:    leave.LeaveRequestStatusPending,
		Reason:    req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	created.StaffName = &member.Name
	return leave.ToResponse(created), nil
}

func (s *LeaveServiceImpl) List(ctx context.Context, staffID *string) ([]leave.LeaveResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.List(ctx, claims.CompanyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, nil
}

// UpdateStatus approves or rejects a pending request. The transition happens once;
// processed requests are rejected with ErrLeaveRequestAlreadyProcessed.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if req.ApprovedBy == "" {
		req.ApprovedBy = claims.UserID
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	current, err := s.leaveRepo.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if current.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	updated, err := s.leaveRepo.UpdateStatus(ctx, req.ID, claims.CompanyID, leave.LeaveRequestStatus(req.Status), req.ApprovedBy)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("Leave request processed", "leave_request_id", updated.ID, "staff_id", updated.StaffID, "status", updated.Status)
	return leave.ToResponse(updated), nil
}
