package staff

import (
	"context"
	"fmt"

	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
)

type StaffServiceImpl struct {
	staffRepo staff.StaffRepository
}

func NewStaffService(staffRepo staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{staffRepo: staffRepo}
}

func (s *StaffServiceImpl) List(ctx context.Context, branch *string) ([]staff.StaffResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.staffRepo.ListActive(ctx, claims.CompanyID, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, staff.ToResponse(m))
	}
	return responses, nil
}
