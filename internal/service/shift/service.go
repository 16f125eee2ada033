package shift

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/fixtures"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	db        database.Transactor
	shiftRepo shift.ShiftRepository
	staffRepo staff.StaffRepository
	loc       *time.Location
	offDays   puantaj.OffDayPolicy
}

func NewShiftService(
	db database.Transactor,
	shiftRepo shift.ShiftRepository,
	staffRepo staff.StaffRepository,
	loc *time.Location,
	offDays puantaj.OffDayPolicy,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:        db,
		shiftRepo: shiftRepo,
		staffRepo: staffRepo,
		loc:       loc,
		offDays:   offDays,
	}
}

func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	branch := req.Branch
	if branch == "" {
		branch = member.Branch
	}

	created, err := s.shiftRepo.Create(ctx, shift.ShiftAssignment{
		CompanyID: claims.CompanyID,
		StaffID:   member.ID,
		Start:     req.ParsedStart.In(s.loc),
		End:       req.ParsedEnd.In(s.loc),
		Type:      shift.ShiftType(req.Type),
		Branch:    branch,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	created.StaffName = &member.Name
	return shift.ToResponse(created), nil
}

// PlanWeek creates one template shift per working day of the week, skipping the
// branch's rest days. Either every shift of the week is stored or none is.
func (s *ShiftServiceImpl) PlanWeek(ctx context.Context, req shift.PlanWeekRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	template, ok := fixtures.ShiftTemplateByKey(req.Template)
	if !ok {
		keys := make([]string, 0, 3)
		for _, t := range fixtures.GetDefaultShiftTemplates() {
			keys = append(keys, t.Key)
		}
		return nil, validator.ValidationErrors{{Field: "template", Message: "template must be one of: " + strings.Join(keys, ", ")}}
	}

	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return nil, err
	}

	isOff := func(d period.Date) bool { return s.offDays.IsOffDay(member.Branch, d) }
	plan := fixtures.WeekPlan(member.ID, template, req.ParsedWeekStart, isOff, s.loc)

	responses := make([]shift.ShiftResponse, 0, len(plan))
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, assignment := range plan {
			assignment.CompanyID = claims.CompanyID
			assignment.Branch = member.Branch

			created, err := s.shiftRepo.Create(txCtx, assignment)
			if err != nil {
				return fmt.Errorf("failed to create shift for %s: %w", assignment.Start.Format(period.DateLayout), err)
			}
			created.StaffName = &member.Name
			responses = append(responses, shift.ToResponse(created))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Week planned",
		"staff_id", member.ID,
		"template", template.Key,
		"week_start", req.ParsedWeekStart.String(),
		"shift_count", len(responses),
	)
	return responses, nil
}

func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id, claims.CompanyID)
}

func (s *ShiftServiceImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(s.loc); err != nil {
		return nil, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListOverlapping(ctx, claims.CompanyID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToResponse(sh))
	}
	return responses, nil
}
