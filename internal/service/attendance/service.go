package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

type AttendanceServiceImpl struct {
	db             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// RecordEvent applies a CHECK_IN or CHECK_OUT. A staff member has at most one open
// record; a second CHECK_IN and a CHECK_OUT without an open record are rejected.
func (s *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	var location *string
	if req.Location != "" {
		location = &req.Location
	}

	var result attendance.AttendanceRecord
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		open, err := s.attendanceRepo.GetOpenRecord(txCtx, member.ID, claims.CompanyID)
		if err != nil && !errors.Is(err, attendance.ErrNotCheckedIn) {
			return err
		}
		hasOpen := err == nil

		switch attendance.EventType(req.Type) {
		case attendance.EventCheckIn:
			if hasOpen {
				return attendance.ErrAlreadyCheckedIn
			}
			created, err := s.attendanceRepo.Create(txCtx, attendance.AttendanceRecord{
				CompanyID:  claims.CompanyID,
				StaffID:    member.ID,
				Date:       period.DateOf(now, s.loc).Time(time.UTC),
				CheckIn:    now,
				LocationIn: location,
			})
			if err != nil {
				return err
			}
			result = created

		case attendance.EventCheckOut:
			if !hasOpen {
				return attendance.ErrNotCheckedIn
			}
			open.CheckOut = &now
			open.LocationOut = location
			hours := open.Hours()
			open.WorkingHours = &hours
			if err := s.attendanceRepo.Update(txCtx, open); err != nil {
				return err
			}
			result = open
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance event recorded", "staff_id", member.ID, "type", req.Type, "attendance_id", result.ID)
	result.StaffName = &member.Name
	return attendance.ToResponse(result), nil
}

func (s *AttendanceServiceImpl) List(ctx context.Context, staffID *string) ([]attendance.AttendanceResponse, error) {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, claims.CompanyID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

// Correct rewrites timestamps of an existing record, e.g. a forgotten check-out. The
// business date and working hours are derived again from the corrected values.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, req attendance.CorrectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ParsedCheckIn != nil {
		record.CheckIn = req.ParsedCheckIn.In(s.loc)
		record.Date = period.DateOf(record.CheckIn, s.loc).Time(time.UTC)
	}
	if req.ParsedCheckOut != nil {
		out := req.ParsedCheckOut.In(s.loc)
		record.CheckOut = &out
	}
	if req.LocationIn != nil {
		record.LocationIn = req.LocationIn
	}
	if req.LocationOut != nil {
		record.LocationOut = req.LocationOut
	}

	if record.CheckOut != nil {
		if record.CheckOut.Before(record.CheckIn) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeStart
		}
		hours := record.Hours()
		record.WorkingHours = &hours
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance corrected", "attendance_id", record.ID, "staff_id", record.StaffID, "user_id", claims.UserID)
	return attendance.ToResponse(record), nil
}

func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.attendanceRepo.Delete(ctx, id, claims.CompanyID); err != nil {
		return err
	}

	slog.Info("Attendance deleted", "attendance_id", id, "user_id", claims.UserID)
	return nil
}
