package puantaj

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

// Options carries the calendar settings of the business.
type Options struct {
	Location       *time.Location
	Policy         puantaj.OffDayPolicy
	MaxConcurrency int
}

type PuantajServiceImpl struct {
	staffRepo      staff.StaffRepository
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	leaveRepo      leave.LeaveRequestRepository
	opts           Options
}

func NewPuantajService(
	staffRepo staff.StaffRepository,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	leaveRepo leave.LeaveRequestRepository,
	opts Options,
) puantaj.PuantajService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	return &PuantajServiceImpl{
		staffRepo:      staffRepo,
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		leaveRepo:      leaveRepo,
		opts:           opts,
	}
}

func (s *PuantajServiceImpl) GetMonthly(ctx context.Context, req puantaj.MonthlyRequest) ([]puantaj.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := period.Parse(req.Period)
	if err != nil {
		return nil, err
	}

	members, err := s.staffRepo.ListActive(ctx, claims.CompanyID, req.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	snap, err := s.fetchSnapshot(ctx, claims.CompanyID, p)
	if err != nil {
		return nil, err
	}

	summaries := make([]puantaj.MonthlySummary, len(members))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrency)
	for i, member := range members {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			summaries[i] = BuildMonth(member, p, snap, s.opts.Policy, s.opts.Location)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].StaffName != summaries[j].StaffName {
			return summaries[i].StaffName < summaries[j].StaffName
		}
		return summaries[i].StaffID < summaries[j].StaffID
	})

	logWarnings(claims.CompanyID, p, summaries)
	return summaries, nil
}

func (s *PuantajServiceImpl) GetForStaff(ctx context.Context, staffID string, periodStr string) (puantaj.MonthlySummary, error) {
	req := puantaj.MonthlyRequest{Period: periodStr}
	if err := req.Validate(); err != nil {
		return puantaj.MonthlySummary{}, err
	}
	claims, err := user.ClaimsFromContext(ctx)
	if err != nil {
		return puantaj.MonthlySummary{}, err
	}
	p, err := period.Parse(periodStr)
	if err != nil {
		return puantaj.MonthlySummary{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID, claims.CompanyID)
	if err != nil {
		return puantaj.MonthlySummary{}, err
	}

	snap, err := s.fetchSnapshot(ctx, claims.CompanyID, p)
	if err != nil {
		return puantaj.MonthlySummary{}, err
	}

	summary := BuildMonth(member, p, snap, s.opts.Policy, s.opts.Location)
	logWarnings(claims.CompanyID, p, []puantaj.MonthlySummary{summary})
	return summary, nil
}

// fetchSnapshot reads the three sources for the month concurrently. Each call works on
// a fresh snapshot; nothing is cached between requests.
func (s *PuantajServiceImpl) fetchSnapshot(ctx context.Context, companyID string, p period.Period) (puantaj.Snapshot, error) {
	var snap puantaj.Snapshot
	loc := s.opts.Location

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.attendanceRepo.ListByDateRange(gCtx, companyID, p.Start(time.UTC), p.End(time.UTC))
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		snap.Attendance = records
		return nil
	})

	g.Go(func() error {
		shifts, err := s.shiftRepo.ListOverlapping(gCtx, companyID, p.Start(loc), p.End(loc))
		if err != nil {
			return fmt.Errorf("failed to load shifts: %w", err)
		}
		snap.Shifts = shifts
		return nil
	})

	g.Go(func() error {
		last := p.End(time.UTC).AddDate(0, 0, -1)
		leaves, err := s.leaveRepo.ListOverlapping(gCtx, companyID, p.Start(time.UTC), last)
		if err != nil {
			return fmt.Errorf("failed to load leave requests: %w", err)
		}
		snap.Leaves = leaves
		return nil
	})

	if err := g.Wait(); err != nil {
		return puantaj.Snapshot{}, err
	}
	return snap, nil
}

func logWarnings(companyID string, p period.Period, summaries []puantaj.MonthlySummary) {
	for _, summary := range summaries {
		for _, w := range summary.Warnings {
			slog.Warn("Puantaj computation warning",
				"company_id", companyID,
				"staff_id", w.StaffID,
				"period", p.String(),
				"code", w.Code,
				"message", w.Message,
			)
		}
	}
}
