package puantaj

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

// Resolve reduces the facts of one staff member on one date to a single DayStatus.
//
// Precedence, first match wins:
//  1. an approved leave
//  2. closed attendance with positive hours
//  3. a configured off-day
//  4. a shift without attendance (no-show)
//  5. nothing planned (unscheduled absence)
//
// The result does not depend on the order of facts.
func Resolve(staffID string, date period.Date, facts []puantaj.Fact, offDay bool) (puantaj.DayStatus, []puantaj.Warning) {
	var (
		leaves   []puantaj.Fact
		closed   []puantaj.Fact
		openRecs int
		shifts   []puantaj.Fact
		warnings []puantaj.Warning
	)

	for _, f := range facts {
		switch f.Kind {
		case puantaj.FactLeave:
			leaves = append(leaves, f)
		case puantaj.FactAttendance:
			if f.Open {
				openRecs++
			} else {
				closed = append(closed, f)
			}
		case puantaj.FactShift:
			shifts = append(shifts, f)
		}
	}

	warn := func(code, format string, args ...any) {
		d := date
		warnings = append(warnings, puantaj.Warning{
			Code:    code,
			StaffID: staffID,
			Date:    &d,
			Message: fmt.Sprintf(format, args...),
		})
	}

	sort.Slice(leaves, func(i, j int) bool { return leaves[i].SourceID < leaves[j].SourceID })
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].ShiftStart.Equal(shifts[j].ShiftStart) {
			return shifts[i].ShiftStart.Before(shifts[j].ShiftStart)
		}
		return shifts[i].SourceID < shifts[j].SourceID
	})

	var hours float64
	for _, f := range closed {
		hours += f.Hours
	}
	hours = attendance.RoundHours(hours)

	if openRecs > 0 {
		warn(puantaj.WarnOpenAttendance, "%d open attendance record(s) ignored", openRecs)
	}
	if len(closed) > 1 {
		warn(puantaj.WarnMultipleAttendance, "%d closed attendance records summed to %.2f hours", len(closed), hours)
	}
	if len(shifts) > 1 {
		warn(puantaj.WarnMultipleShifts, "%d shifts planned, first (%s) used", len(shifts), shifts[0].SourceID)
	}

	status := puantaj.DayStatus{StaffID: staffID, Date: date}
	if len(shifts) > 0 {
		status.ShiftType = shifts[0].ShiftType
	}

	if len(leaves) > 0 {
		if len(closed) > 0 || openRecs > 0 || len(shifts) > 0 {
			warn(puantaj.WarnSuppressedByLeave, "approved leave overrides %s", describe(len(closed)+openRecs, len(shifts)))
		}
		status.Status = puantaj.StatusLeave
		status.LeaveType = leaves[0].LeaveType
		return status, warnings
	}

	for _, s := range shifts {
		if s.ShiftType == shift.ShiftTypeOnLeave {
			warn(puantaj.WarnOnLeaveShiftNoLeave, "on-leave shift %s has no approved leave", s.SourceID)
			break
		}
	}

	switch {
	case hours > 0:
		if offDay {
			warn(puantaj.WarnAttendanceOnOffDay, "worked %.2f hours on a rest day", hours)
		}
		status.Status = puantaj.StatusWorked
		status.Hours = hours
		return status, warnings
	case len(closed) > 0:
		warn(puantaj.WarnZeroHourAttendance, "closed attendance with zero hours")
	}

	switch {
	case offDay:
		status.Status = puantaj.StatusOffDay
	case len(shifts) > 0:
		status.Status = puantaj.StatusAbsent
		status.AbsenceReason = puantaj.AbsenceNoShow
	default:
		status.Status = puantaj.StatusAbsent
		status.AbsenceReason = puantaj.AbsenceUnscheduled
	}
	return status, warnings
}

func describe(attendanceCount, shiftCount int) string {
	var parts []string
	if attendanceCount > 0 {
		parts = append(parts, fmt.Sprintf("%d attendance record(s)", attendanceCount))
	}
	if shiftCount > 0 {
		parts = append(parts, fmt.Sprintf("%d shift(s)", shiftCount))
	}
	return strings.Join(parts, " and ")
}
