package puantaj

import (
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

type FactKind string

const (
	FactAttendance FactKind = "ATTENDANCE"
	FactShift      FactKind = "SHIFT"
	FactLeave      FactKind = "LEAVE"
)

// Fact is one source record projected onto one calendar day.
type Fact struct {
	Kind     FactKind
	Date     period.Date
	SourceID string

	// ATTENDANCE
	Hours float64
	Open  bool

	// SHIFT
	ShiftType  shift.ShiftType
	ShiftStart time.Time

	// LEAVE
	LeaveType leave.LeaveType
}

type Status string

const (
	StatusWorked Status = "Worked"
	StatusLeave  Status = "Leave"
	StatusOffDay Status = "OffDay"
	StatusAbsent Status = "Absent"
)

// AbsenceReason separates a missed shift from a day nobody planned.
type AbsenceReason string

const (
	AbsenceNone        AbsenceReason = ""
	AbsenceNoShow      AbsenceReason = "no_show"
	AbsenceUnscheduled AbsenceReason = "unscheduled"
)

// DayStatus is the resolved state of one staff member on one date. It is derived on
// demand and never stored.
type DayStatus struct {
	StaffID       string          `json:"staff_id"`
	Date          period.Date     `json:"date"`
	Status        Status          `json:"status"`
	Hours         float64         `json:"hours"`
	AbsenceReason AbsenceReason   `json:"absence_reason,omitempty"`
	ShiftType     shift.ShiftType `json:"shift_type,omitempty"`
	LeaveType     leave.LeaveType `json:"leave_type,omitempty"`
}

// Warning codes
const (
	WarnMultipleAttendance  = "multiple_attendance"
	WarnOpenAttendance      = "open_attendance"
	WarnSuppressedByLeave   = "suppressed_by_leave"
	WarnAttendanceOnOffDay  = "attendance_on_off_day"
	WarnOnLeaveShiftNoLeave = "on_leave_shift_without_leave"
	WarnMultipleShifts      = "multiple_shifts"
	WarnZeroHourAttendance  = "zero_hour_attendance"
)

// Warning flags a day that was resolved by precedence but deserves human review.
type Warning struct {
	Code    string       `json:"code"`
	StaffID string       `json:"staff_id"`
	Date    *period.Date `json:"date,omitempty"`
	Message string       `json:"message"`
}

type MonthlySummary struct {
	StaffID         string      `json:"staff_id"`
	StaffName       string      `json:"staff_name"`
	Branch          string      `json:"branch"`
	Period          string      `json:"period"`
	Days            []DayStatus `json:"days"`
	WorkedDays      int         `json:"worked_days"`
	WorkedHours     float64     `json:"worked_hours"`
	LeaveDays       int         `json:"leave_days"`
	AbsentDays      int         `json:"absent_days"`
	OffDays         int         `json:"off_days"`
	UnscheduledDays int         `json:"unscheduled_days"`
	Warnings        []Warning   `json:"warnings,omitempty"`
}

// Snapshot is the raw source data one aggregation run reads. Records of other staff are
// tolerated and filtered out.
type Snapshot struct {
	Attendance []attendance.AttendanceRecord
	Shifts     []shift.ShiftAssignment
	Leaves     []leave.LeaveRequest
}

// OffDayPolicy holds the weekly rest days, optionally overridden per branch.
type OffDayPolicy struct {
	Default []time.Weekday
	Branch  map[string][]time.Weekday
}

func (p OffDayPolicy) IsOffDay(branch string, d period.Date) bool {
	days := p.Default
	if override, ok := p.Branch[branch]; ok {
		days = override
	}
	wd := d.Weekday()
	for _, day := range days {
		if day == wd {
			return true
		}
	}
	return false
}
