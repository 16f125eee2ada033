package puantaj

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

var trt = time.FixedZone("TRT", 3*60*60)

var sundayOff = puantaj.OffDayPolicy{Default: []time.Weekday{time.Sunday}}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.February, day, hour, minute, 0, 0, trt)
}

func feb(day int) period.Date {
	return period.Date{Year: 2026, Month: time.February, Day: day}
}

func closedRecord(id, staffID string, in, out time.Time) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{ID: id, StaffID: staffID, Date: in, CheckIn: in, CheckOut: &out}
}

func shiftOn(id, staffID string, start, end time.Time, typ shift.ShiftType) shift.ShiftAssignment {
	return shift.ShiftAssignment{ID: id, StaffID: staffID, Start: start, End: end, Type: typ}
}

func leaveFor(id, staffID string, from, to int, status leave.LeaveRequestStatus) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:        id,
		StaffID:   staffID,
		Type:      leave.LeaveTypeAnnual,
		StartDate: time.Date(2026, time.February, from, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.February, to, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

var staffX = staff.Staff{ID: "x", Name: "Ayşe Yılmaz", Branch: "Merkez", Salary: decimal.NewFromInt(17002), IsActive: true}

var feb2026 = period.Period{Year: 2026, Month: time.February}

func dayOf(t *testing.T, summary puantaj.MonthlySummary, day int) puantaj.DayStatus {
	t.Helper()
	require.GreaterOrEqual(t, len(summary.Days), day)
	d := summary.Days[day-1]
	require.Equal(t, feb(day), d.Date)
	return d
}

func TestBuildMonth_ScenarioA_Worked(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts:     []shift.ShiftAssignment{shiftOn("s1", "x", at(10, 9, 0), at(10, 18, 0), shift.ShiftTypeNormal)},
		Attendance: []attendance.AttendanceRecord{closedRecord("a1", "x", at(10, 9, 5), at(10, 18, 10))},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	d := dayOf(t, summary, 10)
	assert.Equal(t, puantaj.StatusWorked, d.Status)
	assert.Equal(t, 9.08, d.Hours)
	assert.Equal(t, shift.ShiftTypeNormal, d.ShiftType)
	assert.Equal(t, 1, summary.WorkedDays)
	assert.Equal(t, 9.08, summary.WorkedHours)
	assert.Empty(t, summary.Warnings)
}

func TestBuildMonth_ScenarioB_LeaveWins(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts: []shift.ShiftAssignment{shiftOn("s1", "x", at(10, 9, 0), at(10, 18, 0), shift.ShiftTypeNormal)},
		Leaves: []leave.LeaveRequest{leaveFor("l1", "x", 10, 10, leave.LeaveRequestStatusApproved)},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	d := dayOf(t, summary, 10)
	assert.Equal(t, puantaj.StatusLeave, d.Status)
	assert.Zero(t, d.Hours)
	assert.Equal(t, leave.LeaveTypeAnnual, d.LeaveType)
	assert.Equal(t, 1, summary.LeaveDays)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, puantaj.WarnSuppressedByLeave, summary.Warnings[0].Code)
}

func TestBuildMonth_ScenarioC_NoShow(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts: []shift.ShiftAssignment{shiftOn("s1", "x", at(11, 9, 0), at(11, 18, 0), shift.ShiftTypeNormal)},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	d := dayOf(t, summary, 11)
	assert.Equal(t, puantaj.StatusAbsent, d.Status)
	assert.Equal(t, puantaj.AbsenceNoShow, d.AbsenceReason)
}

func TestBuildMonth_EmptyMonth(t *testing.T) {
	summary := BuildMonth(staffX, feb2026, puantaj.Snapshot{}, sundayOff, trt)

	// February 2026 has four Sundays: 1, 8, 15, 22
	assert.Len(t, summary.Days, 28)
	assert.Equal(t, 4, summary.OffDays)
	assert.Equal(t, 24, summary.AbsentDays)
	assert.Equal(t, 24, summary.UnscheduledDays)
	assert.Equal(t, puantaj.StatusOffDay, dayOf(t, summary, 1).Status)
	assert.Equal(t, puantaj.AbsenceUnscheduled, dayOf(t, summary, 2).AbsenceReason)
}

func TestBuildMonth_OneStatusPerDay(t *testing.T) {
	periods := []period.Period{
		{Year: 2024, Month: time.February},
		{Year: 2025, Month: time.February},
		{Year: 2026, Month: time.April},
		{Year: 2026, Month: time.December},
	}
	want := []int{29, 28, 30, 31}

	for i, p := range periods {
		t.Run(p.String(), func(t *testing.T) {
			summary := BuildMonth(staffX, p, puantaj.Snapshot{}, sundayOff, trt)
			require.Len(t, summary.Days, want[i])
			for j, d := range summary.Days {
				assert.Equal(t, j+1, d.Date.Day)
				assert.Equal(t, p.Month, d.Date.Month)
			}
			total := summary.WorkedDays + summary.LeaveDays + summary.OffDays + summary.AbsentDays
			assert.Equal(t, want[i], total)
		})
	}
}

func TestBuildMonth_ApprovedLeaveAlwaysWins(t *testing.T) {
	snap := puantaj.Snapshot{
		Attendance: []attendance.AttendanceRecord{
			closedRecord("a1", "x", at(3, 9, 0), at(3, 17, 0)),
			closedRecord("a2", "x", at(4, 9, 0), at(4, 17, 0)),
		},
		Shifts: []shift.ShiftAssignment{shiftOn("s1", "x", at(5, 9, 0), at(5, 17, 0), shift.ShiftTypeOvertime)},
		Leaves: []leave.LeaveRequest{leaveFor("l1", "x", 1, 7, leave.LeaveRequestStatusApproved)},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	for day := 1; day <= 7; day++ {
		assert.Equal(t, puantaj.StatusLeave, dayOf(t, summary, day).Status, "day %d", day)
	}
	assert.Equal(t, 7, summary.LeaveDays)
	assert.Zero(t, summary.WorkedDays)
}

func TestBuildMonth_PendingAndRejectedLeaveIgnored(t *testing.T) {
	snap := puantaj.Snapshot{
		Leaves: []leave.LeaveRequest{
			leaveFor("l1", "x", 10, 12, leave.LeaveRequestStatusPending),
			leaveFor("l2", "x", 16, 17, leave.LeaveRequestStatusRejected),
		},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	assert.Zero(t, summary.LeaveDays)
	assert.Equal(t, puantaj.StatusAbsent, dayOf(t, summary, 10).Status)
}

func TestBuildMonth_LeaveClippedToPeriod(t *testing.T) {
	l := leaveFor("l1", "x", 1, 1, leave.LeaveRequestStatusApproved)
	l.StartDate = time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC)
	l.EndDate = time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)

	summary := BuildMonth(staffX, feb2026, puantaj.Snapshot{Leaves: []leave.LeaveRequest{l}}, sundayOff, trt)

	assert.Equal(t, 3, summary.LeaveDays)
	assert.Equal(t, puantaj.StatusAbsent, dayOf(t, summary, 4).Status)
}

func TestBuildMonth_IgnoresOtherStaff(t *testing.T) {
	snap := puantaj.Snapshot{
		Attendance: []attendance.AttendanceRecord{closedRecord("a1", "y", at(10, 9, 0), at(10, 18, 0))},
		Leaves:     []leave.LeaveRequest{leaveFor("l1", "y", 11, 11, leave.LeaveRequestStatusApproved)},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	assert.Zero(t, summary.WorkedDays)
	assert.Zero(t, summary.LeaveDays)
}

func TestBuildMonth_Deterministic(t *testing.T) {
	snap := puantaj.Snapshot{
		Attendance: []attendance.AttendanceRecord{
			closedRecord("a2", "x", at(10, 13, 0), at(10, 17, 0)),
			closedRecord("a1", "x", at(10, 8, 0), at(10, 12, 0)),
		},
		Shifts: []shift.ShiftAssignment{
			shiftOn("s2", "x", at(12, 13, 0), at(12, 21, 0), shift.ShiftTypeOvertime),
			shiftOn("s1", "x", at(12, 9, 0), at(12, 17, 0), shift.ShiftTypeNormal),
		},
	}
	reversed := puantaj.Snapshot{
		Attendance: []attendance.AttendanceRecord{snap.Attendance[1], snap.Attendance[0]},
		Shifts:     []shift.ShiftAssignment{snap.Shifts[1], snap.Shifts[0]},
	}

	first := BuildMonth(staffX, feb2026, snap, sundayOff, trt)
	second := BuildMonth(staffX, feb2026, snap, sundayOff, trt)
	third := BuildMonth(staffX, feb2026, reversed, sundayOff, trt)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)

	d := dayOf(t, first, 10)
	assert.Equal(t, puantaj.StatusWorked, d.Status)
	assert.Equal(t, 8.0, d.Hours)
	assert.Equal(t, shift.ShiftTypeNormal, dayOf(t, first, 12).ShiftType)
}

func TestBuildMonth_NightShiftSpansTwoDays(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts:     []shift.ShiftAssignment{shiftOn("s1", "x", at(10, 22, 0), at(11, 6, 0), shift.ShiftTypeNormal)},
		Attendance: []attendance.AttendanceRecord{closedRecord("a1", "x", at(10, 22, 0), at(11, 6, 0))},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	// hours belong to the check-in day, the second shift day is a no-show
	assert.Equal(t, 8.0, dayOf(t, summary, 10).Hours)
	assert.Equal(t, puantaj.AbsenceNoShow, dayOf(t, summary, 11).AbsenceReason)
}

func TestBuildMonth_ShiftEndingAtMidnight(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts: []shift.ShiftAssignment{shiftOn("s1", "x", at(10, 16, 0), at(11, 0, 0), shift.ShiftTypeNormal)},
	}

	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	assert.Equal(t, puantaj.AbsenceNoShow, dayOf(t, summary, 10).AbsenceReason)
	assert.Equal(t, puantaj.AbsenceUnscheduled, dayOf(t, summary, 11).AbsenceReason)
}

func TestBuildMonth_BranchOffDayOverride(t *testing.T) {
	policy := puantaj.OffDayPolicy{
		Default: []time.Weekday{time.Sunday},
		Branch:  map[string][]time.Weekday{"Merkez": {time.Monday}},
	}

	summary := BuildMonth(staffX, feb2026, puantaj.Snapshot{}, policy, trt)

	assert.Equal(t, puantaj.StatusOffDay, dayOf(t, summary, 2).Status)
	assert.Equal(t, puantaj.StatusAbsent, dayOf(t, summary, 1).Status)
}

func TestResolve(t *testing.T) {
	date := feb(10)
	att := func(id string, hours float64) puantaj.Fact {
		return puantaj.Fact{Kind: puantaj.FactAttendance, Date: date, SourceID: id, Hours: hours}
	}
	open := puantaj.Fact{Kind: puantaj.FactAttendance, Date: date, SourceID: "open", Open: true}
	normal := puantaj.Fact{Kind: puantaj.FactShift, Date: date, SourceID: "s1", ShiftType: shift.ShiftTypeNormal, ShiftStart: at(10, 9, 0)}
	onLeave := puantaj.Fact{Kind: puantaj.FactShift, Date: date, SourceID: "s2", ShiftType: shift.ShiftTypeOnLeave, ShiftStart: at(10, 9, 0)}
	lv := puantaj.Fact{Kind: puantaj.FactLeave, Date: date, SourceID: "l1", LeaveType: leave.LeaveTypeMedicalReport}

	tests := []struct {
		name      string
		facts     []puantaj.Fact
		offDay    bool
		status    puantaj.Status
		hours     float64
		reason    puantaj.AbsenceReason
		warnCodes []string
	}{
		{"nothing", nil, false, puantaj.StatusAbsent, 0, puantaj.AbsenceUnscheduled, nil},
		{"off day", nil, true, puantaj.StatusOffDay, 0, puantaj.AbsenceNone, nil},
		{"worked", []puantaj.Fact{att("a1", 7.5)}, false, puantaj.StatusWorked, 7.5, puantaj.AbsenceNone, nil},
		{"worked on off day", []puantaj.Fact{att("a1", 4)}, true, puantaj.StatusWorked, 4, puantaj.AbsenceNone,
			[]string{puantaj.WarnAttendanceOnOffDay}},
		{"two closed records summed", []puantaj.Fact{att("a1", 4), att("a2", 3.25)}, false, puantaj.StatusWorked, 7.25, puantaj.AbsenceNone,
			[]string{puantaj.WarnMultipleAttendance}},
		{"open record only", []puantaj.Fact{open, normal}, false, puantaj.StatusAbsent, 0, puantaj.AbsenceNoShow,
			[]string{puantaj.WarnOpenAttendance}},
		{"zero hour record", []puantaj.Fact{att("a1", 0)}, false, puantaj.StatusAbsent, 0, puantaj.AbsenceUnscheduled,
			[]string{puantaj.WarnZeroHourAttendance}},
		{"shift on off day", []puantaj.Fact{normal}, true, puantaj.StatusOffDay, 0, puantaj.AbsenceNone, nil},
		{"on-leave shift without leave", []puantaj.Fact{onLeave}, false, puantaj.StatusAbsent, 0, puantaj.AbsenceNoShow,
			[]string{puantaj.WarnOnLeaveShiftNoLeave}},
		{"leave with on-leave shift", []puantaj.Fact{onLeave, lv}, false, puantaj.StatusLeave, 0, puantaj.AbsenceNone,
			[]string{puantaj.WarnSuppressedByLeave}},
		{"leave beats attendance", []puantaj.Fact{att("a1", 8), lv}, false, puantaj.StatusLeave, 0, puantaj.AbsenceNone,
			[]string{puantaj.WarnSuppressedByLeave}},
		{"two shifts", []puantaj.Fact{normal, onLeave, att("a1", 8)}, false, puantaj.StatusWorked, 8, puantaj.AbsenceNone,
			[]string{puantaj.WarnMultipleShifts, puantaj.WarnOnLeaveShiftNoLeave}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := Resolve("x", date, tt.facts, tt.offDay)

			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.hours, got.Hours)
			assert.Equal(t, tt.reason, got.AbsenceReason)
			assert.Equal(t, date, got.Date)

			var codes []string
			for _, w := range warnings {
				codes = append(codes, w.Code)
				assert.Equal(t, "x", w.StaffID)
			}
			assert.Equal(t, tt.warnCodes, codes)
		})
	}
}

func TestNormalize_ShiftFactPerDay(t *testing.T) {
	snap := puantaj.Snapshot{
		Shifts: []shift.ShiftAssignment{shiftOn("s1", "x", at(27, 20, 0), time.Date(2026, time.March, 2, 4, 0, 0, 0, trt), shift.ShiftTypeOvertime)},
	}

	facts := Normalize("x", feb2026, snap, trt)

	require.Len(t, facts, 2)
	for _, day := range []int{27, 28} {
		require.Len(t, facts[feb(day)], 1)
		assert.Equal(t, puantaj.FactShift, facts[feb(day)][0].Kind)
		assert.Equal(t, feb(day), facts[feb(day)][0].Date)
	}
}

func TestNormalize_AttendanceBucketedInBusinessZone(t *testing.T) {
	// 22:30 UTC on the 9th is 01:30 on the 10th in Istanbul
	in := time.Date(2026, time.February, 9, 22, 30, 0, 0, time.UTC)
	out := in.Add(6 * time.Hour)
	snap := puantaj.Snapshot{Attendance: []attendance.AttendanceRecord{closedRecord("a1", "x", in, out)}}

	facts := Normalize("x", feb2026, snap, trt)

	require.Len(t, facts[feb(10)], 1)
	assert.Equal(t, 6.0, facts[feb(10)][0].Hours)
	assert.Empty(t, facts[feb(9)])
}

func TestRenderWorkbook(t *testing.T) {
	snap := puantaj.Snapshot{
		Attendance: []attendance.AttendanceRecord{closedRecord("a1", "x", at(10, 9, 5), at(10, 18, 10))},
		Leaves:     []leave.LeaveRequest{leaveFor("l1", "x", 11, 11, leave.LeaveRequestStatusApproved)},
	}
	summary := BuildMonth(staffX, feb2026, snap, sundayOff, trt)

	data, err := RenderWorkbook("2026-02", []puantaj.MonthlySummary{summary})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := "Puantaj 2026-02"
	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", name)

	// day N sits in column N+2
	worked, _ := f.GetCellValue(sheet, cell(colName(11), 2))
	leaveCode, _ := f.GetCellValue(sheet, cell(colName(12), 2))
	sunday, _ := f.GetCellValue(sheet, cell(colName(2), 2))
	assert.Equal(t, "Ç 9.08", worked)
	assert.Equal(t, CodeLeave, leaveCode)
	assert.Equal(t, CodeOffDay, sunday)

	workedDays, _ := f.GetCellValue(sheet, cell(colName(2+28), 2))
	assert.Equal(t, "1", workedDays)
}
