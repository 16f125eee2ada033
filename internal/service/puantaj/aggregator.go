package puantaj

import (
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/attendance"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/domain/staff"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

// BuildMonth resolves every calendar date of p for one staff member and rolls up the
// counts. It is pure: identical inputs always yield an identical summary.
func BuildMonth(member staff.Staff, p period.Period, snap puantaj.Snapshot, policy puantaj.OffDayPolicy, loc *time.Location) puantaj.MonthlySummary {
	facts := Normalize(member.ID, p, snap, loc)

	summary := puantaj.MonthlySummary{
		StaffID:   member.ID,
		StaffName: member.Name,
		Branch:    member.Branch,
		Period:    p.String(),
		Days:      make([]puantaj.DayStatus, 0, p.Days()),
	}

	var hours float64
	for _, date := range p.Dates() {
		day, warnings := Resolve(member.ID, date, facts[date], policy.IsOffDay(member.Branch, date))
		summary.Days = append(summary.Days, day)
		summary.Warnings = append(summary.Warnings, warnings...)

		switch day.Status {
		case puantaj.StatusWorked:
			summary.WorkedDays++
			hours += day.Hours
		case puantaj.StatusLeave:
			summary.LeaveDays++
		case puantaj.StatusOffDay:
			summary.OffDays++
		case puantaj.StatusAbsent:
			summary.AbsentDays++
			if day.AbsenceReason == puantaj.AbsenceUnscheduled {
				summary.UnscheduledDays++
			}
		}
	}
	summary.WorkedHours = attendance.RoundHours(hours)

	return summary
}
