package puantaj

import (
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/leave"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
)

// Normalize projects one staff member's source records onto the calendar days of p.
// Dates are evaluated in loc; facts outside p and records of other staff are dropped.
func Normalize(staffID string, p period.Period, snap puantaj.Snapshot, loc *time.Location) map[period.Date][]puantaj.Fact {
	facts := make(map[period.Date][]puantaj.Fact)
	first := period.Date{Year: p.Year, Month: p.Month, Day: 1}
	last := period.Date{Year: p.Year, Month: p.Month, Day: p.Days()}

	// spread appends one copy of f for every day of [from, to] inside the period
	spread := func(f puantaj.Fact, from, to period.Date) {
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		for d := from; !d.After(to); d = d.AddDays(1) {
			f.Date = d
			facts[d] = append(facts[d], f)
		}
	}

	for _, rec := range snap.Attendance {
		if rec.StaffID != staffID {
			continue
		}
		// hours stay on the check-in day even when the record crosses midnight
		day := period.DateOf(rec.CheckIn, loc)
		if !p.Contains(day) {
			continue
		}
		facts[day] = append(facts[day], puantaj.Fact{
			Kind:     puantaj.FactAttendance,
			Date:     day,
			SourceID: rec.ID,
			Hours:    rec.Hours(),
			Open:     rec.IsOpen(),
		})
	}

	for _, s := range snap.Shifts {
		if s.StaffID != staffID {
			continue
		}
		from := period.DateOf(s.Start, loc)
		to := from
		if s.End.After(s.Start) {
			// an end at exactly midnight does not touch the next day
			to = period.DateOf(s.End.Add(-time.Nanosecond), loc)
		}
		spread(puantaj.Fact{
			Kind:       puantaj.FactShift,
			SourceID:   s.ID,
			ShiftType:  s.Type,
			ShiftStart: s.Start,
		}, from, to)
	}

	for _, l := range snap.Leaves {
		if l.StaffID != staffID || l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		spread(puantaj.Fact{
			Kind:      puantaj.FactLeave,
			SourceID:  l.ID,
			LeaveType: l.Type,
		}, period.DateFromTime(l.StartDate), period.DateFromTime(l.EndDate))
	}

	return facts
}
