package fixtures

import (
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/domain/ledger"
	"github.com/retail-erp/workforce-backend-go/internal/domain/shift"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT SHIFT TEMPLATES
// ==========================================

// ShiftTemplate describes a recurring shift by its local start time and length.
type ShiftTemplate struct {
	Key      string
	Name     string
	Hour     int
	Minute   int
	Duration time.Duration
	Type     shift.ShiftType
}

// On places the template on date in loc. Templates that run past midnight end on the
// following calendar day.
func (t ShiftTemplate) On(staffID string, date period.Date, loc *time.Location) shift.ShiftAssignment {
	start := time.Date(date.Year, date.Month, date.Day, t.Hour, t.Minute, 0, 0, loc)
	return shift.ShiftAssignment{
		StaffID: staffID,
		Start:   start,
		End:     start.Add(t.Duration),
		Type:    t.Type,
	}
}

var (
	MorningShift = ShiftTemplate{Key: "morning", Name: "Sabah", Hour: 9, Duration: 9 * time.Hour, Type: shift.ShiftTypeNormal}
	EveningShift = ShiftTemplate{Key: "evening", Name: "Akşam", Hour: 14, Duration: 8 * time.Hour, Type: shift.ShiftTypeNormal}
	NightShift   = ShiftTemplate{Key: "night", Name: "Gece", Hour: 22, Duration: 8 * time.Hour, Type: shift.ShiftTypeNormal}
)

// GetDefaultShiftTemplates returns the store rotation used when planning a new branch
func GetDefaultShiftTemplates() []ShiftTemplate {
	return []ShiftTemplate{MorningShift, EveningShift, NightShift}
}

// ShiftTemplateByKey looks a default template up by its key ("morning", "evening", "night").
func ShiftTemplateByKey(key string) (ShiftTemplate, bool) {
	for _, t := range GetDefaultShiftTemplates() {
		if t.Key == key {
			return t, true
		}
	}
	return ShiftTemplate{}, false
}

// WeekPlan assigns template to the seven days starting at from, skipping days for which
// isOff reports true.
func WeekPlan(staffID string, template ShiftTemplate, from period.Date, isOff func(period.Date) bool, loc *time.Location) []shift.ShiftAssignment {
	var plan []shift.ShiftAssignment
	for i := 0; i < 7; i++ {
		day := from.AddDays(i)
		if isOff != nil && isOff(day) {
			continue
		}
		plan = append(plan, template.On(staffID, day, loc))
	}
	return plan
}

// ==========================================
// DEFAULT LEDGER ACCOUNTS
// ==========================================

// GetDefaultLedgerAccounts returns the cash and bank accounts payroll is paid from.
func GetDefaultLedgerAccounts(companyID string) []ledger.Account {
	return []ledger.Account{
		{CompanyID: companyID, Name: "Kasa", Balance: decimal.Zero},
		{CompanyID: companyID, Name: "Banka", Balance: decimal.Zero},
	}
}
