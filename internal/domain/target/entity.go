package target

import (
	"time"

	"github.com/shopspring/decimal"
)

type TargetType string

const (
	TargetTypeTurnover   TargetType = "turnover"
	TargetTypeVisitCount TargetType = "visit_count"
)

var TargetTypeValues = []string{
	string(TargetTypeTurnover),
	string(TargetTypeVisitCount),
}

const (
	DefaultPeriod = "MONTHLY"
	StatusActive  = "ACTIVE"
)

// PerformanceTarget is a sales or visit goal for one staff member. CurrentValue is
// written only by the sales attribution feed.
type PerformanceTarget struct {
	ID             string
	CompanyID      string
	StaffID        string
	Type           TargetType
	TargetValue    decimal.Decimal
	CurrentValue   decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	Period         string
	CommissionRate decimal.Decimal // percent
	BonusAmount    decimal.Decimal
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	StaffName *string
}
