package target

import (
	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/domain/target"
)

const WarningProgressOver100 = "progress_over_100"

var hundred = decimal.NewFromInt(100)

// Evaluation is a read-only projection of a target; CurrentValue is never changed here.
type Evaluation struct {
	Progress         int64
	ProgressBarWidth int64
	EstimatedBonus   decimal.Decimal
	Warnings         []string
}

// Evaluate computes progress as round(current / target * 100), unclamped, and the
// estimated bonus. Commission only applies to turnover targets.
func Evaluate(t target.PerformanceTarget) Evaluation {
	var progress int64
	if t.TargetValue.IsPositive() {
		progress = t.CurrentValue.Mul(hundred).Div(t.TargetValue).Round(0).IntPart()
	}

	bonus := t.BonusAmount
	if t.Type == target.TargetTypeTurnover {
		bonus = bonus.Add(t.CurrentValue.Mul(t.CommissionRate).Div(hundred))
	}

	eval := Evaluation{
		Progress:         progress,
		ProgressBarWidth: ProgressBarWidth(progress),
		EstimatedBonus:   bonus,
	}
	if progress > 100 {
		eval.Warnings = append(eval.Warnings, WarningProgressOver100)
	}
	return eval
}

// ProgressBarWidth clamps progress to [0, 100].
func ProgressBarWidth(progress int64) int64 {
	return max(0, min(progress, 100))
}
