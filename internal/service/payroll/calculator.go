package payroll

import "github.com/shopspring/decimal"

// ComputeNetPay returns salary + bonus - deductions exactly. A negative result is kept
// as is and flagged by the caller.
func ComputeNetPay(salary, bonus, deductions decimal.Decimal) decimal.Decimal {
	return salary.Add(bonus).Sub(deductions)
}
