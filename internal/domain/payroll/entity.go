package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending PayrollStatus = "pending"
	PayrollStatusPaid    PayrollStatus = "paid"
)

// PayrollRecord is the pay of one staff member for one period (YYYY-MM). Numbers may be
// recomputed while Pending; the Pending to Paid transition happens exactly once.
type PayrollRecord struct {
	ID         string
	CompanyID  string
	StaffID    string
	Period     string
	Salary     decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	NetPay     decimal.Decimal
	Status     PayrollStatus
	PaidAt     *time.Time
	PaidBy     *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	StaffName *string
	Branch    *string
}

func (r PayrollRecord) IsPaid() bool {
	return r.Status == PayrollStatusPaid
}

// SameAmounts reports whether salary, bonus and deductions match numerically.
func (r PayrollRecord) SameAmounts(salary, bonus, deductions decimal.Decimal) bool {
	return r.Salary.Equal(salary) && r.Bonus.Equal(bonus) && r.Deductions.Equal(deductions)
}
