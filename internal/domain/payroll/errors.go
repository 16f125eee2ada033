package payroll

import "errors"

var (
	ErrPayrollRecordNotFound    = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyPaid = errors.New("payroll record already paid, cannot modify")
	ErrPayrollRecordExists      = errors.New("payroll record already exists for this period")
)
