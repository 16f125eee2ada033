package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

const WarningNegativeNetPay = "negative_net_pay"

type UpsertPayrollRequest struct {
	StaffID    string           `json:"staff_id"`
	Period     string           `json:"period"`           // YYYY-MM
	Salary     *decimal.Decimal `json:"salary,omitempty"` // defaults to the staff base salary
	Bonus      decimal.Decimal  `json:"bonus"`
	Deductions decimal.Decimal  `json:"deductions"`
	Notes      *string          `json:"notes,omitempty"`
}

func (r *UpsertPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period must be in YYYY-MM format"})
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	ID        string  `json:"-"`
	AccountID *string `json:"account_id,omitempty"` // defaults to PAYROLL_EXPENSE_ACCOUNT_ID
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.AccountID != nil && !validator.IsValidUUID(*r.AccountID) {
		errs = append(errs, validator.ValidationError{Field: "account_id", Message: "account_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollRequest struct {
	Period string `json:"period"`
}

func (r *GeneratePayrollRequest) Validate() error {
	if !validator.IsValidPeriod(r.Period) {
		return validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	return nil
}

type PayrollFilter struct {
	Period  *string
	StaffID *string
	Status  *string
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Period != nil && !validator.IsValidPeriod(*f.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period must be in YYYY-MM format"})
	}
	if f.Status != nil && *f.Status != string(PayrollStatusPending) && *f.Status != string(PayrollStatusPaid) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: pending, paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID         string          `json:"id"`
	StaffID    string          `json:"staff_id"`
	StaffName  string          `json:"staff_name,omitempty"`
	Branch     string          `json:"branch,omitempty"`
	Period     string          `json:"period"`
	Salary     decimal.Decimal `json:"salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
	Status     string          `json:"status"`
	PaidAt     *string         `json:"paid_at,omitempty"`
	PaidBy     *string         `json:"paid_by,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

type ListPayrollResponse struct {
	Records     []PayrollResponse `json:"records"`
	Period      string            `json:"period,omitempty"`
	TotalNetPay decimal.Decimal   `json:"total_net_pay"`
	StaffCount  int               `json:"staff_count"`
	PaidCount   int               `json:"paid_count"`
}

func ToResponse(r PayrollRecord) PayrollResponse {
	var paidAt *string
	if r.PaidAt != nil {
		s := r.PaidAt.Format(time.RFC3339)
		paidAt = &s
	}
	resp := PayrollResponse{
		ID:         r.ID,
		StaffID:    r.StaffID,
		Period:     r.Period,
		Salary:     r.Salary,
		Bonus:      r.Bonus,
		Deductions: r.Deductions,
		NetPay:     r.NetPay,
		Status:     string(r.Status),
		PaidAt:     paidAt,
		PaidBy:     r.PaidBy,
		Notes:      r.Notes,
	}
	if r.StaffName != nil {
		resp.StaffName = *r.StaffName
	}
	if r.Branch != nil {
		resp.Branch = *r.Branch
	}
	if r.NetPay.IsNegative() {
		resp.Warnings = append(resp.Warnings, WarningNegativeNetPay)
	}
	return resp
}
