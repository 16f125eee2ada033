package target

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

type CreateTargetRequest struct {
	StaffID        string           `json:"staff_id"`
	Type           string           `json:"type"`
	TargetValue    decimal.Decimal  `json:"target_value"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	Period         string           `json:"period,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	BonusAmount    *decimal.Decimal `json:"bonus_amount,omitempty"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *CreateTargetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if !validator.IsOneOf(r.Type, TargetTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TargetTypeValues, ", "),
		})
	}

	if !validator.IsPositive(r.TargetValue) {
		errs = append(errs, validator.ValidationError{Field: "target_value", Message: "target_value must be greater than 0"})
	}

	start, startOK := validator.ParseDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.ParseDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if r.CommissionRate != nil && r.CommissionRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "commission_rate", Message: "commission_rate must not be negative"})
	}
	if r.BonusAmount != nil && r.BonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_amount", Message: "bonus_amount must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}

	if r.Period == "" {
		r.Period = DefaultPeriod
	}
	r.ParsedStart = start
	r.ParsedEnd = end
	return nil
}

type TargetResponse struct {
	ID               string          `json:"id"`
	StaffID          string          `json:"staff_id"`
	StaffName        string          `json:"staff_name,omitempty"`
	Type             string          `json:"type"`
	TargetValue      decimal.Decimal `json:"target_value"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Period           string          `json:"period"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	Status           string          `json:"status"`
	Progress         int64           `json:"progress"`
	ProgressBarWidth int64           `json:"progress_bar_width"`
	EstimatedBonus   decimal.Decimal `json:"estimated_bonus"`
	Warnings         []string        `json:"warnings,omitempty"`
}
