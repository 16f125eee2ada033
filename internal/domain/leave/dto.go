package leave

import (
	"strings"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	StaffID   string  `json:"staff_id"`
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	Reason    *string `json:"reason,omitempty"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if !validator.IsOneOf(r.Type, LeaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(LeaveTypeValues, ", "),
		})
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

	if len(errs) > 0 {
		return errs
	}

	r.ParsedStart = start
	r.ParsedEnd = end
	return nil
}

type UpdateLeaveStatusRequest struct {
	ID         string `json:"-"`
	Status     string `json:"status"`
	ApprovedBy string `json:"approved_by"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status != string(LeaveRequestStatusApproved) && r.Status != string(LeaveRequestStatusRejected) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: approved, rejected"})
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "approved_by", Message: "approved_by is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name,omitempty"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Days       int     `json:"days"`
	Status     string  `json:"status"`
	Reason     *string `json:"reason,omitempty"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
}

func ToResponse(l LeaveRequest) LeaveResponse {
	var approvedAt *string
	if l.ApprovedAt != nil {
		s := l.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	staffName := ""
	if l.StaffName != nil {
		staffName = *l.StaffName
	}
	return LeaveResponse{
		ID:         l.ID,
		StaffID:    l.StaffID,
		StaffName:  staffName,
		Type:       string(l.Type),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Days:       l.Days(),
		Status:     string(l.Status),
		Reason:     l.Reason,
		ApprovedBy: l.ApprovedBy,
		ApprovedAt: approvedAt,
	}
}
