package shift

import (
	"strings"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	StaffID string `json:"staff_id"`
	Start   string `json:"start"` // RFC3339
	End     string `json:"end"`   // RFC3339
	Type    string `json:"type"`
	Branch  string `json:"branch"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}

	start, startOK := validator.ParseDateTime(r.Start)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be an RFC3339 timestamp"})
	}
	end, endOK := validator.ParseDateTime(r.End)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be an RFC3339 timestamp"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must not be before start"})
	}

	if r.Type == "" {
		r.Type = string(ShiftTypeNormal)
	}
	r.Type = strings.ToLower(r.Type)
	if !validator.IsOneOf(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ParsedStart = start
	r.ParsedEnd = end
	return nil
}

// PlanWeekRequest fills seven days from WeekStart with one of the default shift templates.
type PlanWeekRequest struct {
	StaffID   string `json:"staff_id"`
	Template  string `json:"template"`   // morning | evening | night
	WeekStart string `json:"week_start"` // YYYY-MM-DD

	ParsedWeekStart period.Date `json:"-"`
}

func (r *PlanWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}

	r.Template = strings.ToLower(strings.TrimSpace(r.Template))
	if r.Template == "" {
		errs = append(errs, validator.ValidationError{Field: "template", Message: "template is required"})
	}

	start, err := period.ParseDate(r.WeekStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "week_start", Message: "week_start must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ParsedWeekStart = start
	return nil
}

type ShiftFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, inclusive

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

// Validate parses the inclusive date range into [From, To) in loc.
func (f *ShiftFilter) Validate(loc *time.Location) error {
	var errs validator.ValidationErrors

	start, startOK := validator.ParseDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.ParseDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}

	f.From = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	f.To = time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, loc)
	return nil
}

type ShiftResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Type      string `json:"type"`
	Branch    string `json:"branch"`
}

func ToResponse(s ShiftAssignment) ShiftResponse {
	staffName := ""
	if s.StaffName != nil {
		staffName = *s.StaffName
	}
	return ShiftResponse{
		ID:        s.ID,
		StaffID:   s.StaffID,
		StaffName: staffName,
		Start:     s.Start.Format(time.RFC3339),
		End:       s.End.Format(time.RFC3339),
		Type:      string(s.Type),
		Branch:    s.Branch,
	}
}
