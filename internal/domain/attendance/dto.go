package attendance

import (
	"strings"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordEventRequest struct {
	StaffID  string `json:"staff_id"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	if !validator.IsOneOf(r.Type, EventTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: CHECK_IN, CHECK_OUT",
		})
	}

	if len(r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CorrectAttendanceRequest lets an admin fix a wrong record, e.g. a forgotten check-out.
type CorrectAttendanceRequest struct {
	ID          string  `json:"-"`
	CheckIn     *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut    *string `json:"check_out,omitempty"` // RFC3339
	LocationIn  *string `json:"location_in,omitempty"`
	LocationOut *string `json:"location_out,omitempty"`

	ParsedCheckIn  *time.Time `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *CorrectAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.CheckIn != nil {
		t, ok := validator.ParseDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be an RFC3339 timestamp"})
		} else {
			r.ParsedCheckIn = &t
		}
	}

	if r.CheckOut != nil {
		t, ok := validator.ParseDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be an RFC3339 timestamp"})
		} else {
			r.ParsedCheckOut = &t
		}
	}

	if r.CheckIn == nil && r.CheckOut == nil && r.LocationIn == nil && r.LocationOut == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	StaffID      string   `json:"staff_id"`
	StaffName    string   `json:"staff_name,omitempty"`
	Date         string   `json:"date"`
	CheckIn      string   `json:"check_in"`
	CheckOut     *string  `json:"check_out,omitempty"`
	LocationIn   *string  `json:"location_in,omitempty"`
	LocationOut  *string  `json:"location_out,omitempty"`
	WorkingHours *float64 `json:"working_hours,omitempty"`
	IsOpen       bool     `json:"is_open"`
}

func ToResponse(r AttendanceRecord) AttendanceResponse {
	var checkOut *string
	if r.CheckOut != nil {
		s := r.CheckOut.Format(time.RFC3339)
		checkOut = &s
	}

	staffName := ""
	if r.StaffName != nil {
		staffName = *r.StaffName
	}

	return AttendanceResponse{
		ID:           r.ID,
		StaffID:      r.StaffID,
		StaffName:    staffName,
		Date:         r.Date.Format("2006-01-02"),
		CheckIn:      r.CheckIn.Format(time.RFC3339),
		CheckOut:     checkOut,
		LocationIn:   r.LocationIn,
		LocationOut:  r.LocationOut,
		WorkingHours: r.WorkingHours,
		IsOpen:       r.IsOpen(),
	}
}
