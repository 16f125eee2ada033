package attendance

import (
	"math"
	"time"
)

// AttendanceRecord is one check-in/check-out pair. CheckOut is nil while the staff
// member is still clocked in.
type AttendanceRecord struct {
	ID           string
	CompanyID    string
	StaffID      string
	Date         time.Time // business calendar day of the check-in
	CheckIn      time.Time
	CheckOut     *time.Time
	LocationIn   *string
	LocationOut  *string
	WorkingHours *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	StaffName *string
}

func (r AttendanceRecord) IsOpen() bool {
	return r.CheckOut == nil
}

// Hours returns the closed duration in hours rounded to two decimals, 0 while open.
func (r AttendanceRecord) Hours() float64 {
	if r.CheckOut == nil {
		return 0
	}
	return RoundHours(r.CheckOut.Sub(r.CheckIn).Hours())
}

func RoundHours(h float64) float64 {
	if h <= 0 {
		return 0
	}
	return math.Round(h*100) / 100
}

type EventType string

const (
	EventCheckIn  EventType = "CHECK_IN"
	EventCheckOut EventType = "CHECK_OUT"
)

var EventTypeValues = []string{
	string(EventCheckIn),
	string(EventCheckOut),
}
