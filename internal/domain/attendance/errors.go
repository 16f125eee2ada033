package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out state errors
	ErrAlreadyCheckedIn = errors.New("staff already has an open attendance record")
	ErrNotCheckedIn     = errors.New("staff has no open attendance record")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrCheckOutBeforeStart = errors.New("check-out cannot be before check-in")
)
