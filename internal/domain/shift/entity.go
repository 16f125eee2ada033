package shift

import "time"

type ShiftType string

const (
	ShiftTypeNormal   ShiftType = "normal"
	ShiftTypeOvertime ShiftType = "overtime"
	ShiftTypeOnLeave  ShiftType = "on_leave"
)

var ShiftTypeValues = []string{
	string(ShiftTypeNormal),
	string(ShiftTypeOvertime),
	string(ShiftTypeOnLeave),
}

// ShiftAssignment is a planned working interval for one staff member. It is immutable
// once created; corrections are made by deleting and re-creating.
type ShiftAssignment struct {
	ID        string
	CompanyID string
	StaffID   string
	Start     time.Time
	End       time.Time
	Type      ShiftType
	Branch    string
	CreatedAt time.Time

	// Joined fields
	StaffName *string
}
