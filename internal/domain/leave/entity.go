package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual        LeaveType = "annual"
	LeaveTypeMedicalReport LeaveType = "medical_report"
	LeaveTypeUnpaid        LeaveType = "unpaid"
)

var LeaveTypeValues = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeMedicalReport),
	string(LeaveTypeUnpaid),
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest covers whole calendar days; StartDate and EndDate are inclusive and
// carry no time of day.
type LeaveRequest struct {
	ID         string
	CompanyID  string
	StaffID    string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Status     LeaveRequestStatus
	Reason     *string
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships (for responses)
	StaffName *string
}

// Days is the inclusive calendar day count.
func (l LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

func (l LeaveRequest) IsApproved() bool {
	return l.Status == LeaveRequestStatusApproved
}
