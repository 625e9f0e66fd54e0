package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "ANNUAL"
	LeaveTypeSick      LeaveType = "SICK"
	LeaveTypePersonal  LeaveType = "PERSONAL"
	LeaveTypeMaternity LeaveType = "MATERNITY"
	LeaveTypePaternity LeaveType = "PATERNITY"
	LeaveTypeUnpaid    LeaveType = "UNPAID"
	LeaveTypeEmergency LeaveType = "EMERGENCY"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal, LeaveTypeMaternity,
		LeaveTypePaternity, LeaveTypeUnpaid, LeaveTypeEmergency:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest is one leave application. EndDate is inclusive and
// RequestedDays is the business-day length of the range.
type LeaveRequest struct {
	ID              string
	StaffID         string
	StartDate       time.Time
	EndDate         time.Time
	LeaveType       LeaveType
	Status          Status
	Reason          *string
	RejectionReason *string
	RequestedDays   int
	RequestDate     time.Time
	ApprovalDate    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Blocks reports whether the request reserves its range against new requests.
func (r LeaveRequest) Blocks() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}
