package leave

import (
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	StaffID   string  `json:"-"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	LeaveType string  `json:"leave_type"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if r.LeaveType != "" && !LeaveType(strings.ToUpper(r.LeaveType)).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of: ANNUAL, SICK, PERSONAL, MATERNITY, PATERNITY, UNPAID, EMERGENCY"})
	}
	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be at most 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Type returns the requested leave type, ANNUAL when omitted.
func (r *CreateLeaveRequestRequest) Type() LeaveType {
	if validator.IsEmpty(r.LeaveType) {
		return LeaveTypeAnnual
	}
	return LeaveType(strings.ToUpper(strings.TrimSpace(r.LeaveType)))
}

type RejectLeaveRequestRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return ErrRejectionReason
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string    `json:"id"`
	StaffID         string    `json:"staff_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	LeaveType       LeaveType `json:"leave_type"`
	Status          Status    `json:"status"`
	Reason          *string   `json:"reason"`
	RejectionReason *string   `json:"rejection_reason"`
	RequestedDays   int       `json:"requested_days"`
	RequestDate     string    `json:"request_date"`
	ApprovalDate    *string   `json:"approval_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              r.ID,
		StaffID:         r.StaffID,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		LeaveType:       r.LeaveType,
		Status:          r.Status,
		Reason:          r.Reason,
		RejectionReason: r.RejectionReason,
		RequestedDays:   r.RequestedDays,
		RequestDate:     r.RequestDate.Format("2006-01-02"),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.ApprovalDate != nil {
		d := r.ApprovalDate.Format("2006-01-02")
		resp.ApprovalDate = &d
	}
	return resp
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewLeaveRequestResponse(r))
	}
	return out
}
