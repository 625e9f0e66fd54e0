package leave

import "github.com/aburakt/staffy/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound  = apperror.New(apperror.KindNotFound, "LEAVE_REQUEST_NOT_FOUND", "leave request not found")
	ErrNoWorkingDays         = apperror.New(apperror.KindBusinessRule, "NO_WORKING_DAYS", "the selected date range contains no working days")
	ErrInsufficientLeaveDays = apperror.New(apperror.KindBusinessRule, "INSUFFICIENT_LEAVE_DAYS", "insufficient leave days")
	ErrLeaveOverlap          = apperror.New(apperror.KindConflict, "LEAVE_OVERLAP", "leave request overlaps an existing request")
	ErrInvalidStatus         = apperror.New(apperror.KindConflict, "INVALID_STATUS", "only pending leave requests can be processed")

	ErrStartDateInPast   = apperror.Validation("start_date", "start date cannot be in the past")
	ErrEndBeforeStart    = apperror.Validation("end_date", "end date cannot be before start date")
	ErrRejectionReason   = apperror.Validation("reason", "rejection reason is required")
	ErrInvalidLeaveType  = apperror.Validation("leave_type", "invalid leave type")
	ErrInvalidStatusName = apperror.Validation("status", "status must be one of: PENDING, APPROVED, REJECTED")
)
