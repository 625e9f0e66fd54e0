package leave

import "context"

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	// ApproveLeaveRequest deducts the requested days from the staff balance
	// together with the status change.
	ApproveLeaveRequest(ctx context.Context, id string) (LeaveRequest, error)
	RejectLeaveRequest(ctx context.Context, req RejectLeaveRequestRequest) (LeaveRequest, error)
	DeleteLeaveRequest(ctx context.Context, id string) error

	GetLeaveRequest(ctx context.Context, id string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context) ([]LeaveRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
}
