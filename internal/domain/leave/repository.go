package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the request until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	// ListBlockingByStaff returns the staff member's PENDING and APPROVED requests.
	ListBlockingByStaff(ctx context.Context, staffID string) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error
	DeleteByStaff(ctx context.Context, staffID string) error
}
