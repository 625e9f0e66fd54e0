package staff

import "context"

type StaffFilter struct {
	ActiveOnly bool
	Department *string
}

type StaffRepository interface {
	Create(ctx context.Context, staff Staff) (Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	// GetByIDForUpdate locks the staff row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	// ExistsByEmail ignores the record with excludeID, if given.
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, staff Staff) error
	UpdateLeaveBalance(ctx context.Context, id string, balance LeaveBalance) error
	Delete(ctx context.Context, id string) error
}
