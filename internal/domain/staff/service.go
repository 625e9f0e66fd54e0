package staff

import "context"

type StaffService interface {
	Create(ctx context.Context, req CreateStaffRequest) (Staff, error)
	Update(ctx context.Context, req UpdateStaffRequest) (Staff, error)
	Get(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	Deactivate(ctx context.Context, id string) (Staff, error)
	// Delete removes the staff member together with their attendance and leave records.
	Delete(ctx context.Context, id string) error

	GetLeaveBalance(ctx context.Context, id string) (LeaveBalance, error)
	ProcessYearEndCarryover(ctx context.Context, id string, year int) (LeaveBalance, error)
	// ProcessYearEndCarryoverForAllStaff runs carryover for every active staff
	// member for the current year and returns how many balances changed.
	ProcessYearEndCarryoverForAllStaff(ctx context.Context) (CarryoverResult, error)
}
