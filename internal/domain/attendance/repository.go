package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create fails with ErrAlreadyClockedIn when the staff member already has a record for the date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (Attendance, error)
	// GetByStaffAndDateForUpdate locks the record until the surrounding transaction ends.
	GetByStaffAndDateForUpdate(ctx context.Context, staffID string, date time.Time) (Attendance, error)
	ListByStaff(ctx context.Context, staffID string) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	// ListByStaffAndRange returns records with start <= date <= end, oldest first.
	ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]Attendance, error)
	ListPendingApproval(ctx context.Context) ([]Attendance, error)
	Update(ctx context.Context, attendance Attendance) error
	Delete(ctx context.Context, id string) error
	DeleteByStaff(ctx context.Context, staffID string) error
}
