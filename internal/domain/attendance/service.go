package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockEventRequest) (Attendance, error)
	ClockOut(ctx context.Context, req ClockEventRequest) (Attendance, error)
	StartBreak(ctx context.Context, staffID string) (Attendance, error)
	EndBreak(ctx context.Context, staffID string) (Attendance, error)

	// Approve overwrites any previous approver and approval time.
	Approve(ctx context.Context, id string, approver string) (Attendance, error)
	UpdateFields(ctx context.Context, req UpdateAttendanceRequest) (Attendance, error)
	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (Attendance, error)
	GetToday(ctx context.Context, staffID string) (Attendance, error)
	ListByStaff(ctx context.Context, staffID string) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	ListByRange(ctx context.Context, staffID string, start, end time.Time) ([]Attendance, error)

	MonthlyReport(ctx context.Context, staffID string, year, month int) (MonthlyReport, error)
	PendingApprovals(ctx context.Context) ([]Attendance, error)
}
