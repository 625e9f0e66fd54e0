package report

import "context"

// ReportService renders spreadsheet exports.
type ReportService interface {
	// MonthlyAttendanceWorkbook has a Summary sheet and a Records sheet.
	MonthlyAttendanceWorkbook(ctx context.Context, staffID string, year, month int) (Workbook, error)
	LeaveRequestsWorkbook(ctx context.Context, staffID string) (Workbook, error)
	// LeaveBalancesWorkbook lists the balance of every active staff member.
	LeaveBalancesWorkbook(ctx context.Context) (Workbook, error)
}
