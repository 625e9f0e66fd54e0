package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/report"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/repository/memory"
	attendanceService "github.com/aburakt/staffy/internal/service/attendance"
	leaveService "github.com/aburakt/staffy/internal/service/leave"
	staffService "github.com/aburakt/staffy/internal/service/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	now        time.Time
	reports    report.ReportService
	staff      staff.StaffService
	attendance attendance.AttendanceService
	leave      leave.LeaveService
}

func newFixture() *fixture {
	store := memory.NewStore()
	staffRepo := memory.NewStaffRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	leaveRepo := memory.NewLeaveRequestRepository(store)

	f := &fixture{now: time.Date(2025, time.June, 2, 9, 0, 0, 0, time.Local)}
	clock := func() time.Time { return f.now }

	f.staff = staffService.NewStaffService(store, staffRepo, attendanceRepo, leaveRepo, staff.DefaultPolicy(), clock)
	f.attendance = attendanceService.NewAttendanceService(store, attendanceRepo, staffRepo, attendance.DefaultShiftPolicy(), clock)
	f.leave = leaveService.NewLeaveService(store, leaveRepo, staffRepo, calendar.New(), clock)
	f.reports = NewReportService(f.attendance, f.leave, f.staff, clock)
	return f
}

func open(t *testing.T, wb report.Workbook) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(wb.Content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestReportService_MonthlyAttendanceWorkbook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	member, err := f.staff.Create(ctx, staff.CreateStaffRequest{FirstName: "Ayse", LastName: "Yilmaz", Email: "ayse@example.com", HireDate: "2024-01-02"})
	require.NoError(t, err)

	_, err = f.attendance.ClockIn(ctx, attendance.ClockEventRequest{StaffID: member.ID, Location: "Office"})
	require.NoError(t, err)
	f.now = time.Date(2025, time.June, 2, 18, 30, 0, 0, time.Local)
	_, err = f.attendance.ClockOut(ctx, attendance.ClockEventRequest{StaffID: member.ID})
	require.NoError(t, err)

	wb, err := f.reports.MonthlyAttendanceWorkbook(ctx, member.ID, 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, "attendance-"+member.ID+"-2025-06.xlsx", wb.FileName)

	x := open(t, wb)
	assert.Equal(t, []string{"Summary", "Records"}, x.GetSheetList())

	summary, err := x.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Staff", "Ayse Yilmaz"}, summary[0])
	assert.Equal(t, []string{"Total Work Minutes", "570"}, summary[4])
	assert.Equal(t, []string{"Total Work Hours", "9.5"}, summary[5])

	records, err := x.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "2025-06-02", records[1][0])
	assert.Equal(t, "09:00", records[1][1])
	assert.Equal(t, "18:30", records[1][2])
	assert.Equal(t, "OVERTIME", records[1][8])
}

func TestReportService_LeaveRequestsWorkbook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	member, err := f.staff.Create(ctx, staff.CreateStaffRequest{FirstName: "Ayse", LastName: "Yilmaz", Email: "ayse@example.com", HireDate: "2024-01-02"})
	require.NoError(t, err)

	req, err := f.leave.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{StaffID: member.ID, StartDate: "2025-06-09", EndDate: "2025-06-13"})
	require.NoError(t, err)
	_, err = f.leave.ApproveLeaveRequest(ctx, req.ID)
	require.NoError(t, err)

	wb, err := f.reports.LeaveRequestsWorkbook(ctx, member.ID)
	require.NoError(t, err)

	rows, err := open(t, wb).GetRows("Leave Requests")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, len(rows[1]), 7)
	assert.Equal(t, []string{"2025-06-09", "2025-06-13", "ANNUAL", "APPROVED", "5", "2025-06-02", "2025-06-02"}, rows[1][:7])

	_, err = f.reports.LeaveRequestsWorkbook(ctx, "missing")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestReportService_LeaveBalancesWorkbook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.staff.Create(ctx, staff.CreateStaffRequest{FirstName: "Ayse", LastName: "Yilmaz", Email: "ayse@example.com", HireDate: "2024-01-02"})
	require.NoError(t, err)

	wb, err := f.reports.LeaveBalancesWorkbook(ctx)
	require.NoError(t, err)
	assert.Equal(t, "leave-balances-2025-06-02.xlsx", wb.FileName)

	rows, err := open(t, wb).GetRows("Leave Balances")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, len(rows[1]), 7)
	assert.Equal(t, []string{"Ayse Yilmaz", "ayse@example.com", "", "20", "0", "0", "20"}, rows[1][:7])
}
