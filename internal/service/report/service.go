package report

import (
	"context"
	"fmt"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/report"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/xuri/excelize/v2"
)

const (
	timeLayout     = "15:04"
	dateLayout     = "2006-01-02"
	defaultSheet   = "Sheet1"
	summarySheet   = "Summary"
	recordsSheet   = "Records"
	requestsSheet  = "Leave Requests"
	balancesSheet  = "Leave Balances"
	headerColWidth = 18
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	staffService      staff.StaffService
	now               func() time.Time
}

func NewReportService(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	staffService staff.StaffService,
	clock func() time.Time,
) report.ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		staffService:      staffService,
		now:               clock,
	}
}

// MonthlyAttendanceWorkbook implements report.ReportService.
func (s *ReportServiceImpl) MonthlyAttendanceWorkbook(ctx context.Context, staffID string, year, month int) (report.Workbook, error) {
	member, err := s.staffService.Get(ctx, staffID)
	if err != nil {
		return report.Workbook{}, err
	}
	monthly, err := s.attendanceService.MonthlyReport(ctx, staffID, year, month)
	if err != nil {
		return report.Workbook{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return report.Workbook{}, fmt.Errorf("failed to rename sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Staff", member.FullName()},
		{"Email", member.Email},
		{"Period", fmt.Sprintf("%04d-%02d", year, month)},
		{"Generated At", s.now().Format(time.RFC3339)},
		{"Total Work Minutes", monthly.TotalWorkMinutes},
		{"Total Work Hours", monthly.TotalWorkHours.InexactFloat64()},
		{"Total Overtime Minutes", monthly.TotalOvertimeMinutes},
		{"Total Overtime Hours", monthly.TotalOvertimeHours.InexactFloat64()},
		{"Present Days", monthly.PresentDays},
		{"Late Days", monthly.LateDays},
		{"Absent Days", monthly.AbsentDays},
		{"Days In Month", monthly.WorkingDays},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return report.Workbook{}, err
	}

	rows := [][]interface{}{{
		"Date", "Clock In", "Clock Out", "Break Start", "Break End",
		"Work Minutes", "Break Minutes", "Overtime Minutes", "Status", "Approved", "Notes",
	}}
	for _, r := range monthly.Records {
		rows = append(rows, []interface{}{
			r.Date.Format(dateLayout),
			clockOrBlank(r.ClockIn),
			clockOrBlank(r.ClockOut),
			clockOrBlank(r.BreakStart),
			clockOrBlank(r.BreakEnd),
			intOrBlank(r.TotalWorkMinutes),
			intOrBlank(r.BreakMinutes),
			intOrBlank(r.OvertimeMinutes),
			string(r.Status),
			r.Approved,
			stringOrBlank(r.Notes),
		})
	}
	if err := newSheet(f, recordsSheet, rows); err != nil {
		return report.Workbook{}, err
	}

	return render(f, fmt.Sprintf("attendance-%s-%04d-%02d.xlsx", staffID, year, month))
}

// LeaveRequestsWorkbook implements report.ReportService.
func (s *ReportServiceImpl) LeaveRequestsWorkbook(ctx context.Context, staffID string) (report.Workbook, error) {
	requests, err := s.leaveService.ListByStaff(ctx, staffID)
	if err != nil {
		return report.Workbook{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{{
		"Start Date", "End Date", "Type", "Status", "Requested Days",
		"Request Date", "Approval Date", "Reason", "Rejection Reason",
	}}
	for _, r := range requests {
		approval := ""
		if r.ApprovalDate != nil {
			approval = r.ApprovalDate.Format(dateLayout)
		}
		rows = append(rows, []interface{}{
			r.StartDate.Format(dateLayout),
			r.EndDate.Format(dateLayout),
			string(r.LeaveType),
			string(r.Status),
			r.RequestedDays,
			r.RequestDate.Format(dateLayout),
			approval,
			stringOrBlank(r.Reason),
			stringOrBlank(r.RejectionReason),
		})
	}
	if err := f.SetSheetName(defaultSheet, requestsSheet); err != nil {
		return report.Workbook{}, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRows(f, requestsSheet, rows); err != nil {
		return report.Workbook{}, err
	}

	return render(f, fmt.Sprintf("leave-requests-%s.xlsx", staffID))
}

// LeaveBalancesWorkbook implements report.ReportService.
func (s *ReportServiceImpl) LeaveBalancesWorkbook(ctx context.Context) (report.Workbook, error) {
	members, err := s.staffService.List(ctx, staff.StaffFilter{ActiveOnly: true})
	if err != nil {
		return report.Workbook{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{{
		"Staff", "Email", "Department", "Annual", "Carried Over", "Used", "Remaining", "Last Carryover Year",
	}}
	for _, m := range members {
		var lastYear interface{} = ""
		if m.LastCarryoverYear != nil {
			lastYear = *m.LastCarryoverYear
		}
		rows = append(rows, []interface{}{
			m.FullName(),
			m.Email,
			stringOrBlank(m.Department),
			m.AnnualLeaveDays,
			m.CarriedOverLeaveDays,
			m.UsedLeaveDays,
			m.RemainingLeaveDays,
			lastYear,
		})
	}
	if err := f.SetSheetName(defaultSheet, balancesSheet); err != nil {
		return report.Workbook{}, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRows(f, balancesSheet, rows); err != nil {
		return report.Workbook{}, err
	}

	return render(f, fmt.Sprintf("leave-balances-%s.xlsx", s.now().Format(dateLayout)))
}

func newSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

// writeRows writes rows from A1 down and bolds the first row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	width := 0
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
		width = max(width, len(row))
	}
	if width == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetColWidth(sheet, "A", lastCol, headerColWidth)
}

func render(f *excelize.File, fileName string) (report.Workbook, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Workbook{}, fmt.Errorf("failed to render workbook: %w", err)
	}
	return report.Workbook{FileName: fileName, Content: buf.Bytes()}, nil
}

func clockOrBlank(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
