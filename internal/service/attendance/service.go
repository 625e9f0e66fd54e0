package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/apperror"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/aburakt/staffy/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SystemApprover is recorded when an approval carries no approver identity.
const SystemApprover = "System"

var minutesPerHour = decimal.NewFromInt(60)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	policy         attendance.ShiftPolicy
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	policy attendance.ShiftPolicy,
	clock func() time.Time,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		policy:         policy,
		now:            clock,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockEventRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return attendance.Attendance{}, err
	}

	now := s.now()
	today := calendar.DateOf(now)

	_, err := s.attendanceRepo.GetByStaffAndDate(ctx, req.StaffID, today)
	if err == nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	location := req.LocationOrDefault()
	record := attendance.Attendance{
		StaffID:         req.StaffID,
		Date:            today,
		ClockIn:         &now,
		Status:          attendance.StatusPresent,
		ClockInLocation: &location,
		ClockInOrigin:   optional(req.Origin),
		Notes:           req.Notes,
	}
	attendance.Recompute(&record, s.policy)

	// The store's one-record-per-day constraint settles concurrent clock-ins.
	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("Staff clocked in", "staff_id", created.StaffID, "attendance_id", created.ID, "location", location)
	return created, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockEventRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.mutateToday(ctx, req.StaffID, func(a *attendance.Attendance, now time.Time) error {
		if a.HasClockedOut() {
			return attendance.ErrAlreadyClockedOut
		}
		location := req.LocationOrDefault()
		a.ClockOut = &now
		a.ClockOutLocation = &location
		a.ClockOutOrigin = optional(req.Origin)
		if req.Notes != nil {
			a.Notes = req.Notes
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("Staff clocked out", "staff_id", record.StaffID, "attendance_id", record.ID, "status", record.Status)
	return record, nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, staffID string) (attendance.Attendance, error) {
	return s.mutateToday(ctx, staffID, func(a *attendance.Attendance, now time.Time) error {
		if a.BreakStart != nil {
			return attendance.ErrBreakAlreadyStarted
		}
		a.BreakStart = &now
		return nil
	})
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, staffID string) (attendance.Attendance, error) {
	return s.mutateToday(ctx, staffID, func(a *attendance.Attendance, now time.Time) error {
		if a.BreakStart == nil {
			return attendance.ErrBreakNotStarted
		}
		if a.BreakEnd != nil {
			return attendance.ErrBreakAlreadyEnded
		}
		a.BreakEnd = &now
		return nil
	})
}

// mutateToday locks today's record for staffID, applies fn and recomputes
// the derived fields before saving.
func (s *AttendanceServiceImpl) mutateToday(ctx context.Context, staffID string, fn func(a *attendance.Attendance, now time.Time) error) (attendance.Attendance, error) {
	if validator.IsEmpty(staffID) {
		return attendance.Attendance{}, apperror.Validation("staff_id", "staff_id is required")
	}

	var record attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		current, err := s.attendanceRepo.GetByStaffAndDateForUpdate(ctx, staffID, calendar.DateOf(now))
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrNotClockedIn
		}
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if err := fn(&current, now); err != nil {
			return err
		}
		attendance.Recompute(&current, s.policy)

		if err := s.attendanceRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		record = current
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return s.attendanceRepo.GetByID(ctx, record.ID)
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string, approver string) (attendance.Attendance, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, err
	}

	approver = strings.TrimSpace(approver)
	if approver == "" {
		approver = SystemApprover
	}
	now := s.now()
	record.Approved = true
	record.ApprovedBy = &approver
	record.ApprovedAt = &now

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to approve attendance: %w", err)
	}

	slog.Info("Attendance approved", "attendance_id", id, "approved_by", approver)
	return s.attendanceRepo.GetByID(ctx, id)
}

// UpdateFields implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateFields(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	var record attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.attendanceRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		current.ClockIn = req.ClockIn
		current.ClockOut = req.ClockOut
		current.BreakStart = req.BreakStart
		current.BreakEnd = req.BreakEnd
		current.Notes = req.Notes
		attendance.Recompute(&current, s.policy)

		if err := s.attendanceRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		record = current
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	slog.Info("Attendance updated", "attendance_id", record.ID, "status", record.Status)
	return s.attendanceRepo.GetByID(ctx, record.ID)
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Attendance deleted", "attendance_id", id)
	return nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.Attendance, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, staffID string) (attendance.Attendance, error) {
	return s.attendanceRepo.GetByStaffAndDate(ctx, staffID, calendar.DateOf(s.now()))
}

// ListByStaff implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByStaff(ctx context.Context, staffID string) ([]attendance.Attendance, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByStaff(ctx, staffID)
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return s.attendanceRepo.ListByDate(ctx, calendar.DateOf(date))
}

// ListByRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByRange(ctx context.Context, staffID string, start, end time.Time) ([]attendance.Attendance, error) {
	if calendar.Compare(end, start) < 0 {
		return nil, apperror.Validation("end_date", "end_date cannot be before start_date")
	}
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByStaffAndRange(ctx, staffID, calendar.DateOf(start), calendar.DateOf(end))
}

// MonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlyReport(ctx context.Context, staffID string, year, month int) (attendance.MonthlyReport, error) {
	if !validator.IsValidYearMonth(year, month) {
		return attendance.MonthlyReport{}, apperror.Validation("month", "year and month must form a valid calendar month")
	}
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return attendance.MonthlyReport{}, err
	}

	loc := s.now().Location()
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListByStaffAndRange(ctx, staffID, first, last)
	if err != nil {
		return attendance.MonthlyReport{}, fmt.Errorf("failed to list monthly attendance: %w", err)
	}

	report := attendance.MonthlyReport{
		StaffID:     staffID,
		Year:        year,
		Month:       time.Month(month),
		WorkingDays: calendar.DaysInMonth(year, time.Month(month)),
		Records:     records,
	}
	for _, r := range records {
		if r.TotalWorkMinutes != nil {
			report.TotalWorkMinutes += *r.TotalWorkMinutes
		}
		if r.OvertimeMinutes != nil {
			report.TotalOvertimeMinutes += *r.OvertimeMinutes
		}
		if r.CountsAsPresent() {
			report.PresentDays++
		}
		if r.Status == attendance.StatusLate {
			report.LateDays++
		}
	}
	report.AbsentDays = report.WorkingDays - report.PresentDays
	report.TotalWorkHours = toHours(report.TotalWorkMinutes)
	report.TotalOvertimeHours = toHours(report.TotalOvertimeMinutes)

	return report, nil
}

// PendingApprovals implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PendingApprovals(ctx context.Context) ([]attendance.Attendance, error) {
	return s.attendanceRepo.ListPendingApproval(ctx)
}

func toHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
