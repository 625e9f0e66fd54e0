package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, staff_id, date, clock_in, clock_out, break_start, break_end,
	total_work_minutes, break_minutes, overtime_minutes, status,
	clock_in_location, clock_in_origin, clock_out_location, clock_out_origin,
	approved, approved_by, approved_at, notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var status string
	err := row.Scan(
		&a.ID, &a.StaffID, &a.Date, &a.ClockIn, &a.ClockOut, &a.BreakStart, &a.BreakEnd,
		&a.TotalWorkMinutes, &a.BreakMinutes, &a.OvertimeMinutes, &status,
		&a.ClockInLocation, &a.ClockInOrigin, &a.ClockOutLocation, &a.ClockOutOrigin,
		&a.Approved, &a.ApprovedBy, &a.ApprovedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.Status = attendance.Status(status)
	a.Date = localDate(a.Date)
	return a, nil
}

// Create implements attendance.AttendanceRepository.
// The (staff_id, date) unique constraint turns a concurrent second clock-in into ErrAlreadyClockedIn.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	if a.ID == "" {
		a.ID = newID()
	}

	query := `
		INSERT INTO attendance_records (
			id, staff_id, date, clock_in, clock_out, break_start, break_end,
			total_work_minutes, break_minutes, overtime_minutes, status,
			clock_in_location, clock_in_origin, clock_out_location, clock_out_origin,
			approved, approved_by, approved_at, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		a.ID, a.StaffID, dateParam(a.Date), a.ClockIn, a.ClockOut, a.BreakStart, a.BreakEnd,
		a.TotalWorkMinutes, a.BreakMinutes, a.OvertimeMinutes, string(a.Status),
		a.ClockInLocation, a.ClockInOrigin, a.ClockOutLocation, a.ClockOutOrigin,
		a.Approved, a.ApprovedBy, a.ApprovedAt, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_records_staff_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return r.getOne(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id = $1`, id)
}

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (attendance.Attendance, error) {
	return r.getOne(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE staff_id = $1 AND date = $2`, staffID, dateParam(date))
}

// GetByStaffAndDateForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByStaffAndDateForUpdate(ctx context.Context, staffID string, date time.Time) (attendance.Attendance, error) {
	return r.getOne(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE staff_id = $1 AND date = $2 FOR UPDATE`, staffID, dateParam(date))
}

func (r *attendanceRepository) getOne(ctx context.Context, query string, args ...any) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	a, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// ListByStaff implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByStaff(ctx context.Context, staffID string) ([]attendance.Attendance, error) {
	return r.list(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE staff_id = $1 ORDER BY date, id`, staffID)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return r.list(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE date = $1 ORDER BY date, id`, dateParam(date))
}

// ListByStaffAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]attendance.Attendance, error) {
	return r.list(ctx, `
		SELECT `+attendanceColumns+` FROM attendance_records
		WHERE staff_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id`, staffID, dateParam(start), dateParam(end))
}

// ListPendingApproval implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListPendingApproval(ctx context.Context) ([]attendance.Attendance, error) {
	return r.list(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE approved = FALSE ORDER BY date, id`)
}

func (r *attendanceRepository) list(ctx context.Context, query string, args ...any) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	out := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return out, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			clock_in = $2, clock_out = $3, break_start = $4, break_end = $5,
			total_work_minutes = $6, break_minutes = $7, overtime_minutes = $8, status = $9,
			clock_in_location = $10, clock_in_origin = $11, clock_out_location = $12, clock_out_origin = $13,
			approved = $14, approved_by = $15, approved_at = $16, notes = $17,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		a.ID, a.ClockIn, a.ClockOut, a.BreakStart, a.BreakEnd,
		a.TotalWorkMinutes, a.BreakMinutes, a.OvertimeMinutes, string(a.Status),
		a.ClockInLocation, a.ClockInOrigin, a.ClockOutLocation, a.ClockOutOrigin,
		a.Approved, a.ApprovedBy, a.ApprovedAt, a.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByStaff implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("failed to delete staff attendance: %w", err)
	}
	return nil
}
