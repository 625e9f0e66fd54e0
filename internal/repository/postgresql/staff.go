package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `
	id, first_name, last_name, email, phone, address, position, department,
	hire_date, date_of_birth, role, password_hash, active,
	annual_leave_days, used_leave_days, carried_over_leave_days, remaining_leave_days, last_carryover_year,
	created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	var role string
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address, &s.Position, &s.Department,
		&s.HireDate, &s.DateOfBirth, &role, &s.PasswordHash, &s.Active,
		&s.AnnualLeaveDays, &s.UsedLeaveDays, &s.CarriedOverLeaveDays, &s.RemainingLeaveDays, &s.LastCarryoverYear,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return staff.Staff{}, err
	}
	s.Role = staff.Role(role)
	s.HireDate = localDate(s.HireDate)
	s.DateOfBirth = localDatePtr(s.DateOfBirth)
	return s, nil
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	if s.ID == "" {
		s.ID = newID()
	}

	query := `
		INSERT INTO staff (
			id, first_name, last_name, email, phone, address, position, department,
			hire_date, date_of_birth, role, password_hash, active,
			annual_leave_days, used_leave_days, carried_over_leave_days, remaining_leave_days, last_carryover_year
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.Address, s.Position, s.Department,
		dateParam(s.HireDate), dateParamPtr(s.DateOfBirth), string(s.Role), s.PasswordHash, s.Active,
		s.AnnualLeaveDays, s.UsedLeaveDays, s.CarriedOverLeaveDays, s.RemainingLeaveDays, s.LastCarryoverYear,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "staff_email_key") {
			return staff.Staff{}, staff.ErrEmailExists
		}
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return s, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

// GetByIDForUpdate implements staff.StaffRepository.
func (r *staffRepository) GetByIDForUpdate(ctx context.Context, id string) (staff.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1 FOR UPDATE`, id)
}

// GetByEmail implements staff.StaffRepository.
func (r *staffRepository) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email))
}

func (r *staffRepository) getOne(ctx context.Context, query string, arg any) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)
	s, err := scanStaff(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return s, nil
}

// ExistsByEmail implements staff.StaffRepository.
func (r *staffRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM staff WHERE LOWER(email) = LOWER($1) AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := q.QueryRow(ctx, query, strings.TrimSpace(email), excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check staff email: %w", err)
	}
	return exists, nil
}

// List implements staff.StaffRepository.
func (r *staffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	if filter.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}

	query := `SELECT ` + staffColumns + ` FROM staff`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY last_name, first_name, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	out := make([]staff.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}
	return out, nil
}

// Count implements staff.StaffRepository.
func (r *staffRepository) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return n, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, s staff.Staff) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff SET
			first_name = $2, last_name = $3, email = $4, phone = $5, address = $6,
			position = $7, department = $8, hire_date = $9, date_of_birth = $10,
			role = $11, password_hash = $12, active = $13,
			annual_leave_days = $14, used_leave_days = $15, carried_over_leave_days = $16,
			remaining_leave_days = $17, last_carryover_year = $18,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.Address,
		s.Position, s.Department, dateParam(s.HireDate), dateParamPtr(s.DateOfBirth),
		string(s.Role), s.PasswordHash, s.Active,
		s.AnnualLeaveDays, s.UsedLeaveDays, s.CarriedOverLeaveDays,
		s.RemainingLeaveDays, s.LastCarryoverYear,
	)
	if err != nil {
		if isUniqueViolation(err, "staff_email_key") {
			return staff.ErrEmailExists
		}
		return fmt.Errorf("failed to update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// UpdateLeaveBalance implements staff.StaffRepository.
func (r *staffRepository) UpdateLeaveBalance(ctx context.Context, id string, b staff.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff SET
			annual_leave_days = $2, used_leave_days = $3, carried_over_leave_days = $4,
			remaining_leave_days = $5, last_carryover_year = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, b.AnnualLeaveDays, b.UsedLeaveDays, b.CarriedOverLeaveDays, b.RemainingLeaveDays, b.LastCarryoverYear)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// Delete implements staff.StaffRepository.
func (r *staffRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}
