package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, staff_id, start_date, end_date, leave_type, status, reason, rejection_reason,
	requested_days, request_date, approval_date, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	var leaveType, status string
	err := row.Scan(
		&lr.ID, &lr.StaffID, &lr.StartDate, &lr.EndDate, &leaveType, &status, &lr.Reason, &lr.RejectionReason,
		&lr.RequestedDays, &lr.RequestDate, &lr.ApprovalDate, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.LeaveType = leave.LeaveType(leaveType)
	lr.Status = leave.Status(status)
	lr.StartDate = localDate(lr.StartDate)
	lr.EndDate = localDate(lr.EndDate)
	lr.RequestDate = localDate(lr.RequestDate)
	lr.ApprovalDate = localDatePtr(lr.ApprovalDate)
	return lr, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	if lr.ID == "" {
		lr.ID = newID()
	}

	query := `
		INSERT INTO leave_requests (
			id, staff_id, start_date, end_date, leave_type, status, reason, rejection_reason,
			requested_days, request_date, approval_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		lr.ID, lr.StaffID, dateParam(lr.StartDate), dateParam(lr.EndDate), string(lr.LeaveType), string(lr.Status),
		lr.Reason, lr.RejectionReason, lr.RequestedDays, dateParam(lr.RequestDate), dateParamPtr(lr.ApprovalDate),
	).Scan(&lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return lr, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getOne(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id)
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getOne(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *leaveRequestRepository) getOne(ctx context.Context, query string, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests ORDER BY start_date, id`)
}

// ListByStaff implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByStaff(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE staff_id = $1 ORDER BY start_date, id`, staffID)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE status = $1 ORDER BY start_date, id`, string(status))
}

// ListBlockingByStaff implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListBlockingByStaff(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		SELECT `+leaveRequestColumns+` FROM leave_requests
		WHERE staff_id = $1 AND status IN ($2, $3)
		ORDER BY start_date, id`, staffID, string(leave.StatusPending), string(leave.StatusApproved))
}

func (r *leaveRequestRepository) list(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	out := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		out = append(out, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return out, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, lr leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			start_date = $2, end_date = $3, leave_type = $4, status = $5, reason = $6,
			rejection_reason = $7, requested_days = $8, approval_date = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		lr.ID, dateParam(lr.StartDate), dateParam(lr.EndDate), string(lr.LeaveType), string(lr.Status), lr.Reason,
		lr.RejectionReason, lr.RequestedDays, dateParamPtr(lr.ApprovalDate),
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// DeleteByStaff implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("failed to delete staff leave requests: %w", err)
	}
	return nil
}
