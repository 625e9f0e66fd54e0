package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/aburakt/staffy/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx        database.Transactor
	leaveRepo leave.LeaveRequestRepository
	staffRepo staff.StaffRepository
	cal       *calendar.Calendar
	now       func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	staffRepo staff.StaffRepository,
	cal *calendar.Calendar,
	clock func() time.Time,
) leave.LeaveService {
	if clock == nil {
		clock = time.Now
	}
	return &LeaveServiceImpl{
		tx:        tx,
		leaveRepo: leaveRepo,
		staffRepo: staffRepo,
		cal:       cal,
		now:       clock,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	leaveType := req.Type()
	if !leaveType.IsValid() {
		return leave.LeaveRequest{}, leave.ErrInvalidLeaveType
	}

	now := s.now()
	startDate, err := validator.ParseDateIn(req.StartDate, now.Location())
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := validator.ParseDateIn(req.EndDate, now.Location())
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if calendar.Compare(startDate, now) < 0 {
		return leave.LeaveRequest{}, leave.ErrStartDateInPast
	}
	if calendar.Compare(endDate, startDate) < 0 {
		return leave.LeaveRequest{}, leave.ErrEndBeforeStart
	}

	requestedDays := s.cal.BusinessDays(startDate, endDate)
	if requestedDays == 0 {
		return leave.LeaveRequest{}, leave.ErrNoWorkingDays
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Locking the staff row serializes concurrent requests for the same person.
		if _, err := s.staffRepo.GetByIDForUpdate(ctx, req.StaffID); err != nil {
			return err
		}

		existing, err := s.leaveRepo.ListBlockingByStaff(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to list existing leave requests: %w", err)
		}
		for _, other := range existing {
			if calendar.RangesOverlap(startDate, endDate, other.StartDate, other.EndDate) {
				return leave.ErrLeaveOverlap.WithMessage(
					"leave request overlaps an existing %s request from %s to %s",
					other.Status,
					other.StartDate.Format(calendar.DateLayout),
					other.EndDate.Format(calendar.DateLayout),
				)
			}
		}

		created, err = s.leaveRepo.Create(ctx, leave.LeaveRequest{
			StaffID:       req.StaffID,
			StartDate:     startDate,
			EndDate:       endDate,
			LeaveType:     leaveType,
			Status:        leave.StatusPending,
			Reason:        req.Reason,
			RequestedDays: requestedDays,
			RequestDate:   calendar.DateOf(now),
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("Leave request created",
		"leave_request_id", created.ID,
		"staff_id", created.StaffID,
		"leave_type", created.LeaveType,
		"requested_days", created.RequestedDays,
	)
	return created, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var approved leave.LeaveRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.leaveRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != leave.StatusPending {
			return leave.ErrInvalidStatus
		}

		request.RequestedDays = s.cal.BusinessDays(request.StartDate, request.EndDate)
		if request.RequestedDays == 0 {
			return leave.ErrNoWorkingDays
		}

		member, err := s.staffRepo.GetByIDForUpdate(ctx, request.StaffID)
		if err != nil {
			return err
		}
		if !member.Covers(request.RequestedDays) {
			return leave.ErrInsufficientLeaveDays.WithMessage(
				"insufficient leave days: %d requested, %d remaining",
				request.RequestedDays, member.RemainingLeaveDays,
			)
		}

		today := calendar.DateOf(s.now())
		request.Status = leave.StatusApproved
		request.ApprovalDate = &today
		if err := s.leaveRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		balance := member.LeaveBalance
		balance.Deduct(request.RequestedDays)
		if err := s.staffRepo.UpdateLeaveBalance(ctx, member.ID, balance); err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}

		approved = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("Leave request approved", "leave_request_id", approved.ID, "staff_id", approved.StaffID, "requested_days", approved.RequestedDays)
	return s.leaveRepo.GetByID(ctx, approved.ID)
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.RejectLeaveRequestRequest) (leave.LeaveRequest, error) {
	var rejected leave.LeaveRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.leaveRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if request.Status != leave.StatusPending {
			return leave.ErrInvalidStatus
		}
		if err := req.Validate(); err != nil {
			return err
		}

		reason := req.Reason
		request.Status = leave.StatusRejected
		request.RejectionReason = &reason
		if err := s.leaveRepo.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		rejected = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("Leave request rejected", "leave_request_id", rejected.ID, "staff_id", rejected.StaffID)
	return s.leaveRepo.GetByID(ctx, rejected.ID)
}

// DeleteLeaveRequest implements leave.LeaveService. Approved days are not
// returned to the balance.
func (s *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, id string) error {
	if err := s.leaveRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Leave request deleted", "leave_request_id", id)
	return nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.leaveRepo.GetByID(ctx, id)
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	return s.leaveRepo.ListAll(ctx)
}

// ListByStaff implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByStaff(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.leaveRepo.ListByStaff(ctx, staffID)
}

// ListByStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	if !status.IsValid() {
		return nil, leave.ErrInvalidStatusName
	}
	return s.leaveRepo.ListByStatus(ctx, status)
}
