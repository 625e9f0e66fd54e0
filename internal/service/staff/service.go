package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/aburakt/staffy/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceImpl struct {
	tx             database.Transactor
	staffRepo      staff.StaffRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	policy         staff.Policy
	now            func() time.Time
}

func NewStaffService(
	tx database.Transactor,
	staffRepo staff.StaffRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	policy staff.Policy,
	clock func() time.Time,
) staff.StaffService {
	if clock == nil {
		clock = time.Now
	}
	return &StaffServiceImpl{
		tx:             tx,
		staffRepo:      staffRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		policy:         policy,
		now:            clock,
	}
}

// Create implements staff.StaffService.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return staff.Staff{}, err
	}
	now := s.now()

	hireDate, err := validator.ParseDateIn(req.HireDate, now.Location())
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to parse hire date: %w", err)
	}
	if calendar.Compare(hireDate, now) > 0 {
		return staff.Staff{}, staff.ErrHireDateInFuture
	}

	email := strings.TrimSpace(req.Email)
	exists, err := s.staffRepo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return staff.Staff{}, err
	}
	if exists {
		return staff.Staff{}, staff.ErrEmailExists
	}

	annual := s.policy.DefaultAnnualLeaveDays
	if req.AnnualLeaveDays != nil {
		annual = *req.AnnualLeaveDays
	}
	role := staff.RoleEmployee
	if req.Role != "" {
		role = staff.Role(req.Role)
	}

	newStaff := staff.Staff{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        req.Phone,
		Address:      req.Address,
		Position:     req.Position,
		Department:   req.Department,
		HireDate:     hireDate,
		Role:         role,
		Active:       true,
		LeaveBalance: staff.NewLeaveBalance(annual),
	}
	if req.DateOfBirth != nil {
		dob, err := validator.ParseDateIn(*req.DateOfBirth, now.Location())
		if err != nil {
			return staff.Staff{}, fmt.Errorf("failed to parse date of birth: %w", err)
		}
		newStaff.DateOfBirth = &dob
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return staff.Staff{}, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hash)
		newStaff.PasswordHash = &h
	}

	created, err := s.staffRepo.Create(ctx, newStaff)
	if err != nil {
		return staff.Staff{}, err
	}

	slog.Info("Staff created", "staff_id", created.ID, "email", created.Email)
	return created, nil
}

// Update implements staff.StaffService.
func (s *StaffServiceImpl) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return staff.Staff{}, err
	}
	now := s.now()

	var updated staff.Staff
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.staffRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.FirstName != nil {
			current.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			current.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Email != nil {
			email := strings.TrimSpace(*req.Email)
			exists, err := s.staffRepo.ExistsByEmail(ctx, email, current.ID)
			if err != nil {
				return err
			}
			if exists {
				return staff.ErrEmailExists
			}
			current.Email = email
		}
		if req.Phone != nil {
			current.Phone = req.Phone
		}
		if req.Address != nil {
			current.Address = req.Address
		}
		if req.Position != nil {
			current.Position = req.Position
		}
		if req.Department != nil {
			current.Department = req.Department
		}
		if req.HireDate != nil {
			hireDate, err := validator.ParseDateIn(*req.HireDate, now.Location())
			if err != nil {
				return fmt.Errorf("failed to parse hire date: %w", err)
			}
			if calendar.Compare(hireDate, now) > 0 {
				return staff.ErrHireDateInFuture
			}
			current.HireDate = hireDate
		}
		if req.DateOfBirth != nil {
			dob, err := validator.ParseDateIn(*req.DateOfBirth, now.Location())
			if err != nil {
				return fmt.Errorf("failed to parse date of birth: %w", err)
			}
			current.DateOfBirth = &dob
		}
		if req.AnnualLeaveDays != nil {
			current.SetAnnual(*req.AnnualLeaveDays)
		}
		if req.Role != nil {
			current.Role = staff.Role(*req.Role)
		}
		if req.Active != nil {
			current.Active = *req.Active
		}

		if err := s.staffRepo.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return staff.Staff{}, err
	}
	return s.staffRepo.GetByID(ctx, updated.ID)
}

// Get implements staff.StaffService.
func (s *StaffServiceImpl) Get(ctx context.Context, id string) (staff.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// GetByEmail implements staff.StaffService.
func (s *StaffServiceImpl) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	return s.staffRepo.GetByEmail(ctx, email)
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	return s.staffRepo.List(ctx, filter)
}

// Deactivate implements staff.StaffService.
func (s *StaffServiceImpl) Deactivate(ctx context.Context, id string) (staff.Staff, error) {
	inactive := false
	return s.Update(ctx, staff.UpdateStaffRequest{ID: id, Active: &inactive})
}

// Delete implements staff.StaffService.
func (s *StaffServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.staffRepo.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.attendanceRepo.DeleteByStaff(ctx, id); err != nil {
			return err
		}
		if err := s.leaveRepo.DeleteByStaff(ctx, id); err != nil {
			return err
		}
		return s.staffRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("Staff deleted", "staff_id", id)
	return nil
}

// GetLeaveBalance implements staff.StaffService.
func (s *StaffServiceImpl) GetLeaveBalance(ctx context.Context, id string) (staff.LeaveBalance, error) {
	st, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.LeaveBalance{}, err
	}
	return st.LeaveBalance, nil
}

// ProcessYearEndCarryover implements staff.StaffService.
func (s *StaffServiceImpl) ProcessYearEndCarryover(ctx context.Context, id string, year int) (staff.LeaveBalance, error) {
	balance, _, err := s.carryover(ctx, id, year)
	return balance, err
}

// ProcessYearEndCarryoverForAllStaff implements staff.StaffService.
func (s *StaffServiceImpl) ProcessYearEndCarryoverForAllStaff(ctx context.Context) (staff.CarryoverResult, error) {
	result := staff.CarryoverResult{Year: s.now().Year()}

	members, err := s.staffRepo.List(ctx, staff.StaffFilter{ActiveOnly: true})
	if err != nil {
		return result, fmt.Errorf("failed to list active staff: %w", err)
	}

	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, applied, err := s.carryover(ctx, member.ID, result.Year)
		switch {
		case err != nil:
			result.Failed++
			slog.Warn("Year-end carryover failed", "staff_id", member.ID, "year", result.Year, "error", err)
		case applied:
			result.Processed++
		default:
			result.Skipped++
		}
	}

	slog.Info("Year-end carryover completed",
		"year", result.Year,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// carryover applies the year-end transformation to one staff member in its own transaction.
func (s *StaffServiceImpl) carryover(ctx context.Context, id string, year int) (staff.LeaveBalance, bool, error) {
	var balance staff.LeaveBalance
	var applied bool

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		st, err := s.staffRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		balance = st.LeaveBalance
		applied = balance.ProcessYearEndCarryover(year, s.policy.MaxCarryoverDays)
		if !applied {
			return nil
		}
		return s.staffRepo.UpdateLeaveBalance(ctx, id, balance)
	})
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.LeaveBalance{}, false, err
		}
		return staff.LeaveBalance{}, false, fmt.Errorf("failed to process carryover: %w", err)
	}

	if applied {
		slog.Info("Year-end carryover processed", "staff_id", id, "year", year, "carried_over", balance.CarriedOverLeaveDays)
	}
	return balance, applied, nil
}
