package staff

import (
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/pkg/validator"
)

type CreateStaffRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	Position        *string `json:"position,omitempty"`
	Department      *string `json:"department,omitempty"`
	HireDate        string  `json:"hire_date"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	AnnualLeaveDays *int    `json:"annual_leave_days,omitempty"`
	Role            string  `json:"role,omitempty"`
	Password        *string `json:"password,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}
	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "date_of_birth must be in YYYY-MM-DD format"})
		}
	}
	if r.AnnualLeaveDays != nil && *r.AnnualLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "annual_leave_days", Message: "annual_leave_days cannot be negative"})
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: employee, manager"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateStaffRequest is a partial update; nil fields are left unchanged.
type UpdateStaffRequest struct {
	ID              string  `json:"-"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	Position        *string `json:"position,omitempty"`
	Department      *string `json:"department,omitempty"`
	HireDate        *string `json:"hire_date,omitempty"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	AnnualLeaveDays *int    `json:"annual_leave_days,omitempty"`
	Role            *string `json:"role,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name cannot be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
		}
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "date_of_birth must be in YYYY-MM-DD format"})
		}
	}
	if r.AnnualLeaveDays != nil && *r.AnnualLeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "annual_leave_days", Message: "annual_leave_days cannot be negative"})
	}
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: employee, manager"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CarryoverResult struct {
	Year      int `json:"year"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type LeaveBalanceResponse struct {
	StaffID              string `json:"staff_id"`
	AnnualLeaveDays      int    `json:"annual_leave_days"`
	UsedLeaveDays        int    `json:"used_leave_days"`
	CarriedOverLeaveDays int    `json:"carried_over_leave_days"`
	RemainingLeaveDays   int    `json:"remaining_leave_days"`
	LastCarryoverYear    *int   `json:"last_carryover_year"`
}

func NewLeaveBalanceResponse(staffID string, b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		StaffID:              staffID,
		AnnualLeaveDays:      b.AnnualLeaveDays,
		UsedLeaveDays:        b.UsedLeaveDays,
		CarriedOverLeaveDays: b.CarriedOverLeaveDays,
		RemainingLeaveDays:   b.RemainingLeaveDays,
		LastCarryoverYear:    b.LastCarryoverYear,
	}
}

type StaffResponse struct {
	ID           string               `json:"id"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	FullName     string               `json:"full_name"`
	Email        string               `json:"email"`
	Phone        *string              `json:"phone"`
	Address      *string              `json:"address"`
	Position     *string              `json:"position"`
	Department   *string              `json:"department"`
	HireDate     string               `json:"hire_date"`
	DateOfBirth  *string              `json:"date_of_birth"`
	Role         Role                 `json:"role"`
	Active       bool                 `json:"active"`
	LeaveBalance LeaveBalanceResponse `json:"leave_balance"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func NewStaffResponse(s Staff) StaffResponse {
	resp := StaffResponse{
		ID:           s.ID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		FullName:     s.FullName(),
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		Position:     s.Position,
		Department:   s.Department,
		HireDate:     s.HireDate.Format("2006-01-02"),
		Role:         s.Role,
		Active:       s.Active,
		LeaveBalance: NewLeaveBalanceResponse(s.ID, s.LeaveBalance),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.DateOfBirth != nil {
		dob := s.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}
