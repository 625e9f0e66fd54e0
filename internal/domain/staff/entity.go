package staff

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

const (
	DefaultAnnualLeaveDays = 20
	MaxCarryoverDays       = 5
)

// Policy holds the organisation-wide leave rules.
type Policy struct {
	DefaultAnnualLeaveDays int
	MaxCarryoverDays       int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultAnnualLeaveDays: DefaultAnnualLeaveDays,
		MaxCarryoverDays:       MaxCarryoverDays,
	}
}

// LeaveBalance tracks a staff member's paid-leave entitlement.
// RemainingLeaveDays is derived; every mutator recalculates it.
type LeaveBalance struct {
	AnnualLeaveDays      int
	UsedLeaveDays        int
	CarriedOverLeaveDays int
	RemainingLeaveDays   int
	LastCarryoverYear    *int
}

func NewLeaveBalance(annualDays int) LeaveBalance {
	b := LeaveBalance{AnnualLeaveDays: annualDays}
	b.Recalculate()
	return b
}

// Recalculate sets remaining = annual + carriedOver - used.
func (b *LeaveBalance) Recalculate() {
	b.RemainingLeaveDays = b.AnnualLeaveDays + b.CarriedOverLeaveDays - b.UsedLeaveDays
}

func (b *LeaveBalance) SetAnnual(days int) {
	b.AnnualLeaveDays = days
	b.Recalculate()
}

// Covers reports whether the remaining balance can absorb days.
func (b LeaveBalance) Covers(days int) bool {
	return b.RemainingLeaveDays >= days
}

func (b *LeaveBalance) Deduct(days int) {
	b.UsedLeaveDays += days
	b.Recalculate()
}

// ProcessYearEndCarryover moves up to maxCarry unused days into the new year
// and resets used days. A deficit carries over in full. It is a no-op when
// year has already been processed, and reports whether anything changed.
func (b *LeaveBalance) ProcessYearEndCarryover(year, maxCarry int) bool {
	if b.LastCarryoverYear != nil && *b.LastCarryoverYear >= year {
		return false
	}
	b.CarriedOverLeaveDays = min(b.RemainingLeaveDays, maxCarry)
	b.UsedLeaveDays = 0
	y := year
	b.LastCarryoverYear = &y
	b.Recalculate()
	return true
}

type Staff struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	Address      *string
	Position     *string
	Department   *string
	HireDate     time.Time
	DateOfBirth  *time.Time
	Role         Role
	PasswordHash *string
	Active       bool
	LeaveBalance
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
