// Package fixtures holds demo data seeded into an empty store.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aburakt/staffy/internal/domain/staff"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

type DemoMember struct {
	Request       staff.CreateStaffRequest
	UsedLeaveDays int
}

func DemoStaff() []DemoMember {
	return []DemoMember{
		{
			Request: staff.CreateStaffRequest{
				FirstName:       "John",
				LastName:        "Doe",
				Email:           "john.doe@staffy.local",
				Position:        strPtr("Software Engineer"),
				Department:      strPtr("Engineering"),
				HireDate:        "2022-01-10",
				AnnualLeaveDays: intPtr(20),
				Role:            string(staff.RoleEmployee),
				Password:        strPtr(DemoPassword),
			},
			UsedLeaveDays: 5,
		},
		{
			Request: staff.CreateStaffRequest{
				FirstName:       "Jane",
				LastName:        "Smith",
				Email:           "jane.smith@staffy.local",
				Position:        strPtr("Engineering Manager"),
				Department:      strPtr("Engineering"),
				HireDate:        "2020-09-01",
				AnnualLeaveDays: intPtr(22),
				Role:            string(staff.RoleManager),
				Password:        strPtr(DemoPassword),
			},
			UsedLeaveDays: 3,
		},
	}
}

// SeedDemoStaff creates the demo staff when the store holds no staff yet.
// It reports how many members were created.
func SeedDemoStaff(ctx context.Context, staffService staff.StaffService, staffRepo staff.StaffRepository) (int, error) {
	count, err := staffRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, member := range DemoStaff() {
		created, err := staffService.Create(ctx, member.Request)
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", member.Request.Email, err)
		}
		if member.UsedLeaveDays > 0 {
			balance := created.LeaveBalance
			balance.Deduct(member.UsedLeaveDays)
			if err := staffRepo.UpdateLeaveBalance(ctx, created.ID, balance); err != nil {
				return seeded, fmt.Errorf("failed to seed balance for %s: %w", member.Request.Email, err)
			}
		}
		seeded++
	}

	slog.Info("Demo staff seeded", "count", seeded)
	return seeded, nil
}
