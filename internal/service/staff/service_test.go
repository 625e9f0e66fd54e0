package staff

import (
	"context"
	"testing"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/validator"
	"github.com/aburakt/staffy/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc            staff.StaffService
	staffRepo      staff.StaffRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	now            time.Time
}

func newFixture(now time.Time) *fixture {
	store := memory.NewStore()
	f := &fixture{
		staffRepo:      memory.NewStaffRepository(store),
		attendanceRepo: memory.NewAttendanceRepository(store),
		leaveRepo:      memory.NewLeaveRequestRepository(store),
		now:            now,
	}
	f.svc = NewStaffService(store, f.staffRepo, f.attendanceRepo, f.leaveRepo, staff.DefaultPolicy(), func() time.Time { return f.now })
	return f
}

func (f *fixture) create(t *testing.T, email string) staff.Staff {
	t.Helper()
	st, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{
		FirstName: "Ayse",
		LastName:  "Yilmaz",
		Email:     email,
		HireDate:  "2024-03-01",
	})
	require.NoError(t, err)
	return st
}

var june2025 = time.Date(2025, time.June, 10, 10, 0, 0, 0, time.Local)

func TestStaffService_Create_AppliesDefaults(t *testing.T) {
	f := newFixture(june2025)
	password := "s3cret-pass"

	st, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{
		FirstName: " Ayse ",
		LastName:  "Yilmaz",
		Email:     "ayse@example.com",
		HireDate:  "2024-03-01",
		Password:  &password,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, st.ID)
	assert.Equal(t, "Ayse", st.FirstName)
	assert.Equal(t, staff.RoleEmployee, st.Role)
	assert.True(t, st.Active)
	assert.Equal(t, 20, st.AnnualLeaveDays)
	assert.Equal(t, 20, st.RemainingLeaveDays)
	assert.Nil(t, st.LastCarryoverYear)
	require.NotNil(t, st.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*st.PasswordHash), []byte(password)))
}

func TestStaffService_Create_CustomAnnualDays(t *testing.T) {
	f := newFixture(june2025)
	days := 14

	st, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{
		FirstName:       "Mehmet",
		LastName:        "Demir",
		Email:           "mehmet@example.com",
		HireDate:        "2025-06-10",
		AnnualLeaveDays: &days,
		Role:            "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, 14, st.RemainingLeaveDays)
	assert.Equal(t, staff.RoleManager, st.Role)
}

func TestStaffService_Create_DuplicateEmail(t *testing.T) {
	f := newFixture(june2025)
	f.create(t, "ayse@example.com")

	_, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "AYSE@example.com",
		HireDate:  "2024-03-01",
	})
	assert.ErrorIs(t, err, staff.ErrEmailExists)
}

func TestStaffService_Create_HireDateInFuture(t *testing.T) {
	f := newFixture(june2025)

	_, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{
		FirstName: "Future",
		LastName:  "Hire",
		Email:     "future@example.com",
		HireDate:  "2025-06-11",
	})
	assert.ErrorIs(t, err, staff.ErrHireDateInFuture)
}

func TestStaffService_Create_ValidationErrors(t *testing.T) {
	f := newFixture(june2025)

	_, err := f.svc.Create(context.Background(), staff.CreateStaffRequest{Email: "not-an-email"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "last_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "hire_date")
}

func TestStaffService_Update_PartialFields(t *testing.T) {
	f := newFixture(june2025)
	st := f.create(t, "ayse@example.com")
	dept := "Engineering"
	annual := 25

	updated, err := f.svc.Update(context.Background(), staff.UpdateStaffRequest{
		ID:              st.ID,
		Department:      &dept,
		AnnualLeaveDays: &annual,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayse", updated.FirstName)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Engineering", *updated.Department)
	assert.Equal(t, 25, updated.RemainingLeaveDays)
}

func TestStaffService_Update_EmailTakenByOther(t *testing.T) {
	f := newFixture(june2025)
	f.create(t, "ayse@example.com")
	other := f.create(t, "mehmet@example.com")
	email := "ayse@example.com"

	_, err := f.svc.Update(context.Background(), staff.UpdateStaffRequest{ID: other.ID, Email: &email})
	assert.ErrorIs(t, err, staff.ErrEmailExists)
}

func TestStaffService_Deactivate(t *testing.T) {
	f := newFixture(june2025)
	st := f.create(t, "ayse@example.com")

	got, err := f.svc.Deactivate(context.Background(), st.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	active, err := f.svc.List(context.Background(), staff.StaffFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStaffService_Delete_CascadesRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(june2025)
	st := f.create(t, "ayse@example.com")
	keep := f.create(t, "mehmet@example.com")

	in := june2025
	_, err := f.attendanceRepo.Create(ctx, attendance.Attendance{StaffID: st.ID, Date: calendarDay(june2025), ClockIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = f.leaveRepo.Create(ctx, leave.LeaveRequest{StaffID: st.ID, Status: leave.StatusPending})
	require.NoError(t, err)
	_, err = f.leaveRepo.Create(ctx, leave.LeaveRequest{StaffID: keep.ID, Status: leave.StatusPending})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, st.ID))

	_, err = f.svc.Get(ctx, st.ID)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
	records, err := f.attendanceRepo.ListByStaff(ctx, st.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
	requests, err := f.leaveRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, keep.ID, requests[0].StaffID)
}

func TestStaffService_Delete_UnknownStaff(t *testing.T) {
	f := newFixture(june2025)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "missing"), staff.ErrStaffNotFound)
}

func TestStaffService_ProcessYearEndCarryover_CapsAtFiveDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(june2025)
	st := f.create(t, "ayse@example.com")

	b := st.LeaveBalance
	b.Deduct(8)
	require.NoError(t, f.staffRepo.UpdateLeaveBalance(ctx, st.ID, b))

	balance, err := f.svc.ProcessYearEndCarryover(ctx, st.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.CarriedOverLeaveDays)
	assert.Equal(t, 0, balance.UsedLeaveDays)
	assert.Equal(t, 25, balance.RemainingLeaveDays)
	require.NotNil(t, balance.LastCarryoverYear)
	assert.Equal(t, 2026, *balance.LastCarryoverYear)

	stored, err := f.svc.GetLeaveBalance(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, balance, stored)
}

func TestStaffService_ProcessYearEndCarryover_SameYearIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(june2025)
	st := f.create(t, "ayse@example.com")

	first, err := f.svc.ProcessYearEndCarryover(ctx, st.ID, 2025)
	require.NoError(t, err)

	b := first
	b.Deduct(3)
	require.NoError(t, f.staffRepo.UpdateLeaveBalance(ctx, st.ID, b))

	second, err := f.svc.ProcessYearEndCarryover(ctx, st.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, b, second)
}

func TestStaffService_ProcessYearEndCarryoverForAllStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(time.Date(2026, time.January, 1, 0, 5, 0, 0, time.Local))
	a := f.create(t, "a@example.com")
	b := f.create(t, "b@example.com")
	inactive := f.create(t, "c@example.com")
	_, err := f.svc.Deactivate(ctx, inactive.ID)
	require.NoError(t, err)

	_, err = f.svc.ProcessYearEndCarryover(ctx, b.ID, 2026)
	require.NoError(t, err)

	result, err := f.svc.ProcessYearEndCarryoverForAllStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff.CarryoverResult{Year: 2026, Processed: 1, Skipped: 1}, result)

	again, err := f.svc.ProcessYearEndCarryoverForAllStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff.CarryoverResult{Year: 2026, Skipped: 2}, again)

	got, err := f.svc.GetLeaveBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CarriedOverLeaveDays)
	assert.Equal(t, 25, got.RemainingLeaveDays)

	untouched, err := f.svc.GetLeaveBalance(ctx, inactive.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.LastCarryoverYear)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
