package leave

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, 2 June 2025.
var today = time.Date(2025, time.June, 2, 10, 30, 0, 0, time.Local)

var emailSeq atomic.Int64

type fixture struct {
	svc       leave.LeaveService
	staffRepo staff.StaffRepository
	leaveRepo leave.LeaveRequestRepository
}

func newFixture(holidays ...calendar.Holiday) *fixture {
	store := memory.NewStore()
	f := &fixture{
		staffRepo: memory.NewStaffRepository(store),
		leaveRepo: memory.NewLeaveRequestRepository(store),
	}
	f.svc = NewLeaveService(store, f.leaveRepo, f.staffRepo, calendar.New(holidays...), func() time.Time { return today })
	return f
}

func (f *fixture) staffWithBalance(t *testing.T, annual, used int) staff.Staff {
	t.Helper()
	b := staff.NewLeaveBalance(annual)
	b.Deduct(used)
	st, err := f.staffRepo.Create(context.Background(), staff.Staff{
		FirstName:    "Ayse",
		LastName:     "Yilmaz",
		Email:        fmt.Sprintf("staff%d@example.com", emailSeq.Add(1)),
		HireDate:     time.Date(2023, time.January, 2, 0, 0, 0, 0, time.Local),
		Role:         staff.RoleEmployee,
		Active:       true,
		LeaveBalance: b,
	})
	require.NoError(t, err)
	return st
}

func (f *fixture) request(t *testing.T, staffID, start, end string) leave.LeaveRequest {
	t.Helper()
	req, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		StaffID:   staffID,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return req
}

func TestLeaveService_Create_Success(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	reason := "family trip"

	req, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		StaffID:   st.ID,
		StartDate: "2025-06-09",
		EndDate:   "2025-06-13",
		LeaveType: "sick",
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Equal(t, leave.LeaveTypeSick, req.LeaveType)
	assert.Equal(t, 5, req.RequestedDays)
	assert.Equal(t, "2025-06-02", req.RequestDate.Format(calendar.DateLayout))
	assert.Nil(t, req.ApprovalDate)
}

func TestLeaveService_Create_DefaultsToAnnual(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)

	req := f.request(t, st.ID, "2025-06-09", "2025-06-09")
	assert.Equal(t, leave.LeaveTypeAnnual, req.LeaveType)
	assert.Equal(t, 1, req.RequestedDays)
}

func TestLeaveService_Create_SkipsHolidays(t *testing.T) {
	f := newFixture(calendar.Holiday{Date: time.Date(2025, time.June, 11, 0, 0, 0, 0, time.Local), Name: "Test Day"})
	st := f.staffWithBalance(t, 20, 0)

	req := f.request(t, st.ID, "2025-06-09", "2025-06-15")
	assert.Equal(t, 4, req.RequestedDays)
}

func TestLeaveService_Create_StartingTodayIsAllowed(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)

	req := f.request(t, st.ID, "2025-06-02", "2025-06-03")
	assert.Equal(t, 2, req.RequestedDays)
}

func TestLeaveService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{name: "start in the past", start: "2025-06-01", end: "2025-06-03", want: leave.ErrStartDateInPast},
		{name: "end before start", start: "2025-06-10", end: "2025-06-09", want: leave.ErrEndBeforeStart},
		{name: "weekend only", start: "2025-06-07", end: "2025-06-08", want: leave.ErrNoWorkingDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			st := f.staffWithBalance(t, 20, 0)

			_, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
				StaffID:   st.ID,
				StartDate: tt.start,
				EndDate:   tt.end,
			})
			assert.ErrorIs(t, err, tt.want)

			all, err := f.svc.ListLeaveRequests(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestLeaveService_Create_MissingDates(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)

	_, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{StaffID: st.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
	assert.Contains(t, err.Error(), "end_date")
}

func TestLeaveService_Create_UnknownStaff(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		StaffID:   "missing",
		StartDate: "2025-06-09",
		EndDate:   "2025-06-10",
	})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestLeaveService_Create_Overlap(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	f.request(t, st.ID, "2025-06-09", "2025-06-13")

	_, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		StaffID:   st.ID,
		StartDate: "2025-06-13",
		EndDate:   "2025-06-17",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveOverlap)

	// Another person's leave never blocks.
	other := f.staffWithBalance(t, 20, 0)
	f.request(t, other.ID, "2025-06-09", "2025-06-13")
}

func TestLeaveService_Create_RejectedRequestDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	first := f.request(t, st.ID, "2025-06-09", "2025-06-13")

	_, err := f.svc.RejectLeaveRequest(ctx, leave.RejectLeaveRequestRequest{ID: first.ID, Reason: "busy week"})
	require.NoError(t, err)

	f.request(t, st.ID, "2025-06-10", "2025-06-11")
}

func TestLeaveService_Create_ConcurrentOverlapAdmitsOne(t *testing.T) {
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)

	var wg sync.WaitGroup
	var ok, overlap atomic.Int32
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
				StaffID:   st.ID,
				StartDate: "2025-06-09",
				EndDate:   "2025-06-13",
			})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, leave.ErrLeaveOverlap):
				overlap.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(9), overlap.Load())
}

func TestLeaveService_Approve_DeductsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 5)
	require.Equal(t, 15, st.RemainingLeaveDays)
	req := f.request(t, st.ID, "2025-06-09", "2025-06-13")

	approved, err := f.svc.ApproveLeaveRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovalDate)
	assert.Equal(t, "2025-06-02", approved.ApprovalDate.Format(calendar.DateLayout))

	got, err := f.staffRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.UsedLeaveDays)
	assert.Equal(t, 10, got.RemainingLeaveDays)
	assert.Equal(t, got.AnnualLeaveDays+got.CarriedOverLeaveDays-got.UsedLeaveDays, got.RemainingLeaveDays)
}

func TestLeaveService_Approve_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 17)
	req := f.request(t, st.ID, "2025-06-09", "2025-06-13")

	_, err := f.svc.ApproveLeaveRequest(ctx, req.ID)
	assert.ErrorIs(t, err, leave.ErrInsufficientLeaveDays)

	got, err := f.staffRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, got.UsedLeaveDays)
	assert.Equal(t, 3, got.RemainingLeaveDays)

	stored, err := f.svc.GetLeaveRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
}

func TestLeaveService_Approve_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	req := f.request(t, st.ID, "2025-06-09", "2025-06-10")

	_, err := f.svc.ApproveLeaveRequest(ctx, req.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveLeaveRequest(ctx, req.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidStatus)

	_, err = f.svc.RejectLeaveRequest(ctx, leave.RejectLeaveRequestRequest{ID: req.ID, Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrInvalidStatus)

	got, err := f.staffRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsedLeaveDays)
}

func TestLeaveService_Approve_UnknownRequest(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ApproveLeaveRequest(context.Background(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	req := f.request(t, st.ID, "2025-06-09", "2025-06-10")

	_, err := f.svc.RejectLeaveRequest(ctx, leave.RejectLeaveRequestRequest{ID: req.ID, Reason: "   "})
	assert.ErrorIs(t, err, leave.ErrRejectionReason)

	rejected, err := f.svc.RejectLeaveRequest(ctx, leave.RejectLeaveRequestRequest{ID: req.ID, Reason: "team offsite"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "team offsite", *rejected.RejectionReason)

	got, err := f.staffRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.RemainingLeaveDays)
}

func TestLeaveService_Delete_KeepsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	req := f.request(t, st.ID, "2025-06-09", "2025-06-10")
	_, err := f.svc.ApproveLeaveRequest(ctx, req.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLeaveRequest(ctx, req.ID))
	_, err = f.svc.GetLeaveRequest(ctx, req.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	got, err := f.staffRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, got.RemainingLeaveDays)

	assert.ErrorIs(t, f.svc.DeleteLeaveRequest(ctx, req.ID), leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_ListByStatusAndStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	st := f.staffWithBalance(t, 20, 0)
	other := f.staffWithBalance(t, 20, 0)
	first := f.request(t, st.ID, "2025-06-09", "2025-06-10")
	f.request(t, st.ID, "2025-06-16", "2025-06-17")
	f.request(t, other.ID, "2025-06-09", "2025-06-10")
	_, err := f.svc.ApproveLeaveRequest(ctx, first.ID)
	require.NoError(t, err)

	pending, err := f.svc.ListByStatus(ctx, leave.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	mine, err := f.svc.ListByStaff(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = f.svc.ListByStatus(ctx, leave.Status("CANCELLED"))
	assert.ErrorIs(t, err, leave.ErrInvalidStatusName)

	_, err = f.svc.ListByStaff(ctx, "missing")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
