package memory

import (
	"context"
	"sort"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	defer r.s.lockWrite(ctx)()

	k := dateKey(a.StaffID, a.Date)
	for _, existing := range r.s.attendance {
		if dateKey(existing.StaffID, existing.Date) == k {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}

	if a.ID == "" {
		a.ID = newID()
	}
	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendance[a.ID] = a

	id := a.ID
	r.s.remember(ctx, func() { delete(r.s.attendance, id) })
	return a, nil
}

func (r *attendanceRepository) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) GetByStaffAndDate(_ context.Context, staffID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	k := dateKey(staffID, date)
	for _, a := range r.s.attendance {
		if dateKey(a.StaffID, a.Date) == k {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepository) GetByStaffAndDateForUpdate(ctx context.Context, staffID string, date time.Time) (attendance.Attendance, error) {
	return r.GetByStaffAndDate(ctx, staffID, date)
}

func (r *attendanceRepository) ListByStaff(_ context.Context, staffID string) ([]attendance.Attendance, error) {
	return r.filter(func(a attendance.Attendance) bool { return a.StaffID == staffID }), nil
}

func (r *attendanceRepository) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	day := date.Format("2006-01-02")
	return r.filter(func(a attendance.Attendance) bool { return a.Date.Format("2006-01-02") == day }), nil
}

func (r *attendanceRepository) ListByStaffAndRange(_ context.Context, staffID string, start, end time.Time) ([]attendance.Attendance, error) {
	from, to := start.Format("2006-01-02"), end.Format("2006-01-02")
	return r.filter(func(a attendance.Attendance) bool {
		d := a.Date.Format("2006-01-02")
		return a.StaffID == staffID && d >= from && d <= to
	}), nil
}

func (r *attendanceRepository) ListPendingApproval(_ context.Context) ([]attendance.Attendance, error) {
	return r.filter(func(a attendance.Attendance) bool { return !a.Approved }), nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.attendance[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.CreatedAt = prev.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.attendance[a.ID] = a
	r.s.remember(ctx, func() { r.s.attendance[prev.ID] = prev })
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.attendance[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.s.attendance, id)
	r.s.remember(ctx, func() { r.s.attendance[id] = prev })
	return nil
}

func (r *attendanceRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	defer r.s.lockWrite(ctx)()

	for id, a := range r.s.attendance {
		if a.StaffID != staffID {
			continue
		}
		prev := a
		delete(r.s.attendance, id)
		r.s.remember(ctx, func() { r.s.attendance[prev.ID] = prev })
	}
	return nil
}

// filter returns matching records ordered by date.
func (r *attendanceRepository) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendance {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
