package memory

import (
	"context"
	"sort"

	"github.com/aburakt/staffy/internal/domain/leave"
)

type leaveRequestRepository struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	defer r.s.lockWrite(ctx)()

	if req.ID == "" {
		req.ID = newID()
	}
	now := r.s.now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.leave[req.ID] = req

	id := req.ID
	r.s.remember(ctx, func() { delete(r.s.leave, id) })
	return req, nil
}

func (r *leaveRequestRepository) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.leave[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepository) ListAll(_ context.Context) ([]leave.LeaveRequest, error) {
	return r.filter(func(leave.LeaveRequest) bool { return true }), nil
}

func (r *leaveRequestRepository) ListByStaff(_ context.Context, staffID string) ([]leave.LeaveRequest, error) {
	return r.filter(func(req leave.LeaveRequest) bool { return req.StaffID == staffID }), nil
}

func (r *leaveRequestRepository) ListByStatus(_ context.Context, status leave.Status) ([]leave.LeaveRequest, error) {
	return r.filter(func(req leave.LeaveRequest) bool { return req.Status == status }), nil
}

func (r *leaveRequestRepository) ListBlockingByStaff(_ context.Context, staffID string) ([]leave.LeaveRequest, error) {
	return r.filter(func(req leave.LeaveRequest) bool { return req.StaffID == staffID && req.Blocks() }), nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.leave[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.CreatedAt = prev.CreatedAt
	req.UpdatedAt = r.s.now()
	r.s.leave[req.ID] = req
	r.s.remember(ctx, func() { r.s.leave[prev.ID] = prev })
	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.leave[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.s.leave, id)
	r.s.remember(ctx, func() { r.s.leave[id] = prev })
	return nil
}

func (r *leaveRequestRepository) DeleteByStaff(ctx context.Context, staffID string) error {
	defer r.s.lockWrite(ctx)()

	for id, req := range r.s.leave {
		if req.StaffID != staffID {
			continue
		}
		prev := req
		delete(r.s.leave, id)
		r.s.remember(ctx, func() { r.s.leave[prev.ID] = prev })
	}
	return nil
}

// filter returns matching requests ordered by start date.
func (r *leaveRequestRepository) filter(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.leave {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
