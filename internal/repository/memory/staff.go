package memory

import (
	"context"
	"sort"

	"github.com/aburakt/staffy/internal/domain/staff"
)

type staffRepository struct {
	s *Store
}

func NewStaffRepository(s *Store) staff.StaffRepository {
	return &staffRepository{s: s}
}

func (r *staffRepository) Create(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	defer r.s.lockWrite(ctx)()

	for _, existing := range r.s.staff {
		if staff.NormalizeEmail(existing.Email) == staff.NormalizeEmail(st.Email) {
			return staff.Staff{}, staff.ErrEmailExists
		}
	}

	if st.ID == "" {
		st.ID = newID()
	}
	now := r.s.now()
	st.CreatedAt, st.UpdatedAt = now, now
	r.s.staff[st.ID] = st

	id := st.ID
	r.s.remember(ctx, func() { delete(r.s.staff, id) })
	return st, nil
}

func (r *staffRepository) GetByID(_ context.Context, id string) (staff.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return st, nil
}

func (r *staffRepository) GetByIDForUpdate(ctx context.Context, id string) (staff.Staff, error) {
	return r.GetByID(ctx, id)
}

func (r *staffRepository) GetByEmail(_ context.Context, email string) (staff.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, st := range r.s.staff {
		if staff.NormalizeEmail(st.Email) == staff.NormalizeEmail(email) {
			return st, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (r *staffRepository) ExistsByEmail(_ context.Context, email string, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, st := range r.s.staff {
		if st.ID != excludeID && staff.NormalizeEmail(st.Email) == staff.NormalizeEmail(email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *staffRepository) List(_ context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]staff.Staff, 0, len(r.s.staff))
	for _, st := range r.s.staff {
		if filter.ActiveOnly && !st.Active {
			continue
		}
		if filter.Department != nil && (st.Department == nil || *st.Department != *filter.Department) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *staffRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.staff), nil
}

func (r *staffRepository) Update(ctx context.Context, st staff.Staff) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.staff[st.ID]
	if !ok {
		return staff.ErrStaffNotFound
	}
	for _, existing := range r.s.staff {
		if existing.ID != st.ID && staff.NormalizeEmail(existing.Email) == staff.NormalizeEmail(st.Email) {
			return staff.ErrEmailExists
		}
	}

	st.CreatedAt = prev.CreatedAt
	st.UpdatedAt = r.s.now()
	r.s.staff[st.ID] = st
	r.s.remember(ctx, func() { r.s.staff[prev.ID] = prev })
	return nil
}

func (r *staffRepository) UpdateLeaveBalance(ctx context.Context, id string, balance staff.LeaveBalance) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.staff[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	next := prev
	next.LeaveBalance = balance
	next.UpdatedAt = r.s.now()
	r.s.staff[id] = next
	r.s.remember(ctx, func() { r.s.staff[id] = prev })
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	prev, ok := r.s.staff[id]
	if !ok {
		return staff.ErrStaffNotFound
	}
	delete(r.s.staff, id)
	r.s.remember(ctx, func() { r.s.staff[id] = prev })
	return nil
}
