// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	staff      map[string]staff.Staff
	attendance map[string]attendance.Attendance
	leave      map[string]leave.LeaveRequest

	// txMu serializes transactions and the writes made outside them; it plays
	// the role of row locks.
	txMu sync.Mutex
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		staff:      make(map[string]staff.Staff),
		attendance: make(map[string]attendance.Attendance),
		leave:      make(map[string]leave.LeaveRequest),
		now:        time.Now,
	}
}

type txKey struct{}

// txLog collects undo steps for writes made inside a transaction.
type txLog struct {
	undo []func()
}

// WithinTransaction implements database.Transactor. Nested calls join the
// outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*txLog); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	log := &txLog{}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(log)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.rollback(log)
		return err
	}
	return nil
}

func (s *Store) rollback(log *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(log.undo) - 1; i >= 0; i-- {
		log.undo[i]()
	}
}

// lockWrite takes the write lock for a repository mutation. Writes outside a
// transaction also wait for txMu, so a rollback never overwrites them.
func (s *Store) lockWrite(ctx context.Context) (unlock func()) {
	if _, ok := ctx.Value(txKey{}).(*txLog); ok {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// remember registers an undo step; callers must hold s.mu.
func (s *Store) remember(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(txKey{}).(*txLog); ok {
		log.undo = append(log.undo, undo)
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func dateKey(staffID string, date time.Time) string {
	return staffID + "|" + date.Format("2006-01-02")
}
