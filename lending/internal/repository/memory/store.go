// Package memory is an in-process repository.Store. Transactions run one at
// a time over a cloned state that replaces the live one on success.
package memory

import (
	"context"
	"sync"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type assignmentKey struct {
	instructorID, apprenticeID, environment string
}

type permissionKey struct {
	instructorID, environment string
}

type state struct {
	items         map[string]model.Item
	loans         map[string]model.Loan
	reservations  map[string]model.Reservation
	users         map[string]model.User
	assignments   map[assignmentKey]model.Assignment
	permissions   map[permissionKey]model.EnvironmentPermission
	notifications map[string]model.Notification
	audit         []model.AuditEntry
	auditSeq      int64
}

func newState() state {
	return state{
		items:         make(map[string]model.Item),
		loans:         make(map[string]model.Loan),
		reservations:  make(map[string]model.Reservation),
		users:         make(map[string]model.User),
		assignments:   make(map[assignmentKey]model.Assignment),
		permissions:   make(map[permissionKey]model.EnvironmentPermission),
		notifications: make(map[string]model.Notification),
	}
}

// clone copies every map. Entity values are copied by value; pointer fields
// inside them are only ever replaced, never written through.
func (s state) clone() state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	for k, v := range s.permissions {
		c.permissions[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	c.audit = append(make([]model.AuditEntry, 0, len(s.audit)), s.audit...)
	c.auditSeq = s.auditSeq
	return c
}

type Store struct {
	mu    sync.RWMutex
	state state
	log   *zap.Logger
}

var _ repository.Store = (*Store)(nil)

func NewStore(log *zap.Logger) *Store {
	return &Store{
		state: newState(),
		log:   log.Named("memory"),
	}
}

func (s *Store) InTx(ctx context.Context, fn func(r repository.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return errs.Storage("begin tx", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(&repo{st: &tx}); err != nil {
		s.log.Debug("rollback", zap.Error(err))
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.Storage("commit", err)
	}
	s.state = tx
	return nil
}

func (s *Store) View(ctx context.Context, fn func(r repository.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return errs.Storage("view", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&repo{st: &s.state, readOnly: true})
}

type repo struct {
	st       *state
	readOnly bool
}

var _ repository.Repository = (*repo)(nil)

func (r *repo) writable(op string) error {
	if r.readOnly {
		return errs.Storage(op, errReadOnly)
	}
	return nil
}

var errReadOnly = errors.New("write inside a read-only view")
