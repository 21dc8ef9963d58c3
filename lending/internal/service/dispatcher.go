package service

import (
	"context"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Dispatcher writes notifications outside of the transaction that caused
// them. A failed write is logged and dropped.
type Dispatcher struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewDispatcher(store repository.Store, log *zap.Logger, now func() time.Time) *Dispatcher {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Dispatcher{
		store: store,
		log:   log.Named("dispatcher"),
		now:   now,
	}
}

// Notify creates one row per distinct recipient and reports how many landed.
func (d *Dispatcher) Notify(ctx context.Context, recipients []string, subjectType model.SubjectType, subjectID, message string) int {
	seen := make(map[string]struct{}, len(recipients))
	sent := 0
	for _, id := range recipients {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		n := model.Notification{
			ID:          uuid.NewString(),
			RecipientID: id,
			SubjectType: subjectType,
			SubjectID:   subjectID,
			Message:     message,
			CreatedAt:   d.now(),
		}
		err := d.store.InTx(ctx, func(r repository.Repository) error {
			return r.CreateNotification(ctx, n)
		})
		if err != nil {
			d.log.Error("notify",
				zap.String("recipient", id),
				zap.String("subject_type", string(subjectType)),
				zap.String("subject_id", subjectID),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// MarkSubjectRead clears recipientID's notifications about one subject.
func (d *Dispatcher) MarkSubjectRead(ctx context.Context, recipientID string, subjectType model.SubjectType, subjectID string) {
	err := d.store.InTx(ctx, func(r repository.Repository) error {
		return r.MarkSubjectNotificationsRead(ctx, recipientID, subjectType, subjectID)
	})
	if err != nil {
		d.log.Error("mark subject read", zap.String("recipient", recipientID), zap.String("subject_id", subjectID), zap.Error(err))
	}
}

func (s *Service) ListNotifications(ctx context.Context, actor model.Actor, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		out, err = r.ListNotifications(ctx, u.ID, unreadOnly)
		return err
	})
	return out, err
}

func (s *Service) MarkNotificationRead(ctx context.Context, actor model.Actor, id string) error {
	return s.store.InTx(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		n, err := r.GetNotification(ctx, id)
		if err != nil {
			return err
		}
		if n.RecipientID != u.ID && u.Role != model.RoleAdmin {
			return errors.Wrap(errs.ErrPermissionDenied, "notification belongs to another user")
		}
		return r.MarkNotificationRead(ctx, id)
	})
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int, error) {
	var n int
	err := s.store.InTx(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		n, err = r.MarkAllNotificationsRead(ctx, u.ID)
		return err
	})
	return n, err
}

// PurgeReadNotifications deletes read notifications: an admin's call purges
// everyone's, anyone else purges their own.
func (s *Service) PurgeReadNotifications(ctx context.Context, actor model.Actor) (int, error) {
	var n int
	err := s.store.InTx(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		scope := u.ID
		if u.Role == model.RoleAdmin {
			scope = ""
		}
		n, err = r.PurgeReadNotifications(ctx, scope)
		return err
	})
	return n, err
}
