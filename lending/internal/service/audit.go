package service

import (
	"context"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/pkg/errors"
)

const defaultAuditLimit = 100

// RecordAudit folds one lifecycle event into the audit log.
func (s *Service) RecordAudit(ctx context.Context, ev model.Event) error {
	if ev.Action == "" || ev.SubjectID == "" {
		return errors.Wrap(errs.ErrValidation, "audit event without action or subject")
	}
	return s.store.InTx(ctx, func(r repository.Repository) error {
		return r.AppendAudit(ctx, ev.AuditEntry())
	})
}

func (s *Service) ListAudit(ctx context.Context, actor model.Actor, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	var out []model.AuditEntry
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		out, err = r.ListAudit(ctx, limit)
		return err
	})
	return out, err
}

func (s *Service) Stats(ctx context.Context, actor model.Actor) (model.Stats, error) {
	var st model.Stats
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			return errors.Wrap(errs.ErrPermissionDenied, "dashboard is for instructors and admins")
		}
		st, err = r.Stats(ctx, u.ID)
		return err
	})
	return st, err
}
