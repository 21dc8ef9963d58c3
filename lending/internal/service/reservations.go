package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/gate"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const windowLayout = "2006-01-02 15:04"

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.Wrap(errs.ErrValidation, "reservation window needs a start and an end")
	}
	if !start.Before(end) {
		return errors.Wrapf(errs.ErrValidation, "window start %s is not before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// conflictCheck must run after the item row is locked.
func conflictCheck(ctx context.Context, r repository.Repository, itemID string, start, end time.Time, excludeID string) error {
	over, err := r.FindOverlapping(ctx, itemID, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(over) > 0 {
		return errors.Wrapf(errs.ErrConflict, "window overlaps reservation %s [%s, %s)", over[0].ID,
			over[0].WindowStart.Format(windowLayout), over[0].WindowEnd.Format(windowLayout))
	}
	return nil
}

// RequestReservation claims one unit for a window. Auto-approved requests go
// straight to APPROVED with the unit held; gated ones wait PENDING.
func (s *Service) RequestReservation(ctx context.Context, actor model.Actor, req model.ReservationRequest) (model.Reservation, error) {
	if err := validateWindow(req.WindowStart, req.WindowEnd); err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		item, err := r.LockItem(ctx, req.ItemID)
		if err != nil {
			return err
		}
		outcome, err := gate.Decide(u.Role, item.Policy())
		if err != nil {
			return err
		}

		now := s.now()
		res = model.Reservation{
			ID:            uuid.NewString(),
			ItemID:        item.ID,
			RequesterID:   u.ID,
			RequesterName: req.RequesterName,
			WindowStart:   req.WindowStart.UTC(),
			WindowEnd:     req.WindowEnd.UTC(),
			Location:      req.Location,
			CreatedAt:     now,
		}
		if res.RequesterName == "" {
			res.RequesterName = u.Name
		}

		switch outcome {
		case gate.AutoApprove:
			if err := conflictCheck(ctx, r, item.ID, res.WindowStart, res.WindowEnd, ""); err != nil {
				return err
			}
			if _, err := ledger.Reserve(ctx, r, item.ID, 1); err != nil {
				return err
			}
			res.State = model.ReservationApproved
			res.DecidedAt = timePtr(now)
			if err := r.CreateReservation(ctx, res); err != nil {
				return err
			}
			fx.event(s.newEvent(u.ID, model.ActionReservationApproved, model.SubjectReservation, res.ID, item.ID,
				windowDetail(res)+", auto approved"))
		case gate.RequireApproval:
			approver, err := gate.Approver(ctx, r, u.ID, req.Location)
			if err != nil {
				return err
			}
			res.State = model.ReservationPending
			if err := r.CreateReservation(ctx, res); err != nil {
				return err
			}
			fx.notify(model.SubjectReservation, res.ID,
				fmt.Sprintf("%s wants to reserve %s %s", u.Name, item.Name, windowDetail(res)),
				approver)
			fx.event(s.newEvent(u.ID, model.ActionReservationRequested, model.SubjectReservation, res.ID, item.ID,
				windowDetail(res)))
		}
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// DecideReservation approves or rejects a PENDING reservation. Approval
// re-checks conflicts and availability under the item lock; on failure the
// reservation stays PENDING.
func (s *Service) DecideReservation(ctx context.Context, actor model.Actor, id string, req model.DecisionRequest) (model.Reservation, error) {
	if req.Decision != model.DecisionApprove && req.Decision != model.DecisionReject {
		return model.Reservation{}, errors.Wrapf(errs.ErrValidation, "unknown decision %q", req.Decision)
	}
	var res model.Reservation
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			return errors.Wrap(errs.ErrPermissionDenied, "only instructors and admins decide reservations")
		}
		res, err = r.LockReservation(ctx, id)
		if err != nil {
			return err
		}
		if res.State != model.ReservationPending {
			return errors.Wrapf(errs.ErrInvalidState, "reservation %s is %s", res.ID, res.State)
		}

		now := s.now()
		res.DecidedAt = timePtr(now)
		res.DecidedBy = strPtr(u.ID)
		if req.Decision == model.DecisionApprove {
			if _, err := r.LockItem(ctx, res.ItemID); err != nil {
				return err
			}
			if err := conflictCheck(ctx, r, res.ItemID, res.WindowStart, res.WindowEnd, res.ID); err != nil {
				return err
			}
			if _, err := ledger.Reserve(ctx, r, res.ItemID, 1); err != nil {
				if errors.Is(err, errs.ErrInsufficientAvailability) {
					return errs.Depleted(res.ItemID)
				}
				return err
			}
			res.State = model.ReservationApproved
			fx.notify(model.SubjectReservation, res.ID, "your reservation was approved "+windowDetail(res), res.RequesterID)
			fx.event(s.newEvent(u.ID, model.ActionReservationApproved, model.SubjectReservation, res.ID, res.ItemID,
				windowDetail(res)))
		} else {
			res.State = model.ReservationRejected
			res.RejectReason = req.Reason
			fx.notify(model.SubjectReservation, res.ID, rejectedMessage("reservation", req.Reason), res.RequesterID)
			fx.event(s.newEvent(u.ID, model.ActionReservationRejected, model.SubjectReservation, res.ID, res.ItemID,
				req.Reason))
		}
		if err := r.UpdateReservation(ctx, res); err != nil {
			return err
		}
		fx.markRead(u.ID, model.SubjectReservation, res.ID)
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// HasConflict reports whether [start, end) overlaps an APPROVED or ACTIVE
// reservation of the item other than excludeID.
func (s *Service) HasConflict(ctx context.Context, itemID string, start, end time.Time, excludeID string) (bool, error) {
	if err := validateWindow(start, end); err != nil {
		return false, err
	}
	var conflict bool
	err := s.store.View(ctx, func(r repository.Repository) error {
		if _, err := r.GetItem(ctx, itemID); err != nil {
			return err
		}
		over, err := r.FindOverlapping(ctx, itemID, start.UTC(), end.UTC(), excludeID)
		conflict = len(over) > 0
		return err
	})
	return conflict, err
}

// CancelReservation is open to the requester before the window starts and to
// admins at any time. A held unit goes back to the item.
func (s *Service) CancelReservation(ctx context.Context, actor model.Actor, id string) (model.Reservation, error) {
	var res model.Reservation
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		res, err = r.LockReservation(ctx, id)
		if err != nil {
			return err
		}
		isAdmin := u.Role == model.RoleAdmin
		if res.RequesterID != u.ID && !isAdmin {
			return errors.Wrap(errs.ErrPermissionDenied, "reservation belongs to another user")
		}
		if res.State.Terminal() {
			return errors.Wrapf(errs.ErrInvalidState, "reservation %s is %s", res.ID, res.State)
		}
		if !isAdmin && !s.now().Before(res.WindowStart) {
			return errors.Wrap(errs.ErrPermissionDenied, "reservation window has already started")
		}
		if res.State.HoldsUnits() {
			if _, err := ledger.Release(ctx, r, res.ItemID, 1, 0); err != nil {
				return err
			}
		}
		res.State = model.ReservationCancelled
		if err := r.UpdateReservation(ctx, res); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionReservationCancelled, model.SubjectReservation, res.ID, res.ItemID,
			windowDetail(res)))
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

func (s *Service) GetReservation(ctx context.Context, actor model.Actor, id string) (model.Reservation, error) {
	var res model.Reservation
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		res, err = r.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() && res.RequesterID != u.ID {
			return errors.Wrap(errs.ErrPermissionDenied, "reservation belongs to another user")
		}
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

func (s *Service) ListReservations(ctx context.Context, actor model.Actor, filter model.ReservationFilter) ([]model.Reservation, error) {
	var out []model.Reservation
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			filter.RequesterID = u.ID
		}
		out, err = r.ListReservations(ctx, filter)
		return err
	})
	return out, err
}

func windowDetail(res model.Reservation) string {
	return fmt.Sprintf("[%s, %s)", res.WindowStart.Format(windowLayout), res.WindowEnd.Format(windowLayout))
}
