package service

import (
	"context"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/Eduard-Gallardo/lendix/pkg/lock"
	"go.uber.org/zap"
)

const sweepLockKey = "reservation-sweep"

// SweepReservations moves APPROVED reservations whose window has opened to
// ACTIVE and completes held reservations whose window has closed, giving the
// unit back. Running it twice in a row changes nothing the second time.
func (s *Service) SweepReservations(ctx context.Context) (model.SweepResult, error) {
	now := s.now()
	var due []model.Reservation
	err := s.store.View(ctx, func(r repository.Repository) error {
		var err error
		due, err = r.ListDueReservations(ctx, now)
		return err
	})
	if err != nil {
		return model.SweepResult{}, err
	}

	var result model.SweepResult
	for _, candidate := range due {
		var moved model.ReservationState
		err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
			moved = ""
			res, err := r.LockReservation(ctx, candidate.ID)
			if err != nil {
				return err
			}
			switch {
			case res.State.HoldsUnits() && !res.WindowEnd.After(now):
				if _, err := ledger.Release(ctx, r, res.ItemID, 1, 0); err != nil {
					return err
				}
				res.State = model.ReservationCompleted
				fx.event(s.newEvent("", model.ActionReservationCompleted, model.SubjectReservation, res.ID, res.ItemID,
					windowDetail(res)))
			case res.State == model.ReservationApproved && !res.WindowStart.After(now):
				res.State = model.ReservationActive
				fx.event(s.newEvent("", model.ActionReservationActivated, model.SubjectReservation, res.ID, res.ItemID,
					windowDetail(res)))
			default:
				// someone else got here first
				return nil
			}
			moved = res.State
			return r.UpdateReservation(ctx, res)
		})
		if err != nil {
			s.log.Error("sweep reservation", zap.String("reservation", candidate.ID), zap.Error(err))
			continue
		}
		switch moved {
		case model.ReservationActive:
			result.Activated++
		case model.ReservationCompleted:
			result.Completed++
		}
	}
	return result, nil
}

// RunSweeper sweeps every interval until ctx ends. With several replicas the
// locker makes sure only one of them sweeps per tick.
func (s *Service) RunSweeper(ctx context.Context, every time.Duration, locker lock.Locker, ttl time.Duration) error {
	if every <= 0 {
		return nil
	}
	log := s.log.Named("sweeper")
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			release, ok, err := locker.TryLock(ctx, sweepLockKey, ttl)
			if err != nil {
				log.Warn("sweep lock", zap.Error(err))
				continue
			}
			if !ok {
				log.Debug("sweep lock held elsewhere")
				continue
			}
			res, err := s.SweepReservations(ctx)
			release()
			if err != nil {
				log.Error("sweep", zap.Error(err))
				continue
			}
			if res.Activated+res.Completed > 0 {
				log.Info("sweep", zap.Int("activated", res.Activated), zap.Int("completed", res.Completed))
			}
		}
	}
}
