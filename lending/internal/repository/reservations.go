package repository

import (
	"context"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var reservationColumns = []string{
	"id", "item_id", "requester_id", "requester_name", "state", "window_start", "window_end",
	"location", "decided_at", "decided_by", "reject_reason", "created_at",
}

var heldStates = []model.ReservationState{model.ReservationApproved, model.ReservationActive}

func (r *repository) CreateReservation(ctx context.Context, res model.Reservation) error {
	q := qb.Insert(reservationsTableName).
		Columns(reservationColumns...).
		Values(res.ID, res.ItemID, res.RequesterID, res.RequesterName, res.State, res.WindowStart, res.WindowEnd,
			res.Location, res.DecidedAt, res.DecidedBy, res.RejectReason, res.CreatedAt)
	_, err := r.exec(ctx, "CreateReservation", q)
	return err
}

func (r *repository) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	var res model.Reservation
	err := r.get(ctx, "GetReservation", &res,
		qb.Select(reservationColumns...).From(reservationsTableName).Where(sq.Eq{"id": id}))
	return res, err
}

func (r *repository) LockReservation(ctx context.Context, id string) (model.Reservation, error) {
	var res model.Reservation
	err := r.get(ctx, "LockReservation", &res,
		qb.Select(reservationColumns...).From(reservationsTableName).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
	return res, err
}

func (r *repository) UpdateReservation(ctx context.Context, res model.Reservation) error {
	return r.execOne(ctx, "UpdateReservation", qb.Update(reservationsTableName).
		Set("state", res.State).
		Set("decided_at", res.DecidedAt).
		Set("decided_by", res.DecidedBy).
		Set("reject_reason", res.RejectReason).
		Where(sq.Eq{"id": res.ID}))
}

func (r *repository) ListReservations(ctx context.Context, filter model.ReservationFilter) ([]model.Reservation, error) {
	q := qb.Select(reservationColumns...).From(reservationsTableName).OrderBy("window_start", "id")
	if filter.ItemID != "" {
		q = q.Where(sq.Eq{"item_id": filter.ItemID})
	}
	if filter.RequesterID != "" {
		q = q.Where(sq.Eq{"requester_id": filter.RequesterID})
	}
	if filter.State != "" {
		q = q.Where(sq.Eq{"state": filter.State})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	out := make([]model.Reservation, 0)
	err := r.selectAll(ctx, "ListReservations", &out, q)
	return out, err
}

func (r *repository) FindOverlapping(ctx context.Context, itemID string, start, end time.Time, excludeID string) ([]model.Reservation, error) {
	q := qb.Select(reservationColumns...).From(reservationsTableName).
		Where(sq.Eq{"item_id": itemID, "state": heldStates}).
		Where(sq.Lt{"window_start": end}).
		Where(sq.Gt{"window_end": start}).
		OrderBy("window_start")
	if excludeID != "" {
		q = q.Where(sq.NotEq{"id": excludeID})
	}
	out := make([]model.Reservation, 0)
	err := r.selectAll(ctx, "FindOverlapping", &out, q)
	return out, err
}

func (r *repository) ListDueReservations(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	q := qb.Select(reservationColumns...).From(reservationsTableName).
		Where(sq.Or{
			sq.And{sq.Eq{"state": model.ReservationApproved}, sq.LtOrEq{"window_start": now}},
			sq.And{sq.Eq{"state": model.ReservationActive}, sq.LtOrEq{"window_end": now}},
		}).
		OrderBy("window_end", "id")
	out := make([]model.Reservation, 0)
	err := r.selectAll(ctx, "ListDueReservations", &out, q)
	return out, err
}
