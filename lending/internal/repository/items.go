package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var itemColumns = []string{
	"id", "name", "description", "category", "condition", "total_units", "available_units",
	"requires_authorization", "restricted_to_privileged", "created_at", "updated_at",
}

func (r *repository) CreateItem(ctx context.Context, item model.Item) error {
	q := qb.Insert(itemsTableName).
		Columns(itemColumns...).
		Values(item.ID, item.Name, item.Description, item.Category, item.Condition, item.TotalUnits,
			item.AvailableUnits, item.RequiresAuthorization, item.RestrictedToPrivileged, item.CreatedAt, item.UpdatedAt)
	_, err := r.exec(ctx, "CreateItem", q)
	return err
}

func (r *repository) GetItem(ctx context.Context, id string) (model.Item, error) {
	var item model.Item
	err := r.get(ctx, "GetItem", &item,
		qb.Select(itemColumns...).From(itemsTableName).Where(sq.Eq{"id": id}))
	return item, err
}

func (r *repository) LockItem(ctx context.Context, id string) (model.Item, error) {
	var item model.Item
	err := r.get(ctx, "LockItem", &item,
		qb.Select(itemColumns...).From(itemsTableName).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
	return item, err
}

func (r *repository) UpdateItem(ctx context.Context, id string, upd model.ItemUpdate, at time.Time) (model.Item, error) {
	q := qb.Update(itemsTableName).Set("updated_at", at).Where(sq.Eq{"id": id})
	if upd.Name != nil {
		q = q.Set("name", *upd.Name)
	}
	if upd.Description != nil {
		q = q.Set("description", *upd.Description)
	}
	if upd.Category != nil {
		q = q.Set("category", *upd.Category)
	}
	if upd.RequiresAuthorization != nil {
		q = q.Set("requires_authorization", *upd.RequiresAuthorization)
	}
	if upd.RestrictedToPrivileged != nil {
		q = q.Set("restricted_to_privileged", *upd.RestrictedToPrivileged)
	}
	var item model.Item
	err := r.get(ctx, "UpdateItem", &item, q.Suffix("RETURNING "+strings.Join(itemColumns, ", ")))
	return item, err
}

func (r *repository) DeleteItem(ctx context.Context, id string) error {
	return r.execOne(ctx, "DeleteItem", qb.Delete(itemsTableName).Where(sq.Eq{"id": id}))
}

func (r *repository) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	q := qb.Select(itemColumns...).From(itemsTableName).OrderBy("name", "id")
	if filter.Category != "" {
		q = q.Where(sq.Eq{"category": filter.Category})
	}
	if filter.OnlyAvailable {
		q = q.Where(sq.Gt{"available_units": 0})
	}
	if filter.OnlyProblems {
		q = q.Where(sq.NotEq{"condition": model.ConditionGood})
	}
	items := make([]model.Item, 0)
	err := r.selectAll(ctx, "ListItems", &items, q)
	return items, err
}

func (r *repository) CountItemHolds(ctx context.Context, itemID string) (int, error) {
	var n int
	loans := qb.Select("count(*)").From(loansTableName).
		Where(sq.Eq{"item_id": itemID, "state": []model.LoanState{model.LoanPending, model.LoanActive}})
	if err := r.get(ctx, "CountItemHolds loans", &n, loans); err != nil {
		return 0, err
	}
	var m int
	res := qb.Select("count(*)").From(reservationsTableName).
		Where(sq.Eq{"item_id": itemID, "state": []model.ReservationState{
			model.ReservationPending, model.ReservationApproved, model.ReservationActive}})
	if err := r.get(ctx, "CountItemHolds reservations", &m, res); err != nil {
		return 0, err
	}
	return n + m, nil
}

func (r *repository) LockItemUnits(ctx context.Context, itemID string) (model.ItemUnits, error) {
	var row struct {
		ID        string `db:"id"`
		Total     int    `db:"total_units"`
		Available int    `db:"available_units"`
	}
	err := r.get(ctx, "LockItemUnits", &row,
		qb.Select("id", "total_units", "available_units").From(itemsTableName).
			Where(sq.Eq{"id": itemID}).Suffix("FOR UPDATE"))
	if err != nil {
		return model.ItemUnits{}, err
	}
	return model.ItemUnits{ItemID: row.ID, Total: row.Total, Available: row.Available}, nil
}

func (r *repository) WriteItemUnits(ctx context.Context, units model.ItemUnits) error {
	return r.execOne(ctx, "WriteItemUnits", qb.Update(itemsTableName).
		Set("total_units", units.Total).
		Set("available_units", units.Available).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": units.ItemID}))
}

func (r *repository) WriteItemCondition(ctx context.Context, itemID string, condition model.Condition) error {
	return r.execOne(ctx, "WriteItemCondition", qb.Update(itemsTableName).
		Set("condition", condition).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID}))
}
