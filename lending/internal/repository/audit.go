package repository

import (
	"context"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

// AppendAudit ignores an entry whose event was already recorded.
func (r *repository) AppendAudit(ctx context.Context, e model.AuditEntry) error {
	_, err := r.exec(ctx, "AppendAudit", qb.Insert(auditTableName).
		Columns("event_id", "occurred_at", "actor_id", "action", "subject_type", "subject_id", "item_id", "detail").
		Values(e.EventID, e.OccurredAt, e.ActorID, e.Action, e.SubjectType, e.SubjectID, e.ItemID, e.Detail).
		Suffix("ON CONFLICT (event_id) WHERE event_id <> '' DO NOTHING"))
	return err
}

func (r *repository) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	q := qb.Select("id", "event_id", "occurred_at", "actor_id", "action", "subject_type", "subject_id", "item_id", "detail").
		From(auditTableName).
		OrderBy("occurred_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	out := make([]model.AuditEntry, 0)
	err := r.selectAll(ctx, "ListAudit", &out, q)
	return out, err
}

const statsQuery = `
select
    (select count(*) from items)                                           as total_items,
    (select count(*) from items where available_units > 0)                 as items_available,
    (select count(*) from items where condition <> 'GOOD')                 as problem_items,
    (select count(*) from loans where state = 'ACTIVE')                    as active_loans,
    (select count(*) from loans where state = 'PENDING')                   as pending_loans,
    (select count(*) from reservations where state = 'PENDING')            as pending_reservations,
    (select count(*) from users where active)                              as active_users,
    (select count(*) from notifications where recipient_id = $1 and not read) as unread_notifications`

func (r *repository) Stats(ctx context.Context, recipientID string) (model.Stats, error) {
	var st model.Stats
	err := r.get(ctx, "Stats", &st, sq.Expr(statsQuery, recipientID))
	return st, err
}
