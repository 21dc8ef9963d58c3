package repository

import (
	"context"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var notificationColumns = []string{"id", "recipient_id", "subject_type", "subject_id", "message", "read", "created_at"}

func (r *repository) CreateNotification(ctx context.Context, n model.Notification) error {
	_, err := r.exec(ctx, "CreateNotification", qb.Insert(notificationsTableName).
		Columns(notificationColumns...).
		Values(n.ID, n.RecipientID, n.SubjectType, n.SubjectID, n.Message, n.Read, n.CreatedAt))
	return err
}

func (r *repository) GetNotification(ctx context.Context, id string) (model.Notification, error) {
	var n model.Notification
	err := r.get(ctx, "GetNotification", &n,
		qb.Select(notificationColumns...).From(notificationsTableName).Where(sq.Eq{"id": id}))
	return n, err
}

func (r *repository) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	q := qb.Select(notificationColumns...).From(notificationsTableName).
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC", "id")
	if unreadOnly {
		q = q.Where(sq.Eq{"read": false})
	}
	out := make([]model.Notification, 0)
	err := r.selectAll(ctx, "ListNotifications", &out, q)
	return out, err
}

func (r *repository) MarkNotificationRead(ctx context.Context, id string) error {
	return r.execOne(ctx, "MarkNotificationRead",
		qb.Update(notificationsTableName).Set("read", true).Where(sq.Eq{"id": id}))
}

func (r *repository) MarkAllNotificationsRead(ctx context.Context, recipientID string) (int, error) {
	return r.exec(ctx, "MarkAllNotificationsRead", qb.Update(notificationsTableName).
		Set("read", true).
		Where(sq.Eq{"recipient_id": recipientID, "read": false}))
}

func (r *repository) MarkSubjectNotificationsRead(ctx context.Context, recipientID string, subjectType model.SubjectType, subjectID string) error {
	_, err := r.exec(ctx, "MarkSubjectNotificationsRead", qb.Update(notificationsTableName).
		Set("read", true).
		Where(sq.Eq{"recipient_id": recipientID, "subject_type": subjectType, "subject_id": subjectID, "read": false}))
	return err
}

func (r *repository) PurgeReadNotifications(ctx context.Context, recipientID string) (int, error) {
	q := qb.Delete(notificationsTableName).Where(sq.Eq{"read": true})
	if recipientID != "" {
		q = q.Where(sq.Eq{"recipient_id": recipientID})
	}
	return r.exec(ctx, "PurgeReadNotifications", q)
}
