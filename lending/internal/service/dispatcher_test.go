package service_test

import (
	"testing"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_Notify(t *testing.T) {
	f := newFixture(t)
	d := service.NewDispatcher(f.store, zap.NewNop(), f.clock.Now)

	sent := d.Notify(f.ctx, []string{f.staff.UserID, "", f.staff.UserID, "ghost", f.external.UserID},
		model.SubjectItem, "item-1", "restocked")
	require.Equal(t, 2, sent)
	require.Len(t, f.notifications(t, f.staff, true), 1)
	require.Len(t, f.notifications(t, f.external, true), 1)

	d.MarkSubjectRead(f.ctx, f.staff.UserID, model.SubjectItem, "item-1")
	require.Empty(t, f.notifications(t, f.staff, true))
	require.Len(t, f.notifications(t, f.staff, false), 1)
}

func TestNotificationsReadAndPurge(t *testing.T) {
	f := newFixture(t)
	d := service.NewDispatcher(f.store, zap.NewNop(), f.clock.Now)
	d.Notify(f.ctx, []string{f.staff.UserID}, model.SubjectItem, "a", "one")
	d.Notify(f.ctx, []string{f.staff.UserID}, model.SubjectItem, "b", "two")
	d.Notify(f.ctx, []string{f.external.UserID}, model.SubjectItem, "c", "three")

	theirs := f.notifications(t, f.external, true)
	require.Len(t, theirs, 1)
	require.ErrorIs(t, f.svc.MarkNotificationRead(f.ctx, f.staff, theirs[0].ID), errs.ErrPermissionDenied)
	require.NoError(t, f.svc.MarkNotificationRead(f.ctx, f.external, theirs[0].ID))

	n, err := f.svc.MarkAllNotificationsRead(f.ctx, f.staff)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = f.svc.PurgeReadNotifications(f.ctx, f.staff)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Empty(t, f.notifications(t, f.staff, false))
	require.Len(t, f.notifications(t, f.external, false), 1)

	n, err = f.svc.PurgeReadNotifications(f.ctx, f.admin)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Empty(t, f.notifications(t, f.external, false))
}

func TestAudit(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, false, false)
	_, err := f.svc.RequestLoan(f.ctx, f.staff, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)

	for _, ev := range f.pub.events {
		require.NoError(t, f.svc.RecordAudit(f.ctx, ev))
	}
	require.ErrorIs(t, f.svc.RecordAudit(f.ctx, model.Event{}), errs.ErrValidation)
	// redelivered events land once
	require.NoError(t, f.svc.RecordAudit(f.ctx, f.pub.events[0]))

	_, err = f.svc.ListAudit(f.ctx, f.instructor, 0)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	entries, err := f.svc.ListAudit(f.ctx, f.admin, 0)
	require.NoError(t, err)
	require.Len(t, entries, len(f.pub.events))
	require.NotEmpty(t, entries[0].EventID)

	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	require.Contains(t, actions, model.ActionItemCreated)
	require.Contains(t, actions, model.ActionLoanActivated)
	require.Contains(t, actions, model.ActionAssignmentChanged)
}
