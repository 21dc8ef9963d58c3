package service_test

import (
	"testing"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		actor model.Actor
		req   model.CreateItemRequest
		want  error
	}{
		{
			name:  "not an admin",
			actor: f.instructor,
			req:   model.CreateItemRequest{Name: "Oscilloscope", Units: 1},
			want:  errs.ErrPermissionDenied,
		},
		{
			name:  "blank name",
			actor: f.admin,
			req:   model.CreateItemRequest{Name: "  ", Units: 1},
			want:  errs.ErrValidation,
		},
		{
			name:  "no units",
			actor: f.admin,
			req:   model.CreateItemRequest{Name: "Oscilloscope"},
			want:  errs.ErrValidation,
		},
		{
			name:  "bad condition",
			actor: f.admin,
			req:   model.CreateItemRequest{Name: "Oscilloscope", Units: 1, Condition: "MINT"},
			want:  errs.ErrValidation,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateItem(f.ctx, tc.actor, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	item, err := f.svc.CreateItem(f.ctx, f.admin, model.CreateItemRequest{Name: " Oscilloscope ", Category: "lab", Units: 4})
	require.NoError(t, err)
	require.Equal(t, "Oscilloscope", item.Name)
	require.Equal(t, model.ConditionGood, item.Condition)
	require.Equal(t, 4, item.TotalUnits)
	require.Equal(t, 4, item.AvailableUnits)

	items, err := f.svc.ListItems(f.ctx, model.ItemFilter{Category: "lab"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUpdateItem(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, false, false)

	_, err := f.svc.UpdateItem(f.ctx, f.admin, item.ID, model.ItemUpdate{})
	require.ErrorIs(t, err, errs.ErrValidation)

	name := "Hot air station"
	gated := true
	got, err := f.svc.UpdateItem(f.ctx, f.admin, item.ID, model.ItemUpdate{Name: &name, RequiresAuthorization: &gated})
	require.NoError(t, err)
	require.Equal(t, name, got.Name)
	require.True(t, got.RequiresAuthorization)
	require.Equal(t, 1, got.AvailableUnits)

	_, err = f.svc.UpdateItem(f.ctx, f.admin, "missing", model.ItemUpdate{Name: &name})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 2, false, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.staff, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteItem(f.ctx, f.staff, item.ID), errs.ErrPermissionDenied)
	require.ErrorIs(t, f.svc.DeleteItem(f.ctx, f.admin, item.ID), errs.ErrConflict)

	_, err = f.svc.ReturnLoan(f.ctx, f.staff, loan.ID, model.ReturnRequest{Condition: model.ConditionGood})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteItem(f.ctx, f.admin, item.ID))
	_, err = f.svc.GetItem(f.ctx, item.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 2, false, false)

	_, err := f.svc.RequestLoan(f.ctx, f.staff, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)

	got, err := f.svc.AdjustStock(f.ctx, f.admin, item.ID, model.StockAdjustment{Delta: 3, Reason: "new batch"})
	require.NoError(t, err)
	require.Equal(t, 5, got.TotalUnits)
	require.Equal(t, 4, got.AvailableUnits)
	f.requireAccounting(t, item.ID)

	// the loaned unit cannot be retired
	_, err = f.svc.AdjustStock(f.ctx, f.admin, item.ID, model.StockAdjustment{Delta: -5})
	require.ErrorIs(t, err, errs.ErrInsufficientAvailability)

	worn := model.ConditionNoticeableWear
	got, err = f.svc.AdjustStock(f.ctx, f.admin, item.ID, model.StockAdjustment{Delta: -4, Condition: &worn})
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalUnits)
	require.Equal(t, 0, got.AvailableUnits)
	require.Equal(t, model.ConditionNoticeableWear, got.Condition)
	f.requireAccounting(t, item.ID)

	_, err = f.svc.AdjustStock(f.ctx, f.admin, item.ID, model.StockAdjustment{})
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = f.svc.AdjustStock(f.ctx, f.instructor, item.ID, model.StockAdjustment{Delta: 1})
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestAccountingAcrossLifecycle(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 4, true, false)

	gated, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 2, Environment: labEnv})
	require.NoError(t, err)
	f.requireAccounting(t, item.ID)

	direct, err := f.svc.RequestLoan(f.ctx, f.staff, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)
	f.requireAccounting(t, item.ID)

	res := f.reserve(t, f.instructor, item.ID, at(14, 0), at(15, 0))
	f.requireAccounting(t, item.ID)
	require.Equal(t, 2, f.item(t, item.ID).AvailableUnits)

	_, err = f.svc.DecideLoan(f.ctx, f.instructor, gated.ID, model.DecisionRequest{Decision: model.DecisionApprove})
	require.NoError(t, err)
	require.Equal(t, 0, f.item(t, item.ID).AvailableUnits)
	f.requireAccounting(t, item.ID)

	_, err = f.svc.ReturnLoan(f.ctx, f.staff, direct.ID, model.ReturnRequest{Condition: model.ConditionGood})
	require.NoError(t, err)
	f.requireAccounting(t, item.ID)

	_, err = f.svc.CancelReservation(f.ctx, f.instructor, res.ID)
	require.NoError(t, err)
	f.requireAccounting(t, item.ID)

	_, err = f.svc.ReturnLoan(f.ctx, f.apprentice, gated.ID, model.ReturnRequest{
		Condition: model.ConditionNoticeableWear, Notice: model.NoticeExcessiveWear,
	})
	require.NoError(t, err)

	got := f.item(t, item.ID)
	require.Equal(t, 3, got.TotalUnits)
	require.Equal(t, 3, got.AvailableUnits)
	f.requireAccounting(t, item.ID)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)
	_, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1, Environment: labEnv})
	require.NoError(t, err)

	_, err = f.svc.Stats(f.ctx, f.staff)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	st, err := f.svc.Stats(f.ctx, f.instructor)
	require.NoError(t, err)
	require.Equal(t, 1, st.TotalItems)
	require.Equal(t, 1, st.ItemsAvailable)
	require.Equal(t, 1, st.PendingLoans)
	require.Equal(t, 5, st.ActiveUsers)
	require.Equal(t, 1, st.UnreadNotifications)
}
