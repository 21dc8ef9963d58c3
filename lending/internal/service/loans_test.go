package service_test

import (
	"testing"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/stretchr/testify/require"
)

func TestLoan_GatedApproval(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{
		ItemID: item.ID, Units: 1, Environment: labEnv,
	})
	require.NoError(t, err)
	require.Equal(t, model.LoanPending, loan.State)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)

	ns := f.notifications(t, f.instructor, true)
	require.Len(t, ns, 1)
	require.Equal(t, loan.ID, ns[0].SubjectID)
	require.Empty(t, f.notifications(t, f.admin, true))

	loan, err = f.svc.DecideLoan(f.ctx, f.instructor, loan.ID, model.DecisionRequest{Decision: model.DecisionApprove})
	require.NoError(t, err)
	require.Equal(t, model.LoanActive, loan.State)
	require.Equal(t, f.instructor.UserID, *loan.DecidedBy)
	require.Equal(t, 0, f.item(t, item.ID).AvailableUnits)
	f.requireAccounting(t, item.ID)

	// the decider's copy is cleared, the borrower hears back
	require.Empty(t, f.notifications(t, f.instructor, true))
	require.Len(t, f.notifications(t, f.apprentice, true), 1)
}

func TestLoan_AutoApproved(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 3, true, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.external, model.LoanRequest{ItemID: item.ID, Units: 2})
	require.NoError(t, err)
	require.Equal(t, model.LoanActive, loan.State)
	require.NotNil(t, loan.DecidedAt)
	require.Equal(t, "external", loan.BorrowerName)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)

	_, err = f.svc.RequestLoan(f.ctx, f.external, model.LoanRequest{ItemID: item.ID, Units: 2})
	require.ErrorIs(t, err, errs.ErrInsufficientAvailability)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)
	f.requireAccounting(t, item.ID)

	require.Contains(t, f.pub.actions(), model.ActionLoanActivated)
}

func TestLoan_RequestErrors(t *testing.T) {
	f := newFixture(t)
	open := f.addItem(t, 2, true, false)
	restricted := f.addItem(t, 2, false, true)

	tests := []struct {
		name  string
		actor model.Actor
		req   model.LoanRequest
		want  error
	}{
		{
			name:  "zero units",
			actor: f.external,
			req:   model.LoanRequest{ItemID: open.ID, Units: 0},
			want:  errs.ErrValidation,
		},
		{
			name:  "unknown item",
			actor: f.external,
			req:   model.LoanRequest{ItemID: "missing", Units: 1},
			want:  errs.ErrNotFound,
		},
		{
			name:  "restricted item",
			actor: f.staff,
			req:   model.LoanRequest{ItemID: restricted.ID, Units: 1},
			want:  errs.ErrPermissionDenied,
		},
		{
			name:  "no assigned instructor",
			actor: f.apprentice,
			req:   model.LoanRequest{ItemID: open.ID, Units: 1, Environment: "woodshop"},
			want:  errs.ErrNoApproverAssigned,
		},
		{
			name:  "unknown caller",
			actor: model.Actor{UserID: "ghost", Role: model.RoleAdmin},
			req:   model.LoanRequest{ItemID: open.ID, Units: 1},
			want:  errs.ErrPermissionDenied,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RequestLoan(f.ctx, tc.actor, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Equal(t, 2, f.item(t, open.ID).AvailableUnits)
	require.Equal(t, 2, f.item(t, restricted.ID).AvailableUnits)
}

func TestLoan_DisabledEnvironment(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)

	_, err := f.svc.SetEnvironmentPermission(f.ctx, f.instructor, model.PermissionRequest{
		Environment: labEnv, Enabled: false,
	})
	require.NoError(t, err)

	_, err = f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1, Environment: labEnv})
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	require.Empty(t, f.notifications(t, f.instructor, false))
}

func TestLoan_ApproveDepleted(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)

	pending, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1, Environment: labEnv})
	require.NoError(t, err)
	_, err = f.svc.RequestLoan(f.ctx, f.external, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)

	_, err = f.svc.DecideLoan(f.ctx, f.instructor, pending.ID, model.DecisionRequest{Decision: model.DecisionApprove})
	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, err, errs.ErrInsufficientAvailability)

	got, err := f.svc.GetLoan(f.ctx, f.apprentice, pending.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanPending, got.State)
	require.Nil(t, got.DecidedAt)
	f.requireAccounting(t, item.ID)
}

func TestLoan_Reject(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1, Environment: labEnv})
	require.NoError(t, err)

	_, err = f.svc.DecideLoan(f.ctx, f.apprentice, loan.ID, model.DecisionRequest{Decision: model.DecisionApprove})
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	loan, err = f.svc.DecideLoan(f.ctx, f.instructor, loan.ID, model.DecisionRequest{
		Decision: model.DecisionReject, Reason: "not this week",
	})
	require.NoError(t, err)
	require.Equal(t, model.LoanRejected, loan.State)
	require.Equal(t, "not this week", loan.RejectReason)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)

	_, err = f.svc.DecideLoan(f.ctx, f.instructor, loan.ID, model.DecisionRequest{Decision: model.DecisionApprove})
	require.ErrorIs(t, err, errs.ErrInvalidState)

	ns := f.notifications(t, f.apprentice, true)
	require.Len(t, ns, 1)
	require.Contains(t, ns[0].Message, "not this week")
}

func TestLoan_ReturnWithDamage(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 2, false, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1})
	require.NoError(t, err)
	require.Equal(t, model.LoanActive, loan.State)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)

	loan, err = f.svc.ReturnLoan(f.ctx, f.apprentice, loan.ID, model.ReturnRequest{
		Condition: model.ConditionDamaged, Notice: model.NoticeDamage, Observations: "cracked tip",
	})
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, loan.State)
	require.NotNil(t, loan.ReturnedAt)

	got := f.item(t, item.ID)
	require.Equal(t, 1, got.AvailableUnits)
	require.Equal(t, 1, got.TotalUnits)
	require.Equal(t, model.ConditionDamaged, got.Condition)
	f.requireAccounting(t, item.ID)

	require.Len(t, f.notifications(t, f.admin, true), 1)

	_, err = f.svc.ReturnLoan(f.ctx, f.apprentice, loan.ID, model.ReturnRequest{Condition: model.ConditionGood})
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)
}

func TestLoan_ReturnClean(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 2, false, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.staff, model.LoanRequest{ItemID: item.ID, Units: 2})
	require.NoError(t, err)

	_, err = f.svc.ReturnLoan(f.ctx, f.external, loan.ID, model.ReturnRequest{Condition: model.ConditionGood})
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	_, err = f.svc.ReturnLoan(f.ctx, f.staff, loan.ID, model.ReturnRequest{Condition: "SHINY"})
	require.ErrorIs(t, err, errs.ErrValidation)

	loan, err = f.svc.ReturnLoan(f.ctx, f.instructor, loan.ID, model.ReturnRequest{Condition: model.ConditionGood})
	require.NoError(t, err)
	require.Equal(t, model.NoticeNone, loan.ReturnNotice)

	got := f.item(t, item.ID)
	require.Equal(t, 2, got.AvailableUnits)
	require.Equal(t, model.ConditionGood, got.Condition)
	require.Empty(t, f.notifications(t, f.admin, true))
}

func TestLoan_Cancel(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 1, true, false)

	loan, err := f.svc.RequestLoan(f.ctx, f.apprentice, model.LoanRequest{ItemID: item.ID, Units: 1, Environment: labEnv})
	require.NoError(t, err)

	_, err = f.svc.CancelLoan(f.ctx, f.staff, loan.ID)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	loan, err = f.svc.CancelLoan(f.ctx, f.apprentice, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanCancelled, loan.State)
	require.Equal(t, 1, f.item(t, item.ID).AvailableUnits)

	_, err = f.svc.CancelLoan(f.ctx, f.apprentice, loan.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestLoan_ListScopedToBorrower(t *testing.T) {
	f := newFixture(t)
	item := f.addItem(t, 5, false, false)

	for _, who := range []model.Actor{f.external, f.staff, f.external} {
		_, err := f.svc.RequestLoan(f.ctx, who, model.LoanRequest{ItemID: item.ID, Units: 1})
		require.NoError(t, err)
	}

	mine, err := f.svc.ListLoans(f.ctx, f.external, model.LoanFilter{BorrowerID: f.staff.UserID})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := f.svc.ListLoans(f.ctx, f.instructor, model.LoanFilter{ItemID: item.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = f.svc.GetLoan(f.ctx, f.staff, mine[0].ID)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}
