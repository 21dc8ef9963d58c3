package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStoreWithItem(t *testing.T, units int) (*memory.Store, model.Item) {
	t.Helper()
	st := memory.NewStore(zap.NewNop())
	item := model.Item{
		ID:             "item-1",
		Name:           "Multimeter",
		Category:       "electronics",
		Condition:      model.ConditionGood,
		TotalUnits:     units,
		AvailableUnits: units,
	}
	require.NoError(t, st.InTx(context.Background(), func(r repository.Repository) error {
		return r.CreateItem(context.Background(), item)
	}))
	return st, item
}

func TestStore_InTxRollback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, item := newStoreWithItem(t, 2)

	boom := errors.New("boom")
	err := st.InTx(ctx, func(r repository.Repository) error {
		if _, err := ledger.Reserve(ctx, r, item.ID, 2); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		got, err := r.GetItem(ctx, item.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got.AvailableUnits)
		return nil
	}))
}

func TestStore_ViewIsReadOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, item := newStoreWithItem(t, 1)

	err := st.View(ctx, func(r repository.Repository) error {
		return r.WriteItemUnits(ctx, model.ItemUnits{ItemID: item.ID, Total: 1, Available: 0})
	})
	require.ErrorIs(t, err, errs.ErrStorage)
}

func TestStore_ConcurrentReserve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	const units, workers = 5, 40
	st, item := newStoreWithItem(t, units)

	var (
		wg                sync.WaitGroup
		mu                sync.Mutex
		won, insufficient int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := st.InTx(ctx, func(r repository.Repository) error {
				_, err := ledger.Reserve(ctx, r, item.ID, 1)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, errs.ErrInsufficientAvailability):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, units, won)
	require.Equal(t, workers-units, insufficient)
	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		got, err := r.GetItem(ctx, item.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.AvailableUnits)
		require.Equal(t, units, got.TotalUnits)
		return nil
	}))
}

func TestStore_ReservationExclusion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, item := newStoreWithItem(t, 3)
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mk := func(id string, state model.ReservationState, from, to time.Duration) model.Reservation {
		return model.Reservation{
			ID: id, ItemID: item.ID, RequesterID: "u", State: state,
			WindowStart: base.Add(from), WindowEnd: base.Add(to), CreatedAt: base,
		}
	}
	err := st.InTx(ctx, func(r repository.Repository) error {
		require.NoError(t, r.CreateReservation(ctx, mk("a", model.ReservationApproved, 0, time.Hour)))
		// touching boundary
		require.NoError(t, r.CreateReservation(ctx, mk("b", model.ReservationApproved, time.Hour, 2*time.Hour)))
		// overlapping but pending is allowed
		require.NoError(t, r.CreateReservation(ctx, mk("c", model.ReservationPending, 30*time.Minute, 45*time.Minute)))

		err := r.CreateReservation(ctx, mk("d", model.ReservationApproved, 30*time.Minute, 45*time.Minute))
		require.ErrorIs(t, err, errs.ErrConflict)

		c, err := r.GetReservation(ctx, "c")
		require.NoError(t, err)
		c.State = model.ReservationApproved
		require.ErrorIs(t, r.UpdateReservation(ctx, c), errs.ErrConflict)

		over, err := r.FindOverlapping(ctx, item.ID, base.Add(50*time.Minute), base.Add(70*time.Minute), "")
		require.NoError(t, err)
		require.Len(t, over, 2)

		over, err = r.FindOverlapping(ctx, item.ID, base.Add(50*time.Minute), base.Add(70*time.Minute), "a")
		require.NoError(t, err)
		require.Len(t, over, 1)
		require.Equal(t, "b", over[0].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_DueReservations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, item := newStoreWithItem(t, 3)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		for _, res := range []model.Reservation{
			{ID: "future", State: model.ReservationApproved, WindowStart: now.Add(time.Hour), WindowEnd: now.Add(2 * time.Hour)},
			{ID: "started", State: model.ReservationApproved, WindowStart: now.Add(-2 * time.Hour), WindowEnd: now.Add(-time.Hour)},
			{ID: "running", State: model.ReservationActive, WindowStart: now.Add(-time.Hour), WindowEnd: now.Add(time.Hour)},
			{ID: "ended", State: model.ReservationActive, WindowStart: now.Add(-4 * time.Hour), WindowEnd: now.Add(-3 * time.Hour)},
			{ID: "pending", State: model.ReservationPending, WindowStart: now.Add(-3 * time.Hour), WindowEnd: now.Add(-2 * time.Hour)},
		} {
			res.ItemID = item.ID
			if err := r.CreateReservation(ctx, res); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		due, err := r.ListDueReservations(ctx, now)
		require.NoError(t, err)
		ids := make([]string, 0, len(due))
		for _, d := range due {
			ids = append(ids, d.ID)
		}
		require.ElementsMatch(t, []string{"started", "ended"}, ids)
		return nil
	}))
}

func TestStore_DeleteItemCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, item := newStoreWithItem(t, 1)

	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		if err := r.CreateLoan(ctx, model.Loan{ID: "l1", ItemID: item.ID, Units: 1, State: model.LoanReturned}); err != nil {
			return err
		}
		return r.DeleteItem(ctx, item.ID)
	}))
	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		_, err := r.GetLoan(ctx, "l1")
		require.ErrorIs(t, err, errs.ErrNotFound)
		_, err = r.GetItem(ctx, item.ID)
		require.ErrorIs(t, err, errs.ErrNotFound)
		return nil
	}))
}

func TestStore_Users(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := memory.NewStore(zap.NewNop())

	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		return r.CreateUser(ctx, model.User{ID: "u1", Email: "Ana@Example.com", Role: model.RoleInstructor, Active: true})
	}))
	err := st.InTx(ctx, func(r repository.Repository) error {
		return r.CreateUser(ctx, model.User{ID: "u2", Email: "ana@example.com", Role: model.RoleStaff})
	})
	require.ErrorIs(t, err, errs.ErrConflict)

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		u, err := r.GetUserByEmail(ctx, "ANA@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
		enabled, err := r.EnvironmentEnabled(ctx, "u1", "lab")
		require.NoError(t, err)
		require.True(t, enabled)
		return nil
	}))
}

func TestStore_AuditDedup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := memory.NewStore(zap.NewNop())
	entry := model.AuditEntry{EventID: "ev-1", Action: model.ActionLoanReturned, SubjectType: model.SubjectLoan, SubjectID: "loan-1"}

	for i := 0; i < 2; i++ {
		require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
			return r.AppendAudit(ctx, entry)
		}))
	}
	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		entries, err := r.ListAudit(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "ev-1", entries[0].EventID)
		return nil
	}))
}
