package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/Eduard-Gallardo/lendix/lending/migrations"
	"github.com/Eduard-Gallardo/lendix/pkg/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore needs LENDING_TEST_DSN pointing at a scratch database.
func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	dsn := os.Getenv("LENDING_TEST_DSN")
	if dsn == "" {
		t.Skip("LENDING_TEST_DSN not set")
	}
	db, err := postgres.NewPostgresDBFromDSN(context.Background(), dsn, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return st
}

func seed(t *testing.T, st repository.Store, units int) (model.Item, model.User) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := model.Item{
		ID: uuid.NewString(), Name: "Oscilloscope", Category: "electronics", Condition: model.ConditionGood,
		TotalUnits: units, AvailableUnits: units, CreatedAt: now, UpdatedAt: now,
	}
	user := model.User{
		ID: uuid.NewString(), Name: "Ana", Email: uuid.NewString() + "@example.com",
		Role: model.RoleInstructor, Active: true, CreatedAt: now,
	}
	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		if err := r.CreateUser(ctx, user); err != nil {
			return err
		}
		return r.CreateItem(ctx, item)
	}))
	return item, user
}

func TestPostgres_LedgerRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	item, _ := seed(t, st, 2)

	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		left, err := ledger.Reserve(ctx, r, item.ID, 2)
		require.Equal(t, 0, left)
		return err
	}))
	err := st.InTx(ctx, func(r repository.Repository) error {
		_, err := ledger.Reserve(ctx, r, item.ID, 1)
		return err
	})
	require.ErrorIs(t, err, errs.ErrInsufficientAvailability)

	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		if _, err := ledger.Release(ctx, r, item.ID, 1, 1); err != nil {
			return err
		}
		return ledger.Regrade(ctx, r, item.ID, model.ConditionDamaged)
	}))

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		got, err := r.GetItem(ctx, item.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.TotalUnits)
		require.Equal(t, 0, got.AvailableUnits)
		require.Equal(t, model.ConditionDamaged, got.Condition)
		return nil
	}))
}

func TestPostgres_ReservationExclusionConstraint(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	item, user := seed(t, st, 3)
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	mk := func(from, to time.Duration) model.Reservation {
		return model.Reservation{
			ID: uuid.NewString(), ItemID: item.ID, RequesterID: user.ID, State: model.ReservationApproved,
			WindowStart: start.Add(from), WindowEnd: start.Add(to), CreatedAt: start,
		}
	}
	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		return r.CreateReservation(ctx, mk(0, time.Hour))
	}))
	require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
		return r.CreateReservation(ctx, mk(time.Hour, 2*time.Hour))
	}))
	err := st.InTx(ctx, func(r repository.Repository) error {
		return r.CreateReservation(ctx, mk(30*time.Minute, 45*time.Minute))
	})
	require.ErrorIs(t, err, errs.ErrConflict)

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		over, err := r.FindOverlapping(ctx, item.ID, start.Add(30*time.Minute), start.Add(90*time.Minute), "")
		require.NoError(t, err)
		require.Len(t, over, 2)
		return nil
	}))
}

func TestPostgres_NotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		_, err := r.GetItem(ctx, uuid.NewString())
		require.ErrorIs(t, err, errs.ErrNotFound)
		_, err = r.GetLoan(ctx, uuid.NewString())
		require.ErrorIs(t, err, errs.ErrNotFound)
		return nil
	}))
}

func TestPostgres_AuditDedup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	entry := model.AuditEntry{
		EventID: uuid.NewString(), OccurredAt: time.Now().UTC(),
		Action: model.ActionLoanReturned, SubjectType: model.SubjectLoan, SubjectID: uuid.NewString(),
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, st.InTx(ctx, func(r repository.Repository) error {
			return r.AppendAudit(ctx, entry)
		}))
	}
	require.NoError(t, st.View(ctx, func(r repository.Repository) error {
		entries, err := r.ListAudit(ctx, 0)
		require.NoError(t, err)
		n := 0
		for _, e := range entries {
			if e.EventID == entry.EventID {
				n++
			}
		}
		require.Equal(t, 1, n)
		return nil
	}))
}
