package ledger_test

import (
	"context"
	"testing"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/stretchr/testify/require"
)

type fakeUnits struct {
	units     map[string]model.ItemUnits
	condition map[string]model.Condition
	writes    int
}

func newFakeUnits(id string, total, available int) *fakeUnits {
	return &fakeUnits{
		units:     map[string]model.ItemUnits{id: {ItemID: id, Total: total, Available: available}},
		condition: map[string]model.Condition{id: model.ConditionGood},
	}
}

func (f *fakeUnits) LockItemUnits(_ context.Context, id string) (model.ItemUnits, error) {
	u, ok := f.units[id]
	if !ok {
		return model.ItemUnits{}, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUnits) WriteItemUnits(_ context.Context, u model.ItemUnits) error {
	f.writes++
	f.units[u.ItemID] = u
	return nil
}

func (f *fakeUnits) WriteItemCondition(_ context.Context, id string, c model.Condition) error {
	f.condition[id] = c
	return nil
}

func TestReserve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var tests = []struct {
		name          string
		available     int
		count         int
		wantLeft      int
		wantErr       error
		wantAvailable int
	}{
		{name: "ok", available: 3, count: 2, wantLeft: 1, wantAvailable: 1},
		{name: "exact", available: 1, count: 1, wantLeft: 0, wantAvailable: 0},
		{name: "insufficient", available: 1, count: 2, wantErr: errs.ErrInsufficientAvailability, wantAvailable: 1},
		{name: "zero count", available: 1, count: 0, wantErr: errs.ErrValidation, wantAvailable: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeUnits("i", 3, tt.available)
			left, err := ledger.Reserve(ctx, store, "i", tt.count)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Zero(t, store.writes)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantLeft, left)
			}
			require.Equal(t, tt.wantAvailable, store.units["i"].Available)
			require.Equal(t, 3, store.units["i"].Total)
		})
	}

	_, err := ledger.Reserve(ctx, newFakeUnits("i", 1, 1), "missing", 1)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRelease(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var tests = []struct {
		name          string
		count, loss   int
		wantAvailable int
		wantTotal     int
		wantErr       error
	}{
		{name: "plain", count: 2, loss: 0, wantAvailable: 3, wantTotal: 3},
		{name: "one lost", count: 1, loss: 1, wantAvailable: 1, wantTotal: 2},
		{name: "partial loss", count: 2, loss: 1, wantAvailable: 2, wantTotal: 2},
		{name: "loss clamped to count", count: 1, loss: 5, wantAvailable: 1, wantTotal: 2},
		{name: "more than held", count: 3, wantErr: errs.ErrInvalidState, wantAvailable: 1, wantTotal: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeUnits("i", 3, 1)
			_, err := ledger.Release(ctx, store, "i", tt.count, tt.loss)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			u := store.units["i"]
			require.Equal(t, tt.wantAvailable, u.Available)
			require.Equal(t, tt.wantTotal, u.Total)
			require.LessOrEqual(t, u.Available, u.Total)
		})
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeUnits("i", 4, 2)

	u, err := ledger.Adjust(ctx, store, "i", 3)
	require.NoError(t, err)
	require.Equal(t, model.ItemUnits{ItemID: "i", Total: 7, Available: 5}, u)

	u, err = ledger.Adjust(ctx, store, "i", -5)
	require.NoError(t, err)
	require.Equal(t, 2, u.Total)
	require.Equal(t, 0, u.Available)

	// the two held units cannot be retired
	_, err = ledger.Adjust(ctx, store, "i", -1)
	require.ErrorIs(t, err, errs.ErrInsufficientAvailability)

	_, err = ledger.Adjust(ctx, store, "i", 0)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRegrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeUnits("i", 1, 1)

	require.NoError(t, ledger.Regrade(ctx, store, "i", model.ConditionDamaged))
	require.Equal(t, model.ConditionDamaged, store.condition["i"])

	require.ErrorIs(t, ledger.Regrade(ctx, store, "i", model.Condition("BROKEN")), errs.ErrValidation)
	require.ErrorIs(t, ledger.Regrade(ctx, store, "nope", model.ConditionGood), errs.ErrNotFound)
}

func TestReserveRelease_Accounting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeUnits("i", 5, 5)
	held := 0

	steps := []struct {
		reserve int
		release int
		loss    int
	}{
		{reserve: 2}, {reserve: 1}, {release: 2, loss: 1}, {reserve: 2}, {release: 1}, {release: 2},
	}
	lost := 0
	for _, s := range steps {
		if s.reserve > 0 {
			_, err := ledger.Reserve(ctx, store, "i", s.reserve)
			require.NoError(t, err)
			held += s.reserve
		} else {
			_, err := ledger.Release(ctx, store, "i", s.release, s.loss)
			require.NoError(t, err)
			held -= s.release
			lost += s.loss
		}
		u := store.units["i"]
		require.GreaterOrEqual(t, u.Available, 0)
		require.Equal(t, 5-lost, u.Total)
		require.Equal(t, u.Total, u.Available+held)
	}
}
