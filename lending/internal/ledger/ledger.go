// Package ledger owns the arithmetic on an item's unit counts. Every function
// runs against the caller's transaction; nothing else in the module writes
// total units, available units or the condition grade.
package ledger

import (
	"context"
	"fmt"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
)

// UnitStore is the transactional view of item units. LockItemUnits must hold
// the row until the surrounding transaction ends.
type UnitStore interface {
	LockItemUnits(ctx context.Context, itemID string) (model.ItemUnits, error)
	WriteItemUnits(ctx context.Context, units model.ItemUnits) error
	WriteItemCondition(ctx context.Context, itemID string, condition model.Condition) error
}

// Reserve takes count units out of availability and returns what is left.
func Reserve(ctx context.Context, store UnitStore, itemID string, count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("%w: unit count must be positive, got %d", errs.ErrValidation, count)
	}
	u, err := store.LockItemUnits(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if u.Available < count {
		return u.Available, fmt.Errorf("item %s: %w: %d requested, %d available",
			itemID, errs.ErrInsufficientAvailability, count, u.Available)
	}
	u.Available -= count
	if err := write(ctx, store, u); err != nil {
		return 0, err
	}
	return u.Available, nil
}

// Release puts count units back. permanentLoss of them are written off and
// leave the item's total instead.
func Release(ctx context.Context, store UnitStore, itemID string, count, permanentLoss int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("%w: unit count must be positive, got %d", errs.ErrValidation, count)
	}
	if permanentLoss < 0 {
		permanentLoss = 0
	}
	if permanentLoss > count {
		permanentLoss = count
	}
	u, err := store.LockItemUnits(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if u.Held() < count {
		return 0, fmt.Errorf("item %s: %w: releasing %d units but only %d are out",
			itemID, errs.ErrInvalidState, count, u.Held())
	}
	u.Available += count - permanentLoss
	u.Total -= permanentLoss
	if err := write(ctx, store, u); err != nil {
		return 0, err
	}
	return u.Available, nil
}

// Adjust restocks (delta > 0) or retires (delta < 0) units. Only available
// units can be retired.
func Adjust(ctx context.Context, store UnitStore, itemID string, delta int) (model.ItemUnits, error) {
	if delta == 0 {
		return model.ItemUnits{}, fmt.Errorf("%w: zero stock adjustment", errs.ErrValidation)
	}
	u, err := store.LockItemUnits(ctx, itemID)
	if err != nil {
		return model.ItemUnits{}, err
	}
	if delta < 0 && u.Available < -delta {
		return u, fmt.Errorf("item %s: %w: cannot retire %d units, %d available",
			itemID, errs.ErrInsufficientAvailability, -delta, u.Available)
	}
	u.Total += delta
	u.Available += delta
	if err := write(ctx, store, u); err != nil {
		return model.ItemUnits{}, err
	}
	return u, nil
}

// Regrade records a new condition grade for the item.
func Regrade(ctx context.Context, store UnitStore, itemID string, condition model.Condition) error {
	if !condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", errs.ErrValidation, condition)
	}
	if _, err := store.LockItemUnits(ctx, itemID); err != nil {
		return err
	}
	return store.WriteItemCondition(ctx, itemID, condition)
}

func write(ctx context.Context, store UnitStore, u model.ItemUnits) error {
	if u.Available < 0 || u.Total < 0 || u.Available > u.Total {
		return fmt.Errorf("item %s: %w: available %d total %d", u.ItemID, errs.ErrInvalidState, u.Available, u.Total)
	}
	return store.WriteItemUnits(ctx, u)
}
