package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (s *Service) CreateItem(ctx context.Context, actor model.Actor, req model.CreateItemRequest) (model.Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Item{}, errors.Wrap(errs.ErrValidation, "item name is required")
	}
	if req.Units < 1 {
		return model.Item{}, errors.Wrapf(errs.ErrValidation, "item needs at least one unit, got %d", req.Units)
	}
	if req.Condition == "" {
		req.Condition = model.ConditionGood
	}
	if !req.Condition.Valid() {
		return model.Item{}, errors.Wrapf(errs.ErrValidation, "unknown condition %q", req.Condition)
	}

	now := s.now()
	item := model.Item{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(req.Name),
		Description:            req.Description,
		Category:               req.Category,
		Condition:              req.Condition,
		TotalUnits:             req.Units,
		AvailableUnits:         req.Units,
		RequiresAuthorization:  req.RequiresAuthorization,
		RestrictedToPrivileged: req.RestrictedToPrivileged,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		if err := r.CreateItem(ctx, item); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionItemCreated, model.SubjectItem, item.ID, item.ID,
			fmt.Sprintf("%d units", item.TotalUnits)))
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (model.Item, error) {
	var item model.Item
	err := s.store.View(ctx, func(r repository.Repository) error {
		var err error
		item, err = r.GetItem(ctx, id)
		return err
	})
	return item, err
}

func (s *Service) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	var items []model.Item
	err := s.store.View(ctx, func(r repository.Repository) error {
		var err error
		items, err = r.ListItems(ctx, filter)
		return err
	})
	return items, err
}

// UpdateItem edits catalog fields. Units and condition are not reachable from
// here; see AdjustStock.
func (s *Service) UpdateItem(ctx context.Context, actor model.Actor, id string, upd model.ItemUpdate) (model.Item, error) {
	if upd.Empty() {
		return model.Item{}, errors.Wrap(errs.ErrValidation, "nothing to update")
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return model.Item{}, errors.Wrap(errs.ErrValidation, "item name is required")
	}
	var item model.Item
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		item, err = r.UpdateItem(ctx, id, upd, s.now())
		if err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionItemUpdated, model.SubjectItem, id, id, ""))
		return nil
	})
	return item, err
}

// DeleteItem refuses while any loan or reservation still references the item.
func (s *Service) DeleteItem(ctx context.Context, actor model.Actor, id string) error {
	return s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		if _, err := r.LockItem(ctx, id); err != nil {
			return err
		}
		holds, err := r.CountItemHolds(ctx, id)
		if err != nil {
			return err
		}
		if holds > 0 {
			return errors.Wrapf(errs.ErrConflict, "item %s has %d open loans or reservations", id, holds)
		}
		if err := r.DeleteItem(ctx, id); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionItemDeleted, model.SubjectItem, id, id, ""))
		return nil
	})
}

// AdjustStock restocks, retires or regrades an item through the ledger.
func (s *Service) AdjustStock(ctx context.Context, actor model.Actor, itemID string, adj model.StockAdjustment) (model.Item, error) {
	if adj.Delta == 0 && adj.Condition == nil {
		return model.Item{}, errors.Wrap(errs.ErrValidation, "empty stock adjustment")
	}
	var item model.Item
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		if adj.Delta != 0 {
			if _, err := ledger.Adjust(ctx, r, itemID, adj.Delta); err != nil {
				return err
			}
		}
		if adj.Condition != nil {
			if err := ledger.Regrade(ctx, r, itemID, *adj.Condition); err != nil {
				return err
			}
		}
		item, err = r.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		detail := fmt.Sprintf("delta %+d", adj.Delta)
		if adj.Condition != nil {
			detail += ", condition " + string(*adj.Condition)
		}
		if adj.Reason != "" {
			detail += ": " + adj.Reason
		}
		fx.event(s.newEvent(u.ID, model.ActionStockAdjusted, model.SubjectItem, itemID, itemID, detail))
		return nil
	})
	return item, err
}
