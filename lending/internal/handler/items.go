package handler

import (
	"net/http"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateItem(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.lendingSvc.CreateItem(c.Request().Context(), actor, req)
	if err != nil {
		return h.serviceError(c, "CreateItem", err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetItem(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty itemId")
	}
	item, err := h.lendingSvc.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return h.serviceError(c, "GetItem", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) ListItems(c echo.Context) error {
	var filter model.ItemFilter
	err := echo.QueryParamsBinder(c).
		String("category", &filter.Category).
		Bool("available", &filter.OnlyAvailable).
		Bool("problems", &filter.OnlyProblems).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.lendingSvc.ListItems(c.Request().Context(), filter)
	if err != nil {
		return h.serviceError(c, "ListItems", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	itemID := c.Param("itemId")
	var upd model.ItemUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.lendingSvc.UpdateItem(c.Request().Context(), actor, itemID, upd)
	if err != nil {
		return h.serviceError(c, "UpdateItem", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.DeleteItem(c.Request().Context(), actor, c.Param("itemId")); err != nil {
		return h.serviceError(c, "DeleteItem", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AdjustStock(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var adj model.StockAdjustment
	if err := c.Bind(&adj); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(adj); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.lendingSvc.AdjustStock(c.Request().Context(), actor, c.Param("itemId"), adj)
	if err != nil {
		return h.serviceError(c, "AdjustStock", err)
	}
	return c.JSON(http.StatusOK, item)
}

type conflictResponse struct {
	Conflict bool `json:"conflict"`
}

// CheckConflict answers GET /items/:itemId/conflicts?start=..&end=..[&exclude=..]
// with RFC 3339 bounds.
func (h *Handler) CheckConflict(c echo.Context) error {
	var (
		start, end time.Time
		exclude    string
	)
	err := echo.QueryParamsBinder(c).
		MustTime("start", &start, time.RFC3339).
		MustTime("end", &end, time.RFC3339).
		String("exclude", &exclude).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	conflict, err := h.lendingSvc.HasConflict(c.Request().Context(), c.Param("itemId"), start, end, exclude)
	if err != nil {
		return h.serviceError(c, "HasConflict", err)
	}
	return c.JSON(http.StatusOK, conflictResponse{Conflict: conflict})
}
