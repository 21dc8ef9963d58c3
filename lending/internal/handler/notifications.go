package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type countResponse struct {
	Count int `json:"count"`
}

func (h *Handler) ListNotifications(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var unread bool
	if err := echo.QueryParamsBinder(c).Bool("unread", &unread).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ns, err := h.lendingSvc.ListNotifications(c.Request().Context(), actor, unread)
	if err != nil {
		return h.serviceError(c, "ListNotifications", err)
	}
	return c.JSON(http.StatusOK, ns)
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.MarkNotificationRead(c.Request().Context(), actor, c.Param("notificationId")); err != nil {
		return h.serviceError(c, "MarkNotificationRead", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	n, err := h.lendingSvc.MarkAllNotificationsRead(c.Request().Context(), actor)
	if err != nil {
		return h.serviceError(c, "MarkAllNotificationsRead", err)
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

func (h *Handler) PurgeReadNotifications(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	n, err := h.lendingSvc.PurgeReadNotifications(c.Request().Context(), actor)
	if err != nil {
		return h.serviceError(c, "PurgeReadNotifications", err)
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

func (h *Handler) ListAudit(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entries, err := h.lendingSvc.ListAudit(c.Request().Context(), actor, limit)
	if err != nil {
		return h.serviceError(c, "ListAudit", err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) Stats(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	st, err := h.lendingSvc.Stats(c.Request().Context(), actor)
	if err != nil {
		return h.serviceError(c, "Stats", err)
	}
	return c.JSON(http.StatusOK, st)
}
