package handler

import (
	"net/http"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) RequestReservation(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.lendingSvc.RequestReservation(c.Request().Context(), actor, req)
	if err != nil {
		return h.serviceError(c, "RequestReservation", err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) DecideReservation(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.lendingSvc.DecideReservation(c.Request().Context(), actor, c.Param("reservationId"), req)
	if err != nil {
		return h.serviceError(c, "DecideReservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	res, err := h.lendingSvc.CancelReservation(c.Request().Context(), actor, c.Param("reservationId"))
	if err != nil {
		return h.serviceError(c, "CancelReservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetReservation(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	res, err := h.lendingSvc.GetReservation(c.Request().Context(), actor, c.Param("reservationId"))
	if err != nil {
		return h.serviceError(c, "GetReservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ListReservations(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var (
		filter model.ReservationFilter
		state  string
	)
	err = echo.QueryParamsBinder(c).
		String("itemId", &filter.ItemID).
		String("requesterId", &filter.RequesterID).
		String("state", &state).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.State = model.ReservationState(state)
	out, err := h.lendingSvc.ListReservations(c.Request().Context(), actor, filter)
	if err != nil {
		return h.serviceError(c, "ListReservations", err)
	}
	return c.JSON(http.StatusOK, out)
}
