package handler

import (
	"net/http"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) RequestLoan(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.LoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Units == 0 {
		req.Units = 1
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.lendingSvc.RequestLoan(c.Request().Context(), actor, req)
	if err != nil {
		return h.serviceError(c, "RequestLoan", err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) DecideLoan(c echo.Context) error {
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
	loan, err := h.lendingSvc.DecideLoan(c.Request().Context(), actor, c.Param("loanId"), req)
	if err != nil {
		return h.serviceError(c, "DecideLoan", err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.lendingSvc.ReturnLoan(c.Request().Context(), actor, c.Param("loanId"), req)
	if err != nil {
		return h.serviceError(c, "ReturnLoan", err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) CancelLoan(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	loan, err := h.lendingSvc.CancelLoan(c.Request().Context(), actor, c.Param("loanId"))
	if err != nil {
		return h.serviceError(c, "CancelLoan", err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) GetLoan(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	loan, err := h.lendingSvc.GetLoan(c.Request().Context(), actor, c.Param("loanId"))
	if err != nil {
		return h.serviceError(c, "GetLoan", err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ListLoans(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var (
		filter model.LoanFilter
		state  string
	)
	err = echo.QueryParamsBinder(c).
		String("itemId", &filter.ItemID).
		String("borrowerId", &filter.BorrowerID).
		String("state", &state).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.State = model.LoanState(state)
	loans, err := h.lendingSvc.ListLoans(c.Request().Context(), actor, filter)
	if err != nil {
		return h.serviceError(c, "ListLoans", err)
	}
	return c.JSON(http.StatusOK, loans)
}
