package handler

import (
	"net/http"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) RegisterUser(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.lendingSvc.RegisterUser(c.Request().Context(), req)
	if err != nil {
		return h.serviceError(c, "RegisterUser", err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	u, err := h.lendingSvc.GetUser(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return h.serviceError(c, "GetUser", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var (
		filter model.UserFilter
		role   string
	)
	err = echo.QueryParamsBinder(c).
		String("role", &role).
		Bool("active", &filter.OnlyActive).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.Role = model.Role(role)
	users, err := h.lendingSvc.ListUsers(c.Request().Context(), actor, filter)
	if err != nil {
		return h.serviceError(c, "ListUsers", err)
	}
	return c.JSON(http.StatusOK, users)
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) SetUserActive(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req activeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.lendingSvc.SetUserActive(c.Request().Context(), actor, c.Param("userId"), req.Active)
	if err != nil {
		return h.serviceError(c, "SetUserActive", err)
	}
	return c.JSON(http.StatusOK, u)
}

type roleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=ADMIN INSTRUCTOR STAFF APPRENTICE EXTERNAL"`
}

func (h *Handler) SetUserRole(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.lendingSvc.SetUserRole(c.Request().Context(), actor, c.Param("userId"), req.Role)
	if err != nil {
		return h.serviceError(c, "SetUserRole", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) AssignApprentice(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.lendingSvc.AssignApprentice(c.Request().Context(), actor, req)
	if err != nil {
		return h.serviceError(c, "AssignApprentice", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// UnassignApprentice takes the assignment key from the query string.
func (h *Handler) UnassignApprentice(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.AssignmentRequest
	err = echo.QueryParamsBinder(c).
		MustString("instructorId", &req.InstructorID).
		MustString("apprenticeId", &req.ApprenticeID).
		MustString("environment", &req.Environment).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.lendingSvc.UnassignApprentice(c.Request().Context(), actor, req); err != nil {
		return h.serviceError(c, "UnassignApprentice", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAssignments(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	out, err := h.lendingSvc.ListAssignments(c.Request().Context(), actor)
	if err != nil {
		return h.serviceError(c, "ListAssignments", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) SetEnvironmentPermission(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}
	var req model.PermissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.lendingSvc.SetEnvironmentPermission(c.Request().Context(), actor, req)
	if err != nil {
		return h.serviceError(c, "SetEnvironmentPermission", err)
	}
	return c.JSON(http.StatusOK, p)
}
