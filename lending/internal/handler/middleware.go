package handler

import (
	"net/http"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	actorKey = "actorKey"
)

// Identity puts the caller named by the identity headers into the context.
// Proving who the caller is happens in front of this service. X-User-Role is
// optional; when sent it must match the role on record.
func Identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get(HeaderUserID)
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no "+HeaderUserID+" header")
		}
		role := model.Role(c.Request().Header.Get(HeaderUserRole))
		if role != "" && !role.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid "+HeaderUserRole+" header")
		}
		c.Set(actorKey, model.Actor{UserID: userID, Role: role})
		return next(c)
	}
}

func actorFrom(c echo.Context) (model.Actor, error) {
	actor, ok := c.Get(actorKey).(model.Actor)
	if !ok {
		return model.Actor{}, errors.New("no caller identity")
	}
	return actor, nil
}
