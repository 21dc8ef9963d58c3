package handler

import (
	"net/http"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/pkg/logger"
	md "github.com/Eduard-Gallardo/lendix/pkg/middleware"
	"github.com/Eduard-Gallardo/lendix/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	lendingSvc LendingService
	log        *zap.Logger
}

func New(lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter(logCfg logger.Log) *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, HeaderUserID, HeaderUserRole},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	public := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(logCfg)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	public.POST("/users/register", h.RegisterUser)
	public.GET("/items", h.ListItems)
	public.GET("/items/:itemId", h.GetItem)
	public.GET("/items/:itemId/conflicts", h.CheckConflict)

	api := public.Group("", Identity)

	api.POST("/items", h.CreateItem)
	api.PATCH("/items/:itemId", h.UpdateItem)
	api.DELETE("/items/:itemId", h.DeleteItem)
	api.POST("/items/:itemId/stock", h.AdjustStock)

	api.GET("/loans", h.ListLoans)
	api.POST("/loans", h.RequestLoan)
	api.GET("/loans/:loanId", h.GetLoan)
	api.POST("/loans/:loanId/decision", h.DecideLoan)
	api.POST("/loans/:loanId/return", h.ReturnLoan)
	api.POST("/loans/:loanId/cancel", h.CancelLoan)

	api.GET("/reservations", h.ListReservations)
	api.POST("/reservations", h.RequestReservation)
	api.GET("/reservations/:reservationId", h.GetReservation)
	api.POST("/reservations/:reservationId/decision", h.DecideReservation)
	api.POST("/reservations/:reservationId/cancel", h.CancelReservation)

	api.GET("/users", h.ListUsers)
	api.GET("/users/:userId", h.GetUser)
	api.PUT("/users/:userId/active", h.SetUserActive)
	api.PUT("/users/:userId/role", h.SetUserRole)

	api.GET("/assignments", h.ListAssignments)
	api.POST("/assignments", h.AssignApprentice)
	api.DELETE("/assignments", h.UnassignApprentice)
	api.PUT("/permissions", h.SetEnvironmentPermission)

	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/read", h.MarkAllNotificationsRead)
	api.POST("/notifications/:notificationId/read", h.MarkNotificationRead)
	api.DELETE("/notifications/read", h.PurgeReadNotifications)

	api.GET("/audit", h.ListAudit)
	api.GET("/stats", h.Stats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// errorStatus maps the service error taxonomy onto HTTP.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNoApproverAssigned):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInsufficientAvailability),
		errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) serviceError(c echo.Context, op string, err error) error {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.log.Error(op, zap.Error(err), zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
	}
	return echo.NewHTTPError(code, err.Error())
}

func (h *Handler) actor(c echo.Context) (model.Actor, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return model.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return actor, nil
}
