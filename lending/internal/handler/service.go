package handler

import (
	"context"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateItem(ctx context.Context, actor model.Actor, req model.CreateItemRequest) (model.Item, error)
	GetItem(ctx context.Context, id string) (model.Item, error)
	ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	UpdateItem(ctx context.Context, actor model.Actor, id string, upd model.ItemUpdate) (model.Item, error)
	DeleteItem(ctx context.Context, actor model.Actor, id string) error
	AdjustStock(ctx context.Context, actor model.Actor, itemID string, adj model.StockAdjustment) (model.Item, error)

	RequestLoan(ctx context.Context, actor model.Actor, req model.LoanRequest) (model.Loan, error)
	DecideLoan(ctx context.Context, actor model.Actor, loanID string, req model.DecisionRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, actor model.Actor, loanID string, req model.ReturnRequest) (model.Loan, error)
	CancelLoan(ctx context.Context, actor model.Actor, loanID string) (model.Loan, error)
	GetLoan(ctx context.Context, actor model.Actor, loanID string) (model.Loan, error)
	ListLoans(ctx context.Context, actor model.Actor, filter model.LoanFilter) ([]model.Loan, error)

	RequestReservation(ctx context.Context, actor model.Actor, req model.ReservationRequest) (model.Reservation, error)
	DecideReservation(ctx context.Context, actor model.Actor, id string, req model.DecisionRequest) (model.Reservation, error)
	HasConflict(ctx context.Context, itemID string, start, end time.Time, excludeID string) (bool, error)
	CancelReservation(ctx context.Context, actor model.Actor, id string) (model.Reservation, error)
	GetReservation(ctx context.Context, actor model.Actor, id string) (model.Reservation, error)
	ListReservations(ctx context.Context, actor model.Actor, filter model.ReservationFilter) ([]model.Reservation, error)

	RegisterUser(ctx context.Context, req model.RegisterRequest) (model.User, error)
	SetUserActive(ctx context.Context, actor model.Actor, userID string, active bool) (model.User, error)
	SetUserRole(ctx context.Context, actor model.Actor, userID string, role model.Role) (model.User, error)
	GetUser(ctx context.Context, actor model.Actor, userID string) (model.User, error)
	ListUsers(ctx context.Context, actor model.Actor, filter model.UserFilter) ([]model.User, error)
	AssignApprentice(ctx context.Context, actor model.Actor, req model.AssignmentRequest) (model.Assignment, error)
	UnassignApprentice(ctx context.Context, actor model.Actor, req model.AssignmentRequest) error
	ListAssignments(ctx context.Context, actor model.Actor) ([]model.Assignment, error)
	SetEnvironmentPermission(ctx context.Context, actor model.Actor, req model.PermissionRequest) (model.EnvironmentPermission, error)

	ListNotifications(ctx context.Context, actor model.Actor, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, actor model.Actor, id string) error
	MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int, error)
	PurgeReadNotifications(ctx context.Context, actor model.Actor) (int, error)

	RecordAudit(ctx context.Context, ev model.Event) error
	ListAudit(ctx context.Context, actor model.Actor, limit int) ([]model.AuditEntry, error)
	Stats(ctx context.Context, actor model.Actor) (model.Stats, error)
}

var _ LendingService = (*service.Service)(nil)
