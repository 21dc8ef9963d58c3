package model

import "time"

type CreateItemRequest struct {
	Name                   string    `json:"name" validate:"required,max=255"`
	Description            string    `json:"description"`
	Category               string    `json:"category" validate:"required"`
	Condition              Condition `json:"condition" validate:"omitempty,oneof=GOOD NOTICEABLE_WEAR DAMAGED"`
	Units                  int       `json:"units" validate:"gte=1"`
	RequiresAuthorization  bool      `json:"requiresAuthorization"`
	RestrictedToPrivileged bool      `json:"restrictedToPrivileged"`
}

// ItemUpdate carries only catalog fields. Units and condition belong to the
// ledger and are not reachable from here.
type ItemUpdate struct {
	Name                   *string `json:"name" validate:"omitempty,max=255"`
	Description            *string `json:"description"`
	Category               *string `json:"category"`
	RequiresAuthorization  *bool   `json:"requiresAuthorization"`
	RestrictedToPrivileged *bool   `json:"restrictedToPrivileged"`
}

func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.RequiresAuthorization == nil && u.RestrictedToPrivileged == nil
}

// StockAdjustment restocks (Delta > 0) or retires (Delta < 0) units and
// optionally regrades the item.
type StockAdjustment struct {
	Delta     int        `json:"delta"`
	Condition *Condition `json:"condition" validate:"omitempty,oneof=GOOD NOTICEABLE_WEAR DAMAGED"`
	Reason    string     `json:"reason"`
}

type ItemFilter struct {
	Category      string
	OnlyAvailable bool
	OnlyProblems  bool
}

type LoanRequest struct {
	ItemID       string `json:"itemId" validate:"required"`
	Units        int    `json:"units"`
	BorrowerName string `json:"borrowerName"`
	Environment  string `json:"environment"`
	Shift        string `json:"shift"`
	Observations string `json:"observations"`
}

type DecisionRequest struct {
	Decision Decision `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Reason   string   `json:"reason"`
}

type ReturnRequest struct {
	Condition    Condition    `json:"condition" validate:"required,oneof=GOOD NOTICEABLE_WEAR DAMAGED"`
	Notice       ReturnNotice `json:"notice" validate:"omitempty,oneof=NONE DAMAGE THEFT EXCESSIVE_WEAR LOSS"`
	Observations string       `json:"observations"`
}

type ReservationRequest struct {
	ItemID        string    `json:"itemId" validate:"required"`
	WindowStart   time.Time `json:"windowStart" validate:"required"`
	WindowEnd     time.Time `json:"windowEnd" validate:"required"`
	Location      string    `json:"location"`
	RequesterName string    `json:"requesterName"`
}

type LoanFilter struct {
	ItemID     string
	BorrowerID string
	State      LoanState
	Limit      int
}

type ReservationFilter struct {
	ItemID      string
	RequesterID string
	State       ReservationState
	Limit       int
}

type UserFilter struct {
	Role       Role
	OnlyActive bool
}

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role" validate:"required,oneof=INSTRUCTOR STAFF APPRENTICE EXTERNAL"`
}

type AssignmentRequest struct {
	InstructorID string `json:"instructorId" validate:"required"`
	ApprenticeID string `json:"apprenticeId" validate:"required"`
	Environment  string `json:"environment" validate:"required"`
}

type PermissionRequest struct {
	InstructorID string `json:"instructorId"`
	Environment  string `json:"environment" validate:"required"`
	Enabled      bool   `json:"enabled"`
}

// Event is one lifecycle transition, published after commit and folded into
// the audit log.
type Event struct {
	ID          string      `json:"id"`
	OccurredAt  time.Time   `json:"occurredAt"`
	ActorID     string      `json:"actorId"`
	Action      string      `json:"action"`
	SubjectType SubjectType `json:"subjectType"`
	SubjectID   string      `json:"subjectId"`
	ItemID      string      `json:"itemId,omitempty"`
	Detail      string      `json:"detail,omitempty"`
}

func (e Event) AuditEntry() AuditEntry {
	return AuditEntry{
		EventID:     e.ID,
		OccurredAt:  e.OccurredAt,
		ActorID:     e.ActorID,
		Action:      e.Action,
		SubjectType: e.SubjectType,
		SubjectID:   e.SubjectID,
		ItemID:      e.ItemID,
		Detail:      e.Detail,
	}
}

const (
	ActionItemCreated          = "item.created"
	ActionItemUpdated          = "item.updated"
	ActionItemDeleted          = "item.deleted"
	ActionStockAdjusted        = "item.stock_adjusted"
	ActionLoanRequested        = "loan.requested"
	ActionLoanActivated        = "loan.activated"
	ActionLoanRejected         = "loan.rejected"
	ActionLoanReturned         = "loan.returned"
	ActionLoanCancelled        = "loan.cancelled"
	ActionReservationRequested = "reservation.requested"
	ActionReservationApproved  = "reservation.approved"
	ActionReservationRejected  = "reservation.rejected"
	ActionReservationActivated = "reservation.activated"
	ActionReservationCompleted = "reservation.completed"
	ActionReservationCancelled = "reservation.cancelled"
	ActionUserRegistered       = "user.registered"
	ActionUserActivated        = "user.activated"
	ActionUserDeactivated      = "user.deactivated"
	ActionUserRoleChanged      = "user.role_changed"
	ActionAssignmentChanged    = "assignment.changed"
	ActionPermissionChanged    = "permission.changed"
)
