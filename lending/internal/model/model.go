package model

import (
	"time"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
	RoleStaff      Role = "STAFF"
	RoleApprentice Role = "APPRENTICE"
	RoleExternal   Role = "EXTERNAL"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStaff, RoleApprentice, RoleExternal:
		return true
	}
	return false
}

// Privileged roles may borrow restricted items and decide on requests.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleInstructor
}

// Actor is the caller identity established by the outer login layer.
// Role is the role the login layer vouched for; empty means no claim.
type Actor struct {
	UserID string
	Role   Role
}

type Condition string

const (
	ConditionGood           Condition = "GOOD"
	ConditionNoticeableWear Condition = "NOTICEABLE_WEAR"
	ConditionDamaged        Condition = "DAMAGED"
)

func (c Condition) Valid() bool {
	return c == ConditionGood || c == ConditionNoticeableWear || c == ConditionDamaged
}

type ReturnNotice string

const (
	NoticeNone          ReturnNotice = "NONE"
	NoticeDamage        ReturnNotice = "DAMAGE"
	NoticeTheft         ReturnNotice = "THEFT"
	NoticeExcessiveWear ReturnNotice = "EXCESSIVE_WEAR"
	NoticeLoss          ReturnNotice = "LOSS"
)

func (n ReturnNotice) Valid() bool {
	switch n {
	case NoticeNone, NoticeDamage, NoticeTheft, NoticeExcessiveWear, NoticeLoss:
		return true
	}
	return false
}

// PermanentLoss is the number of units a flagged return takes out of
// circulation for good.
func (n ReturnNotice) PermanentLoss() int {
	if n == NoticeNone || n == "" {
		return 0
	}
	return 1
}

type LoanState string

const (
	LoanPending   LoanState = "PENDING"
	LoanActive    LoanState = "ACTIVE"
	LoanRejected  LoanState = "REJECTED"
	LoanReturned  LoanState = "RETURNED"
	LoanCancelled LoanState = "CANCELLED"
)

func (s LoanState) Terminal() bool {
	return s == LoanRejected || s == LoanReturned || s == LoanCancelled
}

type ReservationState string

const (
	ReservationPending   ReservationState = "PENDING"
	ReservationApproved  ReservationState = "APPROVED"
	ReservationRejected  ReservationState = "REJECTED"
	ReservationActive    ReservationState = "ACTIVE"
	ReservationCompleted ReservationState = "COMPLETED"
	ReservationCancelled ReservationState = "CANCELLED"
)

// HoldsUnits reports whether a reservation in this state has a unit
// decremented from its item.
func (s ReservationState) HoldsUnits() bool {
	return s == ReservationApproved || s == ReservationActive
}

func (s ReservationState) Terminal() bool {
	return s == ReservationRejected || s == ReservationCompleted || s == ReservationCancelled
}

type SubjectType string

const (
	SubjectLoan        SubjectType = "LOAN"
	SubjectReservation SubjectType = "RESERVATION"
	SubjectUser        SubjectType = "USER"
	SubjectItem        SubjectType = "ITEM"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type Item struct {
	ID                     string    `json:"id" db:"id"`
	Name                   string    `json:"name" db:"name"`
	Description            string    `json:"description" db:"description"`
	Category               string    `json:"category" db:"category"`
	Condition              Condition `json:"condition" db:"condition"`
	TotalUnits             int       `json:"totalUnits" db:"total_units"`
	AvailableUnits         int       `json:"availableUnits" db:"available_units"`
	RequiresAuthorization  bool      `json:"requiresAuthorization" db:"requires_authorization"`
	RestrictedToPrivileged bool      `json:"restrictedToPrivileged" db:"restricted_to_privileged"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

type ItemPolicy struct {
	RequiresAuthorization  bool
	RestrictedToPrivileged bool
}

func (i Item) Policy() ItemPolicy {
	return ItemPolicy{
		RequiresAuthorization:  i.RequiresAuthorization,
		RestrictedToPrivileged: i.RestrictedToPrivileged,
	}
}

// ItemUnits is the slice of an item owned by the availability ledger.
type ItemUnits struct {
	ItemID    string
	Total     int
	Available int
}

// Held is the number of units currently out on loans or reservations.
func (u ItemUnits) Held() int { return u.Total - u.Available }

type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Role      Role      `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Loan struct {
	ID              string       `json:"id" db:"id"`
	ItemID          string       `json:"itemId" db:"item_id"`
	BorrowerID      string       `json:"borrowerId" db:"borrower_id"`
	BorrowerName    string       `json:"borrowerName" db:"borrower_name"`
	Units           int          `json:"units" db:"units"`
	State           LoanState    `json:"state" db:"state"`
	Environment     string       `json:"environment" db:"environment"`
	Shift           string       `json:"shift" db:"shift"`
	RequestedAt     time.Time    `json:"requestedAt" db:"requested_at"`
	DecidedAt       *time.Time   `json:"decidedAt,omitempty" db:"decided_at"`
	ReturnedAt      *time.Time   `json:"returnedAt,omitempty" db:"returned_at"`
	DecidedBy       *string      `json:"decidedBy,omitempty" db:"decided_by"`
	RejectReason    string       `json:"rejectReason,omitempty" db:"reject_reason"`
	ReturnCondition Condition    `json:"returnCondition,omitempty" db:"return_condition"`
	ReturnNotice    ReturnNotice `json:"returnNotice" db:"return_notice"`
	Observations    string       `json:"observations,omitempty" db:"observations"`
}

type Reservation struct {
	ID            string           `json:"id" db:"id"`
	ItemID        string           `json:"itemId" db:"item_id"`
	RequesterID   string           `json:"requesterId" db:"requester_id"`
	RequesterName string           `json:"requesterName" db:"requester_name"`
	State         ReservationState `json:"state" db:"state"`
	WindowStart   time.Time        `json:"windowStart" db:"window_start"`
	WindowEnd     time.Time        `json:"windowEnd" db:"window_end"`
	Location      string           `json:"location" db:"location"`
	DecidedAt     *time.Time       `json:"decidedAt,omitempty" db:"decided_at"`
	DecidedBy     *string          `json:"decidedBy,omitempty" db:"decided_by"`
	RejectReason  string           `json:"rejectReason,omitempty" db:"reject_reason"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// Overlaps is the half-open interval test: touching windows do not overlap.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.WindowEnd) && end.After(r.WindowStart)
}

type Notification struct {
	ID          string      `json:"id" db:"id"`
	RecipientID string      `json:"recipientId" db:"recipient_id"`
	SubjectType SubjectType `json:"subjectType" db:"subject_type"`
	SubjectID   string      `json:"subjectId" db:"subject_id"`
	Message     string      `json:"message" db:"message"`
	Read        bool        `json:"read" db:"read"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

type Assignment struct {
	InstructorID string    `json:"instructorId" db:"instructor_id"`
	ApprenticeID string    `json:"apprenticeId" db:"apprentice_id"`
	Environment  string    `json:"environment" db:"environment"`
	Active       bool      `json:"active" db:"active"`
	AssignedAt   time.Time `json:"assignedAt" db:"assigned_at"`
}

type EnvironmentPermission struct {
	InstructorID string    `json:"instructorId" db:"instructor_id"`
	Environment  string    `json:"environment" db:"environment"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type AuditEntry struct {
	ID          int64       `json:"id" db:"id"`
	EventID     string      `json:"eventId" db:"event_id"`
	OccurredAt  time.Time   `json:"occurredAt" db:"occurred_at"`
	ActorID     string      `json:"actorId" db:"actor_id"`
	Action      string      `json:"action" db:"action"`
	SubjectType SubjectType `json:"subjectType" db:"subject_type"`
	SubjectID   string      `json:"subjectId" db:"subject_id"`
	ItemID      string      `json:"itemId" db:"item_id"`
	Detail      string      `json:"detail" db:"detail"`
}

type Stats struct {
	TotalItems          int `json:"totalItems" db:"total_items"`
	ItemsAvailable      int `json:"itemsAvailable" db:"items_available"`
	ProblemItems        int `json:"problemItems" db:"problem_items"`
	ActiveLoans         int `json:"activeLoans" db:"active_loans"`
	PendingLoans        int `json:"pendingLoans" db:"pending_loans"`
	PendingReservations int `json:"pendingReservations" db:"pending_reservations"`
	ActiveUsers         int `json:"activeUsers" db:"active_users"`
	UnreadNotifications int `json:"unreadNotifications" db:"unread_notifications"`
}

type SweepResult struct {
	Activated int `json:"activated"`
	Completed int `json:"completed"`
}
