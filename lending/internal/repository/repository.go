package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store hands out a Repository bound to one unit of work. Everything fn does
// through r inside InTx commits or rolls back together.
type Store interface {
	InTx(ctx context.Context, fn func(r Repository) error) error
	View(ctx context.Context, fn func(r Repository) error) error
}

type Repository interface {
	ItemRepository
	ledger.UnitStore
	LoanRepository
	ReservationRepository
	UserRepository
	AssignmentRepository
	NotificationRepository
	AuditRepository
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item model.Item) error
	GetItem(ctx context.Context, id string) (model.Item, error)
	LockItem(ctx context.Context, id string) (model.Item, error)
	UpdateItem(ctx context.Context, id string, upd model.ItemUpdate, at time.Time) (model.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	// CountItemHolds counts open loans and reservations referencing the item.
	CountItemHolds(ctx context.Context, itemID string) (int, error)
}

type LoanRepository interface {
	CreateLoan(ctx context.Context, loan model.Loan) error
	GetLoan(ctx context.Context, id string) (model.Loan, error)
	LockLoan(ctx context.Context, id string) (model.Loan, error)
	UpdateLoan(ctx context.Context, loan model.Loan) error
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, res model.Reservation) error
	GetReservation(ctx context.Context, id string) (model.Reservation, error)
	LockReservation(ctx context.Context, id string) (model.Reservation, error)
	UpdateReservation(ctx context.Context, res model.Reservation) error
	ListReservations(ctx context.Context, filter model.ReservationFilter) ([]model.Reservation, error)
	// FindOverlapping returns APPROVED or ACTIVE reservations of the item whose
	// window intersects [start, end).
	FindOverlapping(ctx context.Context, itemID string, start, end time.Time, excludeID string) ([]model.Reservation, error)
	// ListDueReservations returns held reservations with a window that has
	// started or ended by now.
	ListDueReservations(ctx context.Context, now time.Time) ([]model.Reservation, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
	ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	ListUserIDsByRole(ctx context.Context, role model.Role) ([]string, error)
}

type AssignmentRepository interface {
	UpsertAssignment(ctx context.Context, a model.Assignment) error
	DeactivateAssignment(ctx context.Context, instructorID, apprenticeID, environment string) error
	ListAssignments(ctx context.Context, instructorID string) ([]model.Assignment, error)
	AssignedInstructor(ctx context.Context, apprenticeID, environment string) (string, bool, error)
	SetEnvironmentPermission(ctx context.Context, p model.EnvironmentPermission) error
	EnvironmentEnabled(ctx context.Context, instructorID, environment string) (bool, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n model.Notification) error
	GetNotification(ctx context.Context, id string) (model.Notification, error)
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, recipientID string) (int, error)
	MarkSubjectNotificationsRead(ctx context.Context, recipientID string, subjectType model.SubjectType, subjectID string) error
	// PurgeReadNotifications deletes read rows of recipientID, or of everyone
	// when recipientID is empty.
	PurgeReadNotifications(ctx context.Context, recipientID string) (int, error)
}

type AuditRepository interface {
	AppendAudit(ctx context.Context, e model.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error)
	Stats(ctx context.Context, recipientID string) (model.Stats, error)
}

const (
	itemsTableName         = `items`
	loansTableName         = `loans`
	reservationsTableName  = `reservations`
	usersTableName         = `users`
	assignmentsTableName   = `assignments`
	permissionsTableName   = `environment_permissions`
	notificationsTableName = `notifications`
	auditTableName         = `audit_log`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type store struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*store, error) {
	return &store{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (s *store) InTx(ctx context.Context, fn func(r Repository) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errs.Storage("begin tx", err)
	}
	if err := fn(&repository{db: tx, log: s.log}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("tx.Rollback", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr("commit", err)
	}
	return nil
}

func (s *store) View(ctx context.Context, fn func(r Repository) error) error {
	return fn(&repository{db: s.db, log: s.log})
}

// repository runs queries on either the pool or an open transaction.
type repository struct {
	db  sqlx.ExtContext
	log *zap.Logger
}

func (r *repository) get(ctx context.Context, op string, dest interface{}, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if err := sqlx.GetContext(ctx, r.db, dest, query, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
		}
		return mapErr(op, err)
	}
	return nil
}

func (r *repository) selectAll(ctx context.Context, op string, dest interface{}, q sq.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if err := sqlx.SelectContext(ctx, r.db, dest, query, args...); err != nil {
		r.log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return mapErr(op, err)
	}
	return nil
}

// exec returns the number of affected rows.
func (r *repository) exec(ctx context.Context, op string, q sq.Sqlizer) (int, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return 0, mapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errs.Storage(op, err)
	}
	return int(n), nil
}

// execOne treats zero affected rows as a missing row.
func (r *repository) execOne(ctx context.Context, op string, q sq.Sqlizer) error {
	n, err := r.exec(ctx, op, q)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrap(errs.ErrNotFound, op)
	}
	return nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(errs.ErrNotFound, op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.ExclusionViolation:
			return errors.Wrapf(errs.ErrConflict, "%s: %s", op, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrapf(errs.ErrNotFound, "%s: %s", op, pgErr.ConstraintName)
		case pgerrcode.CheckViolation:
			return errors.Wrapf(errs.ErrInvalidState, "%s: %s", op, pgErr.ConstraintName)
		}
	}
	return errs.Storage(op, err)
}
