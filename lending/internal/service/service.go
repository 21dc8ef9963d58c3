package service

import (
	"context"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher ships lifecycle events once their transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, ev model.Event) error
}

type Service struct {
	log        *zap.Logger
	store      repository.Store
	dispatcher *Dispatcher
	publisher  Publisher
	now        func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for the service and its dispatcher.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store repository.Store, publisher Publisher, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		store:     store,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatcher = NewDispatcher(store, log, s.now)
	return s
}

// caller resolves the acting user. Unknown and inactive accounts may not act.
func (s *Service) caller(ctx context.Context, r repository.Repository, actor model.Actor) (model.User, error) {
	if actor.UserID == "" {
		return model.User{}, errors.Wrap(errs.ErrPermissionDenied, "no caller identity")
	}
	u, err := r.GetUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errors.Wrapf(errs.ErrPermissionDenied, "unknown user %s", actor.UserID)
		}
		return model.User{}, err
	}
	if !u.Active {
		return model.User{}, errors.Wrapf(errs.ErrPermissionDenied, "user %s is not active", u.ID)
	}
	// authorization always uses the stored role; a claim must agree with it
	if actor.Role != "" && actor.Role != u.Role {
		return model.User{}, errors.Wrapf(errs.ErrPermissionDenied, "claimed role %s, user %s is %s", actor.Role, u.ID, u.Role)
	}
	return u, nil
}

func requireRole(u model.User, roles ...model.Role) error {
	for _, role := range roles {
		if u.Role == role {
			return nil
		}
	}
	return errors.Wrapf(errs.ErrPermissionDenied, "role %s may not do this", u.Role)
}

type notice struct {
	recipients  []string
	subjectType model.SubjectType
	subjectID   string
	message     string
}

type markRead struct {
	recipientID string
	subjectType model.SubjectType
	subjectID   string
}

// effects collects what a transaction wants to happen after it commits.
type effects struct {
	notices []notice
	reads   []markRead
	events  []model.Event
}

func (fx *effects) notify(subjectType model.SubjectType, subjectID, message string, recipients ...string) {
	if len(recipients) == 0 {
		return
	}
	fx.notices = append(fx.notices, notice{
		recipients:  recipients,
		subjectType: subjectType,
		subjectID:   subjectID,
		message:     message,
	})
}

func (fx *effects) markRead(recipientID string, subjectType model.SubjectType, subjectID string) {
	fx.reads = append(fx.reads, markRead{recipientID: recipientID, subjectType: subjectType, subjectID: subjectID})
}

func (fx *effects) event(ev model.Event) {
	fx.events = append(fx.events, ev)
}

func (s *Service) newEvent(actorID, action string, subjectType model.SubjectType, subjectID, itemID, detail string) model.Event {
	return model.Event{
		ID:          uuid.NewString(),
		OccurredAt:  s.now(),
		ActorID:     actorID,
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		ItemID:      itemID,
		Detail:      detail,
	}
}

// inTx runs fn and, only when it commits, applies the collected effects.
// Effect failures are logged and never reach the caller.
func (s *Service) inTx(ctx context.Context, fn func(r repository.Repository, fx *effects) error) error {
	var fx effects
	err := s.store.InTx(ctx, func(r repository.Repository) error {
		fx = effects{}
		return fn(r, &fx)
	})
	if err != nil {
		return err
	}
	s.apply(ctx, &fx)
	return nil
}

func (s *Service) apply(ctx context.Context, fx *effects) {
	for _, n := range fx.notices {
		s.dispatcher.Notify(ctx, n.recipients, n.subjectType, n.subjectID, n.message)
	}
	for _, m := range fx.reads {
		s.dispatcher.MarkSubjectRead(ctx, m.recipientID, m.subjectType, m.subjectID)
	}
	if s.publisher == nil {
		return
	}
	for _, ev := range fx.events {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.log.Warn("publish event",
				zap.String("action", ev.Action),
				zap.String("subject", ev.SubjectID),
				zap.Error(err))
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }
