package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository/memory"
	"github.com/Eduard-Gallardo/lendix/lending/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	ctx   context.Context
	store *memory.Store
	svc   *service.Service
	clock *clock
	pub   *recordingPublisher

	admin, instructor, apprentice, staff, external model.Actor
}

const labEnv = "electronics-lab"

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		store: memory.NewStore(zap.NewNop()),
		clock: &clock{t: t0},
		pub:   &recordingPublisher{},
	}
	f.svc = service.NewService(f.store, f.pub, zap.NewNop(), service.WithClock(f.clock.Now))

	f.admin = f.addUser(t, "admin", model.RoleAdmin)
	f.instructor = f.addUser(t, "instructor", model.RoleInstructor)
	f.apprentice = f.addUser(t, "apprentice", model.RoleApprentice)
	f.staff = f.addUser(t, "staff", model.RoleStaff)
	f.external = f.addUser(t, "external", model.RoleExternal)

	_, err := f.svc.AssignApprentice(f.ctx, f.admin, model.AssignmentRequest{
		InstructorID: f.instructor.UserID,
		ApprenticeID: f.apprentice.UserID,
		Environment:  labEnv,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) addUser(t *testing.T, id string, role model.Role) model.Actor {
	t.Helper()
	require.NoError(t, f.store.InTx(f.ctx, func(r repository.Repository) error {
		return r.CreateUser(f.ctx, model.User{
			ID: id, Name: id, Email: id + "@lendix.test", Role: role, Active: true, CreatedAt: t0,
		})
	}))
	return model.Actor{UserID: id, Role: role}
}

func (f *fixture) addItem(t *testing.T, units int, requiresAuth, restricted bool) model.Item {
	t.Helper()
	item, err := f.svc.CreateItem(f.ctx, f.admin, model.CreateItemRequest{
		Name:                   "Soldering station",
		Category:               "electronics",
		Units:                  units,
		RequiresAuthorization:  requiresAuth,
		RestrictedToPrivileged: restricted,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) item(t *testing.T, id string) model.Item {
	t.Helper()
	item, err := f.svc.GetItem(f.ctx, id)
	require.NoError(t, err)
	return item
}

func (f *fixture) notifications(t *testing.T, who model.Actor, unreadOnly bool) []model.Notification {
	t.Helper()
	ns, err := f.svc.ListNotifications(f.ctx, who, unreadOnly)
	require.NoError(t, err)
	return ns
}

// heldUnits sums units tied up by active loans and held reservations.
func (f *fixture) heldUnits(t *testing.T, itemID string) int {
	t.Helper()
	held := 0
	require.NoError(t, f.store.View(f.ctx, func(r repository.Repository) error {
		loans, err := r.ListLoans(f.ctx, model.LoanFilter{ItemID: itemID, State: model.LoanActive})
		if err != nil {
			return err
		}
		for _, l := range loans {
			held += l.Units
		}
		res, err := r.ListReservations(f.ctx, model.ReservationFilter{ItemID: itemID})
		if err != nil {
			return err
		}
		for _, rv := range res {
			if rv.State.HoldsUnits() {
				held++
			}
		}
		return nil
	}))
	return held
}

func (f *fixture) requireAccounting(t *testing.T, itemID string) {
	t.Helper()
	item := f.item(t, itemID)
	require.GreaterOrEqual(t, item.AvailableUnits, 0)
	require.LessOrEqual(t, item.AvailableUnits, item.TotalUnits)
	require.Equal(t, item.TotalUnits, item.AvailableUnits+f.heldUnits(t, itemID))
}
