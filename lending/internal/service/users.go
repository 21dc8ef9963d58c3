package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RegisterUser creates an account. Every self-registered account stays
// inactive until an admin turns it on; admins hear about every signup.
func (s *Service) RegisterUser(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if !req.Role.Valid() {
		return model.User{}, errors.Wrapf(errs.ErrValidation, "unknown role %q", req.Role)
	}
	if req.Role == model.RoleAdmin {
		return model.User{}, errors.Wrap(errs.ErrPermissionDenied, "admin accounts cannot self-register")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return model.User{}, errors.Wrap(errs.ErrValidation, "name and email are required")
	}
	u := model.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Role:      req.Role,
		Active:    false,
		CreatedAt: s.now(),
	}
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		if err := r.CreateUser(ctx, u); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return errors.Wrapf(errs.ErrConflict, "email %s already registered", u.Email)
			}
			return err
		}
		admins, err := r.ListUserIDsByRole(ctx, model.RoleAdmin)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("new %s account: %s (pending activation)", strings.ToLower(string(u.Role)), u.Name)
		fx.notify(model.SubjectUser, u.ID, msg, admins...)
		fx.event(s.newEvent(u.ID, model.ActionUserRegistered, model.SubjectUser, u.ID, "", string(u.Role)))
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// EnsureAdmin makes sure an active admin with the given email exists.
// created reports whether a new account was made.
func (s *Service) EnsureAdmin(ctx context.Context, name, email string) (user model.User, created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.User{}, false, errors.Wrap(errs.ErrValidation, "admin email is required")
	}
	if name == "" {
		name = "Administrator"
	}
	err = s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		existing, err := r.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			user = existing
			if existing.Role == model.RoleAdmin && existing.Active {
				return nil
			}
			user.Role = model.RoleAdmin
			user.Active = true
			return r.UpdateUser(ctx, user)
		case errors.Is(err, errs.ErrNotFound):
		default:
			return err
		}
		user = model.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      model.RoleAdmin,
			Active:    true,
			CreatedAt: s.now(),
		}
		created = true
		fx.event(s.newEvent("", model.ActionUserRegistered, model.SubjectUser, user.ID, "", "bootstrap admin"))
		return r.CreateUser(ctx, user)
	})
	if err != nil {
		return model.User{}, false, err
	}
	if created {
		s.log.Info("initial admin created", zap.String("email", email))
	}
	return user, created, nil
}

func (s *Service) SetUserActive(ctx context.Context, actor model.Actor, userID string, active bool) (model.User, error) {
	var target model.User
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		if userID == u.ID && !active {
			return errors.Wrap(errs.ErrInvalidState, "admins cannot deactivate themselves")
		}
		target, err = r.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if target.Active == active {
			return nil
		}
		target.Active = active
		if err := r.UpdateUser(ctx, target); err != nil {
			return err
		}
		action := model.ActionUserDeactivated
		if active {
			action = model.ActionUserActivated
			fx.notify(model.SubjectUser, target.ID, "your account has been activated", target.ID)
		}
		fx.markRead(u.ID, model.SubjectUser, target.ID)
		fx.event(s.newEvent(u.ID, action, model.SubjectUser, target.ID, "", ""))
		return nil
	})
	return target, err
}

func (s *Service) SetUserRole(ctx context.Context, actor model.Actor, userID string, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, errors.Wrapf(errs.ErrValidation, "unknown role %q", role)
	}
	var target model.User
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := requireRole(u, model.RoleAdmin); err != nil {
			return err
		}
		if userID == u.ID && role != model.RoleAdmin {
			return errors.Wrap(errs.ErrInvalidState, "admins cannot demote themselves")
		}
		target, err = r.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		prev := target.Role
		target.Role = role
		if err := r.UpdateUser(ctx, target); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionUserRoleChanged, model.SubjectUser, target.ID, "",
			fmt.Sprintf("%s -> %s", prev, role)))
		return nil
	})
	return target, err
}

func (s *Service) GetUser(ctx context.Context, actor model.Actor, userID string) (model.User, error) {
	var target model.User
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if u.ID != userID && !u.Role.Privileged() {
			return errors.Wrap(errs.ErrPermissionDenied, "cannot view other users")
		}
		target, err = r.GetUser(ctx, userID)
		return err
	})
	return target, err
}

func (s *Service) ListUsers(ctx context.Context, actor model.Actor, filter model.UserFilter) ([]model.User, error) {
	var users []model.User
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			return errors.Wrap(errs.ErrPermissionDenied, "cannot list users")
		}
		users, err = r.ListUsers(ctx, filter)
		return err
	})
	return users, err
}

// canManageInstructor: admins manage anyone, instructors only themselves.
func canManageInstructor(u model.User, instructorID string) error {
	if u.Role == model.RoleAdmin || (u.Role == model.RoleInstructor && u.ID == instructorID) {
		return nil
	}
	return errors.Wrap(errs.ErrPermissionDenied, "cannot manage another instructor")
}

func (s *Service) AssignApprentice(ctx context.Context, actor model.Actor, req model.AssignmentRequest) (model.Assignment, error) {
	if req.InstructorID == "" || req.ApprenticeID == "" || req.Environment == "" {
		return model.Assignment{}, errors.Wrap(errs.ErrValidation, "instructor, apprentice and environment are required")
	}
	a := model.Assignment{
		InstructorID: req.InstructorID,
		ApprenticeID: req.ApprenticeID,
		Environment:  req.Environment,
		Active:       true,
		AssignedAt:   s.now(),
	}
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := canManageInstructor(u, req.InstructorID); err != nil {
			return err
		}
		instructor, err := r.GetUser(ctx, req.InstructorID)
		if err != nil {
			return err
		}
		if instructor.Role != model.RoleInstructor {
			return errors.Wrapf(errs.ErrValidation, "user %s is not an instructor", instructor.ID)
		}
		apprentice, err := r.GetUser(ctx, req.ApprenticeID)
		if err != nil {
			return err
		}
		if apprentice.Role != model.RoleApprentice {
			return errors.Wrapf(errs.ErrValidation, "user %s is not an apprentice", apprentice.ID)
		}
		if err := r.UpsertAssignment(ctx, a); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionAssignmentChanged, model.SubjectUser, apprentice.ID, "",
			fmt.Sprintf("assigned to %s in %s", instructor.ID, a.Environment)))
		return nil
	})
	if err != nil {
		return model.Assignment{}, err
	}
	return a, nil
}

func (s *Service) UnassignApprentice(ctx context.Context, actor model.Actor, req model.AssignmentRequest) error {
	return s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if err := canManageInstructor(u, req.InstructorID); err != nil {
			return err
		}
		if err := r.DeactivateAssignment(ctx, req.InstructorID, req.ApprenticeID, req.Environment); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionAssignmentChanged, model.SubjectUser, req.ApprenticeID, "",
			fmt.Sprintf("unassigned from %s in %s", req.InstructorID, req.Environment)))
		return nil
	})
}

// ListAssignments lists active assignments; instructors see their own.
func (s *Service) ListAssignments(ctx context.Context, actor model.Actor) ([]model.Assignment, error) {
	var out []model.Assignment
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		scope := ""
		switch u.Role {
		case model.RoleAdmin:
		case model.RoleInstructor:
			scope = u.ID
		default:
			return errors.Wrap(errs.ErrPermissionDenied, "cannot list assignments")
		}
		out, err = r.ListAssignments(ctx, scope)
		return err
	})
	return out, err
}

// SetEnvironmentPermission turns gated requests in one environment on or off
// for an instructor. An empty InstructorID means the caller.
func (s *Service) SetEnvironmentPermission(ctx context.Context, actor model.Actor, req model.PermissionRequest) (model.EnvironmentPermission, error) {
	if req.Environment == "" {
		return model.EnvironmentPermission{}, errors.Wrap(errs.ErrValidation, "environment is required")
	}
	p := model.EnvironmentPermission{
		InstructorID: req.InstructorID,
		Environment:  req.Environment,
		Enabled:      req.Enabled,
		UpdatedAt:    s.now(),
	}
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if p.InstructorID == "" {
			p.InstructorID = u.ID
		}
		if err := canManageInstructor(u, p.InstructorID); err != nil {
			return err
		}
		instructor, err := r.GetUser(ctx, p.InstructorID)
		if err != nil {
			return err
		}
		if instructor.Role != model.RoleInstructor {
			return errors.Wrapf(errs.ErrValidation, "user %s is not an instructor", instructor.ID)
		}
		if err := r.SetEnvironmentPermission(ctx, p); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionPermissionChanged, model.SubjectUser, p.InstructorID, "",
			fmt.Sprintf("%s enabled=%t", p.Environment, p.Enabled)))
		return nil
	})
	if err != nil {
		return model.EnvironmentPermission{}, err
	}
	return p, nil
}
