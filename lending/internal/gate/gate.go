// Package gate decides whether a loan or reservation may activate on its own
// or has to wait for an instructor.
package gate

import (
	"context"
	"fmt"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
)

type Outcome int

const (
	AutoApprove Outcome = iota + 1
	RequireApproval
)

func (o Outcome) String() string {
	switch o {
	case AutoApprove:
		return "auto_approve"
	case RequireApproval:
		return "require_approval"
	}
	return "unknown"
}

// Decide is the single role x policy table. It never touches storage.
func Decide(role model.Role, policy model.ItemPolicy) (Outcome, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", errs.ErrPermissionDenied, role)
	}
	if policy.RestrictedToPrivileged && !role.Privileged() {
		return 0, fmt.Errorf("%w: item restricted to admins and instructors", errs.ErrPermissionDenied)
	}
	if role == model.RoleApprentice && policy.RequiresAuthorization {
		return RequireApproval, nil
	}
	return AutoApprove, nil
}

// AssignmentLookup answers who supervises an apprentice in an environment.
type AssignmentLookup interface {
	AssignedInstructor(ctx context.Context, apprenticeID, environment string) (string, bool, error)
	EnvironmentEnabled(ctx context.Context, instructorID, environment string) (bool, error)
}

// Approver resolves the instructor who must decide a gated request.
func Approver(ctx context.Context, lookup AssignmentLookup, requesterID, environment string) (string, error) {
	instructorID, ok, err := lookup.AssignedInstructor(ctx, requesterID, environment)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: user %s in environment %q", errs.ErrNoApproverAssigned, requesterID, environment)
	}
	enabled, err := lookup.EnvironmentEnabled(ctx, instructorID, environment)
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", fmt.Errorf("%w: environment %q disabled by instructor", errs.ErrPermissionDenied, environment)
	}
	return instructorID, nil
}
