package repository

import (
	"context"
	"strings"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "name", "email", "phone", "role", "active", "created_at"}

func (r *repository) CreateUser(ctx context.Context, u model.User) error {
	q := qb.Insert(usersTableName).
		Columns(userColumns...).
		Values(u.ID, u.Name, strings.ToLower(u.Email), u.Phone, u.Role, u.Active, u.CreatedAt)
	_, err := r.exec(ctx, "CreateUser", q)
	return err
}

func (r *repository) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.get(ctx, "GetUser", &u, qb.Select(userColumns...).From(usersTableName).Where(sq.Eq{"id": id}))
	return u, err
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.get(ctx, "GetUserByEmail", &u,
		qb.Select(userColumns...).From(usersTableName).Where(sq.Eq{"email": strings.ToLower(email)}))
	return u, err
}

func (r *repository) UpdateUser(ctx context.Context, u model.User) error {
	return r.execOne(ctx, "UpdateUser", qb.Update(usersTableName).
		Set("name", u.Name).
		Set("phone", u.Phone).
		Set("role", u.Role).
		Set("active", u.Active).
		Where(sq.Eq{"id": u.ID}))
}

func (r *repository) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	q := qb.Select(userColumns...).From(usersTableName).OrderBy("name", "id")
	if filter.Role != "" {
		q = q.Where(sq.Eq{"role": filter.Role})
	}
	if filter.OnlyActive {
		q = q.Where(sq.Eq{"active": true})
	}
	users := make([]model.User, 0)
	err := r.selectAll(ctx, "ListUsers", &users, q)
	return users, err
}

func (r *repository) ListUserIDsByRole(ctx context.Context, role model.Role) ([]string, error) {
	ids := make([]string, 0)
	err := r.selectAll(ctx, "ListUserIDsByRole", &ids,
		qb.Select("id").From(usersTableName).Where(sq.Eq{"role": role, "active": true}).OrderBy("id"))
	return ids, err
}

func (r *repository) UpsertAssignment(ctx context.Context, a model.Assignment) error {
	q := qb.Insert(assignmentsTableName).
		Columns("instructor_id", "apprentice_id", "environment", "active", "assigned_at").
		Values(a.InstructorID, a.ApprenticeID, a.Environment, true, a.AssignedAt).
		Suffix("ON CONFLICT (instructor_id, apprentice_id, environment) DO UPDATE SET active = TRUE, assigned_at = EXCLUDED.assigned_at")
	_, err := r.exec(ctx, "UpsertAssignment", q)
	return err
}

func (r *repository) DeactivateAssignment(ctx context.Context, instructorID, apprenticeID, environment string) error {
	return r.execOne(ctx, "DeactivateAssignment", qb.Update(assignmentsTableName).
		Set("active", false).
		Where(sq.Eq{
			"instructor_id": instructorID,
			"apprentice_id": apprenticeID,
			"environment":   environment,
			"active":        true,
		}))
}

func (r *repository) ListAssignments(ctx context.Context, instructorID string) ([]model.Assignment, error) {
	q := qb.Select("instructor_id", "apprentice_id", "environment", "active", "assigned_at").
		From(assignmentsTableName).
		Where(sq.Eq{"active": true}).
		OrderBy("environment", "apprentice_id")
	if instructorID != "" {
		q = q.Where(sq.Eq{"instructor_id": instructorID})
	}
	out := make([]model.Assignment, 0)
	err := r.selectAll(ctx, "ListAssignments", &out, q)
	return out, err
}

// AssignedInstructor picks the most recent active assignment when an
// apprentice has several instructors in one environment.
func (r *repository) AssignedInstructor(ctx context.Context, apprenticeID, environment string) (string, bool, error) {
	ids := make([]string, 0, 1)
	err := r.selectAll(ctx, "AssignedInstructor", &ids,
		qb.Select("a.instructor_id").
			From(assignmentsTableName+" a").
			Join(usersTableName+" u ON u.id = a.instructor_id").
			Where(sq.Eq{"a.apprentice_id": apprenticeID, "a.environment": environment, "a.active": true, "u.active": true}).
			OrderBy("a.assigned_at DESC").
			Limit(1))
	if err != nil || len(ids) == 0 {
		return "", false, err
	}
	return ids[0], true, nil
}

func (r *repository) SetEnvironmentPermission(ctx context.Context, p model.EnvironmentPermission) error {
	q := qb.Insert(permissionsTableName).
		Columns("instructor_id", "environment", "enabled", "updated_at").
		Values(p.InstructorID, p.Environment, p.Enabled, p.UpdatedAt).
		Suffix("ON CONFLICT (instructor_id, environment) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at")
	_, err := r.exec(ctx, "SetEnvironmentPermission", q)
	return err
}

// EnvironmentEnabled treats a missing row as enabled.
func (r *repository) EnvironmentEnabled(ctx context.Context, instructorID, environment string) (bool, error) {
	vals := make([]bool, 0, 1)
	err := r.selectAll(ctx, "EnvironmentEnabled", &vals,
		qb.Select("enabled").From(permissionsTableName).
			Where(sq.Eq{"instructor_id": instructorID, "environment": environment}))
	if err != nil {
		return false, err
	}
	return len(vals) == 0 || vals[0], nil
}
