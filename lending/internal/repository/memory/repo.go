package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/pkg/errors"
)

func notFound(op string) error { return errors.Wrap(errs.ErrNotFound, op) }

func (r *repo) CreateItem(_ context.Context, item model.Item) error {
	if err := r.writable("CreateItem"); err != nil {
		return err
	}
	if _, ok := r.st.items[item.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "CreateItem")
	}
	r.st.items[item.ID] = item
	return nil
}

func (r *repo) GetItem(_ context.Context, id string) (model.Item, error) {
	item, ok := r.st.items[id]
	if !ok {
		return model.Item{}, notFound("GetItem")
	}
	return item, nil
}

// LockItem is GetItem: the store-wide writer lock already serializes.
func (r *repo) LockItem(ctx context.Context, id string) (model.Item, error) {
	return r.GetItem(ctx, id)
}

func (r *repo) UpdateItem(_ context.Context, id string, upd model.ItemUpdate, at time.Time) (model.Item, error) {
	if err := r.writable("UpdateItem"); err != nil {
		return model.Item{}, err
	}
	item, ok := r.st.items[id]
	if !ok {
		return model.Item{}, notFound("UpdateItem")
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.RequiresAuthorization != nil {
		item.RequiresAuthorization = *upd.RequiresAuthorization
	}
	if upd.RestrictedToPrivileged != nil {
		item.RestrictedToPrivileged = *upd.RestrictedToPrivileged
	}
	item.UpdatedAt = at
	r.st.items[id] = item
	return item, nil
}

// DeleteItem cascades to the item's loans and reservations.
func (r *repo) DeleteItem(_ context.Context, id string) error {
	if err := r.writable("DeleteItem"); err != nil {
		return err
	}
	if _, ok := r.st.items[id]; !ok {
		return notFound("DeleteItem")
	}
	delete(r.st.items, id)
	for k, l := range r.st.loans {
		if l.ItemID == id {
			delete(r.st.loans, k)
		}
	}
	for k, res := range r.st.reservations {
		if res.ItemID == id {
			delete(r.st.reservations, k)
		}
	}
	return nil
}

func (r *repo) ListItems(_ context.Context, filter model.ItemFilter) ([]model.Item, error) {
	out := make([]model.Item, 0, len(r.st.items))
	for _, item := range r.st.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.OnlyAvailable && item.AvailableUnits <= 0 {
			continue
		}
		if filter.OnlyProblems && item.Condition == model.ConditionGood {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *repo) CountItemHolds(_ context.Context, itemID string) (int, error) {
	n := 0
	for _, l := range r.st.loans {
		if l.ItemID == itemID && (l.State == model.LoanPending || l.State == model.LoanActive) {
			n++
		}
	}
	for _, res := range r.st.reservations {
		if res.ItemID == itemID && (res.State == model.ReservationPending || res.State.HoldsUnits()) {
			n++
		}
	}
	return n, nil
}

func (r *repo) LockItemUnits(_ context.Context, itemID string) (model.ItemUnits, error) {
	item, ok := r.st.items[itemID]
	if !ok {
		return model.ItemUnits{}, notFound("LockItemUnits")
	}
	return model.ItemUnits{ItemID: item.ID, Total: item.TotalUnits, Available: item.AvailableUnits}, nil
}

func (r *repo) WriteItemUnits(_ context.Context, units model.ItemUnits) error {
	if err := r.writable("WriteItemUnits"); err != nil {
		return err
	}
	item, ok := r.st.items[units.ItemID]
	if !ok {
		return notFound("WriteItemUnits")
	}
	if units.Available < 0 || units.Available > units.Total {
		return errors.Wrap(errs.ErrInvalidState, "WriteItemUnits")
	}
	item.TotalUnits = units.Total
	item.AvailableUnits = units.Available
	item.UpdatedAt = time.Now().UTC()
	r.st.items[units.ItemID] = item
	return nil
}

func (r *repo) WriteItemCondition(_ context.Context, itemID string, condition model.Condition) error {
	if err := r.writable("WriteItemCondition"); err != nil {
		return err
	}
	item, ok := r.st.items[itemID]
	if !ok {
		return notFound("WriteItemCondition")
	}
	item.Condition = condition
	item.UpdatedAt = time.Now().UTC()
	r.st.items[itemID] = item
	return nil
}

func (r *repo) CreateLoan(_ context.Context, l model.Loan) error {
	if err := r.writable("CreateLoan"); err != nil {
		return err
	}
	if _, ok := r.st.items[l.ItemID]; !ok {
		return notFound("CreateLoan: item")
	}
	if _, ok := r.st.loans[l.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "CreateLoan")
	}
	if l.ReturnNotice == "" {
		l.ReturnNotice = model.NoticeNone
	}
	r.st.loans[l.ID] = l
	return nil
}

func (r *repo) GetLoan(_ context.Context, id string) (model.Loan, error) {
	l, ok := r.st.loans[id]
	if !ok {
		return model.Loan{}, notFound("GetLoan")
	}
	return l, nil
}

func (r *repo) LockLoan(ctx context.Context, id string) (model.Loan, error) {
	return r.GetLoan(ctx, id)
}

func (r *repo) UpdateLoan(_ context.Context, l model.Loan) error {
	if err := r.writable("UpdateLoan"); err != nil {
		return err
	}
	cur, ok := r.st.loans[l.ID]
	if !ok {
		return notFound("UpdateLoan")
	}
	cur.State = l.State
	cur.DecidedAt = l.DecidedAt
	cur.ReturnedAt = l.ReturnedAt
	cur.DecidedBy = l.DecidedBy
	cur.RejectReason = l.RejectReason
	cur.ReturnCondition = l.ReturnCondition
	cur.ReturnNotice = l.ReturnNotice
	cur.Observations = l.Observations
	r.st.loans[l.ID] = cur
	return nil
}

func (r *repo) ListLoans(_ context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	out := make([]model.Loan, 0)
	for _, l := range r.st.loans {
		if filter.ItemID != "" && l.ItemID != filter.ItemID {
			continue
		}
		if filter.BorrowerID != "" && l.BorrowerID != filter.BorrowerID {
			continue
		}
		if filter.State != "" && l.State != filter.State {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.After(out[j].RequestedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// checkExclusion mirrors the reservations_no_overlap constraint.
func (r *repo) checkExclusion(res model.Reservation) error {
	if !res.State.HoldsUnits() {
		return nil
	}
	for _, other := range r.st.reservations {
		if other.ID == res.ID || other.ItemID != res.ItemID || !other.State.HoldsUnits() {
			continue
		}
		if other.Overlaps(res.WindowStart, res.WindowEnd) {
			return errors.Wrapf(errs.ErrConflict, "reservation %s overlaps %s", res.ID, other.ID)
		}
	}
	return nil
}

func (r *repo) CreateReservation(_ context.Context, res model.Reservation) error {
	if err := r.writable("CreateReservation"); err != nil {
		return err
	}
	if _, ok := r.st.items[res.ItemID]; !ok {
		return notFound("CreateReservation: item")
	}
	if _, ok := r.st.reservations[res.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "CreateReservation")
	}
	if !res.WindowStart.Before(res.WindowEnd) {
		return errors.Wrap(errs.ErrInvalidState, "CreateReservation: window order")
	}
	if err := r.checkExclusion(res); err != nil {
		return err
	}
	r.st.reservations[res.ID] = res
	return nil
}

func (r *repo) GetReservation(_ context.Context, id string) (model.Reservation, error) {
	res, ok := r.st.reservations[id]
	if !ok {
		return model.Reservation{}, notFound("GetReservation")
	}
	return res, nil
}

func (r *repo) LockReservation(ctx context.Context, id string) (model.Reservation, error) {
	return r.GetReservation(ctx, id)
}

func (r *repo) UpdateReservation(_ context.Context, res model.Reservation) error {
	if err := r.writable("UpdateReservation"); err != nil {
		return err
	}
	cur, ok := r.st.reservations[res.ID]
	if !ok {
		return notFound("UpdateReservation")
	}
	cur.State = res.State
	cur.DecidedAt = res.DecidedAt
	cur.DecidedBy = res.DecidedBy
	cur.RejectReason = res.RejectReason
	if err := r.checkExclusion(cur); err != nil {
		return err
	}
	r.st.reservations[res.ID] = cur
	return nil
}

func (r *repo) ListReservations(_ context.Context, filter model.ReservationFilter) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, res := range r.st.reservations {
		if filter.ItemID != "" && res.ItemID != filter.ItemID {
			continue
		}
		if filter.RequesterID != "" && res.RequesterID != filter.RequesterID {
			continue
		}
		if filter.State != "" && res.State != filter.State {
			continue
		}
		out = append(out, res)
	}
	sortByWindowStart(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *repo) FindOverlapping(_ context.Context, itemID string, start, end time.Time, excludeID string) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, res := range r.st.reservations {
		if res.ItemID != itemID || res.ID == excludeID || !res.State.HoldsUnits() {
			continue
		}
		if res.Overlaps(start, end) {
			out = append(out, res)
		}
	}
	sortByWindowStart(out)
	return out, nil
}

func (r *repo) ListDueReservations(_ context.Context, now time.Time) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, res := range r.st.reservations {
		switch {
		case res.State == model.ReservationApproved && !res.WindowStart.After(now):
			out = append(out, res)
		case res.State == model.ReservationActive && !res.WindowEnd.After(now):
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WindowEnd.Equal(out[j].WindowEnd) {
			return out[i].WindowEnd.Before(out[j].WindowEnd)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func sortByWindowStart(rs []model.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].WindowStart.Equal(rs[j].WindowStart) {
			return rs[i].WindowStart.Before(rs[j].WindowStart)
		}
		return rs[i].ID < rs[j].ID
	})
}

func (r *repo) CreateUser(_ context.Context, u model.User) error {
	if err := r.writable("CreateUser"); err != nil {
		return err
	}
	u.Email = strings.ToLower(u.Email)
	for _, other := range r.st.users {
		if other.ID == u.ID || other.Email == u.Email {
			return errors.Wrap(errs.ErrConflict, "CreateUser: users_email_key")
		}
	}
	r.st.users[u.ID] = u
	return nil
}

func (r *repo) GetUser(_ context.Context, id string) (model.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return model.User{}, notFound("GetUser")
	}
	return u, nil
}

func (r *repo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, notFound("GetUserByEmail")
}

func (r *repo) UpdateUser(_ context.Context, u model.User) error {
	if err := r.writable("UpdateUser"); err != nil {
		return err
	}
	cur, ok := r.st.users[u.ID]
	if !ok {
		return notFound("UpdateUser")
	}
	cur.Name = u.Name
	cur.Phone = u.Phone
	cur.Role = u.Role
	cur.Active = u.Active
	r.st.users[u.ID] = cur
	return nil
}

func (r *repo) ListUsers(_ context.Context, filter model.UserFilter) ([]model.User, error) {
	out := make([]model.User, 0)
	for _, u := range r.st.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.OnlyActive && !u.Active {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *repo) ListUserIDsByRole(_ context.Context, role model.Role) ([]string, error) {
	ids := make([]string, 0)
	for _, u := range r.st.users {
		if u.Role == role && u.Active {
			ids = append(ids, u.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *repo) UpsertAssignment(_ context.Context, a model.Assignment) error {
	if err := r.writable("UpsertAssignment"); err != nil {
		return err
	}
	if _, ok := r.st.users[a.InstructorID]; !ok {
		return notFound("UpsertAssignment: instructor")
	}
	if _, ok := r.st.users[a.ApprenticeID]; !ok {
		return notFound("UpsertAssignment: apprentice")
	}
	a.Active = true
	r.st.assignments[assignmentKey{a.InstructorID, a.ApprenticeID, a.Environment}] = a
	return nil
}

func (r *repo) DeactivateAssignment(_ context.Context, instructorID, apprenticeID, environment string) error {
	if err := r.writable("DeactivateAssignment"); err != nil {
		return err
	}
	k := assignmentKey{instructorID, apprenticeID, environment}
	a, ok := r.st.assignments[k]
	if !ok || !a.Active {
		return notFound("DeactivateAssignment")
	}
	a.Active = false
	r.st.assignments[k] = a
	return nil
}

func (r *repo) ListAssignments(_ context.Context, instructorID string) ([]model.Assignment, error) {
	out := make([]model.Assignment, 0)
	for _, a := range r.st.assignments {
		if !a.Active || (instructorID != "" && a.InstructorID != instructorID) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Environment != out[j].Environment {
			return out[i].Environment < out[j].Environment
		}
		return out[i].ApprenticeID < out[j].ApprenticeID
	})
	return out, nil
}

func (r *repo) AssignedInstructor(_ context.Context, apprenticeID, environment string) (string, bool, error) {
	var (
		best  model.Assignment
		found bool
	)
	for _, a := range r.st.assignments {
		if !a.Active || a.ApprenticeID != apprenticeID || a.Environment != environment {
			continue
		}
		if u, ok := r.st.users[a.InstructorID]; !ok || !u.Active {
			continue
		}
		if !found || a.AssignedAt.After(best.AssignedAt) {
			best, found = a, true
		}
	}
	return best.InstructorID, found, nil
}

func (r *repo) SetEnvironmentPermission(_ context.Context, p model.EnvironmentPermission) error {
	if err := r.writable("SetEnvironmentPermission"); err != nil {
		return err
	}
	if _, ok := r.st.users[p.InstructorID]; !ok {
		return notFound("SetEnvironmentPermission: instructor")
	}
	r.st.permissions[permissionKey{p.InstructorID, p.Environment}] = p
	return nil
}

func (r *repo) EnvironmentEnabled(_ context.Context, instructorID, environment string) (bool, error) {
	p, ok := r.st.permissions[permissionKey{instructorID, environment}]
	return !ok || p.Enabled, nil
}

func (r *repo) CreateNotification(_ context.Context, n model.Notification) error {
	if err := r.writable("CreateNotification"); err != nil {
		return err
	}
	if _, ok := r.st.users[n.RecipientID]; !ok {
		return notFound("CreateNotification: recipient")
	}
	r.st.notifications[n.ID] = n
	return nil
}

func (r *repo) GetNotification(_ context.Context, id string) (model.Notification, error) {
	n, ok := r.st.notifications[id]
	if !ok {
		return model.Notification{}, notFound("GetNotification")
	}
	return n, nil
}

func (r *repo) ListNotifications(_ context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	out := make([]model.Notification, 0)
	for _, n := range r.st.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *repo) MarkNotificationRead(_ context.Context, id string) error {
	if err := r.writable("MarkNotificationRead"); err != nil {
		return err
	}
	n, ok := r.st.notifications[id]
	if !ok {
		return notFound("MarkNotificationRead")
	}
	n.Read = true
	r.st.notifications[id] = n
	return nil
}

func (r *repo) MarkAllNotificationsRead(_ context.Context, recipientID string) (int, error) {
	if err := r.writable("MarkAllNotificationsRead"); err != nil {
		return 0, err
	}
	count := 0
	for k, n := range r.st.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			r.st.notifications[k] = n
			count++
		}
	}
	return count, nil
}

func (r *repo) MarkSubjectNotificationsRead(_ context.Context, recipientID string, subjectType model.SubjectType, subjectID string) error {
	if err := r.writable("MarkSubjectNotificationsRead"); err != nil {
		return err
	}
	for k, n := range r.st.notifications {
		if n.RecipientID == recipientID && n.SubjectType == subjectType && n.SubjectID == subjectID {
			n.Read = true
			r.st.notifications[k] = n
		}
	}
	return nil
}

func (r *repo) PurgeReadNotifications(_ context.Context, recipientID string) (int, error) {
	if err := r.writable("PurgeReadNotifications"); err != nil {
		return 0, err
	}
	count := 0
	for k, n := range r.st.notifications {
		if n.Read && (recipientID == "" || n.RecipientID == recipientID) {
			delete(r.st.notifications, k)
			count++
		}
	}
	return count, nil
}

func (r *repo) AppendAudit(_ context.Context, e model.AuditEntry) error {
	if err := r.writable("AppendAudit"); err != nil {
		return err
	}
	if e.EventID != "" {
		for _, seen := range r.st.audit {
			if seen.EventID == e.EventID {
				return nil
			}
		}
	}
	r.st.auditSeq++
	e.ID = r.st.auditSeq
	r.st.audit = append(r.st.audit, e)
	return nil
}

func (r *repo) ListAudit(_ context.Context, limit int) ([]model.AuditEntry, error) {
	out := append(make([]model.AuditEntry, 0, len(r.st.audit)), r.st.audit...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *repo) Stats(_ context.Context, recipientID string) (model.Stats, error) {
	var st model.Stats
	for _, item := range r.st.items {
		st.TotalItems++
		if item.AvailableUnits > 0 {
			st.ItemsAvailable++
		}
		if item.Condition != model.ConditionGood {
			st.ProblemItems++
		}
	}
	for _, l := range r.st.loans {
		switch l.State {
		case model.LoanActive:
			st.ActiveLoans++
		case model.LoanPending:
			st.PendingLoans++
		}
	}
	for _, res := range r.st.reservations {
		if res.State == model.ReservationPending {
			st.PendingReservations++
		}
	}
	for _, u := range r.st.users {
		if u.Active {
			st.ActiveUsers++
		}
	}
	for _, n := range r.st.notifications {
		if n.RecipientID == recipientID && !n.Read {
			st.UnreadNotifications++
		}
	}
	return st, nil
}
