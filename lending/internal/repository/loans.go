package repository

import (
	"context"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var loanColumns = []string{
	"id", "item_id", "borrower_id", "borrower_name", "units", "state", "environment", "shift",
	"requested_at", "decided_at", "returned_at", "decided_by", "reject_reason", "return_condition",
	"return_notice", "observations",
}

func (r *repository) CreateLoan(ctx context.Context, l model.Loan) error {
	if l.ReturnNotice == "" {
		l.ReturnNotice = model.NoticeNone
	}
	q := qb.Insert(loansTableName).
		Columns(loanColumns...).
		Values(l.ID, l.ItemID, l.BorrowerID, l.BorrowerName, l.Units, l.State, l.Environment, l.Shift,
			l.RequestedAt, l.DecidedAt, l.ReturnedAt, l.DecidedBy, l.RejectReason, l.ReturnCondition,
			l.ReturnNotice, l.Observations)
	_, err := r.exec(ctx, "CreateLoan", q)
	return err
}

func (r *repository) GetLoan(ctx context.Context, id string) (model.Loan, error) {
	var l model.Loan
	err := r.get(ctx, "GetLoan", &l, qb.Select(loanColumns...).From(loansTableName).Where(sq.Eq{"id": id}))
	return l, err
}

func (r *repository) LockLoan(ctx context.Context, id string) (model.Loan, error) {
	var l model.Loan
	err := r.get(ctx, "LockLoan", &l,
		qb.Select(loanColumns...).From(loansTableName).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
	return l, err
}

// UpdateLoan writes the mutable lifecycle columns.
func (r *repository) UpdateLoan(ctx context.Context, l model.Loan) error {
	return r.execOne(ctx, "UpdateLoan", qb.Update(loansTableName).
		Set("state", l.State).
		Set("decided_at", l.DecidedAt).
		Set("returned_at", l.ReturnedAt).
		Set("decided_by", l.DecidedBy).
		Set("reject_reason", l.RejectReason).
		Set("return_condition", l.ReturnCondition).
		Set("return_notice", l.ReturnNotice).
		Set("observations", l.Observations).
		Where(sq.Eq{"id": l.ID}))
}

func (r *repository) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	q := qb.Select(loanColumns...).From(loansTableName).OrderBy("requested_at DESC", "id")
	if filter.ItemID != "" {
		q = q.Where(sq.Eq{"item_id": filter.ItemID})
	}
	if filter.BorrowerID != "" {
		q = q.Where(sq.Eq{"borrower_id": filter.BorrowerID})
	}
	if filter.State != "" {
		q = q.Where(sq.Eq{"state": filter.State})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	loans := make([]model.Loan, 0)
	err := r.selectAll(ctx, "ListLoans", &loans, q)
	return loans, err
}
