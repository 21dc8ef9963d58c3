package service

import (
	"context"
	"fmt"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/gate"
	"github.com/Eduard-Gallardo/lendix/lending/internal/ledger"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RequestLoan opens a loan. Auto-approved loans take their units right away
// and start ACTIVE; gated ones stay PENDING for the assigned instructor.
func (s *Service) RequestLoan(ctx context.Context, actor model.Actor, req model.LoanRequest) (model.Loan, error) {
	if req.Units < 1 {
		return model.Loan{}, errors.Wrapf(errs.ErrValidation, "unit count must be positive, got %d", req.Units)
	}
	var loan model.Loan
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		item, err := r.LockItem(ctx, req.ItemID)
		if err != nil {
			return err
		}
		outcome, err := gate.Decide(u.Role, item.Policy())
		if err != nil {
			return err
		}

		now := s.now()
		loan = model.Loan{
			ID:           uuid.NewString(),
			ItemID:       item.ID,
			BorrowerID:   u.ID,
			BorrowerName: req.BorrowerName,
			Units:        req.Units,
			Environment:  req.Environment,
			Shift:        req.Shift,
			RequestedAt:  now,
			ReturnNotice: model.NoticeNone,
			Observations: req.Observations,
		}
		if loan.BorrowerName == "" {
			loan.BorrowerName = u.Name
		}

		switch outcome {
		case gate.AutoApprove:
			if _, err := ledger.Reserve(ctx, r, item.ID, req.Units); err != nil {
				return err
			}
			loan.State = model.LoanActive
			loan.DecidedAt = timePtr(now)
			if err := r.CreateLoan(ctx, loan); err != nil {
				return err
			}
			fx.event(s.newEvent(u.ID, model.ActionLoanActivated, model.SubjectLoan, loan.ID, item.ID,
				fmt.Sprintf("%d units, auto approved", loan.Units)))
		case gate.RequireApproval:
			approver, err := gate.Approver(ctx, r, u.ID, req.Environment)
			if err != nil {
				return err
			}
			loan.State = model.LoanPending
			if err := r.CreateLoan(ctx, loan); err != nil {
				return err
			}
			fx.notify(model.SubjectLoan, loan.ID,
				fmt.Sprintf("%s requests %d x %s (%s)", u.Name, loan.Units, item.Name, envLabel(loan.Environment)),
				approver)
			fx.event(s.newEvent(u.ID, model.ActionLoanRequested, model.SubjectLoan, loan.ID, item.ID,
				fmt.Sprintf("%d units, awaiting %s", loan.Units, approver)))
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// DecideLoan approves or rejects a PENDING loan. An approval that finds the
// item depleted fails with ErrConflict and leaves the loan PENDING.
func (s *Service) DecideLoan(ctx context.Context, actor model.Actor, loanID string, req model.DecisionRequest) (model.Loan, error) {
	if req.Decision != model.DecisionApprove && req.Decision != model.DecisionReject {
		return model.Loan{}, errors.Wrapf(errs.ErrValidation, "unknown decision %q", req.Decision)
	}
	var loan model.Loan
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			return errors.Wrap(errs.ErrPermissionDenied, "only instructors and admins decide loans")
		}
		loan, err = r.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.State != model.LoanPending {
			return errors.Wrapf(errs.ErrInvalidState, "loan %s is %s", loan.ID, loan.State)
		}

		now := s.now()
		loan.DecidedAt = timePtr(now)
		loan.DecidedBy = strPtr(u.ID)
		if req.Decision == model.DecisionApprove {
			if _, err := ledger.Reserve(ctx, r, loan.ItemID, loan.Units); err != nil {
				if errors.Is(err, errs.ErrInsufficientAvailability) {
					return errs.Depleted(loan.ItemID)
				}
				return err
			}
			loan.State = model.LoanActive
			fx.notify(model.SubjectLoan, loan.ID, "your loan request was approved", loan.BorrowerID)
			fx.event(s.newEvent(u.ID, model.ActionLoanActivated, model.SubjectLoan, loan.ID, loan.ItemID,
				fmt.Sprintf("%d units", loan.Units)))
		} else {
			loan.State = model.LoanRejected
			loan.RejectReason = req.Reason
			fx.notify(model.SubjectLoan, loan.ID, rejectedMessage("loan", req.Reason), loan.BorrowerID)
			fx.event(s.newEvent(u.ID, model.ActionLoanRejected, model.SubjectLoan, loan.ID, loan.ItemID, req.Reason))
		}
		if err := r.UpdateLoan(ctx, loan); err != nil {
			return err
		}
		fx.markRead(u.ID, model.SubjectLoan, loan.ID)
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// ReturnLoan closes an ACTIVE loan. A flagged notice writes one unit off and
// tells every admin; a non-GOOD condition regrades the item.
func (s *Service) ReturnLoan(ctx context.Context, actor model.Actor, loanID string, req model.ReturnRequest) (model.Loan, error) {
	if req.Notice == "" {
		req.Notice = model.NoticeNone
	}
	if !req.Condition.Valid() {
		return model.Loan{}, errors.Wrapf(errs.ErrValidation, "unknown return condition %q", req.Condition)
	}
	if !req.Notice.Valid() {
		return model.Loan{}, errors.Wrapf(errs.ErrValidation, "unknown return notice %q", req.Notice)
	}
	var loan model.Loan
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		loan, err = r.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() && loan.BorrowerID != u.ID {
			return errors.Wrap(errs.ErrPermissionDenied, "loan belongs to another user")
		}
		switch loan.State {
		case model.LoanActive:
		case model.LoanReturned:
			return errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", loan.ID)
		default:
			return errors.Wrapf(errs.ErrInvalidState, "loan %s is %s", loan.ID, loan.State)
		}

		if _, err := ledger.Release(ctx, r, loan.ItemID, loan.Units, req.Notice.PermanentLoss()); err != nil {
			return err
		}
		if req.Condition != model.ConditionGood {
			if err := ledger.Regrade(ctx, r, loan.ItemID, req.Condition); err != nil {
				return err
			}
		}

		loan.State = model.LoanReturned
		loan.ReturnedAt = timePtr(s.now())
		loan.ReturnCondition = req.Condition
		loan.ReturnNotice = req.Notice
		if req.Observations != "" {
			loan.Observations = req.Observations
		}
		if err := r.UpdateLoan(ctx, loan); err != nil {
			return err
		}

		if req.Notice != model.NoticeNone {
			admins, err := r.ListUserIDsByRole(ctx, model.RoleAdmin)
			if err != nil {
				return err
			}
			item, err := r.GetItem(ctx, loan.ItemID)
			if err != nil {
				return err
			}
			fx.notify(model.SubjectLoan, loan.ID,
				fmt.Sprintf("%s returned with notice %s, condition %s", item.Name, req.Notice, req.Condition),
				admins...)
		}
		fx.event(s.newEvent(u.ID, model.ActionLoanReturned, model.SubjectLoan, loan.ID, loan.ItemID,
			fmt.Sprintf("condition %s, notice %s", req.Condition, req.Notice)))
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// CancelLoan withdraws a PENDING loan. Only the borrower or an admin may.
func (s *Service) CancelLoan(ctx context.Context, actor model.Actor, loanID string) (model.Loan, error) {
	var loan model.Loan
	err := s.inTx(ctx, func(r repository.Repository, fx *effects) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		loan, err = r.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.BorrowerID != u.ID && u.Role != model.RoleAdmin {
			return errors.Wrap(errs.ErrPermissionDenied, "loan belongs to another user")
		}
		if loan.State != model.LoanPending {
			return errors.Wrapf(errs.ErrInvalidState, "loan %s is %s", loan.ID, loan.State)
		}
		loan.State = model.LoanCancelled
		loan.DecidedAt = timePtr(s.now())
		if err := r.UpdateLoan(ctx, loan); err != nil {
			return err
		}
		fx.event(s.newEvent(u.ID, model.ActionLoanCancelled, model.SubjectLoan, loan.ID, loan.ItemID, ""))
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (s *Service) GetLoan(ctx context.Context, actor model.Actor, loanID string) (model.Loan, error) {
	var loan model.Loan
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		loan, err = r.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() && loan.BorrowerID != u.ID {
			return errors.Wrap(errs.ErrPermissionDenied, "loan belongs to another user")
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// ListLoans shows privileged callers everything; others see their own loans.
func (s *Service) ListLoans(ctx context.Context, actor model.Actor, filter model.LoanFilter) ([]model.Loan, error) {
	var loans []model.Loan
	err := s.store.View(ctx, func(r repository.Repository) error {
		u, err := s.caller(ctx, r, actor)
		if err != nil {
			return err
		}
		if !u.Role.Privileged() {
			filter.BorrowerID = u.ID
		}
		loans, err = r.ListLoans(ctx, filter)
		return err
	})
	return loans, err
}

func envLabel(env string) string {
	if env == "" {
		return "no environment"
	}
	return env
}

func rejectedMessage(what, reason string) string {
	if reason == "" {
		return fmt.Sprintf("your %s request was rejected", what)
	}
	return fmt.Sprintf("your %s request was rejected: %s", what, reason)
}
