package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

type LedgerEntryInput struct {
	Amount      decimal.Decimal  `json:"amount" validate:"gt=0"`
	Direction   domain.Direction `json:"direction" validate:"required,oneof=inflow outflow"`
	AccountID   int32            `json:"account_id" validate:"gte=0"`
	Description string           `json:"description" validate:"required,max=255"`
}

type ledgerService struct {
	gateway    repository.Gateway
	ledger     repository.LedgerRepository
	identities ApprovalIdentities
	validation *ValidationHelper
	now        Clock
}

func NewLedgerService(gateway repository.Gateway, ledger repository.LedgerRepository, identities ApprovalIdentities, now Clock) LedgerService {
	if now == nil {
		now = systemClock
	}
	return &ledgerService{
		gateway:    gateway,
		ledger:     ledger,
		identities: identities,
		validation: NewValidationHelper(),
		now:        now,
	}
}

func (s *ledgerService) newEntry(sess domain.Session, in LedgerEntryInput) (*domain.LedgerEntry, error) {
	if err := joinValidation(s.validation.ValidateStruct(in), requireDepartment(sess)); err != nil {
		return nil, err
	}
	entry := &domain.LedgerEntry{
		Amount:       in.Amount,
		Direction:    in.Direction,
		Status:       domain.StatusPending,
		DepartmentID: sess.DepartmentID,
		AccountID:    in.AccountID,
		Description:  in.Description,
		Origin:       domain.OriginManual,
		RecordedAt:   s.now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordManualEntry writes an entry that is approved on insert by the
// configured manual-ledger approver. No approval procedure runs.
func (s *ledgerService) RecordManualEntry(ctx context.Context, sess domain.Session, in LedgerEntryInput) (*domain.LedgerEntry, error) {
	const method = "ledgerService.RecordManualEntry"
	logger.EnterMethod(method, "departmentID", sess.DepartmentID, "direction", in.Direction)

	entry, err := s.newEntry(sess, in)
	if err == nil && in.AccountID == 0 {
		err = domain.NewValidationError("account_id", "is required for manual entries")
	}
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	approval, err := domain.NewApproval(s.identities.ManualLedgerApproverID, entry.RecordedAt)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, fmt.Errorf("manual ledger approver: %w", err)
	}
	if err := entry.Approve(approval); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	err = s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		return s.ledger.Insert(ctx, ex, entry)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	logger.ExitMethod(method, "entryID", entry.ID)
	return entry, nil
}

func (s *ledgerService) SubmitEntry(ctx context.Context, sess domain.Session, in LedgerEntryInput) (*domain.LedgerEntry, error) {
	const method = "ledgerService.SubmitEntry"
	logger.EnterMethod(method, "departmentID", sess.DepartmentID)

	entry, err := s.newEntry(sess, in)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	if err := s.ledger.Insert(ctx, s.gateway, entry); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	logger.ExitMethod(method, "entryID", entry.ID)
	return entry, nil
}

func (s *ledgerService) ListPendingEntries(ctx context.Context, sess domain.Session) ([]domain.LedgerEntry, error) {
	const method = "ledgerService.ListPendingEntries"
	logger.EnterMethod(method, "userID", sess.UserID)

	entries, err := s.ledger.ListPending(ctx, s.gateway)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	logger.ExitMethod(method, "count", len(entries))
	return entries, nil
}

// ApproveEntry records the session user as approver of a pending entry and
// books it against accountID.
func (s *ledgerService) ApproveEntry(ctx context.Context, sess domain.Session, entryID int64, accountID int32) (*domain.Approval, error) {
	const method = "ledgerService.ApproveEntry"
	logger.EnterMethod(method, "entryID", entryID, "accountID", accountID, "userID", sess.UserID)

	if accountID <= 0 {
		err := domain.NewValidationError("account_id", "is required")
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	approval, err := domain.NewApproval(sess.UserID, s.now())
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	err = s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		status, err := s.ledger.LockStatus(ctx, ex, entryID)
		if err != nil {
			return fmt.Errorf("ledger entry %d: %w", entryID, err)
		}
		if err := domain.Transition(domain.EntityLedgerEntry, status, domain.StatusApproved); err != nil {
			return err
		}
		return s.ledger.Approve(ctx, ex, entryID, accountID, approval)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "entryID", entryID)
		return nil, err
	}

	logger.ExitMethod(method, "entryID", entryID)
	return &approval, nil
}

func (s *ledgerService) DiscardEntry(ctx context.Context, sess domain.Session, entryID int64) error {
	const method = "ledgerService.DiscardEntry"
	logger.EnterMethod(method, "entryID", entryID, "userID", sess.UserID)

	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		status, err := s.ledger.LockStatus(ctx, ex, entryID)
		if err != nil {
			return fmt.Errorf("ledger entry %d: %w", entryID, err)
		}
		if err := domain.Discard(domain.EntityLedgerEntry, status); err != nil {
			return err
		}
		return s.ledger.DeletePending(ctx, ex, entryID)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "entryID", entryID)
		return err
	}
	logger.ExitMethod(method, "entryID", entryID)
	return nil
}

func (s *ledgerService) CountPendingEntries(ctx context.Context) (int64, error) {
	return s.ledger.CountPending(ctx, s.gateway)
}
