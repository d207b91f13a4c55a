package postgres

import (
	"context"
	"fmt"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

type ledgerRepository struct{}

func NewLedgerRepository() repository.LedgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) Insert(ctx context.Context, ex repository.Executor, e *domain.LedgerEntry) error {
	res, err := ex.Execute(ctx, repository.StmtInsertLedgerEntry,
		e.Amount, e.Direction, e.Status, e.DepartmentID, e.AccountID,
		e.Description, e.Origin, e.ApproverID, e.ApprovedAt, e.RecordedAt)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	e.ID = id
	return nil
}

func (r *ledgerRepository) ListPending(ctx context.Context, ex repository.Executor) ([]domain.LedgerEntry, error) {
	res, err := ex.Execute(ctx, repository.StmtSelectPendingLedgerEntries)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LedgerEntry, 0, len(res.Rows))
	for _, row := range readers(res) {
		e := domain.LedgerEntry{
			ID:           row.Int64("id"),
			Amount:       row.Decimal("amount"),
			Direction:    domain.Direction(row.String("direction")),
			Status:       domain.ApprovalStatus(row.String("status")),
			DepartmentID: row.Int32("department_id"),
			AccountID:    row.Int32("account_id"),
			Description:  row.String("description"),
			Origin:       domain.Origin(row.String("origin")),
			RecordedAt:   row.Time("recorded_at"),
		}
		if err := row.Err(); err != nil {
			return nil, fmt.Errorf("read pending ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *ledgerRepository) CountPending(ctx context.Context, ex repository.Executor) (int64, error) {
	res, err := ex.Execute(ctx, repository.StmtCountPendingLedgerEntries)
	if err != nil {
		return 0, err
	}
	return scalarInt64(res)
}

func (r *ledgerRepository) LockStatus(ctx context.Context, ex repository.Executor, entryID int64) (domain.ApprovalStatus, error) {
	return lockStatus(ctx, ex, repository.StmtLockLedgerEntry, entryID)
}

func (r *ledgerRepository) Approve(ctx context.Context, ex repository.Executor, entryID int64, accountID int32, approval domain.Approval) error {
	res, err := ex.Execute(ctx, repository.StmtApproveLedgerEntry, entryID, accountID, approval.ApproverID, approval.ApprovedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		logger.Warn("Ledger entry was not pending at approval", "entry_id", entryID)
		return fmt.Errorf("ledger entry %d: %w", entryID, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *ledgerRepository) DeletePending(ctx context.Context, ex repository.Executor, entryID int64) error {
	res, err := ex.Execute(ctx, repository.StmtDeletePendingLedgerEntry, entryID)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ledger entry %d: %w", entryID, domain.ErrInvalidTransition)
	}
	return nil
}

// lockStatus reads a status column with a row lock held for the transaction.
func lockStatus(ctx context.Context, ex repository.Executor, stmt repository.Statement, args ...any) (domain.ApprovalStatus, error) {
	res, err := ex.Execute(ctx, stmt, args...)
	if err != nil {
		return "", err
	}
	if len(res.Rows) == 0 {
		return "", domain.ErrNotFound
	}
	v, err := scalar(res)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return domain.ApprovalStatus(s), nil
	case []byte:
		return domain.ApprovalStatus(s), nil
	}
	return "", fmt.Errorf("%s: unexpected status type %T", stmt, v)
}
