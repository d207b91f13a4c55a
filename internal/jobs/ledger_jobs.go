package jobs

import (
	"context"

	"club-finance-backend/internal/logger"
)

// PendingLedgerDigest reminds the board when ledger entries await approval.
func (jr *JobRunner) PendingLedgerDigest() {
	_ = jr.runWithRecovery("PendingLedgerDigest", jr.runPendingLedgerDigest)
}

func (jr *JobRunner) runPendingLedgerDigest(ctx context.Context) error {
	pending, err := jr.services.Ledger.CountPendingEntries(ctx)
	if err != nil {
		return err
	}
	if pending == 0 {
		logger.Info("No pending ledger entries")
		return nil
	}

	if err := jr.services.Notifier.PendingLedgerDigest(ctx, pending); err != nil {
		return err
	}
	logger.Info("Sent pending ledger digest", "pending", pending)
	return nil
}
