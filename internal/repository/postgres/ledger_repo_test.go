package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/repository"
)

func TestLedgerRepository_Insert(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewLedgerRepository()

	now := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	approver := int32(1)
	entry := &domain.LedgerEntry{
		Amount:       decimal.RequireFromString("500.00"),
		Direction:    domain.DirectionOutflow,
		Status:       domain.StatusApproved,
		DepartmentID: 1,
		AccountID:    5,
		Description:  "pitch maintenance",
		Origin:       domain.OriginManual,
		ApproverID:   &approver,
		ApprovedAt:   &now,
		RecordedAt:   now,
	}

	mock.ExpectQuery("INSERT INTO ledger_entry").
		WithArgs(entry.Amount, "outflow", "approved", int32(1), int32(5), "pitch maintenance", "manual", int32(1), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	require.NoError(t, repo.Insert(context.Background(), gw, entry))
	assert.Equal(t, int64(77), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ListPending(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewLedgerRepository()

	recorded := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM ledger_entry WHERE status = 'pending'").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "direction", "status", "department_id", "account_id", "description", "origin", "recorded_at"}).
			AddRow(int64(1), "20.00", "inflow", "pending", int64(3), int64(0), "ticket sales", "manual", recorded))

	entries, err := repo.ListPending(context.Background(), gw)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.DirectionInflow, entries[0].Direction)
	assert.Equal(t, domain.StatusPending, entries[0].Status)
	assert.Equal(t, int32(3), entries[0].DepartmentID)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("20")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_LockStatus(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewLedgerRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT status FROM ledger_entry").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectQuery("SELECT status FROM ledger_entry").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	status, err := repo.LockStatus(ctx, gw, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, status)

	_, err = repo.LockStatus(ctx, gw, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ApproveGuardedByStatus(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewLedgerRepository()

	at := time.Date(2024, 4, 3, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE ledger_entry SET status = 'approved'").
		WithArgs(int64(3), int32(6), int32(2), at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Approve(context.Background(), gw, 3, 6, domain.Approval{ApproverID: 2, ApprovedAt: at})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_CountPending(t *testing.T) {
	gw, mock := newMockGateway(t)
	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"pending"}).AddRow(int64(4)))

	n, err := NewLedgerRepository().CountPending(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var _ repository.LedgerRepository = (*ledgerRepository)(nil)
