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

func TestRosterRepository_InsertAthlete(t *testing.T) {
	gw, mock := newMockGateway(t)
	start := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	a := &domain.Athlete{
		Name: "Bruno", Role: "goalkeeper",
		BaseSalary:     decimal.RequireFromString("8000"),
		TerminationFee: decimal.RequireFromString("100000"),
		SigningBonus:   decimal.RequireFromString("20000"),
		ContractStart:  start, ContractEnd: end, DepartmentID: 2,
	}

	mock.ExpectQuery("INSERT INTO athlete").
		WithArgs("Bruno", "goalkeeper", a.BaseSalary, a.TerminationFee, a.SigningBonus,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), end, int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))

	require.NoError(t, NewRosterRepository().InsertAthlete(context.Background(), gw, a))
	assert.Equal(t, int64(30), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepository_RemoveAthleteRefreshesAggregates(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewRosterRepository()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM athlete").
		WithArgs(int64(30), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
	mock.ExpectQuery("DELETE FROM payroll_line_item_athlete").
		WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"batch_id"}).AddRow(int64(40)).AddRow(int64(40)))
	mock.ExpectQuery("UPDATE payroll_batch_athlete SET aggregate_image_rights").
		WithArgs(int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{"aggregate_image_rights"}).AddRow("0"))
	mock.ExpectExec("DELETE FROM athlete").
		WithArgs(int64(30), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var report domain.RemovalReport
	err := gw.WithTransaction(ctx, func(ex repository.Executor) error {
		var err error
		report, err = repo.RemoveAthlete(ctx, ex, 30, 2)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), report[RemovedLineItems])
	assert.Equal(t, int64(1), report[RemovedAthlete])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepository_RemoveStaffMissing(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewRosterRepository()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM staff").WithArgs(int64(9), int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec("DELETE FROM payroll_line_item_staff").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM staff_hired").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM staff_outsourced").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM staff WHERE").WithArgs(int64(9), int32(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := gw.WithTransaction(ctx, func(ex repository.Executor) error {
		_, err := repo.RemoveStaff(ctx, ex, 9, 3)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepository_RemoveStaffOtherDepartment(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewRosterRepository()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM staff").WithArgs(int64(77), int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := gw.WithTransaction(ctx, func(ex repository.Executor) error {
		_, err := repo.RemoveStaff(ctx, ex, 77, 3)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepository_RemoveAthleteOtherDepartment(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewRosterRepository()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM athlete").WithArgs(int64(30), int32(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := gw.WithTransaction(ctx, func(ex repository.Executor) error {
		_, err := repo.RemoveAthlete(ctx, ex, 30, 4)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
