package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"club-finance-backend/internal/domain"
)

var (
	competency = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	payday     = time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	today      = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func athleteRows() *sqlmock.Rows {
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "role", "base_salary", "contract_end"}).
		AddRow(int64(11), "Ana", "forward", "1000.00", end).
		AddRow(int64(12), "Bia", "defender", "2000.00", end)
}

func TestCreateAndApproveBatch_AthletesAggregateImageRights(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	m.ExpectQuery("FROM athlete").WithArgs(int32(2), today).WillReturnRows(athleteRows())
	m.ExpectBegin()
	m.ExpectQuery("INSERT INTO payroll_batch_athlete").
		WithArgs(competency, payday, "pending", int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(40)))
	m.ExpectQuery("INSERT INTO payroll_line_item_athlete").
		WithArgs(int64(40), int64(11), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), dec("50"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(401)))
	m.ExpectQuery("INSERT INTO payroll_line_item_athlete").
		WithArgs(int64(40), int64(12), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), dec("100"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(402)))
	m.ExpectQuery("UPDATE payroll_batch_athlete SET aggregate_image_rights").
		WithArgs(int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{"aggregate_image_rights"}).AddRow("150.00"))
	m.ExpectExec("CALL sp_approve_payroll_batch_athlete").
		WithArgs(int64(40), int32(1), int32(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectCommit()

	notifier.On("PayrollApproved", mock.Anything, mock.MatchedBy(func(r *domain.PayrollResult) bool {
		return r.BatchID == 40
	})).Return(nil).Once()

	res, err := svc.CreateAndApproveBatch(context.Background(), sportsSession(), CreatePayrollBatchInput{
		Population:     domain.PopulationAthlete,
		CompetencyDate: competency,
		PaymentDate:    payday,
		Adjustments: map[int64]domain.Adjustments{
			11: {ImageRights: dec("50.00"), Bonus: dec("200.00")},
			12: {ImageRights: dec("100.00"), Deductions: dec("300.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), res.BatchID)
	assert.Equal(t, 2, res.PersonCount)
	assert.Equal(t, domain.StatusApproved, res.Status)
	assert.True(t, res.ImageRightsTotal.Equal(dec("150.00")))
	// 1000+200+50 + 2000+100-300
	assert.True(t, res.NetTotal.Equal(dec("3050.00")), res.NetTotal.String())
	notifier.AssertExpectations(t)
}

func TestCreateAndApproveBatch_ApprovalFailureRollsBack(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	m.ExpectQuery("FROM athlete").WillReturnRows(athleteRows())
	m.ExpectBegin()
	m.ExpectQuery("INSERT INTO payroll_batch_athlete").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(41)))
	m.ExpectQuery("INSERT INTO payroll_line_item_athlete").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	m.ExpectQuery("INSERT INTO payroll_line_item_athlete").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	m.ExpectQuery("UPDATE payroll_batch_athlete").WillReturnRows(sqlmock.NewRows([]string{"aggregate_image_rights"}).AddRow("0"))
	m.ExpectExec("CALL sp_approve_payroll_batch_athlete").
		WillReturnError(&pq.Error{Code: "P0001", Message: "account 8 is closed"})
	m.ExpectRollback()

	res, err := svc.CreateAndApproveBatch(context.Background(), sportsSession(), CreatePayrollBatchInput{
		Population:     domain.PopulationAthlete,
		CompetencyDate: competency,
		PaymentDate:    payday,
	})
	assert.Nil(t, res)
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "P0001", storeErr.Code)
	notifier.AssertNotCalled(t, "PayrollApproved", mock.Anything, mock.Anything)
}

func TestCreateAndApproveBatch_NoEligiblePersons(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	m.ExpectQuery("FROM athlete").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "base_salary", "contract_end"}))

	res, err := svc.CreateAndApproveBatch(context.Background(), sportsSession(), CreatePayrollBatchInput{
		Population:     domain.PopulationAthlete,
		CompetencyDate: competency,
		PaymentDate:    payday,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.PersonCount)
	assert.Equal(t, int64(0), res.BatchID)
	assert.True(t, res.NetTotal.IsZero())
	notifier.AssertNotCalled(t, "PayrollApproved", mock.Anything, mock.Anything)
}

func expectStaffRun(m sqlmock.Sqlmock, batchID int64) {
	m.ExpectQuery("FROM staff").WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "sector", "base_salary"}).
			AddRow(int64(1), "accountant", "finance", "3000.00").
			AddRow(int64(2), "driver", "logistics", "1800.00").
			AddRow(int64(3), "cook", "kitchen", "2200.00"))
	m.ExpectBegin()
	m.ExpectQuery("INSERT INTO payroll_batch_staff").
		WithArgs(competency, payday, "pending", int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(batchID))
	for i := int64(1); i <= 3; i++ {
		m.ExpectQuery("INSERT INTO payroll_line_item_staff").
			WithArgs(batchID, i, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(batchID*10 + i))
	}
	m.ExpectExec("CALL sp_approve_payroll_batch_staff").
		WithArgs(batchID, int32(1), int32(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectCommit()
}

func TestCreateAndApproveBatch_StaffNetTotalIsSumOfBases(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	notifier.On("PayrollApproved", mock.Anything, mock.Anything).Return(nil)
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	expectStaffRun(m, 50)

	res, err := svc.CreateAndApproveBatch(context.Background(), financeSession(), CreatePayrollBatchInput{
		Population:     domain.PopulationStaff,
		CompetencyDate: competency,
		PaymentDate:    payday,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.PersonCount)
	assert.True(t, res.NetTotal.Equal(dec("7000.00")))
	assert.True(t, res.ImageRightsTotal.IsZero())
}

func TestCreateAndApproveBatch_RepeatedRunsCreateSeparateBatches(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	notifier.On("PayrollApproved", mock.Anything, mock.Anything).Return(nil)
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	expectStaffRun(m, 50)
	expectStaffRun(m, 51)

	in := CreatePayrollBatchInput{Population: domain.PopulationStaff, CompetencyDate: competency, PaymentDate: payday}
	first, err := svc.CreateAndApproveBatch(context.Background(), financeSession(), in)
	require.NoError(t, err)
	second, err := svc.CreateAndApproveBatch(context.Background(), financeSession(), in)
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
	notifier.AssertNumberOfCalls(t, "PayrollApproved", 2)
}

func TestCreateAndApproveBatch_NotificationFailureKeepsResult(t *testing.T) {
	store, m := newTestStore(t)
	notifier := new(MockNotifier)
	notifier.On("PayrollApproved", mock.Anything, mock.Anything).Return(errors.New("sendgrid down"))
	svc := NewPayrollService(store, store.Payroll, notifier, testIdentities, fixedClock)

	expectStaffRun(m, 52)

	res, err := svc.CreateAndApproveBatch(context.Background(), financeSession(), CreatePayrollBatchInput{
		Population: domain.PopulationStaff, CompetencyDate: competency, PaymentDate: payday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(52), res.BatchID)
}

func TestCreateAndApproveBatch_UnknownPersonRejectedBeforeTransaction(t *testing.T) {
	store, m := newTestStore(t)
	svc := NewPayrollService(store, store.Payroll, new(MockNotifier), testIdentities, fixedClock)

	m.ExpectQuery("FROM athlete").WillReturnRows(athleteRows())

	_, err := svc.CreateAndApproveBatch(context.Background(), sportsSession(), CreatePayrollBatchInput{
		Population:     domain.PopulationAthlete,
		CompetencyDate: competency,
		PaymentDate:    payday,
		Adjustments:    map[int64]domain.Adjustments{99: {Bonus: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownPerson)
}

func TestCreateAndApproveBatch_ValidationIssuesNoStatements(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewPayrollService(store, store.Payroll, new(MockNotifier), testIdentities, fixedClock)

	_, err := svc.CreateAndApproveBatch(context.Background(), sportsSession(), CreatePayrollBatchInput{
		Population:     domain.Population("coaches"),
		CompetencyDate: competency,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	details := domain.ValidationDetails(err)
	assert.Contains(t, details, "population")
	assert.Contains(t, details, "payment_date")
}
