package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/service"
)

type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) CreateAndApproveBatch(ctx context.Context, sess domain.Session, in service.CreatePayrollBatchInput) (*domain.PayrollResult, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollResult), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordManualEntry(ctx context.Context, sess domain.Session, in service.LedgerEntryInput) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) SubmitEntry(ctx context.Context, sess domain.Session, in service.LedgerEntryInput) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListPendingEntries(ctx context.Context, sess domain.Session) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ApproveEntry(ctx context.Context, sess domain.Session, entryID int64, accountID int32) (*domain.Approval, error) {
	args := m.Called(ctx, sess, entryID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockLedgerService) DiscardEntry(ctx context.Context, sess domain.Session, entryID int64) error {
	args := m.Called(ctx, sess, entryID)
	return args.Error(0)
}

func (m *MockLedgerService) CountPendingEntries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) RegisterAsset(ctx context.Context, sess domain.Session, in service.AssetInput) (*domain.Asset, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetService) RetireAsset(ctx context.Context, sess domain.Session, assetID int64) error {
	args := m.Called(ctx, sess, assetID)
	return args.Error(0)
}

type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) AddAthlete(ctx context.Context, sess domain.Session, in service.AthleteInput) (*domain.Athlete, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Athlete), args.Error(1)
}

func (m *MockRosterService) HireStaff(ctx context.Context, sess domain.Session, in service.StaffInput) (*domain.Staff, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockRosterService) ListEligible(ctx context.Context, sess domain.Session, pop domain.Population) ([]domain.CoveredPerson, error) {
	args := m.Called(ctx, sess, pop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoveredPerson), args.Error(1)
}

func (m *MockRosterService) EndAthleteContract(ctx context.Context, sess domain.Session, athleteID int64) (domain.RemovalReport, error) {
	args := m.Called(ctx, sess, athleteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RemovalReport), args.Error(1)
}

func (m *MockRosterService) DismissStaff(ctx context.Context, sess domain.Session, staffID int64) (domain.RemovalReport, error) {
	args := m.Called(ctx, sess, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RemovalReport), args.Error(1)
}
