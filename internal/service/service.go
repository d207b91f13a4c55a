package service

import (
	"context"
	"time"

	"club-finance-backend/internal/config"
	"club-finance-backend/internal/domain"
)

type PayrollService interface {
	// CreateAndApproveBatch builds and approves one payroll batch for the
	// session's department. Zero eligible persons yields an empty result and
	// writes nothing.
	CreateAndApproveBatch(ctx context.Context, sess domain.Session, in CreatePayrollBatchInput) (*domain.PayrollResult, error)
}

type LedgerService interface {
	RecordManualEntry(ctx context.Context, sess domain.Session, in LedgerEntryInput) (*domain.LedgerEntry, error)
	SubmitEntry(ctx context.Context, sess domain.Session, in LedgerEntryInput) (*domain.LedgerEntry, error)
	ListPendingEntries(ctx context.Context, sess domain.Session) ([]domain.LedgerEntry, error)
	ApproveEntry(ctx context.Context, sess domain.Session, entryID int64, accountID int32) (*domain.Approval, error)
	DiscardEntry(ctx context.Context, sess domain.Session, entryID int64) error
	CountPendingEntries(ctx context.Context) (int64, error)
}

type AssetService interface {
	RegisterAsset(ctx context.Context, sess domain.Session, in AssetInput) (*domain.Asset, error)
	RetireAsset(ctx context.Context, sess domain.Session, assetID int64) error
}

type RosterService interface {
	AddAthlete(ctx context.Context, sess domain.Session, in AthleteInput) (*domain.Athlete, error)
	HireStaff(ctx context.Context, sess domain.Session, in StaffInput) (*domain.Staff, error)
	ListEligible(ctx context.Context, sess domain.Session, pop domain.Population) ([]domain.CoveredPerson, error)
	EndAthleteContract(ctx context.Context, sess domain.Session, athleteID int64) (domain.RemovalReport, error)
	DismissStaff(ctx context.Context, sess domain.Session, staffID int64) (domain.RemovalReport, error)
}

// Notifier announces committed approvals. Failures never undo the commit.
type Notifier interface {
	PayrollApproved(ctx context.Context, result *domain.PayrollResult) error
	AssetApproved(ctx context.Context, asset *domain.Asset) error
	// PendingLedgerDigest reminds the board of entries awaiting approval.
	PendingLedgerDigest(ctx context.Context, pending int64) error
}

// ApprovalIdentities are the fixed approver ids and accounts handed to the
// approval procedures.
type ApprovalIdentities struct {
	SystemApproverID       int32
	ManualLedgerApproverID int32
	PayrollAccounts        map[domain.Population]int32
	AssetAccounts          map[domain.AssetCategory]int32
}

// NewApprovalIdentities resolves the configured accounts for every
// population and asset category.
func NewApprovalIdentities(cfg config.ApprovalConfig) ApprovalIdentities {
	ids := ApprovalIdentities{
		SystemApproverID:       cfg.SystemApproverID,
		ManualLedgerApproverID: cfg.ManualLedgerApproverID,
		PayrollAccounts:        make(map[domain.Population]int32),
		AssetAccounts:          make(map[domain.AssetCategory]int32),
	}
	for _, pop := range []domain.Population{domain.PopulationAthlete, domain.PopulationStaff} {
		ids.PayrollAccounts[pop] = cfg.PayrollAccount(pop)
	}
	for _, cat := range []domain.AssetCategory{domain.AssetRealEstate, domain.AssetVehicle, domain.AssetMovable} {
		ids.AssetAccounts[cat] = cfg.AssetAccount(cat)
	}
	return ids
}

// Clock returns the current instant. Services take it so tests can pin today.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func requireDepartment(sess domain.Session) error {
	if sess.DepartmentID <= 0 {
		return domain.NewValidationError("department_id", "session has no department")
	}
	return nil
}
