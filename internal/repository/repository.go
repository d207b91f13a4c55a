package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
)

// Statement identifies one entry of the closed statement catalog. Callers
// never pass SQL text to the gateway.
type Statement int

const (
	StmtInsertLedgerEntry Statement = iota + 1
	StmtSelectPendingLedgerEntries
	StmtCountPendingLedgerEntries
	StmtLockLedgerEntry
	StmtApproveLedgerEntry
	StmtDeletePendingLedgerEntry

	StmtSelectEligibleAthletes
	StmtSelectEligibleStaff
	StmtInsertAthleteBatch
	StmtInsertStaffBatch
	StmtInsertAthleteLineItem
	StmtInsertStaffLineItem
	StmtRefreshAthleteImageRights
	StmtApproveAthleteBatch
	StmtApproveStaffBatch

	StmtInsertAsset
	StmtInsertRealEstate
	StmtInsertVehicle
	StmtInsertMovable
	StmtApproveAsset
	StmtLockAsset
	StmtRetireAsset

	StmtInsertAthlete
	StmtInsertStaff
	StmtInsertStaffHired
	StmtLockAthlete
	StmtLockStaff
	StmtDeleteAthleteLineItems
	StmtDeleteAthlete
	StmtDeleteStaffLineItems
	StmtDeleteStaffHired
	StmtDeleteStaffOutsourced
	StmtDeleteStaff
)

var statementNames = map[Statement]string{
	StmtInsertLedgerEntry:          "insert_ledger_entry",
	StmtSelectPendingLedgerEntries: "select_pending_ledger_entries",
	StmtCountPendingLedgerEntries:  "count_pending_ledger_entries",
	StmtLockLedgerEntry:            "lock_ledger_entry",
	StmtApproveLedgerEntry:         "approve_ledger_entry",
	StmtDeletePendingLedgerEntry:   "delete_pending_ledger_entry",
	StmtSelectEligibleAthletes:     "select_eligible_athletes",
	StmtSelectEligibleStaff:        "select_eligible_staff",
	StmtInsertAthleteBatch:         "insert_athlete_batch",
	StmtInsertStaffBatch:           "insert_staff_batch",
	StmtInsertAthleteLineItem:      "insert_athlete_line_item",
	StmtInsertStaffLineItem:        "insert_staff_line_item",
	StmtRefreshAthleteImageRights:  "refresh_athlete_image_rights",
	StmtApproveAthleteBatch:        "approve_athlete_batch",
	StmtApproveStaffBatch:          "approve_staff_batch",
	StmtInsertAsset:                "insert_asset",
	StmtInsertRealEstate:           "insert_real_estate",
	StmtInsertVehicle:              "insert_vehicle",
	StmtInsertMovable:              "insert_movable",
	StmtApproveAsset:               "approve_asset",
	StmtLockAsset:                  "lock_asset",
	StmtRetireAsset:                "retire_asset",
	StmtInsertAthlete:              "insert_athlete",
	StmtInsertStaff:                "insert_staff",
	StmtInsertStaffHired:           "insert_staff_hired",
	StmtLockAthlete:                "lock_athlete",
	StmtLockStaff:                  "lock_staff",
	StmtDeleteAthleteLineItems:     "delete_athlete_line_items",
	StmtDeleteAthlete:              "delete_athlete",
	StmtDeleteStaffLineItems:       "delete_staff_line_items",
	StmtDeleteStaffHired:           "delete_staff_hired",
	StmtDeleteStaffOutsourced:      "delete_staff_outsourced",
	StmtDeleteStaff:                "delete_staff",
}

func (s Statement) String() string {
	if name, ok := statementNames[s]; ok {
		return name
	}
	return fmt.Sprintf("statement(%d)", int(s))
}

// Result is the outcome of one statement. Row-producing statements fill
// Columns and Rows; mutations fill RowsAffected.
type Result struct {
	Columns      []string
	Rows         [][]any
	RowsAffected int64
}

// Index returns the position of a column, or -1.
func (r *Result) Index(column string) int {
	for i, c := range r.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Executor runs catalog statements, either inside a transaction or as a
// single auto-committed statement.
type Executor interface {
	Execute(ctx context.Context, stmt Statement, args ...any) (*Result, error)
}

// Gateway is the only path to the store. WithTransaction commits when work
// returns nil and rolls back otherwise.
type Gateway interface {
	Executor
	WithTransaction(ctx context.Context, work func(ex Executor) error) error
}

type LedgerRepository interface {
	Insert(ctx context.Context, ex Executor, entry *domain.LedgerEntry) error
	ListPending(ctx context.Context, ex Executor) ([]domain.LedgerEntry, error)
	CountPending(ctx context.Context, ex Executor) (int64, error)
	// LockStatus returns the current status and holds a row lock until the
	// surrounding transaction ends.
	LockStatus(ctx context.Context, ex Executor, entryID int64) (domain.ApprovalStatus, error)
	Approve(ctx context.Context, ex Executor, entryID int64, accountID int32, approval domain.Approval) error
	DeletePending(ctx context.Context, ex Executor, entryID int64) error
}

type PayrollRepository interface {
	ListEligible(ctx context.Context, ex Executor, pop domain.Population, departmentID int32, asOf time.Time) ([]domain.CoveredPerson, error)
	InsertBatch(ctx context.Context, ex Executor, batch *domain.PayrollBatch) error
	InsertLineItem(ctx context.Context, ex Executor, pop domain.Population, item *domain.PayrollLineItem) error
	// RefreshImageRightsTotal recomputes the header aggregate from the stored
	// line items and returns it.
	RefreshImageRightsTotal(ctx context.Context, ex Executor, batchID int64) (decimal.Decimal, error)
	Approve(ctx context.Context, ex Executor, pop domain.Population, batchID int64, approverID, accountID int32) error
}

type AssetRepository interface {
	Insert(ctx context.Context, ex Executor, asset *domain.Asset) error
	InsertSpecialization(ctx context.Context, ex Executor, asset *domain.Asset) error
	Approve(ctx context.Context, ex Executor, assetID int64, approverID, accountID int32) error
	LockStatus(ctx context.Context, ex Executor, assetID int64, departmentID int32) (domain.ApprovalStatus, error)
	Retire(ctx context.Context, ex Executor, assetID int64) error
}

type RosterRepository interface {
	InsertAthlete(ctx context.Context, ex Executor, athlete *domain.Athlete) error
	InsertStaff(ctx context.Context, ex Executor, staff *domain.Staff) error
	InsertStaffHired(ctx context.Context, ex Executor, staffID int64, admission time.Time) error
	RemoveAthlete(ctx context.Context, ex Executor, athleteID int64, departmentID int32) (domain.RemovalReport, error)
	RemoveStaff(ctx context.Context, ex Executor, staffID int64, departmentID int32) (domain.RemovalReport, error)
}
