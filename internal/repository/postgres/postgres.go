package postgres

import (
	"database/sql"

	"club-finance-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles the gateway with the entity repositories that issue
// statements through it.
type Store struct {
	db *sql.DB
	repository.Gateway
	Ledger  repository.LedgerRepository
	Payroll repository.PayrollRepository
	Assets  repository.AssetRepository
	Roster  repository.RosterRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		Gateway: NewGateway(db),
		Ledger:  NewLedgerRepository(),
		Payroll: NewPayrollRepository(),
		Assets:  NewAssetRepository(),
		Roster:  NewRosterRepository(),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}
