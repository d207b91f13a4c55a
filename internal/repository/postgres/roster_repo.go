package postgres

import (
	"context"
	"fmt"
	"time"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/repository"
)

// Removal report categories.
const (
	RemovedLineItems      = "payroll_line_items"
	RemovedAthlete        = "athlete"
	RemovedStaff          = "staff"
	RemovedStaffHired     = "staff_hired"
	RemovedStaffOutsource = "staff_outsourced"
)

type rosterRepository struct{}

func NewRosterRepository() repository.RosterRepository {
	return &rosterRepository{}
}

func (r *rosterRepository) InsertAthlete(ctx context.Context, ex repository.Executor, a *domain.Athlete) error {
	res, err := ex.Execute(ctx, repository.StmtInsertAthlete,
		a.Name, a.Role, a.BaseSalary, a.TerminationFee, a.SigningBonus,
		domain.DateOf(a.ContractStart), domain.DateOf(a.ContractEnd), a.DepartmentID)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert athlete: %w", err)
	}
	a.ID = id
	return nil
}

func (r *rosterRepository) InsertStaff(ctx context.Context, ex repository.Executor, s *domain.Staff) error {
	res, err := ex.Execute(ctx, repository.StmtInsertStaff,
		s.ContractCode, s.BaseSalary, s.Role, s.Sector, s.EmploymentType, s.DepartmentID)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	s.ID = id
	return nil
}

func (r *rosterRepository) InsertStaffHired(ctx context.Context, ex repository.Executor, staffID int64, admission time.Time) error {
	_, err := ex.Execute(ctx, repository.StmtInsertStaffHired, staffID, domain.DateOf(admission))
	return err
}

// lockOwned locks the roster row by id within the department. Rows of other
// departments are reported as not found.
func lockOwned(ctx context.Context, ex repository.Executor, stmt repository.Statement, id int64, departmentID int32) error {
	res, err := ex.Execute(ctx, stmt, id, departmentID)
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveAthlete locks the athlete within the department, deletes their line
// items, refreshes the image rights aggregate of every batch they belonged
// to, then deletes the athlete.
func (r *rosterRepository) RemoveAthlete(ctx context.Context, ex repository.Executor, athleteID int64, departmentID int32) (domain.RemovalReport, error) {
	if err := lockOwned(ctx, ex, repository.StmtLockAthlete, athleteID, departmentID); err != nil {
		return nil, fmt.Errorf("athlete %d: %w", athleteID, err)
	}
	report := domain.RemovalReport{}

	res, err := ex.Execute(ctx, repository.StmtDeleteAthleteLineItems, athleteID)
	if err != nil {
		return nil, err
	}
	report[RemovedLineItems] = res.RowsAffected

	touched := map[int64]struct{}{}
	for _, row := range res.Rows {
		id, err := asInt64(row[0])
		if err != nil {
			return nil, fmt.Errorf("read batch id: %w", err)
		}
		touched[id] = struct{}{}
	}
	for batchID := range touched {
		if _, err := ex.Execute(ctx, repository.StmtRefreshAthleteImageRights, batchID); err != nil {
			return nil, err
		}
	}

	res, err = ex.Execute(ctx, repository.StmtDeleteAthlete, athleteID, departmentID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("athlete %d: %w", athleteID, domain.ErrNotFound)
	}
	report[RemovedAthlete] = res.RowsAffected
	return report, nil
}

func (r *rosterRepository) RemoveStaff(ctx context.Context, ex repository.Executor, staffID int64, departmentID int32) (domain.RemovalReport, error) {
	if err := lockOwned(ctx, ex, repository.StmtLockStaff, staffID, departmentID); err != nil {
		return nil, fmt.Errorf("staff %d: %w", staffID, err)
	}
	report := domain.RemovalReport{}
	steps := []struct {
		stmt     repository.Statement
		category string
		args     []any
	}{
		{repository.StmtDeleteStaffLineItems, RemovedLineItems, []any{staffID}},
		{repository.StmtDeleteStaffHired, RemovedStaffHired, []any{staffID}},
		{repository.StmtDeleteStaffOutsourced, RemovedStaffOutsource, []any{staffID}},
		{repository.StmtDeleteStaff, RemovedStaff, []any{staffID, departmentID}},
	}
	for _, step := range steps {
		res, err := ex.Execute(ctx, step.stmt, step.args...)
		if err != nil {
			return nil, err
		}
		report[step.category] = res.RowsAffected
	}
	if report[RemovedStaff] == 0 {
		return nil, fmt.Errorf("staff %d: %w", staffID, domain.ErrNotFound)
	}
	return report, nil
}
