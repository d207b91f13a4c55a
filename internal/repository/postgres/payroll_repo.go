package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/repository"
)

// payrollPlan binds a population to its statements.
type payrollPlan struct {
	eligible    repository.Statement
	insertBatch repository.Statement
	insertItem  repository.Statement
	approve     repository.Statement
	itemArgs    func(item *domain.PayrollLineItem) []any
}

var payrollPlans = map[domain.Population]payrollPlan{
	domain.PopulationAthlete: {
		eligible:    repository.StmtSelectEligibleAthletes,
		insertBatch: repository.StmtInsertAthleteBatch,
		insertItem:  repository.StmtInsertAthleteLineItem,
		approve:     repository.StmtApproveAthleteBatch,
		itemArgs: func(li *domain.PayrollLineItem) []any {
			return []any{li.BatchID, li.PersonID, li.BaseAmount, li.Bonus, li.Deductions, li.ImageRights, li.SigningInstallment}
		},
	},
	domain.PopulationStaff: {
		eligible:    repository.StmtSelectEligibleStaff,
		insertBatch: repository.StmtInsertStaffBatch,
		insertItem:  repository.StmtInsertStaffLineItem,
		approve:     repository.StmtApproveStaffBatch,
		itemArgs: func(li *domain.PayrollLineItem) []any {
			return []any{li.BatchID, li.PersonID, li.BaseAmount, li.Bonus, li.Deductions, li.Allowances}
		},
	},
}

func planFor(pop domain.Population) (payrollPlan, error) {
	plan, ok := payrollPlans[pop]
	if !ok {
		return payrollPlan{}, domain.NewValidationError("population", fmt.Sprintf("unknown population %q", pop))
	}
	return plan, nil
}

type payrollRepository struct{}

func NewPayrollRepository() repository.PayrollRepository {
	return &payrollRepository{}
}

func (r *payrollRepository) ListEligible(ctx context.Context, ex repository.Executor, pop domain.Population, departmentID int32, asOf time.Time) ([]domain.CoveredPerson, error) {
	plan, err := planFor(pop)
	if err != nil {
		return nil, err
	}
	args := []any{departmentID}
	if pop == domain.PopulationAthlete {
		args = append(args, domain.DateOf(asOf))
	}
	res, err := ex.Execute(ctx, plan.eligible, args...)
	if err != nil {
		return nil, err
	}

	persons := make([]domain.CoveredPerson, 0, len(res.Rows))
	for _, row := range readers(res) {
		p := domain.CoveredPerson{
			ID:         row.Int64("id"),
			Role:       row.String("role"),
			BaseSalary: row.Decimal("base_salary"),
		}
		switch pop {
		case domain.PopulationAthlete:
			p.Name = row.String("name")
			end := row.Time("contract_end")
			p.ContractEnd = &end
		case domain.PopulationStaff:
			p.Sector = row.String("sector")
		}
		if err := row.Err(); err != nil {
			return nil, fmt.Errorf("read eligible %s: %w", pop, err)
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func (r *payrollRepository) InsertBatch(ctx context.Context, ex repository.Executor, b *domain.PayrollBatch) error {
	plan, err := planFor(b.Population)
	if err != nil {
		return err
	}
	res, err := ex.Execute(ctx, plan.insertBatch, b.CompetencyDate, b.PaymentDate, b.Status, b.DepartmentID)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert %s payroll batch: %w", b.Population, err)
	}
	b.ID = id
	return nil
}

func (r *payrollRepository) InsertLineItem(ctx context.Context, ex repository.Executor, pop domain.Population, item *domain.PayrollLineItem) error {
	plan, err := planFor(pop)
	if err != nil {
		return err
	}
	res, err := ex.Execute(ctx, plan.insertItem, plan.itemArgs(item)...)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert %s line item: %w", pop, err)
	}
	item.ID = id
	return nil
}

func (r *payrollRepository) RefreshImageRightsTotal(ctx context.Context, ex repository.Executor, batchID int64) (decimal.Decimal, error) {
	res, err := ex.Execute(ctx, repository.StmtRefreshAthleteImageRights, batchID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(res.Rows) == 0 {
		return decimal.Zero, fmt.Errorf("payroll batch %d: %w", batchID, domain.ErrNotFound)
	}
	v, err := scalar(res)
	if err != nil {
		return decimal.Zero, err
	}
	return asDecimal(v)
}

func (r *payrollRepository) Approve(ctx context.Context, ex repository.Executor, pop domain.Population, batchID int64, approverID, accountID int32) error {
	plan, err := planFor(pop)
	if err != nil {
		return err
	}
	_, err = ex.Execute(ctx, plan.approve, batchID, approverID, accountID)
	return err
}
