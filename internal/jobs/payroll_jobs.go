package jobs

import (
	"context"
	"errors"
	"fmt"

	"club-finance-backend/internal/config"
	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/service"
)

// MonthlyPayroll creates and approves one batch per configured
// (department, population) run for the current competency month.
func (jr *JobRunner) MonthlyPayroll() {
	_ = jr.runWithRecovery("MonthlyPayroll", jr.runMonthlyPayroll)
}

func (jr *JobRunner) runMonthlyPayroll(ctx context.Context) error {
	now := jr.now()
	competency := domain.FirstOfMonth(now)
	payday := domain.DateOf(now)

	var failed []error
	approved := 0
	for _, run := range jr.config.PayrollRuns {
		pop, err := domain.ParsePopulation(run.Population)
		if err != nil {
			failed = append(failed, err)
			continue
		}

		result, err := jr.services.Payroll.CreateAndApproveBatch(ctx, jr.systemSession(run.DepartmentID, pop), service.CreatePayrollBatchInput{
			Population:     pop,
			CompetencyDate: competency,
			PaymentDate:    payday,
		})
		if err != nil {
			logger.Error("Payroll run failed",
				"department_id", run.DepartmentID,
				"population", pop,
				"error", err)
			failed = append(failed, fmt.Errorf("department %d %s: %w", run.DepartmentID, pop, err))
			continue
		}
		if result.BatchID == 0 {
			logger.Info("Payroll run had no eligible persons",
				"department_id", run.DepartmentID,
				"population", pop)
			continue
		}

		approved++
		logger.Info("Payroll batch approved",
			"batch_id", result.BatchID,
			"department_id", run.DepartmentID,
			"population", pop,
			"person_count", result.PersonCount,
			"net_total", result.NetTotal.StringFixed(2))
	}

	logger.Info("Monthly payroll finished",
		"competency", competency.Format("2006-01"),
		"runs", len(jr.config.PayrollRuns),
		"approved", approved,
		"failed", len(failed))
	return errors.Join(failed...)
}

// systemSession acts for a department with the role owning its payroll.
func (jr *JobRunner) systemSession(departmentID int32, pop domain.Population) domain.Session {
	role, _ := config.RequiredRole(domain.PayrollOperation(pop))
	return domain.Session{
		UserID:       jr.config.Approval.SystemApproverID,
		DepartmentID: departmentID,
		Roles:        []string{role},
	}
}
