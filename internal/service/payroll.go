package service

import (
	"context"
	"fmt"
	"time"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

// CreatePayrollBatchInput is the request for one payroll run. Adjustments
// are keyed by person id; people without an entry are paid their base salary.
type CreatePayrollBatchInput struct {
	Population     domain.Population            `json:"population" validate:"required,oneof=athlete staff"`
	CompetencyDate time.Time                    `json:"competency_date"`
	PaymentDate    time.Time                    `json:"payment_date"`
	Adjustments    map[int64]domain.Adjustments `json:"adjustments"`
}

func (in CreatePayrollBatchInput) validateDates() error {
	var errs domain.ValidationErrors
	if in.CompetencyDate.IsZero() {
		errs = append(errs, domain.NewValidationError("competency_date", "is required"))
	}
	if in.PaymentDate.IsZero() {
		errs = append(errs, domain.NewValidationError("payment_date", "is required"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type payrollService struct {
	gateway    repository.Gateway
	payroll    repository.PayrollRepository
	notifier   Notifier
	identities ApprovalIdentities
	validation *ValidationHelper
	now        Clock
}

func NewPayrollService(
	gateway repository.Gateway,
	payroll repository.PayrollRepository,
	notifier Notifier,
	identities ApprovalIdentities,
	now Clock,
) PayrollService {
	if now == nil {
		now = systemClock
	}
	return &payrollService{
		gateway:    gateway,
		payroll:    payroll,
		notifier:   notifier,
		identities: identities,
		validation: NewValidationHelper(),
		now:        now,
	}
}

func (s *payrollService) CreateAndApproveBatch(ctx context.Context, sess domain.Session, in CreatePayrollBatchInput) (*domain.PayrollResult, error) {
	const method = "payrollService.CreateAndApproveBatch"
	logger.EnterMethod(method, "population", in.Population, "departmentID", sess.DepartmentID)

	if err := joinValidation(s.validation.ValidateStruct(in), in.validateDates(), requireDepartment(sess)); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	accountID, ok := s.identities.PayrollAccounts[in.Population]
	if !ok {
		err := fmt.Errorf("no payroll account configured for %s", in.Population)
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	// Eligibility is read once, outside the batch transaction.
	persons, err := s.payroll.ListEligible(ctx, s.gateway, in.Population, sess.DepartmentID, s.now())
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, fmt.Errorf("list eligible %s: %w", in.Population, err)
	}
	if len(persons) == 0 {
		logger.Info("No eligible persons, payroll batch skipped", "population", in.Population, "departmentID", sess.DepartmentID)
		logger.ExitMethod(method, "personCount", 0)
		return &domain.PayrollResult{
			Population:     in.Population,
			DepartmentID:   sess.DepartmentID,
			CompetencyDate: domain.DateOf(in.CompetencyDate),
		}, nil
	}

	items, err := domain.BuildLineItems(in.Population, persons, in.Adjustments)
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	batch := &domain.PayrollBatch{
		Population:     in.Population,
		CompetencyDate: domain.DateOf(in.CompetencyDate),
		PaymentDate:    domain.DateOf(in.PaymentDate),
		Status:         domain.StatusPending,
		DepartmentID:   sess.DepartmentID,
		Items:          items,
	}

	err = s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		return s.writeAndApprove(ctx, ex, batch, accountID)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "population", in.Population)
		return nil, err
	}

	result := batch.Result()
	logger.Info("Payroll batch approved",
		"batchID", result.BatchID, "population", result.Population,
		"personCount", result.PersonCount, "netTotal", result.NetTotal.StringFixed(2))

	notifyAfterCommit(method, s.notifier.PayrollApproved(ctx, result), "batchID", result.BatchID)

	logger.ExitMethod(method, "batchID", result.BatchID)
	return result, nil
}

// writeAndApprove inserts the header and line items, reconciles the header
// aggregate and runs the approval procedure on one transaction.
func (s *payrollService) writeAndApprove(ctx context.Context, ex repository.Executor, batch *domain.PayrollBatch, accountID int32) error {
	if err := s.payroll.InsertBatch(ctx, ex, batch); err != nil {
		return fmt.Errorf("insert payroll batch: %w", err)
	}
	for i := range batch.Items {
		batch.Items[i].BatchID = batch.ID
		if err := s.payroll.InsertLineItem(ctx, ex, batch.Population, &batch.Items[i]); err != nil {
			return fmt.Errorf("insert line item for person %d: %w", batch.Items[i].PersonID, err)
		}
	}

	if batch.Population == domain.PopulationAthlete {
		stored, err := s.payroll.RefreshImageRightsTotal(ctx, ex, batch.ID)
		if err != nil {
			return fmt.Errorf("refresh image rights total: %w", err)
		}
		if want := batch.ImageRightsTotal(); !stored.Equal(want) {
			return fmt.Errorf("image rights aggregate %s does not match line items %s", stored, want)
		}
		batch.AggregateImageRights = stored
	}

	if err := domain.Transition(domain.EntityPayrollBatch, batch.Status, domain.StatusApproved); err != nil {
		return err
	}
	if err := s.payroll.Approve(ctx, ex, batch.Population, batch.ID, s.identities.SystemApproverID, accountID); err != nil {
		return fmt.Errorf("approve payroll batch %d: %w", batch.ID, err)
	}
	batch.Status = domain.StatusApproved
	return nil
}
