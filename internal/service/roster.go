package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

type AthleteInput struct {
	Name           string          `json:"name" validate:"required,max=120"`
	Role           string          `json:"role" validate:"required,max=60"`
	BaseSalary     decimal.Decimal `json:"base_salary" validate:"gt=0"`
	TerminationFee decimal.Decimal `json:"termination_fee" validate:"gte=0"`
	SigningBonus   decimal.Decimal `json:"signing_bonus" validate:"gte=0"`
	ContractStart  time.Time       `json:"contract_start"`
	ContractEnd    time.Time       `json:"contract_end"`
}

type StaffInput struct {
	ContractCode   string                `json:"contract_code" validate:"required,max=40"`
	BaseSalary     decimal.Decimal       `json:"base_salary" validate:"gt=0"`
	Role           string                `json:"role" validate:"required,max=60"`
	Sector         string                `json:"sector" validate:"max=60"`
	EmploymentType domain.EmploymentType `json:"employment_type" validate:"required,oneof=hired outsourced"`
}

type rosterService struct {
	gateway    repository.Gateway
	roster     repository.RosterRepository
	payroll    repository.PayrollRepository
	validation *ValidationHelper
	now        Clock
}

func NewRosterService(gateway repository.Gateway, roster repository.RosterRepository, payroll repository.PayrollRepository, now Clock) RosterService {
	if now == nil {
		now = systemClock
	}
	return &rosterService{
		gateway:    gateway,
		roster:     roster,
		payroll:    payroll,
		validation: NewValidationHelper(),
		now:        now,
	}
}

func (s *rosterService) AddAthlete(ctx context.Context, sess domain.Session, in AthleteInput) (*domain.Athlete, error) {
	const method = "rosterService.AddAthlete"
	logger.EnterMethod(method, "departmentID", sess.DepartmentID)

	athlete := &domain.Athlete{
		Name:           in.Name,
		Role:           in.Role,
		BaseSalary:     in.BaseSalary,
		TerminationFee: in.TerminationFee,
		SigningBonus:   in.SigningBonus,
		ContractStart:  in.ContractStart,
		ContractEnd:    in.ContractEnd,
		DepartmentID:   sess.DepartmentID,
	}
	if err := joinValidation(s.validation.ValidateStruct(in), athlete.Validate()); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	if err := s.roster.InsertAthlete(ctx, s.gateway, athlete); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	logger.ExitMethod(method, "athleteID", athlete.ID)
	return athlete, nil
}

// HireStaff inserts the staff row and, for hired employees, the admission
// row dated today on the same transaction.
func (s *rosterService) HireStaff(ctx context.Context, sess domain.Session, in StaffInput) (*domain.Staff, error) {
	const method = "rosterService.HireStaff"
	logger.EnterMethod(method, "departmentID", sess.DepartmentID, "employmentType", in.EmploymentType)

	staff := &domain.Staff{
		ContractCode:   in.ContractCode,
		BaseSalary:     in.BaseSalary,
		Role:           in.Role,
		Sector:         in.Sector,
		EmploymentType: in.EmploymentType,
		DepartmentID:   sess.DepartmentID,
	}
	if err := joinValidation(s.validation.ValidateStruct(in), staff.Validate()); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		if err := s.roster.InsertStaff(ctx, ex, staff); err != nil {
			return fmt.Errorf("insert staff: %w", err)
		}
		if staff.EmploymentType != domain.EmploymentHired {
			return nil
		}
		admission := domain.DateOf(s.now())
		if err := s.roster.InsertStaffHired(ctx, ex, staff.ID, admission); err != nil {
			return fmt.Errorf("insert admission for staff %d: %w", staff.ID, err)
		}
		staff.AdmissionDate = &admission
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	logger.ExitMethod(method, "staffID", staff.ID)
	return staff, nil
}

func (s *rosterService) ListEligible(ctx context.Context, sess domain.Session, pop domain.Population) ([]domain.CoveredPerson, error) {
	const method = "rosterService.ListEligible"
	logger.EnterMethod(method, "population", pop, "departmentID", sess.DepartmentID)

	if err := requireDepartment(sess); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	persons, err := s.payroll.ListEligible(ctx, s.gateway, pop, sess.DepartmentID, s.now())
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	logger.ExitMethod(method, "count", len(persons))
	return persons, nil
}

func (s *rosterService) EndAthleteContract(ctx context.Context, sess domain.Session, athleteID int64) (domain.RemovalReport, error) {
	const method = "rosterService.EndAthleteContract"
	logger.EnterMethod(method, "athleteID", athleteID, "departmentID", sess.DepartmentID)

	if err := requireDepartment(sess); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	var report domain.RemovalReport
	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		var err error
		report, err = s.roster.RemoveAthlete(ctx, ex, athleteID, sess.DepartmentID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "athleteID", athleteID)
		return nil, err
	}
	logger.Info("Athlete contract ended", "athleteID", athleteID, "rowsRemoved", report.Total(), "userID", sess.UserID)
	logger.ExitMethod(method, "athleteID", athleteID)
	return report, nil
}

func (s *rosterService) DismissStaff(ctx context.Context, sess domain.Session, staffID int64) (domain.RemovalReport, error) {
	const method = "rosterService.DismissStaff"
	logger.EnterMethod(method, "staffID", staffID, "departmentID", sess.DepartmentID)

	if err := requireDepartment(sess); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	var report domain.RemovalReport
	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		var err error
		report, err = s.roster.RemoveStaff(ctx, ex, staffID, sess.DepartmentID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "staffID", staffID)
		return nil, err
	}
	logger.Info("Staff member dismissed", "staffID", staffID, "rowsRemoved", report.Total(), "userID", sess.UserID)
	logger.ExitMethod(method, "staffID", staffID)
	return report, nil
}
