package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Athlete struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	TerminationFee decimal.Decimal `json:"termination_fee"`
	SigningBonus   decimal.Decimal `json:"signing_bonus"`
	ContractStart  time.Time       `json:"contract_start"`
	ContractEnd    time.Time       `json:"contract_end"`
	DepartmentID   int32           `json:"department_id"`
}

func (a *Athlete) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, NewValidationError("name", "name is required"))
	}
	if strings.TrimSpace(a.Role) == "" {
		errs = append(errs, NewValidationError("role", "role is required"))
	}
	for field, v := range map[string]decimal.Decimal{
		"termination_fee": a.TerminationFee,
		"signing_bonus":   a.SigningBonus,
	} {
		if err := validateMoney(field, v, false); err != nil {
			errs = append(errs, err)
		}
	}
	if err := validateMoney("base_salary", a.BaseSalary, true); err != nil {
		errs = append(errs, err)
	}
	if a.ContractStart.IsZero() || a.ContractEnd.IsZero() {
		errs = append(errs, NewValidationError("contract_end", "contract start and end are required"))
	} else if a.ContractEnd.Before(a.ContractStart) {
		errs = append(errs, NewValidationError("contract_end", "contract cannot end before it starts"))
	}
	if a.DepartmentID <= 0 {
		errs = append(errs, NewValidationError("department_id", "department is required"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmploymentType string

const (
	EmploymentHired      EmploymentType = "hired"
	EmploymentOutsourced EmploymentType = "outsourced"
)

type Staff struct {
	ID             int64           `json:"id"`
	ContractCode   string          `json:"contract_code"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	Role           string          `json:"role"`
	Sector         string          `json:"sector"`
	EmploymentType EmploymentType  `json:"employment_type"`
	DepartmentID   int32           `json:"department_id"`
	AdmissionDate  *time.Time      `json:"admission_date,omitempty"`
}

func (s *Staff) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(s.ContractCode) == "" {
		errs = append(errs, NewValidationError("contract_code", "contract code is required"))
	}
	if strings.TrimSpace(s.Role) == "" {
		errs = append(errs, NewValidationError("role", "role is required"))
	}
	if err := validateMoney("base_salary", s.BaseSalary, true); err != nil {
		errs = append(errs, err)
	}
	if s.EmploymentType != EmploymentHired && s.EmploymentType != EmploymentOutsourced {
		errs = append(errs, NewValidationError("employment_type", "must be hired or outsourced"))
	}
	if s.DepartmentID <= 0 {
		errs = append(errs, NewValidationError("department_id", "department is required"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemovalReport counts deleted rows per category for a roster removal.
type RemovalReport map[string]int64

func (r RemovalReport) Total() int64 {
	var n int64
	for _, c := range r {
		n += c
	}
	return n
}
