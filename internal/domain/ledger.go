package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionInflow:
		return DirectionInflow, nil
	case DirectionOutflow:
		return DirectionOutflow, nil
	}
	return "", NewValidationError("direction", "must be inflow or outflow")
}

type Origin string

const (
	OriginManual    Origin = "manual"
	OriginAutomatic Origin = "automatic"
)

// LedgerEntry is one movement of money against an account.
type LedgerEntry struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Direction    Direction       `json:"direction"`
	Status       ApprovalStatus  `json:"status"`
	DepartmentID int32           `json:"department_id"`
	AccountID    int32           `json:"account_id"`
	Description  string          `json:"description"`
	Origin       Origin          `json:"origin"`
	ApproverID   *int32          `json:"approver_id,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RecordedAt   time.Time       `json:"recorded_at"`
}

// Approve moves a pending entry to approved, recording approver and instant
// together.
func (e *LedgerEntry) Approve(a Approval) error {
	if err := Transition(EntityLedgerEntry, e.Status, StatusApproved); err != nil {
		return err
	}
	approver, at := a.ApproverID, a.ApprovedAt
	e.ApproverID = &approver
	e.ApprovedAt = &at
	e.Status = StatusApproved
	return nil
}

// Validate checks the fields a caller supplies when creating an entry.
func (e *LedgerEntry) Validate() error {
	var errs ValidationErrors
	if err := validateMoney("amount", e.Amount, true); err != nil {
		errs = append(errs, err)
	}
	if e.Direction != DirectionInflow && e.Direction != DirectionOutflow {
		errs = append(errs, NewValidationError("direction", "must be inflow or outflow"))
	}
	if e.DepartmentID <= 0 {
		errs = append(errs, NewValidationError("department_id", "department is required"))
	}
	if e.AccountID < 0 {
		errs = append(errs, NewValidationError("account_id", "must not be negative"))
	}
	if strings.TrimSpace(e.Description) == "" {
		errs = append(errs, NewValidationError("description", "description is required"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Signed returns the amount with outflows negated.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.Direction == DirectionOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}
