package domain

import (
	"fmt"
	"time"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRetired  ApprovalStatus = "retired"
)

// EntityKind identifies which approval lifecycle applies to a row.
type EntityKind string

const (
	EntityLedgerEntry  EntityKind = "ledger_entry"
	EntityPayrollBatch EntityKind = "payroll_batch"
	EntityAsset        EntityKind = "asset"
)

type transition struct {
	kind EntityKind
	from ApprovalStatus
	to   ApprovalStatus
}

// allowedTransitions is the complete approval lifecycle. Anything absent is
// rejected, including approved -> pending.
var allowedTransitions = map[transition]struct{}{
	{EntityLedgerEntry, StatusPending, StatusApproved}:  {},
	{EntityPayrollBatch, StatusPending, StatusApproved}: {},
	{EntityAsset, StatusPending, StatusApproved}:        {},
	{EntityAsset, StatusApproved, StatusRetired}:        {},
}

// discardable lists the kinds whose pending rows may be deleted outright.
// Payroll batches are never observable while pending.
var discardable = map[EntityKind]struct{}{
	EntityLedgerEntry: {},
	EntityAsset:       {},
}

// Transition reports whether kind may move from one status to another.
func Transition(kind EntityKind, from, to ApprovalStatus) error {
	if _, ok := allowedTransitions[transition{kind, from, to}]; ok {
		return nil
	}
	return &TransitionError{Kind: kind, From: from, To: to}
}

// Discard reports whether a row of kind in status from may be deleted.
func Discard(kind EntityKind, from ApprovalStatus) error {
	if _, ok := discardable[kind]; ok && from == StatusPending {
		return nil
	}
	return &TransitionError{Kind: kind, From: from, To: ""}
}

// Approval is the approver identity and approval instant. The two are always
// recorded together.
type Approval struct {
	ApproverID int32     `json:"approver_id"`
	ApprovedAt time.Time `json:"approved_at"`
}

func NewApproval(approverID int32, at time.Time) (Approval, error) {
	if approverID <= 0 {
		return Approval{}, NewValidationError("approver_id", "approver identity is required")
	}
	if at.IsZero() {
		return Approval{}, NewValidationError("approved_at", "approval timestamp is required")
	}
	return Approval{ApproverID: approverID, ApprovedAt: at}, nil
}

type TransitionError struct {
	Kind EntityKind
	From ApprovalStatus
	To   ApprovalStatus
}

func (e *TransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s in status %q cannot be discarded", e.Kind, e.From)
	}
	return fmt.Sprintf("%s cannot move from %q to %q", e.Kind, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
