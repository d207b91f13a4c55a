package config

import "club-finance-backend/internal/domain"

// OperationRoles maps each operation to the department role allowed to run it
var OperationRoles = map[domain.Operation]string{
	// Directive board
	domain.OpRecordManualEntry:  domain.RoleDirective,
	domain.OpListPendingEntries: domain.RoleDirective,
	domain.OpApproveEntry:       domain.RoleDirective,
	domain.OpDiscardEntry:       domain.RoleDirective,

	// Sports department
	domain.OpAddAthlete:         domain.RoleSports,
	domain.OpEndAthleteContract: domain.RoleSports,
	domain.OpListAthletes:       domain.RoleSports,
	domain.OpAthletePayroll:     domain.RoleSports,

	// Financial department
	domain.OpSubmitEntry:   domain.RoleFinancial,
	domain.OpHireStaff:     domain.RoleFinancial,
	domain.OpDismissStaff:  domain.RoleFinancial,
	domain.OpListStaff:     domain.RoleFinancial,
	domain.OpStaffPayroll:  domain.RoleFinancial,
	domain.OpRegisterAsset: domain.RoleFinancial,
	domain.OpRetireAsset:   domain.RoleFinancial,
}

// RequiredRole returns the role for an operation. Unknown operations are
// never allowed.
func RequiredRole(op domain.Operation) (string, bool) {
	role, ok := OperationRoles[op]
	return role, ok
}

// Authorize reports whether the session may run op.
func Authorize(s domain.Session, op domain.Operation) bool {
	role, ok := RequiredRole(op)
	if !ok {
		return false
	}
	return s.HasRole(role)
}
