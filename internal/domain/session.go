package domain

// Department roles. Each department owns a fixed set of operations.
const (
	RoleDirective = "directive"
	RoleSports    = "sports"
	RoleFinancial = "financial"
)

// Session identifies the acting user for a single request. It is built from
// verified credentials and passed explicitly to every operation.
type Session struct {
	UserID       int32    `json:"user_id"`
	DepartmentID int32    `json:"department_id"`
	Roles        []string `json:"roles"`
}

func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Operation names a business operation for authorization.
type Operation string

const (
	OpRecordManualEntry  Operation = "ledger.record_manual"
	OpSubmitEntry        Operation = "ledger.submit"
	OpListPendingEntries Operation = "ledger.list_pending"
	OpApproveEntry       Operation = "ledger.approve"
	OpDiscardEntry       Operation = "ledger.discard"
	OpAthletePayroll     Operation = "payroll.athlete"
	OpStaffPayroll       Operation = "payroll.staff"
	OpListAthletes       Operation = "roster.list_athletes"
	OpListStaff          Operation = "roster.list_staff"
	OpAddAthlete         Operation = "roster.add_athlete"
	OpEndAthleteContract Operation = "roster.end_athlete_contract"
	OpHireStaff          Operation = "roster.hire_staff"
	OpDismissStaff       Operation = "roster.dismiss_staff"
	OpRegisterAsset      Operation = "asset.register"
	OpRetireAsset        Operation = "asset.retire"
)

// PayrollOperation maps a population to the operation guarding its batches.
func PayrollOperation(pop Population) Operation {
	if pop == PopulationStaff {
		return OpStaffPayroll
	}
	return OpAthletePayroll
}

// RosterListOperation maps a population to the operation guarding its roster.
func RosterListOperation(pop Population) Operation {
	if pop == PopulationStaff {
		return OpListStaff
	}
	return OpListAthletes
}
