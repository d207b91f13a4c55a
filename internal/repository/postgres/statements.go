package postgres

import "club-finance-backend/internal/repository"

type statementSpec struct {
	query       string
	returnsRows bool
}

// catalog is built once and never modified.
var catalog = map[repository.Statement]statementSpec{
	// Ledger
	repository.StmtInsertLedgerEntry: {
		query: `INSERT INTO ledger_entry (amount, direction, status, department_id, account_id, description, origin, approver_id, approved_at, recorded_at)
		        VALUES ($1, $2, $3, $4, NULLIF($5, 0), $6, $7, $8, $9, $10) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtSelectPendingLedgerEntries: {
		query: `SELECT id, amount, direction, status, department_id, COALESCE(account_id, 0) AS account_id, description, origin, recorded_at
		        FROM ledger_entry WHERE status = 'pending' ORDER BY recorded_at, id`,
		returnsRows: true,
	},
	repository.StmtCountPendingLedgerEntries: {
		query:       `SELECT count(*) AS pending FROM ledger_entry WHERE status = 'pending'`,
		returnsRows: true,
	},
	repository.StmtLockLedgerEntry: {
		query:       `SELECT status FROM ledger_entry WHERE id = $1 FOR UPDATE`,
		returnsRows: true,
	},
	repository.StmtApproveLedgerEntry: {
		query: `UPDATE ledger_entry SET status = 'approved', account_id = $2, approver_id = $3, approved_at = $4
		        WHERE id = $1 AND status = 'pending'`,
	},
	repository.StmtDeletePendingLedgerEntry: {
		query: `DELETE FROM ledger_entry WHERE id = $1 AND status = 'pending'`,
	},

	// Payroll
	repository.StmtSelectEligibleAthletes: {
		query: `SELECT id, name, role, base_salary, contract_end FROM athlete
		        WHERE department_id = $1 AND contract_end >= $2 ORDER BY id`,
		returnsRows: true,
	},
	repository.StmtSelectEligibleStaff: {
		query: `SELECT id, role, sector, base_salary FROM staff
		        WHERE department_id = $1 ORDER BY id`,
		returnsRows: true,
	},
	repository.StmtInsertAthleteBatch: {
		query: `INSERT INTO payroll_batch_athlete (competency_date, payment_date, status, department_id, aggregate_image_rights)
		        VALUES ($1, $2, $3, $4, 0) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertStaffBatch: {
		query: `INSERT INTO payroll_batch_staff (competency_date, payment_date, status, department_id)
		        VALUES ($1, $2, $3, $4) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertAthleteLineItem: {
		query: `INSERT INTO payroll_line_item_athlete (batch_id, person_id, base_amount, bonus, deductions, image_rights, signing_bonus_installment)
		        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertStaffLineItem: {
		query: `INSERT INTO payroll_line_item_staff (batch_id, person_id, base_amount, bonus, deductions, allowances)
		        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtRefreshAthleteImageRights: {
		query: `UPDATE payroll_batch_athlete SET aggregate_image_rights = (
		            SELECT COALESCE(SUM(image_rights), 0) FROM payroll_line_item_athlete WHERE batch_id = $1)
		        WHERE id = $1 RETURNING aggregate_image_rights`,
		returnsRows: true,
	},
	repository.StmtApproveAthleteBatch: {
		query: `CALL sp_approve_payroll_batch_athlete($1, $2, $3)`,
	},
	repository.StmtApproveStaffBatch: {
		query: `CALL sp_approve_payroll_batch_staff($1, $2, $3)`,
	},

	// Assets
	repository.StmtInsertAsset: {
		query: `INSERT INTO asset (name, acquisition_date, value, location, department_id, status)
		        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertRealEstate: {
		query: `INSERT INTO asset_real_estate (asset_id, address, area, property_type, depreciation_rate)
		        VALUES ($1, $2, $3, $4, $5)`,
	},
	repository.StmtInsertVehicle: {
		query: `INSERT INTO asset_vehicle (asset_id, vehicle_type, plate, year, model)
		        VALUES ($1, $2, $3, $4, $5)`,
	},
	repository.StmtInsertMovable: {
		query: `INSERT INTO asset_movable (asset_id, depreciation_rate) VALUES ($1, $2)`,
	},
	repository.StmtApproveAsset: {
		query: `CALL sp_approve_asset($1, $2, $3)`,
	},
	repository.StmtLockAsset: {
		query:       `SELECT status FROM asset WHERE id = $1 AND department_id = $2 FOR UPDATE`,
		returnsRows: true,
	},
	repository.StmtRetireAsset: {
		query: `UPDATE asset SET status = 'retired' WHERE id = $1 AND status = 'approved'`,
	},

	// Roster
	repository.StmtInsertAthlete: {
		query: `INSERT INTO athlete (name, role, base_salary, termination_fee, signing_bonus, contract_start, contract_end, department_id)
		        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertStaff: {
		query: `INSERT INTO staff (contract_code, base_salary, role, sector, employment_type, department_id)
		        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		returnsRows: true,
	},
	repository.StmtInsertStaffHired: {
		query: `INSERT INTO staff_hired (staff_id, admission_date) VALUES ($1, $2)`,
	},
	repository.StmtLockAthlete: {
		query:       `SELECT id FROM athlete WHERE id = $1 AND department_id = $2 FOR UPDATE`,
		returnsRows: true,
	},
	repository.StmtLockStaff: {
		query:       `SELECT id FROM staff WHERE id = $1 AND department_id = $2 FOR UPDATE`,
		returnsRows: true,
	},
	repository.StmtDeleteAthleteLineItems: {
		query:       `DELETE FROM payroll_line_item_athlete WHERE person_id = $1 RETURNING batch_id`,
		returnsRows: true,
	},
	repository.StmtDeleteAthlete: {
		query: `DELETE FROM athlete WHERE id = $1 AND department_id = $2`,
	},
	repository.StmtDeleteStaffLineItems: {
		query: `DELETE FROM payroll_line_item_staff WHERE person_id = $1`,
	},
	repository.StmtDeleteStaffHired: {
		query: `DELETE FROM staff_hired WHERE staff_id = $1`,
	},
	repository.StmtDeleteStaffOutsourced: {
		query: `DELETE FROM staff_outsourced WHERE staff_id = $1`,
	},
	repository.StmtDeleteStaff: {
		query: `DELETE FROM staff WHERE id = $1 AND department_id = $2`,
	},
}

// lookup resolves a statement or reports it as unknown.
func lookup(stmt repository.Statement) (statementSpec, bool) {
	spec, ok := catalog[stmt]
	return spec, ok
}
