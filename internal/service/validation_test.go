package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"club-finance-backend/internal/domain"
)

func TestValidationHelper_DecimalAndJSONNames(t *testing.T) {
	vh := NewValidationHelper()

	err := vh.ValidateStruct(LedgerEntryInput{
		Amount:    dec("0"),
		Direction: domain.Direction("sideways"),
		AccountID: -1,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	details := domain.ValidationDetails(err)
	assert.Equal(t, "must be greater than 0", details["amount"])
	assert.Equal(t, "must be one of: inflow outflow", details["direction"])
	assert.Equal(t, "must be at least 0", details["account_id"])
	assert.Equal(t, "is required", details["description"])
}

func TestValidationHelper_Valid(t *testing.T) {
	vh := NewValidationHelper()
	assert.NoError(t, vh.ValidateStruct(StaffInput{
		ContractCode: "C-1", BaseSalary: dec("1000.50"), Role: "coach",
		EmploymentType: domain.EmploymentOutsourced,
	}))
}
