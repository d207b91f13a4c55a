package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildLineItems_Athletes(t *testing.T) {
	persons := []CoveredPerson{
		{ID: 1, BaseSalary: dec("1000.00")},
		{ID: 2, BaseSalary: dec("2000.00")},
	}
	override := dec("1500.00")
	adj := map[int64]Adjustments{
		1: {Bonus: dec("100.00"), ImageRights: dec("50.00"), SigningInstallment: dec("25.00"), Deductions: dec("10.00")},
		2: {Base: &override, ImageRights: dec("100.00")},
	}

	items, err := BuildLineItems(PopulationAthlete, persons, adj)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.True(t, items[0].BaseAmount.Equal(dec("1000.00")))
	assert.True(t, items[0].Net().Equal(dec("1165.00")))
	assert.True(t, items[1].BaseAmount.Equal(dec("1500.00")))

	batch := &PayrollBatch{Population: PopulationAthlete, Items: items}
	assert.True(t, batch.ImageRightsTotal().Equal(dec("150.00")))
	assert.True(t, batch.NetTotal().Equal(dec("2765.00")))
}

func TestBuildLineItems_StaffDefaultsToBaseSalary(t *testing.T) {
	persons := []CoveredPerson{
		{ID: 10, BaseSalary: dec("3000.00")},
		{ID: 11, BaseSalary: dec("2500.00")},
		{ID: 12, BaseSalary: dec("1800.00")},
	}
	items, err := BuildLineItems(PopulationStaff, persons, nil)
	require.NoError(t, err)

	batch := &PayrollBatch{Items: items}
	assert.Len(t, items, 3)
	assert.True(t, batch.NetTotal().Equal(dec("7300.00")))
	assert.True(t, batch.ImageRightsTotal().IsZero())
}

func TestBuildLineItems_UnknownPerson(t *testing.T) {
	persons := []CoveredPerson{{ID: 1, BaseSalary: dec("1000")}}
	_, err := BuildLineItems(PopulationStaff, persons, map[int64]Adjustments{99: {Bonus: dec("1")}})
	assert.ErrorIs(t, err, ErrUnknownPerson)
}

func TestBuildLineItems_RejectsForeignComponents(t *testing.T) {
	persons := []CoveredPerson{{ID: 1, BaseSalary: dec("1000")}}

	_, err := BuildLineItems(PopulationStaff, persons, map[int64]Adjustments{1: {ImageRights: dec("5")}})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, ValidationDetails(err), "adjustments[1].image_rights")

	_, err = BuildLineItems(PopulationAthlete, persons, map[int64]Adjustments{1: {Allowances: dec("5")}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildLineItems_RejectsNegativeAndFractionalCents(t *testing.T) {
	persons := []CoveredPerson{{ID: 1, BaseSalary: dec("1000")}}

	_, err := BuildLineItems(PopulationAthlete, persons, map[int64]Adjustments{1: {Bonus: dec("-1")}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = BuildLineItems(PopulationAthlete, persons, map[int64]Adjustments{1: {Bonus: dec("0.005")}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParsePopulation(t *testing.T) {
	p, err := ParsePopulation(" Athlete ")
	assert.NoError(t, err)
	assert.Equal(t, PopulationAthlete, p)

	_, err = ParsePopulation("coaches")
	assert.ErrorIs(t, err, ErrValidation)
}
