package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Population selects which group of people a payroll batch covers.
type Population string

const (
	PopulationAthlete Population = "athlete"
	PopulationStaff   Population = "staff"
)

func ParsePopulation(s string) (Population, error) {
	switch Population(strings.ToLower(strings.TrimSpace(s))) {
	case PopulationAthlete:
		return PopulationAthlete, nil
	case PopulationStaff:
		return PopulationStaff, nil
	}
	return "", NewValidationError("population", "must be athlete or staff")
}

// CoveredPerson is someone a payroll batch may produce a line item for.
type CoveredPerson struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name,omitempty"`
	Role        string          `json:"role"`
	Sector      string          `json:"sector,omitempty"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	ContractEnd *time.Time      `json:"contract_end,omitempty"`
}

// Adjustments are the per-person payroll components supplied by the caller.
// ImageRights and SigningInstallment apply to athletes, Allowances to staff.
type Adjustments struct {
	Base               *decimal.Decimal `json:"base,omitempty"`
	Bonus              decimal.Decimal  `json:"bonus"`
	Deductions         decimal.Decimal  `json:"deductions"`
	ImageRights        decimal.Decimal  `json:"image_rights"`
	SigningInstallment decimal.Decimal  `json:"signing_installment"`
	Allowances         decimal.Decimal  `json:"allowances"`
}

// Validate rejects negative amounts and components that do not belong to pop.
func (a Adjustments) Validate(pop Population, prefix string) ValidationErrors {
	var errs ValidationErrors
	check := func(name string, v decimal.Decimal) {
		if err := validateMoney(prefix+name, v, false); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Base != nil {
		check("base", *a.Base)
	}
	check("bonus", a.Bonus)
	check("deductions", a.Deductions)
	check("image_rights", a.ImageRights)
	check("signing_installment", a.SigningInstallment)
	check("allowances", a.Allowances)

	switch pop {
	case PopulationAthlete:
		if !a.Allowances.IsZero() {
			errs = append(errs, NewValidationError(prefix+"allowances", "allowances apply to staff payroll only"))
		}
	case PopulationStaff:
		if !a.ImageRights.IsZero() {
			errs = append(errs, NewValidationError(prefix+"image_rights", "image rights apply to athlete payroll only"))
		}
		if !a.SigningInstallment.IsZero() {
			errs = append(errs, NewValidationError(prefix+"signing_installment", "signing installments apply to athlete payroll only"))
		}
	}
	return errs
}

// PayrollLineItem is one person's compensation inside a batch. Components
// that do not apply to the batch population stay zero.
type PayrollLineItem struct {
	ID                 int64           `json:"id"`
	BatchID            int64           `json:"batch_id"`
	PersonID           int64           `json:"person_id"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	Bonus              decimal.Decimal `json:"bonus"`
	Deductions         decimal.Decimal `json:"deductions"`
	ImageRights        decimal.Decimal `json:"image_rights"`
	SigningInstallment decimal.Decimal `json:"signing_installment"`
	Allowances         decimal.Decimal `json:"allowances"`
}

func (li PayrollLineItem) Net() decimal.Decimal {
	return li.BaseAmount.
		Add(li.Bonus).
		Add(li.ImageRights).
		Add(li.SigningInstallment).
		Add(li.Allowances).
		Sub(li.Deductions)
}

// PayrollBatch is the header grouping line items for one competency period.
type PayrollBatch struct {
	ID                   int64             `json:"id"`
	Population           Population        `json:"population"`
	CompetencyDate       time.Time         `json:"competency_date"`
	PaymentDate          time.Time         `json:"payment_date"`
	Status               ApprovalStatus    `json:"status"`
	DepartmentID         int32             `json:"department_id"`
	AggregateImageRights decimal.Decimal   `json:"aggregate_image_rights"`
	Items                []PayrollLineItem `json:"items,omitempty"`
}

func (b *PayrollBatch) NetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range b.Items {
		total = total.Add(li.Net())
	}
	return total
}

// ImageRightsTotal sums image rights across the current line items.
func (b *PayrollBatch) ImageRightsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range b.Items {
		total = total.Add(li.ImageRights)
	}
	return total
}

func (b *PayrollBatch) Result() *PayrollResult {
	return &PayrollResult{
		BatchID:          b.ID,
		Population:       b.Population,
		DepartmentID:     b.DepartmentID,
		CompetencyDate:   b.CompetencyDate,
		PersonCount:      len(b.Items),
		NetTotal:         b.NetTotal(),
		ImageRightsTotal: b.ImageRightsTotal(),
		Status:           b.Status,
	}
}

// PayrollResult summarises a batch run. A zero BatchID with PersonCount 0
// means nobody was eligible and nothing was written.
type PayrollResult struct {
	BatchID          int64           `json:"batch_id"`
	Population       Population      `json:"population"`
	DepartmentID     int32           `json:"department_id"`
	CompetencyDate   time.Time       `json:"competency_date"`
	PersonCount      int             `json:"person_count"`
	NetTotal         decimal.Decimal `json:"net_total"`
	ImageRightsTotal decimal.Decimal `json:"image_rights_total"`
	Status           ApprovalStatus  `json:"status,omitempty"`
}

// BuildLineItems produces one line item per eligible person. The base amount
// defaults to the person's base salary unless an adjustment overrides it.
func BuildLineItems(pop Population, persons []CoveredPerson, adjustments map[int64]Adjustments) ([]PayrollLineItem, error) {
	eligible := make(map[int64]struct{}, len(persons))
	for _, p := range persons {
		eligible[p.ID] = struct{}{}
	}
	var errs ValidationErrors
	for id, adj := range adjustments {
		if _, ok := eligible[id]; !ok {
			return nil, fmt.Errorf("person %d: %w", id, ErrUnknownPerson)
		}
		errs = append(errs, adj.Validate(pop, fmt.Sprintf("adjustments[%d].", id))...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	items := make([]PayrollLineItem, 0, len(persons))
	for _, p := range persons {
		adj := adjustments[p.ID]
		base := p.BaseSalary
		if adj.Base != nil {
			base = *adj.Base
		}
		item := PayrollLineItem{
			PersonID:   p.ID,
			BaseAmount: base,
			Bonus:      adj.Bonus,
			Deductions: adj.Deductions,
		}
		switch pop {
		case PopulationAthlete:
			item.ImageRights = adj.ImageRights
			item.SigningInstallment = adj.SigningInstallment
		case PopulationStaff:
			item.Allowances = adj.Allowances
		}
		items = append(items, item)
	}
	return items, nil
}
