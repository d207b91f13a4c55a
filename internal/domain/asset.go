package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AssetCategory string

const (
	AssetRealEstate AssetCategory = "real_estate"
	AssetVehicle    AssetCategory = "vehicle"
	AssetMovable    AssetCategory = "movable"
)

func ParseAssetCategory(s string) (AssetCategory, error) {
	switch AssetCategory(strings.ToLower(strings.TrimSpace(s))) {
	case AssetRealEstate:
		return AssetRealEstate, nil
	case AssetVehicle:
		return AssetVehicle, nil
	case AssetMovable:
		return AssetMovable, nil
	}
	return "", NewValidationError("category", "must be real_estate, vehicle or movable")
}

type RealEstateDetails struct {
	Address          string          `json:"address"`
	Area             decimal.Decimal `json:"area"`
	PropertyType     string          `json:"property_type"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
}

type VehicleDetails struct {
	VehicleType string `json:"vehicle_type"`
	Plate       string `json:"plate"`
	Year        int    `json:"year"`
	Model       string `json:"model"`
}

type MovableDetails struct {
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
}

// Asset is a club-owned item. Exactly one specialization matching Category
// is set.
type Asset struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	AcquisitionDate time.Time       `json:"acquisition_date"`
	Value           decimal.Decimal `json:"value"`
	Location        string          `json:"location"`
	DepartmentID    int32           `json:"department_id"`
	Status          ApprovalStatus  `json:"status"`
	Category        AssetCategory   `json:"category"`

	RealEstate *RealEstateDetails `json:"real_estate,omitempty"`
	Vehicle    *VehicleDetails    `json:"vehicle,omitempty"`
	Movable    *MovableDetails    `json:"movable,omitempty"`
}

func (a *Asset) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, NewValidationError("name", "name is required"))
	}
	if a.AcquisitionDate.IsZero() {
		errs = append(errs, NewValidationError("acquisition_date", "acquisition date is required"))
	}
	if err := validateMoney("value", a.Value, true); err != nil {
		errs = append(errs, err)
	}
	if a.DepartmentID <= 0 {
		errs = append(errs, NewValidationError("department_id", "department is required"))
	}

	set := 0
	for _, present := range []bool{a.RealEstate != nil, a.Vehicle != nil, a.Movable != nil} {
		if present {
			set++
		}
	}
	switch {
	case set != 1:
		errs = append(errs, NewValidationError("category", "exactly one specialization must be provided"))
	case a.Category == AssetRealEstate && a.RealEstate == nil,
		a.Category == AssetVehicle && a.Vehicle == nil,
		a.Category == AssetMovable && a.Movable == nil:
		errs = append(errs, NewValidationError("category", "specialization does not match category"))
	case a.Category != AssetRealEstate && a.Category != AssetVehicle && a.Category != AssetMovable:
		errs = append(errs, NewValidationError("category", "must be real_estate, vehicle or movable"))
	}
	if a.Vehicle != nil && strings.TrimSpace(a.Vehicle.Plate) == "" {
		errs = append(errs, NewValidationError("vehicle.plate", "plate is required"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
