package postgres

import (
	"context"
	"fmt"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/repository"
)

type assetRepository struct{}

func NewAssetRepository() repository.AssetRepository {
	return &assetRepository{}
}

func (r *assetRepository) Insert(ctx context.Context, ex repository.Executor, a *domain.Asset) error {
	res, err := ex.Execute(ctx, repository.StmtInsertAsset,
		a.Name, a.AcquisitionDate, a.Value, a.Location, a.DepartmentID, a.Status)
	if err != nil {
		return err
	}
	id, err := scalarInt64(res)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	a.ID = id
	return nil
}

// InsertSpecialization writes the category row for an already inserted
// asset header.
func (r *assetRepository) InsertSpecialization(ctx context.Context, ex repository.Executor, a *domain.Asset) error {
	var err error
	switch {
	case a.Category == domain.AssetRealEstate && a.RealEstate != nil:
		d := a.RealEstate
		_, err = ex.Execute(ctx, repository.StmtInsertRealEstate, a.ID, d.Address, d.Area, d.PropertyType, d.DepreciationRate)
	case a.Category == domain.AssetVehicle && a.Vehicle != nil:
		d := a.Vehicle
		_, err = ex.Execute(ctx, repository.StmtInsertVehicle, a.ID, d.VehicleType, d.Plate, d.Year, d.Model)
	case a.Category == domain.AssetMovable && a.Movable != nil:
		_, err = ex.Execute(ctx, repository.StmtInsertMovable, a.ID, a.Movable.DepreciationRate)
	default:
		return domain.NewValidationError("category", "specialization does not match category")
	}
	return err
}

func (r *assetRepository) Approve(ctx context.Context, ex repository.Executor, assetID int64, approverID, accountID int32) error {
	_, err := ex.Execute(ctx, repository.StmtApproveAsset, assetID, approverID, accountID)
	return err
}

func (r *assetRepository) LockStatus(ctx context.Context, ex repository.Executor, assetID int64, departmentID int32) (domain.ApprovalStatus, error) {
	return lockStatus(ctx, ex, repository.StmtLockAsset, assetID, departmentID)
}

func (r *assetRepository) Retire(ctx context.Context, ex repository.Executor, assetID int64) error {
	res, err := ex.Execute(ctx, repository.StmtRetireAsset, assetID)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", assetID, domain.ErrInvalidTransition)
	}
	return nil
}
