package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository"
)

type AssetInput struct {
	Name            string                    `json:"name" validate:"required,max=120"`
	AcquisitionDate time.Time                 `json:"acquisition_date"`
	Value           decimal.Decimal           `json:"value" validate:"gt=0"`
	Location        string                    `json:"location" validate:"max=255"`
	Category        domain.AssetCategory      `json:"category" validate:"required,oneof=real_estate vehicle movable"`
	RealEstate      *domain.RealEstateDetails `json:"real_estate,omitempty"`
	Vehicle         *domain.VehicleDetails    `json:"vehicle,omitempty"`
	Movable         *domain.MovableDetails    `json:"movable,omitempty"`
}

type assetService struct {
	gateway    repository.Gateway
	assets     repository.AssetRepository
	notifier   Notifier
	identities ApprovalIdentities
	validation *ValidationHelper
}

func NewAssetService(gateway repository.Gateway, assets repository.AssetRepository, notifier Notifier, identities ApprovalIdentities) AssetService {
	return &assetService{
		gateway:    gateway,
		assets:     assets,
		notifier:   notifier,
		identities: identities,
		validation: NewValidationHelper(),
	}
}

// RegisterAsset writes the asset header and its specialization, then runs the
// approval procedure, all on one transaction.
func (s *assetService) RegisterAsset(ctx context.Context, sess domain.Session, in AssetInput) (*domain.Asset, error) {
	const method = "assetService.RegisterAsset"
	logger.EnterMethod(method, "category", in.Category, "departmentID", sess.DepartmentID)

	asset := &domain.Asset{
		Name:            in.Name,
		AcquisitionDate: domain.DateOf(in.AcquisitionDate),
		Value:           in.Value,
		Location:        in.Location,
		DepartmentID:    sess.DepartmentID,
		Status:          domain.StatusPending,
		Category:        in.Category,
		RealEstate:      in.RealEstate,
		Vehicle:         in.Vehicle,
		Movable:         in.Movable,
	}
	if err := joinValidation(s.validation.ValidateStruct(in), requireDepartment(sess), asset.Validate()); err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}
	accountID, ok := s.identities.AssetAccounts[asset.Category]
	if !ok {
		err := fmt.Errorf("no asset account configured for %s", asset.Category)
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		if err := s.assets.Insert(ctx, ex, asset); err != nil {
			return fmt.Errorf("insert asset: %w", err)
		}
		if err := s.assets.InsertSpecialization(ctx, ex, asset); err != nil {
			return fmt.Errorf("insert %s details: %w", asset.Category, err)
		}
		if err := domain.Transition(domain.EntityAsset, asset.Status, domain.StatusApproved); err != nil {
			return err
		}
		if err := s.assets.Approve(ctx, ex, asset.ID, s.identities.SystemApproverID, accountID); err != nil {
			return fmt.Errorf("approve asset %d: %w", asset.ID, err)
		}
		asset.Status = domain.StatusApproved
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(method, err)
		return nil, err
	}

	notifyAfterCommit(method, s.notifier.AssetApproved(ctx, asset), "assetID", asset.ID)

	logger.ExitMethod(method, "assetID", asset.ID)
	return asset, nil
}

// RetireAsset moves an approved asset of the session's department to retired.
func (s *assetService) RetireAsset(ctx context.Context, sess domain.Session, assetID int64) error {
	const method = "assetService.RetireAsset"
	logger.EnterMethod(method, "assetID", assetID, "departmentID", sess.DepartmentID)

	if err := requireDepartment(sess); err != nil {
		logger.ExitMethodWithError(method, err)
		return err
	}

	err := s.gateway.WithTransaction(ctx, func(ex repository.Executor) error {
		status, err := s.assets.LockStatus(ctx, ex, assetID, sess.DepartmentID)
		if err != nil {
			return fmt.Errorf("asset %d: %w", assetID, err)
		}
		if err := domain.Transition(domain.EntityAsset, status, domain.StatusRetired); err != nil {
			return err
		}
		return s.assets.Retire(ctx, ex, assetID)
	})
	if err != nil {
		logger.ExitMethodWithError(method, err, "assetID", assetID)
		return err
	}
	logger.ExitMethod(method, "assetID", assetID)
	return nil
}
