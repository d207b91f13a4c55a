package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-finance-backend/internal/domain"
)

func TestAssetRepository_InsertWithSpecialization(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewAssetRepository()
	ctx := context.Background()

	acquired := time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	asset := &domain.Asset{
		Name:            "Training ground",
		AcquisitionDate: acquired,
		Value:           decimal.RequireFromString("2500000.00"),
		Location:        "North campus",
		DepartmentID:    3,
		Status:          domain.StatusPending,
		Category:        domain.AssetRealEstate,
		RealEstate: &domain.RealEstateDetails{
			Address:          "1 Club Road",
			Area:             decimal.RequireFromString("12000"),
			PropertyType:     "land",
			DepreciationRate: decimal.RequireFromString("0.02"),
		},
	}

	mock.ExpectQuery("INSERT INTO asset ").
		WithArgs("Training ground", acquired, asset.Value, "North campus", int32(3), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec("INSERT INTO asset_real_estate").
		WithArgs(int64(12), "1 Club Road", asset.RealEstate.Area, "land", asset.RealEstate.DepreciationRate).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(ctx, gw, asset))
	assert.Equal(t, int64(12), asset.ID)
	require.NoError(t, repo.InsertSpecialization(ctx, gw, asset))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepository_SpecializationMismatch(t *testing.T) {
	gw, mock := newMockGateway(t)
	asset := &domain.Asset{ID: 1, Category: domain.AssetVehicle, Movable: &domain.MovableDetails{}}

	err := NewAssetRepository().InsertSpecialization(context.Background(), gw, asset)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepository_LockAndRetire(t *testing.T) {
	gw, mock := newMockGateway(t)
	repo := NewAssetRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT status FROM asset").
		WithArgs(int64(12), int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow([]byte("approved")))
	mock.ExpectExec("UPDATE asset SET status = 'retired'").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE asset SET status = 'retired'").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	status, err := repo.LockStatus(ctx, gw, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, status)
	assert.NoError(t, repo.Retire(ctx, gw, 12))
	assert.ErrorIs(t, repo.Retire(ctx, gw, 12), domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
