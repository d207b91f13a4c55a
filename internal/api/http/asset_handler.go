package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/service"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assets service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assets}
}

type registerAssetRequest struct {
	Name            string                    `json:"name"`
	AcquisitionDate string                    `json:"acquisition_date"`
	Value           decimal.Decimal           `json:"value"`
	Location        string                    `json:"location"`
	Category        domain.AssetCategory      `json:"category"`
	RealEstate      *domain.RealEstateDetails `json:"real_estate,omitempty"`
	Vehicle         *domain.VehicleDetails    `json:"vehicle,omitempty"`
	Movable         *domain.MovableDetails    `json:"movable,omitempty"`
}

func (h *AssetHandler) Register(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var req registerAssetRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	acquired, err := domain.ParseDate("acquisition_date", req.AcquisitionDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	asset, err := h.assetService.RegisterAsset(r.Context(), sess, service.AssetInput{
		Name:            req.Name,
		AcquisitionDate: acquired,
		Value:           req.Value,
		Location:        req.Location,
		Category:        req.Category,
		RealEstate:      req.RealEstate,
		Vehicle:         req.Vehicle,
		Movable:         req.Movable,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) Retire(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.assetService.RetireAsset(r.Context(), sess, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": domain.StatusRetired})
}
