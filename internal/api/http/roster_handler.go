package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/service"
)

type RosterHandler struct {
	rosterService service.RosterService
}

func NewRosterHandler(roster service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: roster}
}

type addAthleteRequest struct {
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	TerminationFee decimal.Decimal `json:"termination_fee"`
	SigningBonus   decimal.Decimal `json:"signing_bonus"`
	ContractStart  string          `json:"contract_start"`
	ContractEnd    string          `json:"contract_end"`
}

func (req addAthleteRequest) toInput() (service.AthleteInput, error) {
	in := service.AthleteInput{
		Name:           req.Name,
		Role:           req.Role,
		BaseSalary:     req.BaseSalary,
		TerminationFee: req.TerminationFee,
		SigningBonus:   req.SigningBonus,
	}
	var errs domain.ValidationErrors
	var err error
	if in.ContractStart, err = domain.ParseDate("contract_start", req.ContractStart); err != nil {
		errs = appendValidation(errs, err)
	}
	if in.ContractEnd, err = domain.ParseDate("contract_end", req.ContractEnd); err != nil {
		errs = appendValidation(errs, err)
	}
	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

func (h *RosterHandler) AddAthlete(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var req addAthleteRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	athlete, err := h.rosterService.AddAthlete(r.Context(), sess, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, athlete)
}

func (h *RosterHandler) HireStaff(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var in service.StaffInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	staff, err := h.rosterService.HireStaff(r.Context(), sess, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, staff)
}

func (h *RosterHandler) EndAthleteContract(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	report, err := h.rosterService.EndAthleteContract(r.Context(), sess, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{ID: id, Removed: report, Total: report.Total()})
}

func (h *RosterHandler) DismissStaff(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	report, err := h.rosterService.DismissStaff(r.Context(), sess, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{ID: id, Removed: report, Total: report.Total()})
}

type removalResponse struct {
	ID      int64                `json:"id"`
	Removed domain.RemovalReport `json:"removed"`
	Total   int64                `json:"total"`
}
