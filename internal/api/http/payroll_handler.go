package http

import (
	"net/http"
	"strconv"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/service"
)

type PayrollHandler struct {
	payrollService service.PayrollService
	rosterService  service.RosterService
}

func NewPayrollHandler(payroll service.PayrollService, roster service.RosterService) *PayrollHandler {
	return &PayrollHandler{payrollService: payroll, rosterService: roster}
}

type createBatchRequest struct {
	CompetencyDate string                        `json:"competency_date"`
	PaymentDate    string                        `json:"payment_date"`
	Adjustments    map[string]domain.Adjustments `json:"adjustments"`
}

func (req createBatchRequest) toInput(pop domain.Population) (service.CreatePayrollBatchInput, error) {
	var errs domain.ValidationErrors
	in := service.CreatePayrollBatchInput{Population: pop}

	var err error
	if in.CompetencyDate, err = domain.ParseDate("competency_date", req.CompetencyDate); err != nil {
		errs = appendValidation(errs, err)
	}
	if in.PaymentDate, err = domain.ParseDate("payment_date", req.PaymentDate); err != nil {
		errs = appendValidation(errs, err)
	}

	if len(req.Adjustments) > 0 {
		in.Adjustments = make(map[int64]domain.Adjustments, len(req.Adjustments))
		for key, adj := range req.Adjustments {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil || id <= 0 {
				errs = append(errs, domain.NewValidationError("adjustments."+key, "person id must be a positive integer"))
				continue
			}
			in.Adjustments[id] = adj
		}
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// CreateBatch builds and approves one payroll batch for pop.
func (h *PayrollHandler) CreateBatch(pop domain.Population) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, sess domain.Session) {
		var req createBatchRequest
		if err := decodeBody(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}
		in, err := req.toInput(pop)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		result, err := h.payrollService.CreateAndApproveBatch(r.Context(), sess, in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		status := http.StatusCreated
		if result.BatchID == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, result)
	}
}

// ListEligible returns the persons a batch for pop would cover today.
func (h *PayrollHandler) ListEligible(pop domain.Population) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, sess domain.Session) {
		persons, err := h.rosterService.ListEligible(r.Context(), sess, pop)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if persons == nil {
			persons = []domain.CoveredPerson{}
		}
		writeJSON(w, http.StatusOK, persons)
	}
}
