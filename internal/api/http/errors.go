package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/logger"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func sendError(w http.ResponseWriter, status int, message string, details map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// statusFor maps a service error onto an HTTP status and public message.
func statusFor(err error) (int, string) {
	var storeErr *domain.StoreError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, domain.ErrUnknownPerson):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.As(err, &storeErr) && storeErr.IsConstraintViolation():
		return http.StatusUnprocessableEntity, "rejected by store constraint"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeServiceError logs the failure with the request id and writes the
// mapped response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	log := logger.WithRequest(requestIDFrom(r.Context()))
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "error", err)
	} else {
		log.Info("Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	sendError(w, status, message, domain.ValidationDetails(err))
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if dec.More() {
		return domain.NewValidationError("body", "request body must only contain a single JSON object")
	}
	return nil
}
