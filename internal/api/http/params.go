package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"club-finance-backend/internal/domain"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// appendValidation flattens err into errs when it carries field details.
func appendValidation(errs domain.ValidationErrors, err error) domain.ValidationErrors {
	var many domain.ValidationErrors
	if errors.As(err, &many) {
		return append(errs, many...)
	}
	var one *domain.ValidationError
	if errors.As(err, &one) {
		return append(errs, one)
	}
	return append(errs, domain.NewValidationError("request", err.Error()))
}

