package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aburakt/staffy/internal/pkg/apperror"
	"github.com/aburakt/staffy/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Anything outside the
// domain taxonomy is logged and reported as a 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		var details map[string]string
		if appErr.Field != "" {
			details = map[string]string{appErr.Field: appErr.Message}
		}
		Error(w, http.StatusUnprocessableEntity, appErr.Code, appErr.Message, details)
	case apperror.KindConflict, apperror.KindState:
		Error(w, http.StatusConflict, appErr.Code, appErr.Message, nil)
	case apperror.KindBusinessRule:
		Error(w, http.StatusUnprocessableEntity, appErr.Code, appErr.Message, nil)
	case apperror.KindNotFound:
		Error(w, http.StatusNotFound, appErr.Code, appErr.Message, nil)
	case apperror.KindUnauthorized:
		Error(w, http.StatusUnauthorized, appErr.Code, appErr.Message, nil)
	case apperror.KindForbidden:
		Error(w, http.StatusForbidden, appErr.Code, appErr.Message, nil)
	default:
		slog.Error("Unknown error kind", "kind", appErr.Kind, "code", appErr.Code)
		InternalServerError(w, "An unexpected error occurred")
	}
}
