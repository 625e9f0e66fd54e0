package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aburakt/staffy/internal/pkg/apperror"
	"github.com/aburakt/staffy/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleErrorMapsKindsToStatus(t *testing.T) {
	cases := []struct {
		kind       apperror.Kind
		code       string
		wantStatus int
	}{
		{apperror.KindConflict, "EMAIL_EXISTS", http.StatusConflict},
		{apperror.KindState, "ALREADY_CLOCKED_IN", http.StatusConflict},
		{apperror.KindBusinessRule, "INSUFFICIENT_LEAVE_DAYS", http.StatusUnprocessableEntity},
		{apperror.KindNotFound, "STAFF_NOT_FOUND", http.StatusNotFound},
		{apperror.KindUnauthorized, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{apperror.KindForbidden, "FORBIDDEN", http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			rec := httptest.NewRecorder()
			err := fmt.Errorf("failed to do work: %w", apperror.New(c.kind, c.code, "message"))

			HandleError(rec, err)

			assert.Equal(t, c.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
			assert.Equal(t, "message", body.Error.Message)
		})
	}
}

func TestHandleErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, apperror.Validation("end_date", "end_date cannot be before start_date"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, map[string]string{"end_date": "end_date cannot be before start_date"}, body.Error.Details)

	rec = httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "email", Message: "email is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email is required", body.Error.Details["email"])
}

func TestHandleErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
