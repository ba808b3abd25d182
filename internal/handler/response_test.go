package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/ayaka/snugglespace/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("find invitation: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"no partner", domain.ErrNoPartner, http.StatusConflict, "no_partner"},
		{"invalid input", fmt.Errorf("%w: title is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "conflict"},
		{"echo 404", echo.NewHTTPError(http.StatusNotFound), http.StatusNotFound, "Not Found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, apiErr := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, apiErr.Code)
		})
	}
}

func TestMapError_ValidationDetails(t *testing.T) {
	status, apiErr := mapError(&domain.ValidationError{Field: "Title", Message: "failed on 'required' validation"})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", apiErr.Code)
	if assert.Len(t, apiErr.Details, 1) {
		assert.Equal(t, "Title", apiErr.Details[0].Field)
	}
}
