package apperror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and message", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
		assert.Equal(t, "Resource not found", httpErr.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("socket closed"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "Internal server error", httpErr.Message)
	})
}

func TestAppError_Is(t *testing.T) {
	wrapped := apperror.Wrap(errors.New("dup key"), apperror.CodeNotFound, "Resource not found", http.StatusNotFound)

	assert.True(t, errors.Is(wrapped, apperror.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperror.ErrInvalidInput))
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		WorkEmail string `json:"workEmail" validate:"required"`
		Status    string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(apperror.JSONTagName)

	t.Run("required", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{}))
		assert.EqualError(t, err, "Work Email is required")
	})

	t.Run("invalid", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{WorkEmail: "a@b.c", Status: "retired"}))
		assert.EqualError(t, err, "Status is invalid")
	})

	t.Run("non validator error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("unexpected EOF"))

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	})
}

func TestMapDecodeError(t *testing.T) {
	var target struct {
		PersonalInfo struct {
			Mobile string `json:"mobile"`
		} `json:"personalInfo"`
	}

	err := json.Unmarshal([]byte(`{"personalInfo":{"mobile":42}}`), &target)

	assert.EqualError(t, apperror.MapDecodeError(err), "Mobile is invalid")
}
