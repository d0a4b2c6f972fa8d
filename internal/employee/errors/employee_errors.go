package employeeerrors

import (
	"net/http"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID is required",
		http.StatusBadRequest,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid joining date format",
		http.StatusBadRequest,
	)
	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID already exists",
		http.StatusBadRequest,
	)
	ErrWorkEmailTaken = apperror.New(
		apperror.CodeInvalidInput,
		"Employee with the same work email already exists",
		http.StatusBadRequest,
	)
	ErrUnknownUpdateMode = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown update mode",
		http.StatusBadRequest,
	)
	ErrFieldNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Field must be a non-empty string",
		http.StatusBadRequest,
	)
	ErrDuplicateSnapshot = apperror.New(
		apperror.CodeInvalidInput,
		"Sections must have unique names",
		http.StatusBadRequest,
	)
	ErrDuplicateSnapshotField = apperror.New(
		apperror.CodeInvalidInput,
		"Section fields must have unique names",
		http.StatusBadRequest,
	)
)
