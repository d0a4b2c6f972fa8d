package sectionerrors

import (
	"net/http"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"
)

var (
	ErrSectionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Section not found",
		http.StatusNotFound,
	)
	ErrSectionNameTaken = apperror.New(
		apperror.CodeInvalidInput,
		"A section with the same name already exists",
		http.StatusBadRequest,
	)
	ErrDuplicateFieldName = apperror.New(
		apperror.CodeInvalidInput,
		"Field names must be unique within a section",
		http.StatusBadRequest,
	)
)
