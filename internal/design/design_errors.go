package design

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var (
	ErrServiceTypeRequired = apperror.New(
		apperror.CodeValidation,
		"Please select a service type",
		http.StatusUnprocessableEntity,
	)
	ErrFilesRequired = apperror.New(
		apperror.CodeValidation,
		"Please upload at least one design file",
		http.StatusUnprocessableEntity,
	)
	ErrContactRequired = apperror.New(
		apperror.CodeValidation,
		"Please provide your contact information",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownServiceType = apperror.New(
		apperror.CodeValidation,
		"Unknown service type",
		http.StatusUnprocessableEntity,
	)
	ErrTooManyFiles = apperror.New(
		apperror.CodeValidation,
		"You can upload up to 10 files",
		http.StatusUnprocessableEntity,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeValidation,
		"Each file must be 10 MB or smaller",
		http.StatusRequestEntityTooLarge,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeValidation,
		"Only images and PDF files are accepted",
		http.StatusUnsupportedMediaType,
	)
	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"File not found in this draft",
		http.StatusNotFound,
	)
	ErrInvalidStep = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid step",
		http.StatusBadRequest,
	)
	ErrDraftUnavailable = apperror.New(
		apperror.CodeInternalError,
		"Could not save your design request",
		http.StatusInternalServerError,
	)
)
