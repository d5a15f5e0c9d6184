package contact

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var (
	ErrEmptyMessage = apperror.New(
		apperror.CodeValidation,
		"Please tell us about your project",
		http.StatusUnprocessableEntity,
	)
	ErrSendFailed = apperror.New(
		apperror.CodeUpstream,
		"We couldn't send your message. Please try again later.",
		http.StatusBadGateway,
	)
)
