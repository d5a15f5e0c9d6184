package autherrors

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
)

var (
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Unauthorized access",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid authentication token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Authentication token expired",
		http.StatusUnauthorized,
	)

	ErrNotSignedIn = apperror.New(
		apperror.CodeUnauthorized,
		"You are not signed in",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate authentication token",
		http.StatusInternalServerError,
	)

	ErrPasswordChangeUnsupported = apperror.New(
		apperror.CodeInvalidState,
		"This account signs in without a password",
		http.StatusBadRequest,
	)

	ErrInvalidPhone = apperror.New(
		apperror.CodeInvalidInput,
		"Please enter a valid phone number",
		http.StatusBadRequest,
	)

	ErrSessionUnavailable = apperror.New(
		apperror.CodeInternalError,
		"Could not save your session, please try again",
		http.StatusInternalServerError,
	)
)
