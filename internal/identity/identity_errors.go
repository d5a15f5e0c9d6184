package identity

import (
	"net/http"
	"strings"

	"swarachna-api/internal/pkg/apperror"
)

var (
	ErrEmailExists = apperror.New(
		apperror.CodeConflict,
		"Email already registered",
		http.StatusConflict,
	)

	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidCode = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or expired verification code",
		http.StatusBadRequest,
	)

	ErrInvalidPhone = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid phone number",
		http.StatusBadRequest,
	)

	ErrWeakPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Password must be at least 6 characters",
		http.StatusBadRequest,
	)

	ErrTooManyAttempts = apperror.New(
		apperror.CodeTooManyRequests,
		"Too many attempts, please try again later",
		http.StatusTooManyRequests,
	)

	ErrUserDisabled = apperror.New(
		apperror.CodeForbidden,
		"This account has been disabled",
		http.StatusForbidden,
	)

	ErrReauthRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Please sign in again to continue",
		http.StatusUnauthorized,
	)

	ErrUpstream = apperror.New(
		apperror.CodeUpstream,
		"Authentication service is unavailable",
		http.StatusBadGateway,
	)
)

// mapProviderError translates the provider's error message, which looks like
// "WEAK_PASSWORD : Password should be at least 6 characters".
func mapProviderError(message string) *apperror.AppError {
	code := message
	if i := strings.IndexAny(code, " :"); i >= 0 {
		code = code[:i]
	}

	switch code {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL":
		return ErrInvalidCredentials
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "INVALID_CODE", "INVALID_SESSION_INFO", "SESSION_EXPIRED", "CODE_EXPIRED", "MISSING_CODE":
		return ErrInvalidCode
	case "INVALID_PHONE_NUMBER", "MISSING_PHONE_NUMBER", "TOO_SHORT", "TOO_LONG":
		return ErrInvalidPhone
	case "TOO_MANY_ATTEMPTS_TRY_LATER", "QUOTA_EXCEEDED":
		return ErrTooManyAttempts
	case "USER_DISABLED":
		return ErrUserDisabled
	case "INVALID_ID_TOKEN", "CREDENTIAL_TOO_OLD_LOGIN_AGAIN", "TOKEN_EXPIRED", "USER_NOT_FOUND":
		return ErrReauthRequired
	default:
		return ErrUpstream
	}
}
