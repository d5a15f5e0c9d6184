// Package identity talks to the hosted identity provider that owns user
// credentials. This service never sees or stores a password hash.
package identity

import (
	"context"
	"strings"
)

type Account struct {
	UID         string
	Email       string
	DisplayName string
	PhoneNumber string
	// IDToken is the provider's short-lived token, needed for account updates.
	IDToken string
}

//go:generate mockgen -source=identity.go -destination=../mock/identity/identity_mock.go -package=mock
type Provider interface {
	SignUp(ctx context.Context, email, password, displayName string) (Account, error)
	SignIn(ctx context.Context, email, password string) (Account, error)
	SignInWithGoogle(ctx context.Context, googleIDToken string) (Account, error)

	// SendPhoneCode returns the verification id to pass to VerifyPhoneCode.
	SendPhoneCode(ctx context.Context, phone, recaptchaToken string) (string, error)
	VerifyPhoneCode(ctx context.Context, verificationID, code string) (Account, error)

	SendPasswordReset(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, idToken, newPassword string) error
}

// NormalizePhone strips formatting and prefixes defaultCountryCode when the
// number has no leading "+".
func NormalizePhone(phone, defaultCountryCode string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" || strings.HasPrefix(digits, "+") {
		return digits
	}
	cc := strings.TrimSpace(defaultCountryCode)
	if cc == "" {
		return "+" + digits
	}
	if !strings.HasPrefix(cc, "+") {
		cc = "+" + cc
	}
	return cc + strings.TrimLeft(digits, "0")
}
