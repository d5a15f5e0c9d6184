package auth

import "time"

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string `json:"name" binding:"max=100"`
	Phone           string `json:"phone" binding:"omitempty,min=10,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type PhoneOTPRequest struct {
	Phone          string `json:"phone" binding:"required,min=10,max=20"`
	RecaptchaToken string `json:"recaptchaToken" binding:"required"`
}

type PhoneVerifyRequest struct {
	VerificationID string `json:"verificationId" binding:"required"`
	Code           string `json:"code" binding:"required,len=6,numeric"`
	// Name is only used the first time a phone number signs in.
	Name string `json:"name" binding:"max=100"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

// User is what the session keeps under UserStorageKey.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AuthResponse struct {
	User        User      `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type PhoneOTPResponse struct {
	VerificationID string `json:"verificationId"`
	Phone          string `json:"phone"`
}

type ActionStatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
