package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	autherrors "swarachna-api/internal/auth/errors"
	"swarachna-api/internal/cart"
	"swarachna-api/internal/identity"
	"swarachna-api/internal/session"
	"swarachna-api/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// UserStorageKey holds the signed-in User of a session. Logout removes it
// and discards the session's cart.
const UserStorageKey = "user"

const defaultTokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=../mock/auth/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, sessionID string, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, sessionID string, req LoginRequest) (AuthResponse, error)
	LoginWithGoogle(ctx context.Context, sessionID string, req GoogleLoginRequest) (AuthResponse, error)

	SendPhoneOTP(ctx context.Context, req PhoneOTPRequest) (PhoneOTPResponse, error)
	VerifyPhoneOTP(ctx context.Context, sessionID string, req PhoneVerifyRequest) (AuthResponse, error)

	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ChangePassword(ctx context.Context, email string, req ChangePasswordRequest) error

	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sessionID string) (User, error)
}

type Deps struct {
	Sessions *session.Manager
	Provider identity.Provider
	// Cart is cleared on logout through its own per-session lock.
	Cart cart.Service

	JWTSecret          []byte
	TokenTTL           time.Duration
	DefaultCountryCode string

	Logger *zap.Logger
	Now    func() time.Time
}

type service struct {
	sessions    *session.Manager
	provider    identity.Provider
	cart        cart.Service
	secret      []byte
	ttl         time.Duration
	countryCode string
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(d Deps) Service {
	if d.Sessions == nil {
		panic("auth.NewService: Sessions is nil")
	}
	if d.Provider == nil {
		panic("auth.NewService: Provider is nil")
	}
	if d.Cart == nil {
		panic("auth.NewService: Cart is nil")
	}
	if len(d.JWTSecret) == 0 {
		panic("auth.NewService: JWTSecret is empty")
	}

	s := &service{
		sessions:    d.Sessions,
		provider:    d.Provider,
		cart:        d.Cart,
		secret:      d.JWTSecret,
		ttl:         d.TokenTTL,
		countryCode: d.DefaultCountryCode,
		logger:      d.Logger,
		now:         d.Now,
	}
	if s.ttl <= 0 {
		s.ttl = defaultTokenTTL
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ========================
// sign-in flows
// ========================

func (s *service) Register(ctx context.Context, sessionID string, req RegisterRequest) (AuthResponse, error) {
	logger := s.logger.With(zap.String("email", req.Email))

	acc, err := s.provider.SignUp(ctx, strings.TrimSpace(req.Email), req.Password, strings.TrimSpace(req.Name))
	if err != nil {
		logger.Info("register rejected", zap.Error(err))
		return AuthResponse{}, err
	}

	phone := ""
	if req.Phone != "" {
		phone = identity.NormalizePhone(req.Phone, s.countryCode)
	}
	return s.establish(ctx, sessionID, acc, User{Name: strings.TrimSpace(req.Name), Phone: phone})
}

func (s *service) Login(ctx context.Context, sessionID string, req LoginRequest) (AuthResponse, error) {
	acc, err := s.provider.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return AuthResponse{}, err
	}
	return s.establish(ctx, sessionID, acc, User{})
}

func (s *service) LoginWithGoogle(ctx context.Context, sessionID string, req GoogleLoginRequest) (AuthResponse, error) {
	acc, err := s.provider.SignInWithGoogle(ctx, req.IDToken)
	if err != nil {
		return AuthResponse{}, err
	}
	return s.establish(ctx, sessionID, acc, User{})
}

func (s *service) SendPhoneOTP(ctx context.Context, req PhoneOTPRequest) (PhoneOTPResponse, error) {
	phone := identity.NormalizePhone(req.Phone, s.countryCode)
	if len(phone) < 11 {
		return PhoneOTPResponse{}, autherrors.ErrInvalidPhone
	}

	vid, err := s.provider.SendPhoneCode(ctx, phone, req.RecaptchaToken)
	if err != nil {
		return PhoneOTPResponse{}, err
	}
	return PhoneOTPResponse{VerificationID: vid, Phone: phone}, nil
}

func (s *service) VerifyPhoneOTP(ctx context.Context, sessionID string, req PhoneVerifyRequest) (AuthResponse, error) {
	acc, err := s.provider.VerifyPhoneCode(ctx, req.VerificationID, req.Code)
	if err != nil {
		return AuthResponse{}, err
	}
	return s.establish(ctx, sessionID, acc, User{Name: strings.TrimSpace(req.Name)})
}

// ========================
// password
// ========================

// ForgotPassword always succeeds for unknown emails so the endpoint cannot be
// used to probe accounts.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	err := s.provider.SendPasswordReset(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, identity.ErrInvalidCredentials) {
		s.logger.Debug("password reset for unknown email")
		return nil
	}
	return err
}

func (s *service) ChangePassword(ctx context.Context, email string, req ChangePasswordRequest) error {
	if email == "" {
		return autherrors.ErrPasswordChangeUnsupported
	}

	// re-authenticate first: the provider only accepts a fresh token
	acc, err := s.provider.SignIn(ctx, email, req.CurrentPassword)
	if err != nil {
		return err
	}
	if err := s.provider.ChangePassword(ctx, acc.IDToken, req.NewPassword); err != nil {
		s.logger.Warn("change password failed", zap.String("uid", acc.UID), zap.Error(err))
		return err
	}
	return nil
}

// ========================
// session
// ========================

func (s *service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Open(sessionID)
	if err != nil {
		return err
	}
	if err := sess.Store.Delete(ctx, UserStorageKey); err != nil {
		s.logger.Error("logout cleanup failed", zap.String("session_id", sess.ID), zap.Error(err))
		return autherrors.ErrSessionUnavailable.Wrap(err)
	}
	if err := s.cart.Discard(ctx, sess.ID); err != nil {
		s.logger.Error("logout cart cleanup failed", zap.String("session_id", sess.ID), zap.Error(err))
		return autherrors.ErrSessionUnavailable.Wrap(err)
	}
	return nil
}

func (s *service) Me(ctx context.Context, sessionID string) (User, error) {
	sess, err := s.sessions.Open(sessionID)
	if err != nil {
		return User{}, autherrors.ErrNotSignedIn
	}

	raw, err := sess.Store.Get(ctx, UserStorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read session user failed", zap.Error(err))
		}
		return User{}, autherrors.ErrNotSignedIn
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		return User{}, autherrors.ErrNotSignedIn
	}
	return u, nil
}

// ========================
// helpers
// ========================

// establish records the account in the session and issues an access token.
// Profile fields from the provider win over the ones supplied by the client.
func (s *service) establish(ctx context.Context, sessionID string, acc identity.Account, extra User) (AuthResponse, error) {
	sess, err := s.sessions.Open(sessionID)
	if err != nil {
		return AuthResponse{}, err
	}

	u := User{
		ID:    acc.UID,
		Email: acc.Email,
		Name:  acc.DisplayName,
		Phone: acc.PhoneNumber,
	}
	if u.Name == "" {
		u.Name = extra.Name
	}
	if u.Phone == "" {
		u.Phone = extra.Phone
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return AuthResponse{}, err
	}
	if err := sess.Store.Set(ctx, UserStorageKey, string(raw)); err != nil {
		s.logger.Error("store session user failed", zap.String("session_id", sess.ID), zap.Error(err))
		return AuthResponse{}, autherrors.ErrSessionUnavailable.Wrap(err)
	}

	token, expiresAt, err := s.generateToken(u)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed.Wrap(err)
	}

	s.logger.Info("user signed in", zap.String("uid", u.ID), zap.String("session_id", sess.ID))
	return AuthResponse{User: u, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *service) generateToken(u User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
