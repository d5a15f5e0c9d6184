package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultFirebaseURL = "https://identitytoolkit.googleapis.com/v1"

type FirebaseConfig struct {
	APIKey string
	// RequestURI is echoed to the provider on IdP sign-in.
	RequestURI string
	BaseURL    string
	Timeout    time.Duration
}

type firebaseProvider struct {
	cfg    FirebaseConfig
	client *http.Client
	logger *zap.Logger
}

func NewFirebaseProviderFromEnv(logger *zap.Logger) (Provider, error) {
	apiKey := strings.Trim(os.Getenv("FIREBASE_API_KEY"), "\"")
	if apiKey == "" {
		return nil, fmt.Errorf("FIREBASE_API_KEY is not configured")
	}

	requestURI := strings.TrimSpace(os.Getenv("FIREBASE_AUTH_REQUEST_URI"))
	if requestURI == "" {
		requestURI = "http://localhost"
	}

	return NewFirebaseProvider(FirebaseConfig{APIKey: apiKey, RequestURI: requestURI}, logger), nil
}

func NewFirebaseProvider(cfg FirebaseConfig, logger *zap.Logger) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultFirebaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &firebaseProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("identity.firebase"),
	}
}

type authPayload struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
	IDToken     string `json:"idToken"`
}

func (p authPayload) account() Account {
	return Account{
		UID:         p.LocalID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhoneNumber: p.PhoneNumber,
		IDToken:     p.IDToken,
	}
}

func (f *firebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (Account, error) {
	var out authPayload
	err := f.call(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return Account{}, err
	}

	acc := out.account()
	if displayName == "" {
		return acc, nil
	}

	// the account exists at this point; a failed profile update only loses the name
	err = f.call(ctx, "accounts:update", map[string]any{
		"idToken":           acc.IDToken,
		"displayName":       displayName,
		"returnSecureToken": false,
	}, nil)
	if err != nil {
		f.logger.Warn("set display name failed", zap.String("uid", acc.UID), zap.Error(err))
		return acc, nil
	}
	acc.DisplayName = displayName
	return acc, nil
}

func (f *firebaseProvider) SignIn(ctx context.Context, email, password string) (Account, error) {
	var out authPayload
	err := f.call(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return Account{}, err
	}
	return out.account(), nil
}

func (f *firebaseProvider) SignInWithGoogle(ctx context.Context, googleIDToken string) (Account, error) {
	postBody := url.Values{}
	postBody.Set("id_token", googleIDToken)
	postBody.Set("providerId", "google.com")

	var out authPayload
	err := f.call(ctx, "accounts:signInWithIdp", map[string]any{
		"postBody":            postBody.Encode(),
		"requestUri":          f.cfg.RequestURI,
		"returnIdpCredential": true,
		"returnSecureToken":   true,
	}, &out)
	if err != nil {
		return Account{}, err
	}
	return out.account(), nil
}

func (f *firebaseProvider) SendPhoneCode(ctx context.Context, phone, recaptchaToken string) (string, error) {
	var out struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := f.call(ctx, "accounts:sendVerificationCode", map[string]any{
		"phoneNumber":    phone,
		"recaptchaToken": recaptchaToken,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.SessionInfo == "" {
		return "", ErrUpstream.Wrap(fmt.Errorf("empty sessionInfo"))
	}
	return out.SessionInfo, nil
}

func (f *firebaseProvider) VerifyPhoneCode(ctx context.Context, verificationID, code string) (Account, error) {
	var out authPayload
	err := f.call(ctx, "accounts:signInWithPhoneNumber", map[string]any{
		"sessionInfo": verificationID,
		"code":        code,
	}, &out)
	if err != nil {
		return Account{}, err
	}
	return out.account(), nil
}

func (f *firebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	return f.call(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

func (f *firebaseProvider) ChangePassword(ctx context.Context, idToken, newPassword string) error {
	return f.call(ctx, "accounts:update", map[string]any{
		"idToken":           idToken,
		"password":          newPassword,
		"returnSecureToken": false,
	}, nil)
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *firebaseProvider) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", f.cfg.BaseURL, method, url.QueryEscape(f.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("identity request failed", zap.String("method", method), zap.Error(err))
		return ErrUpstream.Wrap(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ErrUpstream.Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env errorEnvelope
		_ = json.Unmarshal(respBody, &env)
		mapped := mapProviderError(env.Error.Message)
		f.logger.Info("identity provider rejected request",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", env.Error.Message),
		)
		return mapped.Wrap(fmt.Errorf("%s: status %d: %s", method, resp.StatusCode, env.Error.Message))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return ErrUpstream.Wrap(fmt.Errorf("decode %s response: %w", method, err))
	}
	return nil
}
