package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"swarachna-api/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	key    string
	body   map[string]any
}

// fakeToolkit answers each method with the given status and JSON body.
func fakeToolkit(t *testing.T, replies map[string]func() (int, string)) (*httptest.Server, *[]call) {
	t.Helper()
	calls := &[]call{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.TrimPrefix(r.URL.Path, "/")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*calls = append(*calls, call{method: method, key: r.URL.Query().Get("key"), body: body})

		reply, ok := replies[method]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		status, resp := reply()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func ok(body string) func() (int, string) {
	return func() (int, string) { return http.StatusOK, body }
}

func fail(message string) func() (int, string) {
	return func() (int, string) {
		return http.StatusBadRequest, `{"error":{"code":400,"message":"` + message + `"}}`
	}
}

func newProvider(srv *httptest.Server) identity.Provider {
	return identity.NewFirebaseProvider(identity.FirebaseConfig{
		APIKey:     "test-key",
		RequestURI: "http://localhost",
		BaseURL:    srv.URL,
	}, nil)
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("sets display name", func(t *testing.T) {
		srv, calls := fakeToolkit(t, map[string]func() (int, string){
			"accounts:signUp": ok(`{"localId":"u1","email":"a@b.co","idToken":"tok"}`),
			"accounts:update": ok(`{}`),
		})

		acc, err := newProvider(srv).SignUp(ctx, "a@b.co", "secret1", "Asha")
		require.NoError(t, err)
		assert.Equal(t, "u1", acc.UID)
		assert.Equal(t, "Asha", acc.DisplayName)

		require.Len(t, *calls, 2)
		assert.Equal(t, "test-key", (*calls)[0].key)
		assert.Equal(t, "tok", (*calls)[1].body["idToken"])
	})

	t.Run("profile update failure keeps account", func(t *testing.T) {
		srv, _ := fakeToolkit(t, map[string]func() (int, string){
			"accounts:signUp": ok(`{"localId":"u1","email":"a@b.co","idToken":"tok"}`),
			"accounts:update": fail("INVALID_ID_TOKEN"),
		})

		acc, err := newProvider(srv).SignUp(ctx, "a@b.co", "secret1", "Asha")
		require.NoError(t, err)
		assert.Equal(t, "u1", acc.UID)
		assert.Empty(t, acc.DisplayName)
	})

	t.Run("mapped errors", func(t *testing.T) {
		tests := []struct {
			message string
			want    error
		}{
			{"EMAIL_EXISTS", identity.ErrEmailExists},
			{"WEAK_PASSWORD : Password should be at least 6 characters", identity.ErrWeakPassword},
			{"TOO_MANY_ATTEMPTS_TRY_LATER", identity.ErrTooManyAttempts},
			{"SOMETHING_NEW", identity.ErrUpstream},
		}
		for _, tt := range tests {
			srv, _ := fakeToolkit(t, map[string]func() (int, string){
				"accounts:signUp": fail(tt.message),
			})
			_, err := newProvider(srv).SignUp(ctx, "a@b.co", "x", "")
			assert.ErrorIs(t, err, tt.want, tt.message)
		}
	})
}

func TestSignIn(t *testing.T) {
	srv, _ := fakeToolkit(t, map[string]func() (int, string){
		"accounts:signInWithPassword": fail("INVALID_LOGIN_CREDENTIALS"),
	})

	_, err := newProvider(srv).SignIn(context.Background(), "a@b.co", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestSignInWithGoogle(t *testing.T) {
	srv, calls := fakeToolkit(t, map[string]func() (int, string){
		"accounts:signInWithIdp": ok(`{"localId":"g1","email":"g@b.co","displayName":"G","idToken":"tok"}`),
	})

	acc, err := newProvider(srv).SignInWithGoogle(context.Background(), "google-token")
	require.NoError(t, err)
	assert.Equal(t, "g1", acc.UID)

	require.Len(t, *calls, 1)
	postBody, err := url.ParseQuery((*calls)[0].body["postBody"].(string))
	require.NoError(t, err)
	assert.Equal(t, "google-token", postBody.Get("id_token"))
	assert.Equal(t, "google.com", postBody.Get("providerId"))
}

func TestPhoneFlow(t *testing.T) {
	ctx := context.Background()
	srv, calls := fakeToolkit(t, map[string]func() (int, string){
		"accounts:sendVerificationCode":  ok(`{"sessionInfo":"sess-1"}`),
		"accounts:signInWithPhoneNumber": ok(`{"localId":"p1","phoneNumber":"+919876543210","idToken":"tok"}`),
	})
	p := newProvider(srv)

	vid, err := p.SendPhoneCode(ctx, "+919876543210", "captcha")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", vid)

	acc, err := p.VerifyPhoneCode(ctx, vid, "123456")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", acc.PhoneNumber)
	assert.Equal(t, "sess-1", (*calls)[1].body["sessionInfo"])

	bad, _ := fakeToolkit(t, map[string]func() (int, string){
		"accounts:signInWithPhoneNumber": fail("INVALID_CODE"),
	})
	_, err = newProvider(bad).VerifyPhoneCode(ctx, vid, "000000")
	assert.ErrorIs(t, err, identity.ErrInvalidCode)
}

func TestPasswordEndpoints(t *testing.T) {
	ctx := context.Background()
	srv, calls := fakeToolkit(t, map[string]func() (int, string){
		"accounts:sendOobCode": ok(`{"email":"a@b.co"}`),
		"accounts:update":      ok(`{}`),
	})
	p := newProvider(srv)

	require.NoError(t, p.SendPasswordReset(ctx, "a@b.co"))
	require.NoError(t, p.ChangePassword(ctx, "tok", "newsecret"))

	require.Len(t, *calls, 2)
	assert.Equal(t, "PASSWORD_RESET", (*calls)[0].body["requestType"])
	assert.Equal(t, "newsecret", (*calls)[1].body["password"])
}

func TestUnreachableProvider(t *testing.T) {
	srv, _ := fakeToolkit(t, nil)
	srv.Close()

	_, err := newProvider(srv).SignIn(context.Background(), "a@b.co", "x")
	assert.ErrorIs(t, err, identity.ErrUpstream)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, cc, want string
	}{
		{"98765 43210", "+91", "+919876543210"},
		{"+62 812-3456-789", "+91", "+628123456789"},
		{"0812 3456 789", "62", "+628123456789"},
		{"", "+91", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, identity.NormalizePhone(tt.in, tt.cc), tt.in)
	}
}
