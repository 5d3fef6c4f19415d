package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alterera/academy-api/internal/application/otp"
	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockOtpSvc struct{ mock.Mock }

func (m *mockOtpSvc) Send(ctx context.Context, req domain.SendOTPRequest) (*otp.SendResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.SendResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOtpSvc) Signup(ctx context.Context, req domain.SignupRequest) (*otp.SendResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.SendResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOtpSvc) Resend(ctx context.Context, req domain.ResendOTPRequest) (*otp.SendResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.SendResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOtpSvc) Verify(ctx context.Context, req domain.VerifyOTPRequest) (*otp.VerifyResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.VerifyResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func testSessions(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(&config.Config{
		AppEnv:            "development",
		SessionCookieName: "alterera-session",
		SessionHashKey:    "0123456789abcdef0123456789abcdef",
		SessionBlockKey:   "fedcba9876543210",
		SessionTTLHours:   24,
	})
	require.NoError(t, err)
	return m
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, r)
	return w
}

// --- tests ---

func TestSendOTP_OK(t *testing.T) {
	svc := new(mockOtpSvc)
	svc.On("Send", mock.Anything, domain.SendOTPRequest{Phone: "+919876543210"}).Return(&otp.SendResult{
		RequestID: "req1",
		Phone:     "+91*******210",
		ExpiresAt: time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
	}, nil)

	h := NewAuthHandler(svc, testSessions(t))
	w := postJSON(t, h.SendOTP, "/api/auth/send-otp", domain.SendOTPRequest{Phone: "+919876543210"})

	require.Equal(t, http.StatusOK, w.Code)
	var res otp.SendResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "req1", res.RequestID)
	assert.Equal(t, "+91*******210", res.Phone)
}

func TestSendOTP_DomainErrorCarriesCodeAndStatus(t *testing.T) {
	svc := new(mockOtpSvc)
	svc.On("Send", mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.CodeInvalidPhone, "invalid phone number"))

	h := NewAuthHandler(svc, testSessions(t))
	w := postJSON(t, h.SendOTP, "/api/auth/send-otp", domain.SendOTPRequest{Phone: "junk"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, domain.CodeInvalidPhone, env.Error)
	assert.Equal(t, "invalid phone number", env.Message)
}

func TestResendOTP_TooSoonIs429(t *testing.T) {
	svc := new(mockOtpSvc)
	svc.On("Resend", mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.CodeResendTooSoon, "please wait 42 seconds before requesting a new code"))

	h := NewAuthHandler(svc, testSessions(t))
	w := postJSON(t, h.ResendOTP, "/api/auth/resend-otp", domain.ResendOTPRequest{RequestID: "req1"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestVerifyOTP_SetsSessionCookie(t *testing.T) {
	sessions := testSessions(t)
	svc := new(mockOtpSvc)
	svc.On("Verify", mock.Anything, domain.VerifyOTPRequest{RequestID: "req1", OTP: "123456"}).
		Return(&otp.VerifyResult{
			User: &domain.User{UserID: "u1", Phone: "+919876543210", Name: "Asha"},
			Session: domain.Session{
				Role: domain.RoleUser, SessionID: "s1", UserID: "u1", Phone: "+919876543210", Name: "Asha",
			},
		}, nil)

	h := NewAuthHandler(svc, sessions)
	w := postJSON(t, h.VerifyOTP, "/api/auth/verify-otp", domain.VerifyOTPRequest{RequestID: "req1", OTP: "123456"})

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "alterera-session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie decodes back to the issued session.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	got := sessions.Get(r)
	assert.True(t, got.IsUser())
	assert.Equal(t, "u1", got.UserID)
}

func TestVerifyOTP_FailureSetsNoCookie(t *testing.T) {
	svc := new(mockOtpSvc)
	svc.On("Verify", mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.CodeTooManyAttempts, "too many incorrect attempts, request a new code"))

	h := NewAuthHandler(svc, testSessions(t))
	w := postJSON(t, h.VerifyOTP, "/api/auth/verify-otp", domain.VerifyOTPRequest{RequestID: "req1", OTP: "000000"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLogout_ExpiresCookie(t *testing.T) {
	h := NewAuthHandler(new(mockOtpSvc), testSessions(t))
	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestBadJSONBody(t *testing.T) {
	h := NewAuthHandler(new(mockOtpSvc), testSessions(t))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", bytes.NewReader([]byte("{not json")))
	h.SendOTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, domain.CodeInvalidInput, env.Error)
}
