package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *session.Manager {
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

func cookieFor(t *testing.T, m *session.Manager, s domain.Session) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, s))
	return w.Result().Cookies()[0]
}

func TestSession_InjectsPayload(t *testing.T) {
	m := testManager(t)
	var got domain.Session
	h := Session(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFrom(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookieFor(t, m, domain.Session{Role: domain.RoleUser, UserID: "u1", Phone: "+919876543210"}))
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, got.IsUser())
	assert.Equal(t, "u1", got.UserID)
}

func TestSession_NoCookieIsAnonymousNotRejected(t *testing.T) {
	m := testManager(t)
	var got domain.Session
	h := Session(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, got.IsLoggedIn())
}

func TestRequireUser(t *testing.T) {
	m := testManager(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Session(m)(RequireUser(next))

	// Anonymous: 401.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.CodeNotAuthenticated))

	// Admin session on a user route: 403.
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookieFor(t, m, domain.Session{Role: domain.RoleAdmin, AdminID: "a1"}))
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// User session: through.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookieFor(t, m, domain.Session{Role: domain.RoleUser, UserID: "u1"}))
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthor_AllowsAdminAndInstructor(t *testing.T) {
	m := testManager(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Session(m)(RequireAuthor(next))

	for _, sess := range []domain.Session{
		{Role: domain.RoleAdmin, AdminID: "a1"},
		{Role: domain.RoleInstructor, InstructorID: "i1"},
	} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(cookieFor(t, m, sess))
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(cookieFor(t, m, domain.Session{Role: domain.RoleUser, UserID: "u1"}))
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
