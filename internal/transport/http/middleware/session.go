package middleware

import (
	"context"
	"net/http"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Session decodes the session cookie on every request and injects the payload
// into the context. Absent or tampered cookies become an anonymous session;
// this middleware never rejects.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), sessionKey, m.Get(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom extracts the session payload injected by Session. Without the
// middleware it returns the anonymous session.
func SessionFrom(ctx context.Context) domain.Session {
	if s, ok := ctx.Value(sessionKey).(domain.Session); ok {
		return s
	}
	return domain.AnonymousSession()
}

// RequireUser allows only end-user sessions through.
func RequireUser(next http.Handler) http.Handler {
	return requireRole(next, func(s domain.Session) bool { return s.IsUser() })
}

// RequireAdmin allows only admin sessions through.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(next, func(s domain.Session) bool { return s.IsAdmin() })
}

// RequireInstructor allows only instructor sessions through.
func RequireInstructor(next http.Handler) http.Handler {
	return requireRole(next, func(s domain.Session) bool { return s.IsInstructor() })
}

// RequireAuthor allows admin or instructor sessions through.
func RequireAuthor(next http.Handler) http.Handler {
	return requireRole(next, func(s domain.Session) bool { return s.IsAdmin() || s.IsInstructor() })
}

func requireRole(next http.Handler, allowed func(domain.Session) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if !sess.IsLoggedIn() {
			writeJSONError(w, http.StatusUnauthorized, domain.CodeNotAuthenticated, "not authenticated")
			return
		}
		if !allowed(sess) {
			writeJSONError(w, http.StatusForbidden, domain.CodeForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
