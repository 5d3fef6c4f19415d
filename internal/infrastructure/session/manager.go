package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/gorilla/securecookie"
)

// Manager reads and writes the encrypted session cookie. Payloads are
// sealed with AES + HMAC, so clients can neither read nor forge them.
type Manager struct {
	codec  *securecookie.SecureCookie
	name   string
	ttl    time.Duration
	secure bool
}

// NewManager builds a Manager from the configured keys. The hash key must
// be at least 32 bytes and the block key exactly 16, 24 or 32 bytes.
func NewManager(cfg *config.Config) (*Manager, error) {
	if len(cfg.SessionHashKey) < 32 {
		return nil, fmt.Errorf("session: hash key must be at least 32 bytes, got %d", len(cfg.SessionHashKey))
	}
	switch len(cfg.SessionBlockKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("session: block key must be 16, 24 or 32 bytes, got %d", len(cfg.SessionBlockKey))
	}
	sc := securecookie.New([]byte(cfg.SessionHashKey), []byte(cfg.SessionBlockKey))
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	sc.MaxAge(int(ttl.Seconds()))
	return &Manager{
		codec:  sc,
		name:   cfg.SessionCookieName,
		ttl:    ttl,
		secure: cfg.AppEnv == "production",
	}, nil
}

// Get decodes the session cookie from the request. A missing, expired or
// tampered cookie yields an anonymous session, never an error.
func (m *Manager) Get(r *http.Request) domain.Session {
	c, err := r.Cookie(m.name)
	if err != nil {
		return domain.AnonymousSession()
	}
	var s domain.Session
	if err := m.codec.Decode(m.name, c.Value, &s); err != nil {
		return domain.AnonymousSession()
	}
	return s
}

// Save seals the session and writes it as an httpOnly cookie.
func (m *Manager) Save(w http.ResponseWriter, s domain.Session) error {
	encoded, err := m.codec.Encode(m.name, s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy expires the cookie immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
