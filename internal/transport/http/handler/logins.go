package handler

import (
	"net/http"

	"github.com/alterera/academy-api/internal/application/login"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/session"
)

// LoginHandler handles password login for the admin and instructor panels.
type LoginHandler struct {
	logins   login.Service
	sessions *session.Manager
}

func NewLoginHandler(logins login.Service, sessions *session.Manager) *LoginHandler {
	return &LoginHandler{logins: logins, sessions: sessions}
}

func (h *LoginHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	a, sess, err := h.logins.AdminLogin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.sessions.Save(w, sess); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: a})
}

func (h *LoginHandler) InstructorLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.InstructorLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	in, sess, err := h.logins.InstructorLogin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.sessions.Save(w, sess); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: in})
}
