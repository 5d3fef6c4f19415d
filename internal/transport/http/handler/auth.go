package handler

import (
	"log/slog"
	"net/http"

	"github.com/alterera/academy-api/internal/application/otp"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/session"
	"github.com/alterera/academy-api/internal/transport/http/middleware"
)

// AuthHandler handles the end-user phone authentication flow.
type AuthHandler struct {
	otp      otp.Service
	sessions *session.Manager
}

func NewAuthHandler(otpSvc otp.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{otp: otpSvc, sessions: sessions}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	res, err := h.otp.Send(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	res, err := h.otp.Signup(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	res, err := h.otp.Resend(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	res, err := h.otp.Verify(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.sessions.Save(w, res.Session); err != nil {
		slog.Error("failed to write session cookie", "err", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: res.User})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Destroy(w)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

// Me reports the current session. An anonymous session is a normal response,
// not an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	env := SessionEnvelope{IsLoggedIn: sess.IsLoggedIn()}
	if env.IsLoggedIn {
		env.User = &sess
	}
	writeJSON(w, http.StatusOK, env)
}
