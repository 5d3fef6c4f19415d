package handler

import (
	"net/http"

	"github.com/alterera/academy-api/internal/application/user"
	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/transport/http/middleware"
)

// UserHandler serves the logged-in user's profile, dashboard and purchase
// history.
type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	u, err := h.users.Profile(r.Context(), sess.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		httpError(w, err)
		return
	}
	sess := middleware.SessionFrom(r.Context())
	u, err := h.users.UpdateProfile(r.Context(), sess.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	d, err := h.users.Dashboard(r.Context(), sess.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *UserHandler) Payments(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	list, err := h.users.Payments(r.Context(), sess.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
