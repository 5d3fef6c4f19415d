package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alterera/academy-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Error responses carry the
// stable machine-readable code in `error` and the human text in `message`.
type MessageEnvelope struct {
	Message string           `json:"message,omitempty"`
	Error   domain.ErrorCode `json:"error,omitempty"`
}

// UserEnvelope wraps the authenticated-account payload returned by the
// verify and login endpoints.
type UserEnvelope struct {
	User interface{} `json:"user"`
}

// SessionEnvelope wraps current-session responses. User is omitted for the
// anonymous session.
type SessionEnvelope struct {
	IsLoggedIn bool            `json:"isLoggedIn"`
	User       *domain.Session `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code domain.ErrorCode, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: code, Message: msg})
}

// httpError maps a service error onto the wire. Domain errors keep their code
// and message; anything else is logged and flattened to a generic 500.
func httpError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeError(w, de.Code.HTTPStatus(), de.Code, de.Message)
		return
	}
	slog.Error("unhandled error", "err", err)
	writeError(w, http.StatusInternalServerError, domain.CodeServerError, "internal server error")
}

// decodeJSON parses the request body into dst, rejecting unknown garbage
// with a uniform invalid-input error.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.E(domain.CodeInvalidInput, "invalid request body")
	}
	return nil
}
