package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/alterera/academy-api/internal/domain"
)

// writeJSONError emits the same wire shape as the handler package's error
// envelope so middleware rejections look like any other API error.
func writeJSONError(w http.ResponseWriter, status int, code domain.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": string(code), "message": msg})
}
