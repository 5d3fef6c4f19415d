package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. User, course, payment and OTP request ids
// all come from here; the lexicographic creation-time ordering means the keys
// double as creation-order keys without a separate timestamp index.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
