package domain

import "time"

// MaxOTPAttempts is the fixed attempt budget per code. A resend grants a full
// new budget; the counter is enforced with a store-level conditional increment
// so concurrent wrong submissions cannot exceed it.
const MaxOTPAttempts = 3

// OTP lifetimes.
const (
	OTPTTL            = 5 * time.Minute
	OTPResendCooldown = 60 * time.Second
	// Ledger entries are purged this long after they expire.
	OTPRetention = time.Hour
)

// OtpRequest is one OTP verification attempt cycle, keyed by an opaque
// request id the client uses for resend/verify without re-sending the phone.
// Only the bcrypt hash of the code is ever stored.
type OtpRequest struct {
	RequestID  string    `json:"requestId" dynamodbav:"request_id"`
	Phone      string    `json:"phone" dynamodbav:"phone"`
	OtpHash    string    `json:"-" dynamodbav:"otp_hash"`
	ExpiresAt  time.Time `json:"expiresAt" dynamodbav:"expires_at"`
	Used       bool      `json:"used" dynamodbav:"used"`
	Attempts   int       `json:"attempts" dynamodbav:"attempts"`
	LastSentAt time.Time `json:"lastSentAt" dynamodbav:"last_sent_at"`
	Channel    string    `json:"channel" dynamodbav:"channel"`
	// PurgeAt is the DynamoDB TTL attribute (Unix seconds).
	PurgeAt int64 `json:"-" dynamodbav:"purge_at"`
	// SignupData is present only for signup-originated entries and is consumed
	// when the entry is promoted into a user record.
	SignupData *SignupData `json:"-" dynamodbav:"signup_data,omitempty"`

	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// SignupData is the staged profile captured at signup, held until the phone is
// verified. The password hash is informational only; promotion copies the name
// and lets the hash age out with the ledger entry.
type SignupData struct {
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password_hash"`
}

// Expired reports whether the entry is expired at t. The boundary is
// inclusive: an entry whose expiry equals t is already expired.
func (o *OtpRequest) Expired(t time.Time) bool {
	return !t.Before(o.ExpiresAt)
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=15"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type ResendOTPRequest struct {
	RequestID string `json:"requestId" validate:"required"`
}

type VerifyOTPRequest struct {
	RequestID string `json:"requestId" validate:"required"`
	OTP       string `json:"otp" validate:"required,len=6,numeric"`
}
