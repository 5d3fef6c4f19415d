package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/whatsapp"
	"github.com/alterera/academy-api/internal/pkg/id"
	pkgphone "github.com/alterera/academy-api/internal/pkg/phone"
	"github.com/alterera/academy-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// Ledger is the OTP request store the service needs.
type Ledger interface {
	Put(ctx context.Context, o *domain.OtpRequest) error
	Get(ctx context.Context, requestID string) (*domain.OtpRequest, error)
	Rotate(ctx context.Context, requestID, otpHash string, expiresAt, lastSentAt time.Time) error
	IncrementAttempts(ctx context.Context, requestID string) (int, error)
	MarkUsed(ctx context.Context, requestID string) error
}

// UserStore is the user store the service needs.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// SendResult is returned by Send, Signup and Resend. The phone is masked;
// the client keeps only the request id for the resend/verify round trips.
type SendResult struct {
	RequestID           string    `json:"requestId"`
	Phone               string    `json:"phone"`
	ExpiresAt           time.Time `json:"expiresAt"`
	NextAllowedResendAt time.Time `json:"nextAllowedResendAt"`
	// Warning is set when the code could not be dispatched. The entry still
	// exists, so the client can retry delivery via resend without new state.
	Warning string `json:"warning,omitempty"`
}

// VerifyResult carries the authenticated user and the session to be sealed
// into the cookie by the handler.
type VerifyResult struct {
	User    *domain.User
	Session domain.Session
}

type Service interface {
	Send(ctx context.Context, req domain.SendOTPRequest) (*SendResult, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*SendResult, error)
	Resend(ctx context.Context, req domain.ResendOTPRequest) (*SendResult, error)
	Verify(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyResult, error)
}

type service struct {
	ledger      Ledger
	users       UserStore
	sender      whatsapp.CodeSender
	condFailed  func(error) bool
	channel     string
	phoneRegion string
	bcryptCost  int
	now         func() time.Time
}

// NewService wires the OTP lifecycle. condFailed recognises the store's
// rejected-guard error; now is injectable for tests and defaults to UTC wall
// time when nil.
func NewService(
	ledger Ledger,
	users UserStore,
	sender whatsapp.CodeSender,
	condFailed func(error) bool,
	channel string,
	phoneRegion string,
	bcryptCost int,
	now func() time.Time,
) Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		ledger:      ledger,
		users:       users,
		sender:      sender,
		condFailed:  condFailed,
		channel:     channel,
		phoneRegion: phoneRegion,
		bcryptCost:  bcryptCost,
		now:         now,
	}
}

func (s *service) Send(ctx context.Context, req domain.SendOTPRequest) (*SendResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	phone, ok := pkgphone.Normalize(req.Phone, s.phoneRegion)
	if !ok {
		return nil, domain.E(domain.CodeInvalidPhone, "invalid phone number")
	}
	return s.issue(ctx, phone, nil)
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*SendResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	phone, ok := pkgphone.Normalize(req.Phone, s.phoneRegion)
	if !ok {
		return nil, domain.E(domain.CodeInvalidPhone, "invalid phone number")
	}
	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return nil, domain.E(domain.CodeUserExists, "an account with this phone already exists")
	} else if !domain.IsCode(err, domain.CodeRequestNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, phone, &domain.SignupData{Name: req.Name, PasswordHash: string(hash)})
}

// issue creates a fresh ledger entry, dispatches the code and returns the
// request handle.
func (s *service) issue(ctx context.Context, phone string, signup *domain.SignupData) (*SendResult, error) {
	code, hash, err := s.newCode()
	if err != nil {
		return nil, err
	}
	now := s.now()
	entry := &domain.OtpRequest{
		RequestID:  id.New(),
		Phone:      phone,
		OtpHash:    hash,
		ExpiresAt:  now.Add(domain.OTPTTL),
		Used:       false,
		Attempts:   0,
		LastSentAt: now,
		Channel:    s.channel,
		PurgeAt:    now.Add(domain.OTPTTL + domain.OTPRetention).Unix(),
		SignupData: signup,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.ledger.Put(ctx, entry); err != nil {
		return nil, err
	}
	res := &SendResult{
		RequestID:           entry.RequestID,
		Phone:               pkgphone.Mask(phone),
		ExpiresAt:           entry.ExpiresAt,
		NextAllowedResendAt: now.Add(domain.OTPResendCooldown),
	}
	// Delivery is best-effort. The entry is already persisted, so a channel
	// outage leaves the caller with a valid token and a warning.
	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		slog.Warn("otp dispatch failed", "request_id", entry.RequestID, "channel", s.channel, "err", err)
		res.Warning = "verification code could not be delivered, try resending"
	}
	return res, nil
}

func (s *service) Resend(ctx context.Context, req domain.ResendOTPRequest) (*SendResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	entry, err := s.ledger.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if entry.Used {
		return nil, domain.E(domain.CodeOTPExpired, "verification already completed")
	}
	now := s.now()
	if elapsed := now.Sub(entry.LastSentAt); elapsed < domain.OTPResendCooldown {
		remaining := int((domain.OTPResendCooldown - elapsed).Seconds())
		return nil, domain.E(domain.CodeResendTooSoon,
			fmt.Sprintf("please wait %d seconds before requesting a new code", remaining))
	}
	code, hash, err := s.newCode()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(domain.OTPTTL)
	if err := s.ledger.Rotate(ctx, req.RequestID, hash, expiresAt, now); err != nil {
		if s.condFailed(err) {
			return nil, domain.E(domain.CodeOTPExpired, "verification already completed")
		}
		return nil, err
	}
	res := &SendResult{
		RequestID:           entry.RequestID,
		Phone:               pkgphone.Mask(entry.Phone),
		ExpiresAt:           expiresAt,
		NextAllowedResendAt: now.Add(domain.OTPResendCooldown),
	}
	if err := s.sender.SendCode(ctx, entry.Phone, code); err != nil {
		slog.Warn("otp dispatch failed", "request_id", entry.RequestID, "channel", s.channel, "err", err)
		res.Warning = "verification code could not be delivered, try resending"
	}
	return res, nil
}

func (s *service) Verify(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	entry, err := s.ledger.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if entry.Used {
		return nil, domain.E(domain.CodeOTPExpired, "code has already been used")
	}
	if entry.Expired(s.now()) {
		return nil, domain.E(domain.CodeOTPExpired, "code has expired, request a new one")
	}
	if entry.Attempts >= domain.MaxOTPAttempts {
		return nil, domain.E(domain.CodeTooManyAttempts, "too many incorrect attempts, request a new code")
	}

	if bcrypt.CompareHashAndPassword([]byte(entry.OtpHash), []byte(req.OTP)) != nil {
		attempts, incErr := s.ledger.IncrementAttempts(ctx, req.RequestID)
		if incErr != nil {
			if s.condFailed(incErr) {
				return nil, domain.E(domain.CodeTooManyAttempts, "too many incorrect attempts, request a new code")
			}
			return nil, incErr
		}
		remaining := domain.MaxOTPAttempts - attempts
		if remaining <= 0 {
			return nil, domain.E(domain.CodeOTPInvalid, "incorrect code, request a new one")
		}
		return nil, domain.E(domain.CodeOTPInvalid,
			fmt.Sprintf("incorrect code, %d attempts remaining", remaining))
	}

	if err := s.ledger.MarkUsed(ctx, req.RequestID); err != nil {
		if s.condFailed(err) {
			return nil, domain.E(domain.CodeOTPExpired, "code has already been used")
		}
		return nil, err
	}

	user, err := s.upsertUser(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{
		User: user,
		Session: domain.Session{
			Role:      domain.RoleUser,
			SessionID: id.New(),
			Name:      user.Name,
			UserID:    user.UserID,
			Phone:     user.Phone,
		},
	}, nil
}

// upsertUser promotes a verified phone into a user record. An existing user
// just gets a fresh last_login; a new user is created with the staged signup
// name when present. The staged password hash is never copied, it ages out
// with the ledger entry.
func (s *service) upsertUser(ctx context.Context, entry *domain.OtpRequest) (*domain.User, error) {
	now := s.now()
	u, err := s.users.GetByPhone(ctx, entry.Phone)
	if err == nil {
		if uerr := s.users.Update(ctx, u.UserID, map[string]interface{}{
			"last_login": now.Format(time.RFC3339),
		}); uerr != nil {
			slog.Warn("failed to update last login", "user_id", u.UserID, "err", uerr)
		}
		u.LastLogin = &now
		return u, nil
	}
	if !domain.IsCode(err, domain.CodeRequestNotFound) {
		return nil, err
	}

	u = &domain.User{
		UserID:    id.New(),
		Phone:     entry.Phone,
		LastLogin: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entry.SignupData != nil {
		u.Name = entry.SignupData.Name
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// newCode draws a uniform 6-digit code and returns it with its bcrypt hash.
func (s *service) newCode() (code, hash string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", "", err
	}
	code = fmt.Sprintf("%06d", n.Int64()+100000)
	h, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return "", "", err
	}
	return code, string(h), nil
}
