package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alterera/academy-api/internal/domain"
	"github.com/alterera/academy-api/internal/infrastructure/razorpay"
	"github.com/alterera/academy-api/internal/pkg/validate"
)

// CourseStore is the catalog lookup the coordinator needs.
type CourseStore interface {
	Get(ctx context.Context, courseID string) (*domain.Course, error)
}

// UserStore covers enrollment reads and the add-if-absent append.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	AddEnrolledCourse(ctx context.Context, userID, courseID string) error
}

// PaymentStore records verified purchases. Put must reject a duplicate
// payment id with the store's rejected-guard error.
type PaymentStore interface {
	Put(ctx context.Context, p *domain.Payment) error
}

// OrderResult is handed to the client to open the gateway checkout.
type OrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key"`
}

// VerifyResult reports the outcome of a verified payment. AlreadyEnrolled is
// true when a repeated callback found the enrollment in place.
type VerifyResult struct {
	OK              bool   `json:"ok"`
	CourseID        string `json:"courseId"`
	AlreadyEnrolled bool   `json:"alreadyEnrolled"`
}

type Service interface {
	CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (*OrderResult, error)
	VerifyPayment(ctx context.Context, userID string, req domain.VerifyPaymentRequest) (*VerifyResult, error)
}

type service struct {
	courses    CourseStore
	users      UserStore
	payments   PaymentStore
	gateway    razorpay.Gateway
	condFailed func(error) bool
	keyID      string
	secret     string
	currency   string
	now        func() time.Time
}

func NewService(
	courses CourseStore,
	users UserStore,
	payments PaymentStore,
	gateway razorpay.Gateway,
	condFailed func(error) bool,
	keyID, secret string,
	now func() time.Time,
) Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		courses:    courses,
		users:      users,
		payments:   payments,
		gateway:    gateway,
		condFailed: condFailed,
		keyID:      keyID,
		secret:     secret,
		currency:   "INR",
		now:        now,
	}
}

func (s *service) CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (*OrderResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	course, err := s.courses.Get(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}

	amountMinor := int64(math.Round(req.Amount * 100))
	order, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, s.receipt(course.CourseID), map[string]interface{}{
		"course_id": course.CourseID,
		"user_id":   userID,
	})
	if err != nil {
		slog.Error("gateway order creation failed", "course_id", course.CourseID, "err", err)
		return nil, domain.E(domain.CodeServerError, "failed to create payment order")
	}
	return &OrderResult{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.keyID,
	}, nil
}

// VerifyPayment settles a checkout callback. The course is resolved first and
// the signature is checked locally; a callback for an unknown course or with a
// tampered signature never reaches the gateway. Enrollment and the payment
// record are both idempotent, so a replayed callback is a no-op.
func (s *service) VerifyPayment(ctx context.Context, userID string, req domain.VerifyPaymentRequest) (*VerifyResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.E(domain.CodeInvalidInput, err.Error())
	}
	course, err := s.courses.Get(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	if !s.signatureValid(req.OrderID, req.PaymentID, req.Signature) {
		return nil, domain.E(domain.CodeInvalidInput, "payment signature verification failed")
	}

	p, err := s.gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		slog.Error("gateway payment fetch failed", "payment_id", req.PaymentID, "err", err)
		return nil, domain.E(domain.CodeServerError, "failed to confirm payment")
	}
	if p.OrderID != req.OrderID {
		return nil, domain.E(domain.CodeInvalidInput, "payment does not belong to this order")
	}
	if p.Status != "captured" && p.Status != "authorized" {
		return nil, domain.E(domain.CodeInvalidInput, "payment is not complete")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	already := user.IsEnrolled(req.CourseID)
	if !already {
		if err := s.users.AddEnrolledCourse(ctx, userID, req.CourseID); err != nil {
			return nil, err
		}
	}

	record := &domain.Payment{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		UserID:    userID,
		CourseID:  req.CourseID,
		Amount:    p.Amount,
		Currency:  s.currency,
		Status:    p.Status,
		CreatedAt: s.now(),
	}
	if err := s.payments.Put(ctx, record); err != nil {
		if !s.condFailed(err) {
			return nil, err
		}
		// Replayed callback; the record from the first settlement stands.
	}
	return &VerifyResult{OK: true, CourseID: req.CourseID, AlreadyEnrolled: already}, nil
}

// signatureValid recomputes HMAC-SHA256(orderId|paymentId) with the key
// secret and compares it to the callback signature in constant time.
func (s *service) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// receipt builds the gateway receipt tag: "crs_" + first 8 chars of the
// course id + unix seconds, always within the gateway's 40-char cap.
func (s *service) receipt(courseID string) string {
	short := courseID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("crs_%s_%d", short, s.now().Unix())
}
