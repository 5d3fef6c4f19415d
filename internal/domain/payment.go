package domain

import "time"

// Payment records one verified course purchase. It is written only after the
// gateway-side verification fully succeeds and is immutable thereafter; the
// payment id is the partition key, so a duplicate verify cannot write twice.
type Payment struct {
	PaymentID string    `json:"paymentId" dynamodbav:"payment_id"`
	OrderID   string    `json:"orderId" dynamodbav:"order_id"`
	UserID    string    `json:"userId" dynamodbav:"user_id"`
	CourseID  string    `json:"courseId" dynamodbav:"course_id"`
	Amount    int64     `json:"amount" dynamodbav:"amount"` // minor currency units (paise)
	Currency  string    `json:"currency" dynamodbav:"currency"`
	Status    string    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateOrderRequest struct {
	CourseID string  `json:"courseId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
}
