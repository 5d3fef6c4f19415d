package http

import (
	"github.com/alterera/academy-api/internal/infrastructure/dynamo"
	"github.com/alterera/academy-api/internal/infrastructure/razorpay"
	"github.com/alterera/academy-api/internal/infrastructure/session"
	"github.com/alterera/academy-api/internal/infrastructure/whatsapp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	AdminRepo      *dynamo.AdminRepo
	InstructorRepo *dynamo.InstructorRepo
	CourseRepo     *dynamo.CourseRepo
	OtpRequestRepo *dynamo.OtpRequestRepo
	PaymentRepo    *dynamo.PaymentRepo
	CodeSender     whatsapp.CodeSender
	Gateway        razorpay.Gateway
	Sessions       *session.Manager
}
