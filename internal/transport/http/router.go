package http

import (
	"net/http"

	"github.com/alterera/academy-api/internal/application/course"
	"github.com/alterera/academy-api/internal/application/login"
	"github.com/alterera/academy-api/internal/application/otp"
	"github.com/alterera/academy-api/internal/application/payment"
	"github.com/alterera/academy-api/internal/application/user"
	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/infrastructure/dynamo"
	"github.com/alterera/academy-api/internal/transport/http/handler"
	appmiddleware "github.com/alterera/academy-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(appmiddleware.Session(deps.Sessions))

	// 5 requests/second, burst of 10 — applied to the OTP and login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OtpRequestRepo, deps.UserRepo, deps.CodeSender,
		dynamo.IsConditionFailed, cfg.OTPChannel, cfg.PhoneRegion, cfg.BcryptCost, nil)
	loginSvc := login.NewService(deps.AdminRepo, deps.InstructorRepo, nil)
	courseSvc := course.NewService(deps.CourseRepo, nil)
	paymentSvc := payment.NewService(deps.CourseRepo, deps.UserRepo, deps.PaymentRepo,
		deps.Gateway, dynamo.IsConditionFailed, cfg.RazorpayKeyID, cfg.RazorpaySecret, nil)
	userSvc := user.NewService(deps.UserRepo, deps.CourseRepo, deps.PaymentRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(otpSvc, deps.Sessions)
	loginH := handler.NewLoginHandler(loginSvc, deps.Sessions)
	courseH := handler.NewCourseHandler(courseSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.Get("/courses", courseH.List)
		r.Get("/courses/{slug}", courseH.GetBySlug)
		r.Get("/auth/session", authH.Me)
		r.Post("/auth/logout", authH.Logout)
		r.Get("/admin/session", authH.Me)
		r.Post("/admin/logout", authH.Logout)
		r.Get("/instructor/session", authH.Me)
		r.Post("/instructor/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)
			r.Post("/auth/send-otp", authH.SendOTP)
			r.Post("/auth/signup", authH.Signup)
			r.Post("/auth/resend-otp", authH.ResendOTP)
			r.Post("/auth/verify-otp", authH.VerifyOTP)
			r.Post("/admin/login", loginH.AdminLogin)
			r.Post("/instructor/login", loginH.InstructorLogin)
		})

		// ── End-user routes ──────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireUser)
			r.Get("/user/profile", userH.Profile)
			r.Put("/user/profile", userH.UpdateProfile)
			r.Get("/user/dashboard", userH.Dashboard)
			r.Get("/user/payments", userH.Payments)
			r.Post("/payment/create-order", paymentH.CreateOrder)
			r.Post("/payment/verify", paymentH.Verify)
		})

		// ── Instructor routes ────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireInstructor)
			r.Get("/instructor/courses", courseH.ListMine)
		})

		// ── Authoring routes (admin or instructor) ───────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireAuthor)
			r.Post("/instructor/courses", courseH.Create)
			r.Put("/instructor/courses/{id}", courseH.Update)
			r.Delete("/instructor/courses/{id}", courseH.Delete)
		})
	})

	return r
}
