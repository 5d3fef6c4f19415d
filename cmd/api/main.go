package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/infrastructure/dynamo"
	"github.com/alterera/academy-api/internal/infrastructure/razorpay"
	"github.com/alterera/academy-api/internal/infrastructure/session"
	"github.com/alterera/academy-api/internal/infrastructure/sms"
	"github.com/alterera/academy-api/internal/infrastructure/whatsapp"
	transporthttp "github.com/alterera/academy-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	sessions, err := session.NewManager(cfg)
	if err != nil {
		log.Fatalf("session manager: %v", err)
	}

	codeSender, err := newCodeSender(cfg)
	if err != nil {
		log.Fatalf("otp sender: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		AdminRepo:      dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.Admins),
		InstructorRepo: dynamo.NewInstructorRepo(dynamoClient, cfg.DynamoTables.Instructors),
		CourseRepo:     dynamo.NewCourseRepo(dynamoClient, cfg.DynamoTables.Courses),
		OtpRequestRepo: dynamo.NewOtpRequestRepo(dynamoClient, cfg.DynamoTables.OtpRequests),
		PaymentRepo:    dynamo.NewPaymentRepo(dynamoClient, cfg.DynamoTables.Payments),
		CodeSender:     codeSender,
		Gateway:        razorpay.NewGateway(cfg),
		Sessions:       sessions,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newCodeSender picks the OTP delivery channel from configuration.
func newCodeSender(cfg *config.Config) (whatsapp.CodeSender, error) {
	switch cfg.OTPChannel {
	case "sms":
		return sms.NewSender(cfg)
	default:
		return whatsapp.NewSender(cfg)
	}
}
