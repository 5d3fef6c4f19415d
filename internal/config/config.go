package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// Session cookie keys: hash key signs, block key encrypts.
	SessionCookieName string
	SessionHashKey    string // >= 32 chars
	SessionBlockKey   string // 16, 24 or 32 chars
	SessionTTLHours   int

	// OTP delivery channel: "whatsapp" (HTTP gateway) or "sms" (SNS).
	OTPChannel     string
	WhatsAppAPIURL string
	WhatsAppAPIKey string
	WhatsAppSender string
	SNSRegion      string

	RazorpayKeyID  string
	RazorpaySecret string

	// Default region for parsing national-format phone numbers.
	PhoneRegion string

	BcryptCost int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users       string
	Admins      string
	Instructors string
	Courses     string
	OtpRequests string
	Payments    string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			Admins:      getEnv("DYNAMO_TABLE_ADMINS", "admins"),
			Instructors: getEnv("DYNAMO_TABLE_INSTRUCTORS", "instructors"),
			Courses:     getEnv("DYNAMO_TABLE_COURSES", "courses"),
			OtpRequests: getEnv("DYNAMO_TABLE_OTP_REQUESTS", "otp_requests"),
			Payments:    getEnv("DYNAMO_TABLE_PAYMENTS", "payments"),
		},

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "alterera-session"),
		SessionHashKey:    getEnv("SESSION_HASH_KEY", ""),
		SessionBlockKey:   getEnv("SESSION_BLOCK_KEY", ""),
		SessionTTLHours:   getEnvInt("SESSION_TTL_HOURS", 24),

		OTPChannel:     getEnv("OTP_CHANNEL", "whatsapp"),
		WhatsAppAPIURL: getEnv("WA_API_URL", "https://wa.alterera.net/send-message"),
		WhatsAppAPIKey: getEnv("WA_API_KEY", ""),
		WhatsAppSender: getEnv("WA_SENDER_NUMBER", ""),
		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),

		RazorpayKeyID:  getEnv("RAZORPAY_ID", ""),
		RazorpaySecret: getEnv("RAZORPAY_SECRET", ""),

		PhoneRegion: getEnv("PHONE_REGION", "IN"),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
