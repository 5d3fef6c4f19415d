package dynamo

// DynamoDB attribute names used in update expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldOtpHash    = "otp_hash"
	fieldExpiresAt  = "expires_at"
	fieldAttempts   = "attempts"
	fieldLastSentAt = "last_sent_at"
	fieldPurgeAt    = "purge_at"
)
