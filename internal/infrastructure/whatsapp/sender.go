package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alterera/academy-api/internal/config"
)

// CodeSender delivers a one-time code to a phone number.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

const dispatchTimeout = 10 * time.Second

type sender struct {
	client *http.Client
	apiURL string
	apiKey string
	from   string
}

// NewSender builds a CodeSender over the WhatsApp HTTP gateway.
func NewSender(cfg *config.Config) (CodeSender, error) {
	if cfg.WhatsAppAPIKey == "" || cfg.WhatsAppSender == "" {
		return nil, errors.New("whatsapp configuration missing")
	}
	return &sender{
		client: &http.Client{Timeout: dispatchTimeout},
		apiURL: cfg.WhatsAppAPIURL,
		apiKey: cfg.WhatsAppAPIKey,
		from:   cfg.WhatsAppSender,
	}, nil
}

func (s *sender) SendCode(ctx context.Context, phone, code string) error {
	message := fmt.Sprintf(
		"Your Alterera Academy verification code is: %s\n\nThis code expires in 5 minutes. Do not share this code with anyone.",
		code,
	)

	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("sender", s.from)
	// The gateway expects the number without the E.164 plus prefix.
	q.Set("number", strings.TrimPrefix(phone, "+"))
	q.Set("message", message)
	q.Set("footer", "Alterera Academy")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp dispatch: unexpected status %d", resp.StatusCode)
	}
	return nil
}
