package sms

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/alterera/academy-api/internal/config"
	"github.com/alterera/academy-api/internal/infrastructure/whatsapp"
)

// sender delivers OTP codes over SMS via AWS SNS. Selected with
// OTP_CHANNEL=sms when the WhatsApp gateway is unavailable for a deployment.
type sender struct {
	client *sns.Client
}

// NewSender builds an SNS-backed CodeSender.
func NewSender(cfg *config.Config) (whatsapp.CodeSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *sender) SendCode(ctx context.Context, phone, code string) error {
	message := fmt.Sprintf("Your Alterera Academy verification code is: %s. It expires in 5 minutes.", code)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &phone,
		Message:     &message,
	})
	return err
}
