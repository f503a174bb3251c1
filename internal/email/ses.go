package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/config"
	"github.com/codr1/leagueapi/internal/ratelimit"
)

var errSESNotInitialized = errors.New("ses client is not initialized")

// sesAPI is the subset of *sesv2.Client used for delivery.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESClient delivers plain-text mail through SESv2.
type SESClient struct {
	api    sesAPI
	sender string
}

// NewSESClient builds a client from static credentials in cfg.
func NewSESClient(cfg config.EmailConfig) (*SESClient, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Region == "" {
		return nil, fmt.Errorf("ses credentials and region are required")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("ses sender is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESClient{api: sesv2.NewFromConfig(awsCfg), sender: cfg.Sender}, nil
}

func (c *SESClient) Send(ctx context.Context, recipient, subject, body string) error {
	if c == nil || c.api == nil {
		return errSESNotInitialized
	}
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}

	_, err := c.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.sender),
		Destination:      &types.Destination{ToAddresses: []string{recipient}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("recipient", ratelimit.SanitizeIdentifier(recipient)).
			Str("subject", subject).
			Msg("SES delivery failed")
		return fmt.Errorf("send ses email: %w", err)
	}
	return nil
}
