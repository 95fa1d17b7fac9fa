package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/config"
)

const charset = "UTF-8"

var (
	ErrMissingCredentials = errors.New("ses credentials and region are required")
	ErrMissingSender      = errors.New("ses sender is required")
	ErrMissingRecipient   = errors.New("recipient is required")
)

// SESClient delivers plain text mail through SESv2.
type SESClient struct {
	api  *sesv2.Client
	from string
}

// NewSESClient builds a client from the email section of config.yaml and
// the SES_* environment credentials.
func NewSESClient(ctx context.Context, cfg config.EmailConfig) (*SESClient, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Region == "" {
		return nil, ErrMissingCredentials
	}
	from := strings.TrimSpace(cfg.Sender)
	if from == "" {
		return nil, ErrMissingSender
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESClient{api: sesv2.NewFromConfig(awsCfg), from: from}, nil
}

func (c *SESClient) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return ErrMissingRecipient
	}

	out, err := c.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.from),
		Destination:      &types.Destination{ToAddresses: []string{recipient}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String(charset)},
				Body:    &types.Body{Text: &types.Content{Data: aws.String(body), Charset: aws.String(charset)}},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", recipient, err)
	}

	log.Ctx(ctx).Debug().Str("message_id", aws.ToString(out.MessageId)).Msg("SES accepted email")
	return nil
}
