// internal/notify/email.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// SESService is the slice of the SES API the sender needs; tests
// substitute a double.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailSender delivers suggestion emails through SES.
type EmailSender struct {
	client SESService
	sender string
	logger logger.Logger
}

func NewEmailSender(client SESService, sender string, log logger.Logger) *EmailSender {
	return &EmailSender{
		client: client,
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// Send delivers one message with both bodies. Fire-and-forget beyond the
// returned error; retry belongs to the queue transport.
func (e *EmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	_, err := e.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(e.sender),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(msg.TextBody),
					Charset: aws.String("UTF-8"),
				},
				Html: &types.Content{
					Data:    aws.String(msg.HTMLBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	e.logger.Info("email sent", map[string]interface{}{"to": msg.To})
	return nil
}
