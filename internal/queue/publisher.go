// internal/queue/publisher.go
package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"dining-concierge/internal/common/logger"
)

// messageBody is fixed: the payload travels as message attributes, one
// String attribute per filled slot.
const messageBody = "Reservation Slots"

// SendMessageAPI is the slice of the SQS API the publisher needs.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher hands a completed slot set to the queue transport.
type Publisher struct {
	client   SendMessageAPI
	queueURL string
	logger   logger.Logger
}

func NewPublisher(client SendMessageAPI, queueURL string, log logger.Logger) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
		logger:   log.WithFields(map[string]interface{}{"component": "queue-publisher"}),
	}
}

func (p *Publisher) Publish(ctx context.Context, slots map[string]string) error {
	attrs := make(map[string]types.MessageAttributeValue, len(slots))
	for name, value := range slots {
		attrs[name] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(value),
		}
	}

	out, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(p.queueURL),
		MessageBody:       aws.String(messageBody),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sqs send: %w", err)
	}

	p.logger.Info("request enqueued", map[string]interface{}{
		"messageId": aws.ToString(out.MessageId),
		"slots":     len(slots),
	})
	return nil
}
