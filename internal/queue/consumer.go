// internal/queue/consumer.go
package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// ReceiveMessageAPI is the slice of the SQS API the consumer needs.
type ReceiveMessageAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Consumer long-polls the request queue and turns received messages into
// batch jobs for the fulfillment runner.
type Consumer struct {
	client          ReceiveMessageAPI
	queueURL        string
	waitTimeSeconds int32
	maxMessages     int32
	logger          logger.Logger
}

func NewConsumer(client ReceiveMessageAPI, queueURL string, waitTimeSeconds, maxMessages int32, log logger.Logger) *Consumer {
	if maxMessages <= 0 || maxMessages > 10 {
		maxMessages = 10
	}
	return &Consumer{
		client:          client,
		queueURL:        queueURL,
		waitTimeSeconds: waitTimeSeconds,
		maxMessages:     maxMessages,
		logger:          log.WithFields(map[string]interface{}{"component": "queue-consumer"}),
	}
}

// Poll receives one batch of messages. An empty slice with a nil error
// means the queue was quiet for the whole wait window.
func (c *Consumer) Poll(ctx context.Context) ([]models.BatchJob, error) {
	out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(c.queueURL),
		MaxNumberOfMessages:   c.maxMessages,
		WaitTimeSeconds:       c.waitTimeSeconds,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive: %w", err)
	}

	jobs := make([]models.BatchJob, 0, len(out.Messages))
	for _, msg := range out.Messages {
		payload := make(models.AttributePayload, len(msg.MessageAttributes))
		for name, attr := range msg.MessageAttributes {
			payload[name] = models.Attribute{
				DataType:    aws.ToString(attr.DataType),
				StringValue: aws.ToString(attr.StringValue),
			}
		}
		jobs = append(jobs, models.BatchJob{
			ID:            aws.ToString(msg.MessageId),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			Payload:       payload,
		})
	}
	return jobs, nil
}

// DeleteProcessed removes every job that is not in failedIDs from the
// queue. Failed jobs are left for redelivery. Delete errors are logged
// and swallowed: a redelivered succeeded job only costs a duplicate
// email, never a lost one.
func (c *Consumer) DeleteProcessed(ctx context.Context, jobs []models.BatchJob, failedIDs []string) {
	failed := make(map[string]struct{}, len(failedIDs))
	for _, id := range failedIDs {
		failed[id] = struct{}{}
	}

	for _, job := range jobs {
		if _, ok := failed[job.ID]; ok {
			continue
		}
		_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(c.queueURL),
			ReceiptHandle: aws.String(job.ReceiptHandle),
		})
		if err != nil {
			c.logger.Warn("delete failed, message will be redelivered", map[string]interface{}{
				"jobId": job.ID,
				"error": err.Error(),
			})
		}
	}
}
