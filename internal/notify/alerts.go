// internal/notify/alerts.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"dining-concierge/internal/common/logger"
)

// SNSService is the slice of the SNS API the alerter needs.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Alerter publishes an operational notice when a batch ends with jobs
// marked for redelivery. The requester is not present for a failed batch
// job, so this is ops visibility only, never a user-facing message.
type Alerter struct {
	client   SNSService
	topicARN string
	logger   logger.Logger
}

func NewAlerter(client SNSService, topicARN string, log logger.Logger) *Alerter {
	return &Alerter{
		client:   client,
		topicARN: topicARN,
		logger:   log.WithFields(map[string]interface{}{"component": "alerts"}),
	}
}

// BatchFailures publishes one message naming the jobs left for redelivery.
func (a *Alerter) BatchFailures(ctx context.Context, failedIDs []string) error {
	body := fmt.Sprintf("fulfillment batch left %d job(s) for redelivery: %s",
		len(failedIDs), strings.Join(failedIDs, ", "))

	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String("Dining concierge: fulfillment failures"),
		Message:  aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	a.logger.Warn("batch failure alert published", map[string]interface{}{
		"failedJobs": len(failedIDs),
	})
	return nil
}
