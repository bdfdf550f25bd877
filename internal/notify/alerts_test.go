// internal/notify/alerts_test.go
package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

type mockSNS struct {
	input *sns.PublishInput
	err   error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("alert-1")}, nil
}

func TestBatchFailures_NamesEveryJob(t *testing.T) {
	mock := &mockSNS{}
	alerter := NewAlerter(mock, "arn:aws:sns:us-east-1:123:ops", logger.NewTestLogger(t))

	err := alerter.BatchFailures(context.Background(), []string{"job-2", "job-7"})
	require.NoError(t, err)

	require.NotNil(t, mock.input)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:ops", aws.ToString(mock.input.TopicArn))
	assert.Contains(t, aws.ToString(mock.input.Message), "2 job(s)")
	assert.Contains(t, aws.ToString(mock.input.Message), "job-2, job-7")
}

func TestBatchFailures_PublishError(t *testing.T) {
	mock := &mockSNS{err: assert.AnError}
	alerter := NewAlerter(mock, "arn:aws:sns:us-east-1:123:ops", logger.NewTestLogger(t))

	err := alerter.BatchFailures(context.Background(), []string{"job-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sns publish")
}
