// internal/queue/publisher_test.go
package queue

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

type mockSender struct {
	input *sqs.SendMessageInput
	err   error
}

func (m *mockSender) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestPublish_OneAttributePerSlot(t *testing.T) {
	mock := &mockSender{}
	publisher := NewPublisher(mock, "https://queue.example/reservations", logger.NewTestLogger(t))

	err := publisher.Publish(context.Background(), map[string]string{
		"cuisine": "japanese",
		"count":   "4",
		"email":   "diner@example.com",
	})
	require.NoError(t, err)

	require.NotNil(t, mock.input)
	assert.Equal(t, "https://queue.example/reservations", aws.ToString(mock.input.QueueUrl))
	assert.Equal(t, "Reservation Slots", aws.ToString(mock.input.MessageBody))

	require.Len(t, mock.input.MessageAttributes, 3)
	for name, want := range map[string]string{
		"cuisine": "japanese",
		"count":   "4",
		"email":   "diner@example.com",
	} {
		attr, ok := mock.input.MessageAttributes[name]
		require.True(t, ok, "missing attribute %s", name)
		assert.Equal(t, "String", aws.ToString(attr.DataType))
		assert.Equal(t, want, aws.ToString(attr.StringValue))
	}
}

func TestPublish_SendError(t *testing.T) {
	mock := &mockSender{err: assert.AnError}
	publisher := NewPublisher(mock, "https://queue.example/reservations", logger.NewTestLogger(t))

	err := publisher.Publish(context.Background(), map[string]string{"cuisine": "thai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqs send")
}
