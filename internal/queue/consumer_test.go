// internal/queue/consumer_test.go
package queue

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// ==========================
// Test Doubles
// ==========================

type mockReceiver struct {
	messages   []types.Message
	receiveErr error
	deleteErr  error

	receiveInput *sqs.ReceiveMessageInput
	deleted      []string
}

func (m *mockReceiver) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	m.receiveInput = params
	if m.receiveErr != nil {
		return nil, m.receiveErr
	}
	return &sqs.ReceiveMessageOutput{Messages: m.messages}, nil
}

func (m *mockReceiver) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	m.deleted = append(m.deleted, aws.ToString(params.ReceiptHandle))
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &sqs.DeleteMessageOutput{}, nil
}

func queuedMessage(id string, attrs map[string]string) types.Message {
	wire := make(map[string]types.MessageAttributeValue, len(attrs))
	for name, value := range attrs {
		wire[name] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(value),
		}
	}
	return types.Message{
		MessageId:         aws.String(id),
		ReceiptHandle:     aws.String("rh-" + id),
		Body:              aws.String("Reservation Slots"),
		MessageAttributes: wire,
	}
}

func createTestConsumer(t *testing.T, mock *mockReceiver) *Consumer {
	return NewConsumer(mock, "https://queue.example/reservations", 20, 10, logger.NewTestLogger(t))
}

// ==========================
// Poll Tests
// ==========================

func TestPoll_MapsMessagesToJobs(t *testing.T) {
	mock := &mockReceiver{messages: []types.Message{
		queuedMessage("m-1", map[string]string{"cuisine": "japanese", "count": "2"}),
		queuedMessage("m-2", map[string]string{"cuisine": "thai"}),
	}}
	consumer := createTestConsumer(t, mock)

	jobs, err := consumer.Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	assert.Equal(t, "m-1", jobs[0].ID)
	assert.Equal(t, "rh-m-1", jobs[0].ReceiptHandle)
	assert.Equal(t, "japanese", jobs[0].Payload.Get("cuisine"))
	assert.Equal(t, "String", jobs[0].Payload["count"].DataType)
	assert.Equal(t, "thai", jobs[1].Payload.Get("cuisine"))

	require.NotNil(t, mock.receiveInput)
	assert.Equal(t, int32(20), mock.receiveInput.WaitTimeSeconds)
	assert.Equal(t, int32(10), mock.receiveInput.MaxNumberOfMessages)
	assert.Equal(t, []string{"All"}, mock.receiveInput.MessageAttributeNames)
}

func TestPoll_EmptyQueue(t *testing.T) {
	consumer := createTestConsumer(t, &mockReceiver{})

	jobs, err := consumer.Poll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestPoll_ReceiveError(t *testing.T) {
	consumer := createTestConsumer(t, &mockReceiver{receiveErr: assert.AnError})

	_, err := consumer.Poll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqs receive")
}

func TestNewConsumer_ClampsBatchSize(t *testing.T) {
	mock := &mockReceiver{}
	consumer := NewConsumer(mock, "url", 20, 25, logger.NewTestLogger(t))

	_, err := consumer.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(10), mock.receiveInput.MaxNumberOfMessages)
}

// ==========================
// DeleteProcessed Tests
// ==========================

func TestDeleteProcessed_KeepsFailedJobsForRedelivery(t *testing.T) {
	mock := &mockReceiver{}
	consumer := createTestConsumer(t, mock)

	jobs := []models.BatchJob{
		{ID: "m-1", ReceiptHandle: "rh-m-1"},
		{ID: "m-2", ReceiptHandle: "rh-m-2"},
		{ID: "m-3", ReceiptHandle: "rh-m-3"},
	}

	consumer.DeleteProcessed(context.Background(), jobs, []string{"m-2"})

	assert.Equal(t, []string{"rh-m-1", "rh-m-3"}, mock.deleted)
}

func TestDeleteProcessed_DeleteErrorsAreSwallowed(t *testing.T) {
	mock := &mockReceiver{deleteErr: assert.AnError}
	consumer := createTestConsumer(t, mock)

	jobs := []models.BatchJob{
		{ID: "m-1", ReceiptHandle: "rh-m-1"},
		{ID: "m-2", ReceiptHandle: "rh-m-2"},
	}

	// Redelivering a succeeded job costs a duplicate email, never a lost
	// one, so a delete failure must not abort the remaining deletes.
	consumer.DeleteProcessed(context.Background(), jobs, nil)

	assert.Equal(t, []string{"rh-m-1", "rh-m-2"}, mock.deleted)
}
