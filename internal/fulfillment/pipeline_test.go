// internal/fulfillment/pipeline_test.go
package fulfillment

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// ==========================
// Test Doubles
// ==========================

type fakeSearcher struct {
	hits  []models.SearchHit
	err   error
	calls int
}

func (f *fakeSearcher) TopByCuisine(ctx context.Context, cuisine string, limit int) ([]models.SearchHit, error) {
	f.calls++
	return f.hits, f.err
}

type fakeStore struct {
	records map[string]models.BusinessRecord
	err     error
	calls   int
	lastIDs []string
}

func (f *fakeStore) BatchGet(ctx context.Context, ids []string) (map[string]models.BusinessRecord, error) {
	f.calls++
	f.lastIDs = ids
	return f.records, f.err
}

type fakeNotifier struct {
	sent  []models.EmailMessage
	err   error
	calls int
}

func (f *fakeNotifier) Send(ctx context.Context, msg models.EmailMessage) error {
	f.calls++
	f.sent = append(f.sent, msg)
	return f.err
}

func createTestPipeline(t *testing.T, searcher *fakeSearcher, store *fakeStore, notifier *fakeNotifier) *Pipeline {
	return NewPipeline(searcher, store, notifier, DefaultResultLimit, logger.NewTestLogger(t))
}

func testRequest() *models.ReservationRequest {
	return &models.ReservationRequest{
		Cuisine:    "japanese",
		PartySize:  2,
		Date:       "2026-09-05",
		DiningTime: "19:00",
		City:       "Manhattan",
		Email:      "diner@example.com",
	}
}

func hit(id string, score float64) models.SearchHit {
	return models.SearchHit{BusinessID: id, Score: score}
}

func record(id, name string) models.BusinessRecord {
	return models.BusinessRecord{BusinessID: id, Name: name, Address: name + " St 1", Rating: 4.5, ReviewCount: 120}
}

// ==========================
// Pipeline Tests
// ==========================

func TestFulfill_PlaceholderKeepsRankedPosition(t *testing.T) {
	searcher := &fakeSearcher{hits: []models.SearchHit{hit("A", 3), hit("B", 2), hit("C", 1)}}
	store := &fakeStore{records: map[string]models.BusinessRecord{
		"A": record("A", "Aburi"),
		"C": record("C", "Chiyo"),
	}}
	notifier := &fakeNotifier{}
	pipeline := createTestPipeline(t, searcher, store, notifier)

	err := pipeline.Fulfill(context.Background(), testRequest())
	require.NoError(t, err)

	require.Equal(t, 1, notifier.calls)
	msg := notifier.sent[0]

	assert.Equal(t, "diner@example.com", msg.To)
	assert.Equal(t, "Top 3 Japanese picks for 2 @ 19:00", msg.Subject)
	assert.Equal(t, []string{"A", "B", "C"}, store.lastIDs)

	// The missing record holds rank 2 as a placeholder; ranks 1 and 3 keep
	// their resolved names.
	assert.Contains(t, msg.TextBody, "1. Aburi")
	assert.Contains(t, msg.TextBody, "2. (name)")
	assert.Contains(t, msg.TextBody, "3. Chiyo")
	assert.Contains(t, msg.HTMLBody, "<strong>Aburi</strong>")
	assert.Contains(t, msg.HTMLBody, "<strong>(name)</strong>")
}

func TestFulfill_EmptySearchStillNotifies(t *testing.T) {
	searcher := &fakeSearcher{hits: nil}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	pipeline := createTestPipeline(t, searcher, store, notifier)

	err := pipeline.Fulfill(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, store.calls, "no identifiers means no store round trip")
	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, "Top 0 Japanese picks for 2 @ 19:00", notifier.sent[0].Subject)
	assert.Contains(t, notifier.sent[0].TextBody, "Here are 0 Japanese options")
}

func TestFulfill_StepAttributedFailures(t *testing.T) {
	boom := stderrors.New("boom")

	tests := []struct {
		name       string
		searcher   *fakeSearcher
		store      *fakeStore
		notifier   *fakeNotifier
		wantCode   errors.ErrorCode
		wantNotify int
	}{
		{
			name:       "search failure",
			searcher:   &fakeSearcher{err: boom},
			store:      &fakeStore{},
			notifier:   &fakeNotifier{},
			wantCode:   errors.ErrCodeSearchQueryFailed,
			wantNotify: 0,
		},
		{
			name:       "lookup failure",
			searcher:   &fakeSearcher{hits: []models.SearchHit{hit("A", 1)}},
			store:      &fakeStore{err: boom},
			notifier:   &fakeNotifier{},
			wantCode:   errors.ErrCodeRecordLookupFailed,
			wantNotify: 0,
		},
		{
			name:       "notification failure",
			searcher:   &fakeSearcher{hits: []models.SearchHit{hit("A", 1)}},
			store:      &fakeStore{records: map[string]models.BusinessRecord{"A": record("A", "Aburi")}},
			notifier:   &fakeNotifier{err: boom},
			wantCode:   errors.ErrCodeNotificationSendFailed,
			wantNotify: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := createTestPipeline(t, tt.searcher, tt.store, tt.notifier)

			err := pipeline.Fulfill(context.Background(), testRequest())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
			assert.Equal(t, tt.wantNotify, tt.notifier.calls,
				"a failed step must stop the pipeline before the notification side effect")
		})
	}
}
