// internal/ingest/writer_test.go
package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

type indexedDoc struct {
	path string
	body map[string]string
}

func esTestClient(t *testing.T, docs *[]indexedDoc) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*docs = append(*docs, indexedDoc{path: r.URL.Path, body: body})

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": "created"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestStore_UpsertsRowAndIndexesDoc(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var docs []indexedDoc
	writer := NewWriter(db, esTestClient(t, &docs), "restaurants", logger.NewTestLogger(t))

	records := []models.BusinessRecord{
		{BusinessID: "A", Name: "Aburi", Address: "1 Main St", Rating: 4.5, ReviewCount: 100, Cuisine: "japanese", ZipCode: "10001", InsertedAt: "2026-08-31T12:00:00Z"},
		{BusinessID: "B", Name: "Basil", Address: "2 Main St", Rating: 4.0, ReviewCount: 50, Cuisine: "thai", ZipCode: "10002", InsertedAt: "2026-08-31T12:00:00Z"},
	}

	for _, rec := range records {
		mock.ExpectExec("INSERT INTO restaurants").
			WithArgs(rec.BusinessID, rec.Name, rec.Address, rec.Rating, rec.ReviewCount,
				rec.Website, rec.Cuisine, rec.ZipCode, rec.InsertedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	stored, err := writer.Store(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, docs, 2)
	assert.Equal(t, "/restaurants/_doc/A", docs[0].path)
	assert.Equal(t, map[string]string{"business_id": "A", "cuisine": "japanese"}, docs[0].body)
	assert.Equal(t, "/restaurants/_doc/B", docs[1].path)
}

func TestStore_AbortsOnDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var docs []indexedDoc
	writer := NewWriter(db, esTestClient(t, &docs), "restaurants", logger.NewTestLogger(t))

	mock.ExpectExec("INSERT INTO restaurants").WillReturnError(assert.AnError)

	stored, err := writer.Store(context.Background(), []models.BusinessRecord{
		{BusinessID: "A"}, {BusinessID: "B"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, stored)
	assert.Contains(t, err.Error(), "store A")
	assert.Empty(t, docs, "the search index must not receive a doc whose row failed")
}
