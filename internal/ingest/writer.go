// internal/ingest/writer.go
package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const upsertBusiness = `
INSERT INTO restaurants (business_id, name, address, rating, review_count, website, cuisine, zip_code, inserted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (business_id) DO UPDATE SET
	name = EXCLUDED.name,
	address = EXCLUDED.address,
	rating = EXCLUDED.rating,
	review_count = EXCLUDED.review_count,
	website = EXCLUDED.website,
	cuisine = EXCLUDED.cuisine,
	zip_code = EXCLUDED.zip_code,
	inserted_at = EXCLUDED.inserted_at`

// Writer persists collected business records: full rows into Postgres,
// a slim identifier+cuisine document into the search index.
type Writer struct {
	db     *sql.DB
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewWriter(db *sql.DB, es *elasticsearch.Client, index string, log logger.Logger) *Writer {
	return &Writer{
		db:     db,
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "ingest-writer"}),
	}
}

// Store writes every record and returns the count persisted. A failure
// on one record aborts the run; ingestion is re-runnable because both
// sinks upsert by business id.
func (w *Writer) Store(ctx context.Context, records []models.BusinessRecord) (int, error) {
	for i, rec := range records {
		if err := w.storeOne(ctx, rec); err != nil {
			return i, fmt.Errorf("store %s: %w", rec.BusinessID, err)
		}
	}
	w.logger.Info("records stored", map[string]interface{}{"count": len(records)})
	return len(records), nil
}

func (w *Writer) storeOne(ctx context.Context, rec models.BusinessRecord) error {
	_, err := w.db.ExecContext(ctx, upsertBusiness,
		rec.BusinessID, rec.Name, rec.Address, rec.Rating, rec.ReviewCount,
		rec.Website, rec.Cuisine, rec.ZipCode, rec.InsertedAt)
	if err != nil {
		return fmt.Errorf("upsert row: %w", err)
	}

	doc, err := json.Marshal(map[string]string{
		"business_id": rec.BusinessID,
		"cuisine":     rec.Cuisine,
	})
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      w.index,
		DocumentID: rec.BusinessID,
		Body:       bytes.NewReader(doc),
	}
	res, err := req.Do(ctx, w.es)
	if err != nil {
		return fmt.Errorf("index doc: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("index doc: %s: %s", res.Status(), string(body))
	}
	io.Copy(io.Discard, res.Body)
	return nil
}
