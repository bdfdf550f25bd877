// internal/store/businesses.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const selectBusinesses = `
SELECT business_id, name, address, rating, review_count,
       COALESCE(website, ''), COALESCE(cuisine, ''), COALESCE(zip_code, '')
FROM restaurants
WHERE business_id = ANY($1)`

// Businesses resolves business records by identifier through a
// read-through cache: Redis in front, Postgres as the system of record.
// A Redis outage degrades to Postgres-only reads; it never fails a lookup.
type Businesses struct {
	rdb    *redis.Client
	db     *sql.DB
	ttl    time.Duration
	logger logger.Logger
}

func NewBusinesses(rdb *redis.Client, db *sql.DB, ttl time.Duration, log logger.Logger) *Businesses {
	return &Businesses{
		rdb:    rdb,
		db:     db,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// BatchGet resolves all ids in one pass. Identifiers unknown to both the
// cache and the database are simply absent from the returned map.
func (s *Businesses) BatchGet(ctx context.Context, ids []string) (map[string]models.BusinessRecord, error) {
	out := make(map[string]models.BusinessRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	misses, cacheUp := s.fromCache(ctx, ids, out)
	if len(misses) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx, selectBusinesses, pq.Array(misses))
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.BusinessRecord
		if err := rows.Scan(
			&rec.BusinessID, &rec.Name, &rec.Address, &rec.Rating,
			&rec.ReviewCount, &rec.Website, &rec.Cuisine, &rec.ZipCode,
		); err != nil {
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		out[rec.BusinessID] = rec
		if cacheUp {
			s.backfill(ctx, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate business rows: %w", err)
	}

	return out, nil
}

// fromCache fills out from Redis and returns the ids still unresolved,
// plus whether the cache answered at all.
func (s *Businesses) fromCache(ctx context.Context, ids []string, out map[string]models.BusinessRecord) ([]string, bool) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		s.logger.Warn("cache unavailable, serving from database", map[string]interface{}{
			"error": err.Error(),
		})
		return ids, false
	}

	var misses []string
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		var rec models.BusinessRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			// Corrupt entry: treat as a miss and let the backfill replace it.
			misses = append(misses, ids[i])
			continue
		}
		out[ids[i]] = rec
	}
	return misses, true
}

func (s *Businesses) backfill(ctx context.Context, rec models.BusinessRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey(rec.BusinessID), data, s.ttl).Err(); err != nil {
		s.logger.Debug("cache backfill failed", map[string]interface{}{
			"businessId": rec.BusinessID,
			"error":      err.Error(),
		})
	}
}

func cacheKey(businessID string) string {
	return "restaurant:" + businessID
}
