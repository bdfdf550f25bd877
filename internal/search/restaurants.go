// internal/search/restaurants.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

// Restaurants queries the ranked restaurant index.
type Restaurants struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewRestaurants(client *elasticsearch.Client, index string, log logger.Logger) *Restaurants {
	return &Restaurants{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "search", "index": index}),
	}
}

type esHit struct {
	ID     string  `json:"_id"`
	Score  float64 `json:"_score"`
	Source struct {
		BusinessID string `json:"business_id"`
	} `json:"_source"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

// TopByCuisine returns the top-limit identifiers for a cuisine in index
// relevance order. Zero hits is a valid, empty result.
func (s *Restaurants) TopByCuisine(ctx context.Context, cuisine string, limit int) ([]models.SearchHit, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"cuisine": map[string]interface{}{
					"query":    cuisine,
					"operator": "and",
				},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]models.SearchHit, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		// Prefer the dedicated field; fall back to the document id when
		// the index mirrors it there.
		id := hit.Source.BusinessID
		if id == "" {
			id = hit.ID
		}
		if id == "" {
			continue
		}
		hits = append(hits, models.SearchHit{BusinessID: id, Score: hit.Score})
	}

	s.logger.Debug("search completed", map[string]interface{}{
		"cuisine": cuisine,
		"hits":    len(hits),
	})
	return hits, nil
}
