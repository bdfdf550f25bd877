// internal/ingest/yelp.go
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	commonhttp "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const (
	pageSize  = 50
	offsetCap = 1000 // the search API rejects offset+limit past this
	pageDelay = 200 * time.Millisecond
)

// YelpClient pages through the Yelp Fusion business search endpoint and
// collects deduplicated business records for one cuisine and location.
type YelpClient struct {
	http    *commonhttp.Client
	baseURL string
	apiKey  string
	logger  logger.Logger
}

func NewYelpClient(httpClient *commonhttp.Client, baseURL, apiKey string, log logger.Logger) *YelpClient {
	return &YelpClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  log.WithFields(map[string]interface{}{"component": "yelp-client"}),
	}
}

type yelpBusiness struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Location    struct {
		DisplayAddress []string `json:"display_address"`
		ZipCode        string   `json:"zip_code"`
	} `json:"location"`
}

type yelpSearchResponse struct {
	Businesses []yelpBusiness `json:"businesses"`
	Total      int            `json:"total"`
}

// Collect pulls every page of results for the cuisine until the API runs
// out of businesses, the offset cap is reached, or minResults unique
// records have been gathered (0 means no early stop).
func (c *YelpClient) Collect(ctx context.Context, cuisine, location string, minResults int) ([]models.BusinessRecord, error) {
	seen := make(map[string]struct{})
	var records []models.BusinessRecord

	for offset := 0; offset+pageSize <= offsetCap; offset += pageSize {
		page, total, err := c.searchPage(ctx, cuisine, location, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		now := time.Now().UTC().Format(time.RFC3339)
		for _, biz := range page {
			if _, dup := seen[biz.ID]; dup {
				continue
			}
			seen[biz.ID] = struct{}{}
			records = append(records, models.BusinessRecord{
				BusinessID:  biz.ID,
				Name:        biz.Name,
				Address:     strings.Join(biz.Location.DisplayAddress, ", "),
				Rating:      biz.Rating,
				ReviewCount: biz.ReviewCount,
				Website:     biz.URL,
				Cuisine:     cuisine,
				ZipCode:     biz.Location.ZipCode,
				InsertedAt:  now,
			})
		}

		c.logger.Info("page collected", map[string]interface{}{
			"cuisine": cuisine,
			"offset":  offset,
			"unique":  len(records),
			"total":   total,
		})

		if minResults > 0 && len(records) >= minResults {
			break
		}
		if offset+pageSize >= total {
			break
		}

		select {
		case <-ctx.Done():
			return records, ctx.Err()
		case <-time.After(pageDelay):
		}
	}

	return records, nil
}

func (c *YelpClient) searchPage(ctx context.Context, cuisine, location string, offset int) ([]yelpBusiness, int, error) {
	params := url.Values{}
	params.Set("categories", cuisine)
	params.Set("location", location)
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("yelp search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("yelp search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed yelpSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("decode yelp response: %w", err)
	}
	return parsed.Businesses, parsed.Total, nil
}
