// internal/fulfillment/pipeline.go
package fulfillment

import (
	"context"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

// DefaultResultLimit is the top-K cutoff for one suggestion.
const DefaultResultLimit = 3

// RestaurantSearcher is the ranked-index collaborator: top identifiers for
// a cuisine category, order significant.
type RestaurantSearcher interface {
	TopByCuisine(ctx context.Context, cuisine string, limit int) ([]models.SearchHit, error)
}

// BusinessStore is the record-store collaborator: one batched lookup,
// identifiers absent from the store are simply missing from the map.
type BusinessStore interface {
	BatchGet(ctx context.Context, ids []string) (map[string]models.BusinessRecord, error)
}

// Notifier is the notification collaborator.
type Notifier interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// Pipeline turns one canonical reservation request into a delivered
// suggestion email. Collaborators are injected so tests can substitute
// doubles.
type Pipeline struct {
	searcher RestaurantSearcher
	store    BusinessStore
	notifier Notifier
	limit    int
	logger   logger.Logger
}

func NewPipeline(searcher RestaurantSearcher, store BusinessStore, notifier Notifier, limit int, log logger.Logger) *Pipeline {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return &Pipeline{
		searcher: searcher,
		store:    store,
		notifier: notifier,
		limit:    limit,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Fulfill runs search, batched resolution, rendering and notification for
// one request. A failure in any step surfaces with that step's error code
// and stops the pipeline before the notification side effect.
func (p *Pipeline) Fulfill(ctx context.Context, req *models.ReservationRequest) error {
	hits, err := p.searcher.TopByCuisine(ctx, req.Cuisine, p.limit)
	if err != nil {
		return errors.NewSearchQueryFailedError(err)
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.BusinessID)
	}

	records := map[string]models.BusinessRecord{}
	if len(ids) > 0 {
		records, err = p.store.BatchGet(ctx, ids)
		if err != nil {
			return errors.NewRecordLookupFailedError(err)
		}
	}

	// Ranked order from the search step is preserved exactly; an
	// identifier whose record is missing becomes a placeholder, never a
	// dropped entry.
	ordered := make([]models.BusinessRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := records[id]; ok {
			ordered = append(ordered, rec)
		} else {
			ordered = append(ordered, models.Placeholder(id))
		}
	}

	msg := models.EmailMessage{
		To:       req.Email,
		Subject:  Subject(req, len(ordered)),
		TextBody: RenderText(req, ordered),
		HTMLBody: RenderHTML(req, ordered),
	}
	if err := p.notifier.Send(ctx, msg); err != nil {
		return errors.NewNotificationSendFailedError(err)
	}

	metrics.EmailsSent.Inc()
	p.logger.Info("suggestion delivered", map[string]interface{}{
		"cuisine": req.Cuisine,
		"results": len(ordered),
	})
	return nil
}
