// internal/fulfillment/runner.go
package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

// Runner processes one delivered batch of queued jobs, each inside its own
// failure boundary.
type Runner struct {
	pipeline *Pipeline
	logger   logger.Logger
}

func NewRunner(pipeline *Pipeline, log logger.Logger) *Runner {
	return &Runner{
		pipeline: pipeline,
		logger:   log.WithFields(map[string]interface{}{"component": "runner"}),
	}
}

// RunBatch runs normalize-then-fulfill for every job in order, one job
// completing before the next starts. A job's failure is logged with its
// identifier and error code and lands in the returned redelivery list;
// sibling jobs continue unaffected. The queue transport redelivers exactly
// the returned identifiers.
func (r *Runner) RunBatch(ctx context.Context, jobs []models.BatchJob) []string {
	log := r.logger.WithFields(map[string]interface{}{
		"batchRunId": uuid.New().String(),
		"jobs":       len(jobs),
	})

	var failed []string
	for _, job := range jobs {
		start := time.Now()
		err := r.processJob(ctx, job)
		metrics.JobsProcessed.Inc()
		metrics.JobDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			code := errors.CodeOf(err)
			metrics.JobsFailed.WithLabelValues(string(code)).Inc()
			log.Error("job failed", map[string]interface{}{
				"jobId":     job.ID,
				"errorCode": string(code),
				"error":     err.Error(),
			})
			failed = append(failed, job.ID)
			continue
		}

		log.Info("job fulfilled", map[string]interface{}{"jobId": job.ID})
	}
	return failed
}

func (r *Runner) processJob(ctx context.Context, job models.BatchJob) error {
	req, err := Normalize(job.Payload)
	if err != nil {
		return err
	}
	return r.pipeline.Fulfill(ctx, req)
}
