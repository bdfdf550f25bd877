// cmd/fulfillment-worker/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/fulfillment"
	"dining-concierge/internal/notify"
	"dining-concierge/internal/queue"
	"dining-concierge/internal/search"
	"dining-concierge/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fulfillment worker...")

	obs := observability.New("fulfillment-worker")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Search)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init AWS clients ---
	sesClient, err := aws.NewSESClient(ctx, cfg.Email.Region)
	if err != nil {
		zapLog.Fatal("ses client failed", zap.Error(err))
	}
	sqsClient, err := aws.NewSQSClient(ctx, cfg.Queue.Region)
	if err != nil {
		zapLog.Fatal("sqs client failed", zap.Error(err))
	}

	var alerter *notify.Alerter
	if cfg.Alerts.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Alerts.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		alerter = notify.NewAlerter(snsClient, cfg.Alerts.TopicARN, log)
	}

	// --- Wire the pipeline ---
	searcher := search.NewRestaurants(esClient.Client, cfg.Search.Index, log)
	businesses := store.NewBusinesses(rdb.Client, pg.DB, time.Duration(cfg.Database.Redis.TTL)*time.Second, log)
	mailer := notify.NewEmailSender(sesClient, cfg.Email.Sender, log)
	pipeline := fulfillment.NewPipeline(searcher, businesses, mailer, cfg.Search.ResultLimit, log)
	runner := fulfillment.NewRunner(pipeline, log)
	consumer := queue.NewConsumer(sqsClient, cfg.Queue.URL, cfg.Queue.WaitTimeSeconds, cfg.Queue.MaxMessages, log)

	// --- Metrics endpoint (includes pprof via DefaultServeMux) ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("metrics server listening", zap.String("addr", cfg.HTTP.MetricsAddr))
		if err := http.ListenAndServe(cfg.HTTP.MetricsAddr, nil); err != nil {
			zapLog.Error("metrics server stopped", zap.Error(err))
		}
	}()

	pollInterval := time.Duration(cfg.Queue.PollInterval) * time.Millisecond
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	zapLog.Info("polling for reservation requests", zap.String("queue", cfg.Queue.URL))

	for {
		select {
		case <-ctx.Done():
			zapLog.Info("shutdown signal received, stopping")
			return
		default:
		}

		jobs, err := consumer.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Error("poll failed", map[string]interface{}{"error": err.Error()})
			sleep(ctx, pollInterval)
			continue
		}
		if len(jobs) == 0 {
			continue
		}

		batchStart := time.Now()
		failed := runner.RunBatch(ctx, jobs)
		for i := 0; i < len(jobs)-len(failed); i++ {
			obs.RecordJobProcessed(ctx, "success")
		}
		for i := 0; i < len(failed); i++ {
			obs.RecordJobProcessed(ctx, "failed")
		}
		batchStatus := "success"
		if len(failed) > 0 {
			batchStatus = "partial_failure"
		}
		obs.RecordJobDuration(ctx, time.Since(batchStart), batchStatus)

		consumer.DeleteProcessed(ctx, jobs, failed)

		if alerter != nil && len(failed) > 0 {
			if err := alerter.BatchFailures(ctx, failed); err != nil {
				log.Error("failure alert not delivered", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
