// cmd/tools/ingest/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	commonhttp "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/ingest"
)

var (
	cuisines   []string
	location   string
	minResults int
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Collect restaurant data from Yelp into the record store and search index",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringSliceVar(&cuisines, "cuisine", nil, "cuisine categories to collect (repeatable)")
	rootCmd.Flags().StringVar(&location, "location", "Manhattan", "search location")
	rootCmd.Flags().IntVar(&minResults, "min-results", 0, "stop a cuisine once this many unique records are collected (0 = collect all)")
	rootCmd.MarkFlagRequired("cuisine")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("postgres failed: %w", err)
	}
	defer pg.Close()

	esClient, err := database.NewElasticsearch(cfg.Search)
	if err != nil {
		return fmt.Errorf("elasticsearch failed: %w", err)
	}

	yelp := ingest.NewYelpClient(commonhttp.NewClient(15*time.Second), cfg.Yelp.BaseURL, cfg.Yelp.APIKey, log)
	writer := ingest.NewWriter(pg.DB, esClient.Client, cfg.Search.Index, log)

	ctx := cmd.Context()
	for _, cuisine := range cuisines {
		records, err := yelp.Collect(ctx, cuisine, location, minResults)
		if err != nil {
			return fmt.Errorf("collect %s: %w", cuisine, err)
		}
		stored, err := writer.Store(ctx, records)
		if err != nil {
			return fmt.Errorf("store %s: %w", cuisine, err)
		}
		zapLog.Info("cuisine ingested",
			zap.String("cuisine", cuisine),
			zap.Int("collected", len(records)),
			zap.Int("stored", stored),
		)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
