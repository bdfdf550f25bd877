// cmd/dialog-hook/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/dialog"
	"dining-concierge/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dialog hook...")

	ctx := context.Background()

	sqsClient, err := aws.NewSQSClient(ctx, cfg.Queue.Region)
	if err != nil {
		zapLog.Fatal("sqs client failed", zap.Error(err))
	}

	publisher := queue.NewPublisher(sqsClient, cfg.Queue.URL, log)
	handler := dialog.NewHandler(publisher, log)
	server := dialog.NewServer(handler, log)

	zapLog.Info("dialog hook listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.Router().Run(cfg.HTTP.Addr); err != nil {
		zapLog.Fatal("server stopped", zap.Error(err))
	}
}
