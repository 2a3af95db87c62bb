package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pagesmith-hq/confluence-uploader/internal/app"
	"github.com/pagesmith-hq/confluence-uploader/internal/config"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
	"github.com/pagesmith-hq/confluence-uploader/internal/logger"
)

func main() {
	os.Exit(int(run()))
}

func run() domain.RunStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uploader start failed: load config: %v\n", err)
		return domain.FatalErrors
	}

	log, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uploader start failed: init logger: %v\n", err)
		return domain.FatalErrors
	}
	defer logger.Close()

	logger.InfoObj("uploader starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader, err := app.NewUploader(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize uploader", "error", err.Error())
		return domain.FatalErrors
	}

	report := uploader.Run(ctx)
	logger.InfoObj("uploader finished", "report", report)
	return report.Status
}
