package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/scannerworks/dispatch-scribe/internal/config"
	"github.com/scannerworks/dispatch-scribe/internal/domain"
	"github.com/scannerworks/dispatch-scribe/internal/history"
	"github.com/scannerworks/dispatch-scribe/internal/logger"
	"github.com/scannerworks/dispatch-scribe/internal/remote"
	"github.com/scannerworks/dispatch-scribe/internal/store"
	"github.com/scannerworks/dispatch-scribe/internal/summarizer"
	"github.com/scannerworks/dispatch-scribe/internal/transcriber"
	"github.com/scannerworks/dispatch-scribe/internal/watcher"
	"github.com/scannerworks/dispatch-scribe/internal/workflow"
	"github.com/scannerworks/dispatch-scribe/pkg/executor"
)

// Exit codes: 0 for a completed run or a soft stop (no recording, failed
// transcription or summary), 1 for startup failures, 2 for an unexpected
// fault mid-run.
const (
	exitOK      = 0
	exitStartup = 1
	exitFaulted = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to YAML configuration")
	cleanup := flag.Bool("cleanup", false, "archive remote recordings after download")
	watch := flag.Bool("watch", false, "watch the local inbox instead of fetching remotely")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitStartup
	}
	if *cleanup {
		cfg.Cleanup = true
	}

	log, err := logger.NewWithFile(cfg.Logging.Level, cfg.Paths.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "File logging unavailable: %v\n", err)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Dispatch Transcription Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Remote host: %s", cfg.Remote.Host)
	log.Info(ctx, "Base directory: %s", cfg.Paths.BaseDir)
	log.Info(ctx, "Cleanup mode: %v", cfg.Cleanup)

	st := store.New(cfg.Paths.BaseDir, log)
	if err := st.EnsureLayout(); err != nil {
		log.Critical(ctx, "Failed to create storage directories: %v", err)
		return exitStartup
	}

	hist, err := history.Open(filepath.Join(cfg.Paths.BaseDir, "history.sqlite"))
	if err != nil {
		log.Critical(ctx, "Failed to open run history: %v", err)
		return exitStartup
	}
	defer hist.Close()

	tr, err := transcriber.New(
		cfg.Whisper.BinaryPath,
		cfg.Whisper.ModelPath,
		cfg.Whisper.Language,
		executor.New(),
		log,
	)
	if err != nil {
		log.Critical(ctx, "Failed to initialize transcription engine: %v", err)
		return exitStartup
	}

	sum := summarizer.New(
		cfg.Claude.APIKey,
		cfg.Claude.Model,
		cfg.Claude.MaxTokens,
		cfg.Claude.Temperature,
		log,
	)

	pipeline := workflow.New(
		remote.New(cfg.Remote, log),
		tr,
		sum,
		st,
		hist,
		cfg.Cleanup,
		log,
	)

	if *watch {
		return runWatch(ctx, cfg, pipeline, log)
	}

	outcome := pipeline.Run(ctx)
	log.Info(ctx, "Run finished: %s", outcome)
	if outcome == domain.OutcomeFaulted {
		return exitFaulted
	}
	return exitOK
}

// runWatch processes recordings dropped into the local inbox until
// interrupted. The remote host is not contacted in this mode.
func runWatch(ctx context.Context, cfg *config.Config, pipeline workflow.Pipeline, log logger.Logger) int {
	if err := os.MkdirAll(cfg.Paths.InboxDir, 0755); err != nil {
		log.Critical(ctx, "Failed to create inbox directory: %v", err)
		return exitStartup
	}

	w, err := watcher.New(cfg.Paths.InboxDir, func(ctx context.Context, audioPath string) {
		outcome := pipeline.ProcessLocal(ctx, audioPath)
		log.Info(ctx, "Processed %s: %s", audioPath, outcome)
	}, log)
	if err != nil {
		log.Critical(ctx, "Failed to create inbox watcher: %v", err)
		return exitStartup
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching inbox: %s", cfg.Paths.InboxDir)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
		return exitFaulted
	}

	cancel()
	log.Info(ctx, "Pipeline stopped")
	return exitOK
}
