package workflow

import (
	"context"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
)

// Pipeline runs the fetch → transcribe → summarize → persist sequence.
type Pipeline interface {
	// Run executes one full remote run: dial, fetch the newest recording,
	// optionally archive the remote originals, transcribe, summarize and
	// persist. The remote session, once opened, is closed exactly once on
	// every exit path.
	Run(ctx context.Context) domain.Outcome
	// ProcessLocal runs the transcribe → summarize → persist tail on a
	// recording that is already on local disk. Used by watch mode.
	ProcessLocal(ctx context.Context, audioPath string) domain.Outcome
}

// Recorder persists run history. Failures to record are never fatal to a run.
type Recorder interface {
	StartRun(ctx context.Context) (string, error)
	FinishRun(ctx context.Context, id string, rec domain.RunRecord) error
}
