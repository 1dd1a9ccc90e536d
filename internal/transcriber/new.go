package transcriber

import (
	"fmt"
	"os"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
	"github.com/scannerworks/dispatch-scribe/pkg/executor"
)

type implTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Transcriber backed by a whisper.cpp binary. The binary and
// model file are checked up front: a pipeline without a working engine must
// not start at all.
func New(binaryPath, modelPath, language string, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	if _, err := os.Stat(binaryPath); err != nil {
		return nil, fmt.Errorf("whisper binary not found at %s: %w", binaryPath, err)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found at %s: %w", modelPath, err)
	}

	return &implTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		language:   language,
		executor:   exec,
		logger:     log,
	}, nil
}
