package transcriber

import (
	"context"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
)

// Transcriber converts a local audio file into a timestamped transcript.
// One call per file; no chunking, no retries.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*domain.Transcript, error)
}
