package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
)

// engineOutput mirrors the JSON emitted by whisper.cpp with -oj. Offsets are
// milliseconds from the start of the recording.
type engineOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs the engine once on audioPath and converts its output into
// an ordered segment sequence plus the rendered timestamped text.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (*domain.Transcript, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription on file %s", audioPath)

	args := []string{
		"-m", t.modelPath,
		"-f", audioPath,
		"-l", t.language,
		"-oj",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.binaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read engine output: %w", err)
	}
	// The sidecar moves into the transcript store; the copy next to the
	// recording is not needed.
	if err := os.Remove(jsonPath); err != nil {
		t.logger.Debug(ctx, "Failed to remove engine output %s: %v", jsonPath, err)
	}

	var out engineOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse engine output: %w", err)
	}

	segments := make([]domain.Segment, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		segments = append(segments, domain.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	text := Render(segments)
	t.logger.Info(ctx, "Transcription complete: %d segments", len(segments))

	return &domain.Transcript{
		Segments: segments,
		Raw:      json.RawMessage(raw),
		Text:     text,
	}, nil
}

// Render produces the canonical transcript text: one line per segment,
// `[MM:SS.mmm --> MM:SS.mmm]  <text>`. Minutes truncate toward zero, the
// seconds remainder is fixed three-decimal, zero-padded to width six.
// Consumers snapshot this format; keep it bit-exact.
func Render(segments []domain.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%s --> %s]  %s\n", formatOffset(seg.Start), formatOffset(seg.End), seg.Text)
	}
	return b.String()
}

func formatOffset(seconds float64) string {
	minutes := int(seconds / 60)
	return fmt.Sprintf("%02d:%06.3f", minutes, seconds-float64(minutes)*60)
}
