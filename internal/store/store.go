package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

const (
	recordingsDir  = "recordings"
	transcriptsDir = "transcripts"
	summariesDir   = "daily_summaries"
)

// Store owns the on-disk artifact layout under a base directory:
// recordings/, transcripts/ and daily_summaries/.
type Store struct {
	baseDir string
	logger  logger.Logger
}

// New creates a Store rooted at baseDir. Call EnsureLayout before use.
func New(baseDir string, log logger.Logger) *Store {
	return &Store{baseDir: baseDir, logger: log}
}

// EnsureLayout creates the artifact directories. It is idempotent and never
// touches existing files. Failure here is fatal to the caller: the pipeline
// has nowhere to persist its output.
func (s *Store) EnsureLayout() error {
	for _, dir := range []string{s.RecordingsDir(), s.transcriptsPath(), s.summariesPath()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// RecordingsDir is the destination directory for downloaded recordings.
func (s *Store) RecordingsDir() string {
	return filepath.Join(s.baseDir, recordingsDir)
}

func (s *Store) transcriptsPath() string {
	return filepath.Join(s.baseDir, transcriptsDir)
}

func (s *Store) summariesPath() string {
	return filepath.Join(s.baseDir, summariesDir)
}

// TranscriptTextPath returns the rendered transcript path for a recording stem.
func (s *Store) TranscriptTextPath(stem string) string {
	return filepath.Join(s.transcriptsPath(), stem+"_transcript.txt")
}

// TranscriptJSONPath returns the structured transcript path for a recording stem.
func (s *Store) TranscriptJSONPath(stem string) string {
	return filepath.Join(s.transcriptsPath(), stem+"_transcript.json")
}

// SummaryPath returns the summary file path for a calendar day. One file per
// day; a second run on the same day overwrites the first.
func (s *Store) SummaryPath(day time.Time) string {
	return filepath.Join(s.summariesPath(), fmt.Sprintf("summary_%s.md", day.Format("20060102")))
}

// SaveTranscript persists both transcript forms for a recording: the engine's
// raw JSON first, then the rendered text. Both are durably written before
// this returns, so downstream stages may rely on them.
func (s *Store) SaveTranscript(ctx context.Context, stem string, t *domain.Transcript) (string, error) {
	jsonPath := s.TranscriptJSONPath(stem)
	if err := os.WriteFile(jsonPath, t.Raw, 0644); err != nil {
		return "", fmt.Errorf("write transcript json: %w", err)
	}

	textPath := s.TranscriptTextPath(stem)
	if err := os.WriteFile(textPath, []byte(t.Text), 0644); err != nil {
		return "", fmt.Errorf("write transcript text: %w", err)
	}

	s.logger.Info(ctx, "Transcript saved to %s", textPath)
	return textPath, nil
}

// SaveSummary writes the summary text verbatim to the dated summary file.
func (s *Store) SaveSummary(ctx context.Context, summary string, day time.Time) (string, error) {
	path := s.SummaryPath(day)
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	s.logger.Info(ctx, "Summary saved to %s", path)
	return path, nil
}
