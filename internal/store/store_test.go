package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), logger.New("error"))
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout() error = %v", err)
	}

	// Populate, then ensure again: must not error and must not alter files.
	marker := filepath.Join(s.RecordingsDir(), "keep.wav")
	if err := os.WriteFile(marker, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("second EnsureLayout() error = %v", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio" {
		t.Errorf("existing file altered: %q", string(data))
	}
}

func TestSaveTranscript(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	tr := &domain.Transcript{
		Segments: []domain.Segment{{Start: 0, End: 2, Text: "unit 47 responding"}},
		Raw:      json.RawMessage(`{"segments":[{"start":0,"end":2,"text":"unit 47 responding"}]}`),
		Text:     "[00:00.000 --> 00:02.000]  unit 47 responding\n",
	}

	textPath, err := s.SaveTranscript(context.Background(), "r1", tr)
	if err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}
	if textPath != s.TranscriptTextPath("r1") {
		t.Errorf("textPath = %v, want %v", textPath, s.TranscriptTextPath("r1"))
	}

	text, err := os.ReadFile(s.TranscriptTextPath("r1"))
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != tr.Text {
		t.Errorf("rendered transcript = %q, want %q", string(text), tr.Text)
	}

	raw, err := os.ReadFile(s.TranscriptJSONPath("r1"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != string(tr.Raw) {
		t.Errorf("raw transcript not passed through verbatim")
	}
}

func TestSaveSummaryOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	if _, err := s.SaveSummary(context.Background(), "first", day); err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}
	path, err := s.SaveSummary(context.Background(), "second", day)
	if err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}

	if filepath.Base(path) != "summary_20260826.md" {
		t.Errorf("summary file name = %v, want summary_20260826.md", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("summary = %q, want overwrite to %q", string(data), "second")
	}
}
