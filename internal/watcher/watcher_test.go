package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"r1.wav", true},
		{"R1.WAV", true},
		{"scan.mp3", true},
		{"notes.txt", false},
		{"clip.mp4", false},
	}

	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesNewRecording(t *testing.T) {
	inbox := t.TempDir()

	handled := make(chan string, 1)
	w, err := New(inbox, func(ctx context.Context, audioPath string) {
		handled <- audioPath
	}, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	path := filepath.Join(inbox, "r1.wav")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		if got != path {
			t.Errorf("handled %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler never invoked for new recording")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	inbox := t.TempDir()

	handled := make(chan string, 1)
	w, err := New(inbox, func(ctx context.Context, audioPath string) {
		handled <- audioPath
	}, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	if err := os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		t.Errorf("handler invoked for non-audio file %q", got)
	case <-time.After(1 * time.Second):
	}
}

func TestNewMissingInbox(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) {}, logger.New("error"))
	if err == nil {
		t.Error("New() should fail for a missing inbox directory")
	}
}
