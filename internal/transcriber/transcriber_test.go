package transcriber

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

// fakeExecutor simulates the whisper binary by writing a canned JSON sidecar.
type fakeExecutor struct {
	output string
	err    error
	args   []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	if f.err != nil {
		return "", f.err
	}

	var prefix string
	for i, a := range args {
		if a == "--output-file" && i+1 < len(args) {
			prefix = args[i+1]
		}
	}
	if err := os.WriteFile(prefix+".json", []byte(f.output), 0644); err != nil {
		return "", err
	}
	return "", nil
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestTranscriber(t *testing.T, exec *fakeExecutor) Transcriber {
	t.Helper()
	root := t.TempDir()
	binary := filepath.Join(root, "whisper-cli")
	model := filepath.Join(root, "ggml-medium.en.bin")
	mustWriteFile(t, binary, "bin")
	mustWriteFile(t, model, "model")

	tr, err := New(binary, model, "en", exec, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{63.25, "01:03.250"},
		{125.0, "02:05.000"},
		{0, "00:00.000"},
		{5.5, "00:05.500"},
		{303.25, "05:03.250"},
	}

	for _, tt := range tests {
		if got := formatOffset(tt.seconds); got != tt.want {
			t.Errorf("formatOffset(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	segments := []domain.Segment{
		{Start: 63.25, End: 125.0, Text: "unit 47 responding"},
		{Start: 130.0, End: 131.5, Text: "clear"},
	}

	want := "[01:03.250 --> 02:05.000]  unit 47 responding\n" +
		"[02:10.000 --> 02:11.500]  clear\n"

	if got := Render(segments); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTranscribe(t *testing.T) {
	exec := &fakeExecutor{
		output: `{"transcription":[
			{"offsets":{"from":0,"to":2000},"text":" unit 47 responding"},
			{"offsets":{"from":5000,"to":8000},"text":" clear"}
		]}`,
	}
	tr := newTestTranscriber(t, exec)

	audio := filepath.Join(t.TempDir(), "r1.wav")
	mustWriteFile(t, audio, "audio")

	got, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if len(got.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(got.Segments))
	}
	if got.Segments[0].Text != "unit 47 responding" {
		t.Errorf("segment text = %q, want trimmed text", got.Segments[0].Text)
	}
	if got.Segments[1].Start != 5.0 || got.Segments[1].End != 8.0 {
		t.Errorf("segment offsets = %v-%v, want 5-8", got.Segments[1].Start, got.Segments[1].End)
	}

	want := "[00:00.000 --> 00:02.000]  unit 47 responding\n" +
		"[00:05.000 --> 00:08.000]  clear\n"
	if got.Text != want {
		t.Errorf("rendered text = %q, want %q", got.Text, want)
	}
	if len(got.Raw) == 0 {
		t.Error("raw engine output not preserved")
	}

	// The engine sidecar next to the recording must be cleaned up.
	if _, err := os.Stat(audio[:len(audio)-4] + ".json"); !os.IsNotExist(err) {
		t.Error("engine sidecar json left behind")
	}

	// Language hint reaches the engine.
	langFlag := false
	for i, a := range exec.args {
		if a == "-l" && i+1 < len(exec.args) && exec.args[i+1] == "en" {
			langFlag = true
		}
	}
	if !langFlag {
		t.Errorf("engine args missing language hint: %v", exec.args)
	}
}

func TestTranscribeEngineFailure(t *testing.T) {
	exec := &fakeExecutor{err: os.ErrPermission}
	tr := newTestTranscriber(t, exec)

	audio := filepath.Join(t.TempDir(), "r1.wav")
	mustWriteFile(t, audio, "audio")

	if _, err := tr.Transcribe(context.Background(), audio); err == nil {
		t.Error("Transcribe() should return error when the engine fails")
	}
}

func TestNewMissingBinary(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.bin")
	mustWriteFile(t, model, "model")

	if _, err := New(filepath.Join(root, "missing"), model, "en", &fakeExecutor{}, logger.New("error")); err == nil {
		t.Error("New() should fail when the binary is missing")
	}
}

func TestNewMissingModel(t *testing.T) {
	root := t.TempDir()
	binary := filepath.Join(root, "whisper-cli")
	mustWriteFile(t, binary, "bin")

	if _, err := New(binary, filepath.Join(root, "missing.bin"), "en", &fakeExecutor{}, logger.New("error")); err == nil {
		t.Error("New() should fail when the model is missing")
	}
}
