package domain

import (
	"encoding/json"
	"time"
)

// Segment is one time-stamped span of transcribed speech. Offsets are
// seconds from the start of the recording.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript holds the ordered segments of one recording, the engine's raw
// JSON output (persisted losslessly), and the rendered timestamped text
// consumed by the summarizer. Immutable once produced.
type Transcript struct {
	Segments []Segment
	Raw      json.RawMessage
	Text     string
}

// Outcome classifies how a pipeline run ended.
type Outcome string

const (
	// OutcomeCompleted means every stage succeeded and the summary was saved.
	OutcomeCompleted Outcome = "completed"
	// OutcomeNoRecording means the remote directory held no matching file.
	OutcomeNoRecording Outcome = "no_recording"
	// OutcomeTranscriptFailed means the transcription engine failed; the
	// downloaded recording remains on disk.
	OutcomeTranscriptFailed Outcome = "transcript_failed"
	// OutcomeSummaryFailed means summarization produced nothing; the
	// transcript files remain on disk.
	OutcomeSummaryFailed Outcome = "summary_failed"
	// OutcomeFaulted means the run hit an unexpected error.
	OutcomeFaulted Outcome = "faulted"
)

// RunRecord is one row of pipeline run history.
type RunRecord struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Recording      string
	TranscriptPath string
	SummaryPath    string
	Outcome        Outcome
	Detail         string
}
