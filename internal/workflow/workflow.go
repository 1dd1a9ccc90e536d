package workflow

import (
	"context"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
)

// Run executes one end-to-end remote run. All stage failures are contained
// here: nothing escapes past this method, and the remote session is closed
// on every path out of it.
func (p *implPipeline) Run(ctx context.Context) domain.Outcome {
	return p.tracked(ctx, p.runRemote)
}

// ProcessLocal runs the pipeline tail on an already-local recording. No
// remote session is involved.
func (p *implPipeline) ProcessLocal(ctx context.Context, audioPath string) domain.Outcome {
	return p.tracked(ctx, func(ctx context.Context, rec *domain.RunRecord) domain.Outcome {
		rec.Recording = filepath.Base(audioPath)
		return p.processRecording(ctx, audioPath, rec)
	})
}

// tracked wraps one run with history bookkeeping and a top-level panic
// guard. A panic is logged at critical severity and becomes a faulted
// outcome; deferred session teardown in the run body has already fired by
// the time the recover executes.
func (p *implPipeline) tracked(ctx context.Context, fn func(context.Context, *domain.RunRecord) domain.Outcome) (outcome domain.Outcome) {
	rec := &domain.RunRecord{}

	var runID string
	if p.history != nil {
		id, err := p.history.StartRun(ctx)
		if err != nil {
			p.logger.Warn(ctx, "Failed to record run start: %v", err)
		} else {
			runID = id
		}
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Critical(ctx, "Workflow error: %v", r)
			p.logger.Debug(ctx, "Stack trace:\n%s", debug.Stack())
			outcome = domain.OutcomeFaulted
		}
		rec.Outcome = outcome
		if p.history != nil && runID != "" {
			if err := p.history.FinishRun(ctx, runID, *rec); err != nil {
				p.logger.Warn(ctx, "Failed to record run history: %v", err)
			}
		}
	}()

	return fn(ctx, rec)
}

func (p *implPipeline) runRemote(ctx context.Context, rec *domain.RunRecord) domain.Outcome {
	p.logger.Info(ctx, "Starting dispatch transcription run")

	sess, err := p.source.Dial(ctx)
	if err != nil {
		p.logger.Error(ctx, "Remote connection error: %v", err)
		rec.Detail = err.Error()
		return domain.OutcomeFaulted
	}
	defer func() {
		if err := sess.Close(); err != nil {
			p.logger.Error(ctx, "Error closing remote session: %v", err)
			return
		}
		p.logger.Info(ctx, "Remote session closed")
	}()

	localPath, err := sess.FetchNewest(ctx, p.store.RecordingsDir())
	if err != nil {
		p.logger.Error(ctx, "Recording download error: %v", err)
		rec.Detail = err.Error()
		return domain.OutcomeNoRecording
	}
	if localPath == "" {
		p.logger.Warn(ctx, "No recording downloaded. Ending run.")
		return domain.OutcomeNoRecording
	}
	rec.Recording = filepath.Base(localPath)

	// Archiving is best-effort: the local copy is already safe, so a
	// failure here must not end the run.
	if p.cleanup {
		if err := sess.Archive(ctx); err != nil {
			p.logger.Error(ctx, "Error archiving remote recordings: %v", err)
		}
	}

	return p.processRecording(ctx, localPath, rec)
}

func (p *implPipeline) processRecording(ctx context.Context, audioPath string, rec *domain.RunRecord) domain.Outcome {
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		p.logger.Debug(ctx, "Transcription diagnostics: %+v", err)
		p.logger.Warn(ctx, "Transcription failed. Ending run.")
		rec.Detail = err.Error()
		return domain.OutcomeTranscriptFailed
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	textPath, err := p.store.SaveTranscript(ctx, stem, transcript)
	if err != nil {
		p.logger.Error(ctx, "Error saving transcript: %v", err)
		rec.Detail = err.Error()
		return domain.OutcomeTranscriptFailed
	}
	rec.TranscriptPath = textPath

	summary, err := p.summarizer.Summarize(ctx, transcript.Text)
	if err != nil {
		p.logger.Warn(ctx, "Summary generation failed: %v", err)
		rec.Detail = err.Error()
		return domain.OutcomeSummaryFailed
	}
	if summary == "" {
		p.logger.Warn(ctx, "Summary generation returned no text.")
		return domain.OutcomeSummaryFailed
	}

	summaryPath, err := p.store.SaveSummary(ctx, summary, p.now())
	if err != nil {
		p.logger.Error(ctx, "Error saving summary: %v", err)
		rec.Detail = err.Error()
		return domain.OutcomeFaulted
	}
	rec.SummaryPath = summaryPath

	return domain.OutcomeCompleted
}
