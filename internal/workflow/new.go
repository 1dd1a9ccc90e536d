package workflow

import (
	"time"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
	"github.com/scannerworks/dispatch-scribe/internal/remote"
	"github.com/scannerworks/dispatch-scribe/internal/store"
	"github.com/scannerworks/dispatch-scribe/internal/summarizer"
	"github.com/scannerworks/dispatch-scribe/internal/transcriber"
)

type implPipeline struct {
	source      remote.Source
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	store       *store.Store
	history     Recorder
	cleanup     bool
	logger      logger.Logger
	now         func() time.Time
}

// New creates a Pipeline. history may be nil to disable run tracking.
func New(
	source remote.Source,
	tr transcriber.Transcriber,
	sum summarizer.Summarizer,
	st *store.Store,
	history Recorder,
	cleanup bool,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		source:      source,
		transcriber: tr,
		summarizer:  sum,
		store:       st,
		history:     history,
		cleanup:     cleanup,
		logger:      log,
		now:         time.Now,
	}
}
