package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

// New creates a Watcher over inboxDir. The directory must already exist.
func New(inboxDir string, handler Handler, log logger.Logger) (Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(inboxDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch inbox %s: %w", inboxDir, err)
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  w,
	}, nil
}
