package watcher

import "context"

// Watcher monitors the local inbox directory for new recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one recording that appeared in the inbox.
type Handler func(ctx context.Context, audioPath string)
