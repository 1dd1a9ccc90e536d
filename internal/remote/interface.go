package remote

import "context"

// Source dials the remote recording host. One Session per pipeline run.
type Source interface {
	Dial(ctx context.Context) (Session, error)
}

// Session is an authenticated file-transfer session. The owner must call
// Close exactly once on every exit path; Close tolerates repeated calls.
type Session interface {
	// FetchNewest downloads the most recently modified audio file from the
	// remote directory into destDir and returns the local path. An empty
	// path with a nil error means the directory held no matching file.
	FetchNewest(ctx context.Context, destDir string) (string, error)
	// Archive relocates all remote audio files into an archive directory
	// next to the recording directory, creating it if needed.
	Archive(ctx context.Context) error
	Close() error
}
