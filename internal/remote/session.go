package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

var audioExtensions = map[string]struct{}{
	".wav": {},
	".mp3": {},
}

type implSession struct {
	fs        remoteFS
	conn      io.Closer
	remoteDir string
	logger    logger.Logger
	closed    bool
}

func isAudioFile(name string) bool {
	_, ok := audioExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

// newestAudioFile picks the entry with the greatest modification time among
// regular audio files. Equal timestamps resolve to the lexicographically
// greatest name so the selection stays deterministic across listings.
func newestAudioFile(entries []os.FileInfo) os.FileInfo {
	var newest os.FileInfo
	for _, e := range entries {
		if e.IsDir() || !isAudioFile(e.Name()) {
			continue
		}
		if newest == nil ||
			e.ModTime().After(newest.ModTime()) ||
			(e.ModTime().Equal(newest.ModTime()) && e.Name() > newest.Name()) {
			newest = e
		}
	}
	return newest
}

func (s *implSession) FetchNewest(ctx context.Context, destDir string) (string, error) {
	entries, err := s.fs.ReadDir(s.remoteDir)
	if err != nil {
		return "", fmt.Errorf("list remote directory %s: %w", s.remoteDir, err)
	}

	newest := newestAudioFile(entries)
	if newest == nil {
		s.logger.Warn(ctx, "No audio files found in remote directory %s", s.remoteDir)
		return "", nil
	}

	remotePath := path.Join(s.remoteDir, newest.Name())
	localPath := filepath.Join(destDir, newest.Name())

	src, err := s.fs.Open(remotePath)
	if err != nil {
		return "", fmt.Errorf("open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create local file %s: %w", localPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("download %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("flush local file %s: %w", localPath, err)
	}

	s.logger.Info(ctx, "Downloaded recording: %s", localPath)
	return localPath, nil
}

// Archive moves every remote audio file into an archive directory that sits
// next to the recording directory. Only a missing archive directory is
// repaired here; any other failure propagates for the caller to log and
// swallow, since the downloaded local copy stays valid either way.
func (s *implSession) Archive(ctx context.Context) error {
	archiveDir := path.Join(path.Dir(strings.TrimSuffix(s.remoteDir, "/")), "archive")

	if _, err := s.fs.Stat(archiveDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat archive directory %s: %w", archiveDir, err)
		}
		if err := s.fs.Mkdir(archiveDir); err != nil {
			return fmt.Errorf("create archive directory %s: %w", archiveDir, err)
		}
		s.logger.Info(ctx, "Created archive directory: %s", archiveDir)
	}

	entries, err := s.fs.ReadDir(s.remoteDir)
	if err != nil {
		return fmt.Errorf("list remote directory %s: %w", s.remoteDir, err)
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() || !isAudioFile(e.Name()) {
			continue
		}
		if err := s.fs.Rename(path.Join(s.remoteDir, e.Name()), path.Join(archiveDir, e.Name())); err != nil {
			return fmt.Errorf("archive %s: %w", e.Name(), err)
		}
		moved++
	}

	s.logger.Info(ctx, "Archived %d recordings to %s", moved, archiveDir)
	return nil
}

// Close shuts down the SFTP subsystem and the SSH connection. Safe to call
// more than once; only the first call does work.
func (s *implSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	sftpErr := s.fs.Close()
	sshErr := s.conn.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}
