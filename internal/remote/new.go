package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/scannerworks/dispatch-scribe/internal/config"
	"github.com/scannerworks/dispatch-scribe/internal/logger"
)

type implSource struct {
	cfg    config.RemoteConfig
	logger logger.Logger
}

// New creates a Source for the configured remote host.
func New(cfg config.RemoteConfig, log logger.Logger) Source {
	return &implSource{cfg: cfg, logger: log}
}

// Dial opens the SSH connection and an SFTP subsystem over it. Unknown host
// keys are accepted without pinning; this matches the trust-on-first-use
// posture of the deployment and is a documented security caveat.
func (s *implSource) Dial(ctx context.Context) (Session, error) {
	keyData, err := os.ReadFile(s.cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read SSH key %s: %w", s.cfg.KeyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("parse SSH key: %w", err)
	}

	sshCfg := &ssh.ClientConfig{
		User:            s.cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}

	addr := s.cfg.Host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "22")
	}

	conn, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session: %w", err)
	}

	s.logger.Info(ctx, "Connected to %s successfully", s.cfg.Host)

	return &implSession{
		fs:        &sftpFS{client: client},
		conn:      conn,
		remoteDir: s.cfg.Dir,
		logger:    s.logger,
	}, nil
}

// remoteFS is the slice of SFTP used by a session, split out so selection and
// archiving logic can run against fakes.
type remoteFS interface {
	ReadDir(path string) ([]os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
	Stat(path string) (os.FileInfo, error)
	Mkdir(path string) error
	Rename(oldname, newname string) error
	Close() error
}

type sftpFS struct {
	client *sftp.Client
}

func (f *sftpFS) ReadDir(path string) ([]os.FileInfo, error) { return f.client.ReadDir(path) }
func (f *sftpFS) Stat(path string) (os.FileInfo, error)      { return f.client.Stat(path) }
func (f *sftpFS) Mkdir(path string) error                    { return f.client.Mkdir(path) }
func (f *sftpFS) Rename(oldname, newname string) error       { return f.client.Rename(oldname, newname) }
func (f *sftpFS) Close() error                               { return f.client.Close() }

func (f *sftpFS) Open(path string) (io.ReadCloser, error) {
	return f.client.Open(path)
}
