package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var levels = map[string]int{
	"debug":    0,
	"info":     1,
	"warn":     2,
	"error":    3,
	"critical": 4,
}

type implLogger struct {
	logger *log.Logger
	level  string
}

// New creates a Logger writing to stdout at the given minimum level.
func New(level string) Logger {
	return &implLogger{
		logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  strings.ToLower(level),
	}
}

// NewWithFile creates a Logger writing to stdout and to a dated log file
// under logDir. On failure it returns a stdout-only Logger together with the
// error so the caller can report it and keep running.
func NewWithFile(level, logDir string) (Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return New(level), fmt.Errorf("create log directory %s: %w", logDir, err)
	}

	name := fmt.Sprintf("dispatch_scribe_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return New(level), fmt.Errorf("open log file: %w", err)
	}

	return &implLogger{
		logger: log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags),
		level:  strings.ToLower(level),
	}, nil
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}

func (l *implLogger) Critical(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("critical") {
		l.logger.Printf("[CRITICAL] "+msg, args...)
	}
}
