package logger

import "context"

// Logger is the leveled logging handle passed to every component. There is
// no process-wide singleton; each component receives its Logger explicitly.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	Critical(ctx context.Context, msg string, args ...interface{})
}
