// Package log wraps log/slog with a process-wide logger.
//
// upnote writes its notification payload to stdout, so every handler here
// writes to stderr unless told otherwise.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger *slog.Logger
	mu     sync.RWMutex
)

func init() {
	// Quiet by default; hook runs should only surface warnings
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Level represents logging levels.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Options configures the logger.
type Options struct {
	Level   Level
	JSON    bool
	Output  io.Writer
	Verbose bool // Forces LevelDebug
}

// Configure sets up the global logger.
func Configure(opts Options) {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	level := opts.Level
	if opts.Verbose {
		level = LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	mu.Lock()
	logger = slog.New(handler)
	mu.Unlock()
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// DebugContext logs at debug level with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(ctx, msg, args...)
}

// WarnContext logs at warn level with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(ctx, msg, args...)
}

// Err is a helper for logging errors.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// PlanID is a helper for logging stored plan IDs.
func PlanID(id string) slog.Attr {
	return slog.String("plan_id", id)
}

// Upgrade groups the installed and latest versions of an upgrade.
func Upgrade(from, to string) slog.Attr {
	return slog.Group("upgrade",
		slog.String("from", from),
		slog.String("to", to),
	)
}
