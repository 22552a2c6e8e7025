package canopy

import (
	"context"
	"log/slog"
	"os"
)

// LevelTrace sits below slog.LevelDebug for per-frame cache chatter.
const LevelTrace = slog.Level(-8)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// Logger returns the logger shared by canopy and its widget packages.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the shared logger. A nil logger restores the default
// stderr text handler.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}
	logger = l
}

// SetLogLevel adjusts the level of the default handler.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// Trace logs at LevelTrace.
func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// warned tracks content-missing warnings so a missing theme or sprite id is
// reported once rather than every frame.
var warned = map[string]bool{}

// WarnOnce logs msg at warning level the first time key is seen.
func WarnOnce(key, msg string, args ...any) {
	if warned[key] {
		return
	}
	warned[key] = true
	logger.Warn(msg, args...)
}
