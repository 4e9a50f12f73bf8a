package learn

import (
	"log/slog"
	"os"
)

// logLevel controls the level of the package logger.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// Logger returns the shared logger used when no logger is injected.
// Its level follows SetVerbose.
func Logger() *slog.Logger {
	return defaultLogger
}
