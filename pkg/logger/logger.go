package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide logger. It falls back to slog's default until Init runs.
var Log = slog.Default()

func Init(ginMode string) {
	level := slog.LevelDebug
	if ginMode == "release" {
		level = slog.LevelInfo
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
