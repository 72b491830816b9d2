package ccvi

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with codec-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds a file path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithMargin adds the margin-of-error field to the logger.
func (l *Logger) WithMargin(margin float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("margin_error", margin),
	}
}

// LogEncode logs a raster-to-document encode.
func (l *Logger) LogEncode(width, height, planes, vectors int, marginError float64, err error) {
	if err != nil {
		l.Error("encode failed",
			"width", width,
			"height", height,
			"margin_error", marginError,
			"error", err,
		)
	} else {
		l.Debug("encode completed",
			"width", width,
			"height", height,
			"margin_error", marginError,
			"planes", planes,
			"vectors", vectors,
		)
	}
}

// LogDecode logs a document-to-raster decode.
func (l *Logger) LogDecode(width, height int, format string, err error) {
	if err != nil {
		l.Error("decode failed",
			"width", width,
			"height", height,
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"width", width,
			"height", height,
			"format", format,
		)
	}
}

// LogMarshal logs a document serialization.
func (l *Logger) LogMarshal(bytes int, err error) {
	if err != nil {
		l.Error("marshal failed", "error", err)
	} else {
		l.Debug("marshal completed", "bytes", bytes)
	}
}

// LogUnmarshal logs a document deserialization.
func (l *Logger) LogUnmarshal(bytes int, err error) {
	if err != nil {
		l.Error("unmarshal failed", "bytes", bytes, "error", err)
	} else {
		l.Debug("unmarshal completed", "bytes", bytes)
	}
}

// LogSave logs a document write to storage.
func (l *Logger) LogSave(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "document saved",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a document read from storage.
func (l *Logger) LogLoad(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "document loaded",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogConvertFile logs a whole-file conversion in either direction.
func (l *Logger) LogConvertFile(ctx context.Context, inputPath, outputPath string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "file conversion failed",
			"input", inputPath,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "file converted",
			"input", inputPath,
			"output", outputPath,
		)
	}
}
