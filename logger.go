package vegamdb

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the fixed set of fields this engine's
// operations log: insert/build/search/save/load.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil, it
// falls back to a text handler writing to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// LogAppend logs a vector append.
func (l *Logger) LogAppend(ctx context.Context, count, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed", "count", count, "dimension", dimension, "error", err)
		return
	}
	l.DebugContext(ctx, "append completed", "count", count, "dimension", dimension)
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, indexName string, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed", "index", indexName, "n", n, "error", err)
		return
	}
	l.InfoContext(ctx, "build completed", "index", indexName, "n", n)
}

// LogSearch logs a search.
func (l *Logger) LogSearch(ctx context.Context, indexName string, k, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "index", indexName, "k", k, "error", err)
		return
	}
	l.DebugContext(ctx, "search completed", "index", indexName, "k", k, "found", found)
}

// LogSave logs a save.
func (l *Logger) LogSave(ctx context.Context, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed", "n", n, "error", err)
		return
	}
	l.InfoContext(ctx, "save completed", "n", n)
}

// LogLoad logs a load.
func (l *Logger) LogLoad(ctx context.Context, n int, indexName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "error", err)
		return
	}
	l.InfoContext(ctx, "load completed", "n", n, "index", indexName)
}
