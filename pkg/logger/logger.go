// Package logger is the structured logger shared by the planner server and
// the skillplan CLI. It wraps log/slog behind a small interface so that
// components take a Logger, name themselves with Named, and attach typed
// fields instead of formatting strings.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// callerDepth skips runtime.Callers, caller, log and the exported method.
const callerDepth = 4

// Logger is what components log through.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// Named returns a child whose fields are grouped under name, so an
	// ingest warning prints as "ingest.type=Inherit".
	Named(name string) Logger
}

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// String builds a string field.
func String(key, val string) Field { return Field{Key: key, Value: val} }

// Int builds an integer field.
func Int(key string, val int) Field { return Field{Key: key, Value: val} }

// Float64 builds a float field; ratings and latencies use it.
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }

// Error builds the conventional "error" field.
func Error(err error) Field { return Field{Key: "error", Value: err} }

var (
	global   Logger
	levelVar slog.LevelVar
)

// ErrNilWriter is returned by InitWithWriter for a nil writer.
var ErrNilWriter = errors.New("logger writer is nil")

// Init installs the global logger on stdout. The server binary uses it.
func Init() error {
	return InitWithWriter(os.Stdout)
}

// InitWithWriter installs the global logger on w at info level. The CLI
// passes stderr so reports on stdout stay machine-readable.
func InitWithWriter(w io.Writer) error {
	if w == nil {
		return ErrNilWriter
	}
	levelVar.Set(slog.LevelInfo)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar})
	global = &slogLogger{l: slog.New(h)}
	return nil
}

// Get returns the global logger. It panics before Init.
func Get() Logger {
	if global == nil {
		panic("logger not initialized; call logger.Init first")
	}
	return global
}

// Named is shorthand for Get().Named(name).
func Named(name string) Logger {
	return Get().Named(name)
}

// SetLevelString sets the global level from a config value: debug, info,
// warn/warning or error, case-insensitive. Empty means info.
func SetLevelString(level string) error {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "", "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	levelVar.Set(l)
	return nil
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Named(name string) Logger {
	return &slogLogger{l: s.l.WithGroup(name)}
}

func (s *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelDebug, msg, fields)
}

func (s *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelInfo, msg, fields)
}

func (s *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelWarn, msg, fields)
}

func (s *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	s.log(ctx, slog.LevelError, msg, fields)
}

func (s *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !s.l.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	attrs = append(attrs, slog.String("source", caller()))
	s.l.LogAttrs(ctx, level, msg, attrs...)
}

// caller reports the logging call site relative to the working directory.
func caller() string {
	var pcs [1]uintptr
	if runtime.Callers(callerDepth, pcs[:]) == 0 {
		return "unknown:0"
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	file := frame.File
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, file); err == nil {
			file = rel
		}
	} else {
		file = filepath.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, frame.Line)
}
