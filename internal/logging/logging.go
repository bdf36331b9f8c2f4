// Package logging builds the zap logger shared by the CLI, the TUI and the
// services.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zamm-dev/diary-mvp/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Common field names so log lines can be grepped consistently
const (
	FieldEntryID = "entryId"
	FieldDate    = "date"
	FieldPath    = "path"
	FieldCount   = "count"
	FieldSkipped = "skipped"
	FieldAction  = "action"
)

// New builds a console-encoded logger writing to cfg.File at cfg.Level. The
// returned closer releases the log file. An empty File logs to stderr.
func New(cfg config.LoggingConfig) (*zap.Logger, io.Closer, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var (
		writer zapcore.WriteSyncer
		closer io.Closer = nopCloser{}
	)
	if cfg.File == "" {
		writer = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = zapcore.Lock(file)
		closer = file
	}

	return NewWithWriter(writer, level), closer, nil
}

// NewWithWriter builds a console-encoded logger on an arbitrary sink
func NewWithWriter(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), w, level)
	return zap.New(core, zap.AddCaller())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
