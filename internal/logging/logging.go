// Package logging builds the zap logger shared by the pipeline and the front
// ends.
//
// Terminal front ends own the screen, so unless a file sink or stderr is
// requested the logger discards everything.
package logging

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option mutates the zap config and sink settings before the logger is
// built.
type Option func(*zap.Config, *sinks)

type sinks struct {
	file   string
	stderr bool
}

// WithLevel sets the minimum level: debug, info, warn or error. Unknown
// names fall back to info.
func WithLevel(level string) Option {
	return func(cfg *zap.Config, _ *sinks) {
		cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	}
}

// WithDevelopment switches to zap's human readable console encoding.
func WithDevelopment(dev bool) Option {
	return func(cfg *zap.Config, _ *sinks) {
		cfg.Development = dev
		if dev {
			cfg.Encoding = "console"
			cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
	}
}

// WithFile appends JSON lines to path, creating parent directories.
func WithFile(path string) Option {
	return func(_ *zap.Config, s *sinks) {
		s.file = path
	}
}

// WithStderr also writes to stderr.
func WithStderr(on bool) Option {
	return func(_ *zap.Config, s *sinks) {
		s.stderr = on
	}
}

// WithFields attaches fields to every log line.
func WithFields(fields map[string]any) Option {
	return func(cfg *zap.Config, _ *sinks) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]any{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.InitialFields[key] = value
		}
	}
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger from the options. The returned cleanup flushes the
// logger and closes the file sink.
func New(opts ...Option) (*zap.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	var s sinks
	for _, opt := range opts {
		opt(&cfg, &s)
	}

	if s.file == "" && !s.stderr {
		return zap.NewNop(), func() {}, nil
	}

	var enc zapcore.Encoder
	if cfg.Encoding == "console" {
		enc = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	} else {
		enc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	}

	var (
		cores []zapcore.Core
		file  *os.File
	)
	if s.file != "" {
		if dir := filepath.Dir(s.file); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(s.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), cfg.Level))
	}
	if s.stderr {
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(os.Stderr), cfg.Level))
	}

	zopts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		zopts = append(zopts, zap.Development())
	}
	if len(cfg.InitialFields) > 0 {
		keys := make([]string, 0, len(cfg.InitialFields))
		for k := range cfg.InitialFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]zap.Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, zap.Any(k, cfg.InitialFields[k]))
		}
		zopts = append(zopts, zap.Fields(fields...))
	}

	logger := zap.New(zapcore.NewTee(cores...), zopts...)
	cleanup := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return logger, cleanup, nil
}
