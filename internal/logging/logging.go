// Package logging builds the process logger. The terminal belongs to the
// game, so logs go to a file unless configured otherwise.
package logging

import (
	"fmt"

	"swipe/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger from cfg. An empty path discards output.
func New(cfg config.Log) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{cfg.Path},
		ErrorOutputPaths: []string{cfg.Path},
		DisableCaller:    true,
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

// Install builds the logger and makes it the global one used by zap.L.
// The returned function restores the previous global and flushes.
func Install(cfg config.Log) (*zap.Logger, func(), error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
