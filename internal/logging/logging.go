// Package logging builds the zap logger used across workapi.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lu-zhengda/workapi/internal/config"
)

// New builds a logger from the [log] section. Output goes to stderr unless
// a file is configured.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = "msg"
	zc.EncoderConfig.NameKey = "logger"
	zc.EncoderConfig.CallerKey = zapcore.OmitKey
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.Encoding = "json"
		zc.OutputPaths = []string{cfg.File}
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l.Named("workapi"), nil
}

// ForTUI returns a file logger when one is configured and a no-op logger
// otherwise, since stderr output would corrupt the terminal UI.
func ForTUI(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg)
}

func parseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
