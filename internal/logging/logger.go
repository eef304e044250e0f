// Package logging builds the zap logger used by the pathcodec CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"pathcodec/internal/config"
)

// Rotation floors, applied when a file output rotates.
const (
	minSizeMB  = 10
	minBackups = 1
	minAgeDays = 7
)

// Setup builds a zap.Logger from c. The "stdout" and "stderr" outputs
// write to the given writers, anything else is a file path. The caller
// should defer logger.Sync().
func Setup(c config.LogConfig, stdout, stderr io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core

	for _, out := range c.Outputs {
		ws, err := sink(out, c, stdout, stderr)
		if err != nil {
			return nil, err
		}

		cores = append(cores, zapcore.NewCore(newEncoder(c, isTerminal(ws)), ws, level))
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

// ParseLevel maps a configured level name to an atomic zap level.
func ParseLevel(name string) (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.SetLevel(zap.DebugLevel)
	case "", "info":
		level.SetLevel(zap.InfoLevel)
	case "warn", "warning":
		level.SetLevel(zap.WarnLevel)
	case "error":
		level.SetLevel(zap.ErrorLevel)
	default:
		return level, fmt.Errorf("unknown log level %q", name)
	}

	return level, nil
}

// newEncoder colors console levels only when the output is a terminal.
func newEncoder(c config.LogConfig, color bool) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	if c.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}

	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.ToLower(c.Format) == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}

	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zapcore.NewConsoleEncoder(encCfg)
}

func isTerminal(ws zapcore.WriteSyncer) bool {
	f, ok := ws.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func sink(out string, c config.LogConfig, stdout, stderr io.Writer) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(out) {
	case "stdout":
		return zapcore.AddSync(stdout), nil
	case "stderr":
		return zapcore.AddSync(stderr), nil
	}

	if c.Rotation.Enable {
		name := out
		if strings.TrimSpace(c.Rotation.Filename) != "" {
			name = c.Rotation.Filename
		}

		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   name,
			MaxSize:    max(c.Rotation.MaxSizeMB, minSizeMB),
			MaxBackups: max(c.Rotation.MaxBackups, minBackups),
			MaxAge:     max(c.Rotation.MaxAgeDays, minAgeDays),
			Compress:   c.Rotation.Compress,
		}), nil
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("log output %s: %w", out, err)
		}
	}

	f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log output %s: %w", out, err)
	}

	return zapcore.AddSync(f), nil
}
