// Package logging builds the process logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and the optional rotating file sink.
type Config struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// New returns a production logger writing to stdout and, when a file is
// configured, to a size-rotated log file.
func New(cfg Config) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 50),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 30),
			Compress:   true,
		}
		sinks = append(sinks, zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller())
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
