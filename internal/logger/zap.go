package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Unknown level strings fall back to info rather than flooding output.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting stdout.
func newConsoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(os.Stdout)
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), zap.NewAtomicLevelAt(level))
}

// newZapLogger constructs a sugared zap logger with the provided level string.
func newZapLogger(levelStr string) *Logger {
	core := newConsoleCore(toZapLevel(levelStr))
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
	}
}
