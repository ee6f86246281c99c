package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called.
var Log = zap.NewNop()

func Init() {
	InitWithLevel(zapcore.InfoLevel)
}

func InitWithLevel(level zapcore.Level) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		// Keep the previous logger, logging must never stop the scene.
		Log.Warn("Logger init failed", zap.Error(err))
		return
	}
	Log = l
}

// ParseLevel maps names like "debug" or "warn" to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func Sync() {
	_ = Log.Sync()
}
