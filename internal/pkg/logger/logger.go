package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var root *zap.Logger = zap.NewNop()

// Init builds the process-wide logger. In debug mode logs are colored
// console lines; otherwise JSON for log collectors.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return err
	}
	root = l
	zap.ReplaceGlobals(l)
	return nil
}

// Named returns a child logger with the given name.
func Named(name string) *zap.Logger {
	return root.Named(name)
}

// L returns the root logger.
func L() *zap.Logger { return root }

// Sync flushes buffered log entries.
func Sync() {
	_ = root.Sync()
}
