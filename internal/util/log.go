package util

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetupLogger installs the debug logger. With verbose false all
// debug logging is discarded.
func SetupLogger(verbose bool) error {
	if !verbose {
		logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	return nil
}

// Logger returns the debug logger.
func Logger() *zap.Logger {
	return logger
}

// SyncLogger flushes buffered log entries. Errors are ignored since
// some platforms refuse to sync a tty.
func SyncLogger() {
	_ = logger.Sync()
}

func zapMessage(format string, a ...interface{}) zap.Field {
	return zap.String("message", fmt.Sprintf(format, a...))
}
