package contract

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	loggerMu sync.RWMutex
	logger   = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "streak",
		Level:  level,
		Output: w,
	})
}

// ConfigureLogging replaces the operator log destination and verbosity.
func ConfigureLogging(w io.Writer, verbose bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = newLogger(w, verbose)
}

// Logger returns the shared operator logger.
func Logger() hclog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error(msg, "error", err)
	os.Exit(1)
}

// LogWarn logs a warning message with its cause.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, "error", err)
}

// LogDebug logs a debug message with key/value context.
func LogDebug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
