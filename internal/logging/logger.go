package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

const prefix = "healthydev"

var (
	mu            sync.Mutex
	defaultLogger = New(os.Stderr, false)
)

// New returns a logger writing to w at info level, or debug level when verbose.
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	logger.SetLevel(levelFor(verbose))
	return logger
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// SetVerbose switches the process-wide logger between info and debug.
func SetVerbose(verbose bool) {
	Default().SetLevel(levelFor(verbose))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, false)
}

func levelFor(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}
