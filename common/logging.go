package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the process-wide structured logger. It writes to stderr with RFC3339 timestamps.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "oxy",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

// SetLogLevel parses a level name (debug, info, warn, error) and applies it to the process-wide logger.
//
// Parameters:
//   - level: the level name; empty leaves the current level unchanged
//
// Returns:
//   - error: error if the level name is not recognized
func SetLogLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}
