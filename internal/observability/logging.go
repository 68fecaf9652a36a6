// Package observability configures structured logging for the scraper. Every
// state transition in the pipeline (navigation outcome, section verdict,
// per-target status) is emitted as a structured event through the logger
// built here.
package observability

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the batch logger: human-readable timestamps on stderr,
// duplicated to logPath when one is given. Returns a cleanup func that closes
// the log file.
func NewLogger(verbose bool, logPath string) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	cleanup := func() {}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, f))
		cleanup = func() { _ = f.Close() }
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger, cleanup, nil
}
