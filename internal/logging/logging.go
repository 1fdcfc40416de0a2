// Package logging builds the application logger. The TUI owns the terminal,
// so interactive runs log JSON to a file under the XDG state directory.
package logging

import (
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

// Options selects where and how much to log.
type Options struct {
	Debug bool
	// Console logs human-readable text to stderr instead of the log file.
	Console bool
	// Path overrides the default log file location.
	Path string
}

// DefaultPath returns $XDG_STATE_HOME/folio/folio.log, creating the
// directory.
func DefaultPath() (string, error) {
	return xdg.StateFile("folio/folio.log")
}

// New returns a configured logger and a closer for its output.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if opts.Console {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(nil), nil
	}

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(f)
	return logger, f, nil
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
