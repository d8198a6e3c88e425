// Package logging sets up the logrus logger shared by taskview.
//
// The terminal UI owns stdout, so log output goes to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init points the shared logger at path. The returned closer flushes
// and closes the file.
func Init(path, level string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger = l
	return f, nil
}

// SetOutput redirects the shared logger, mostly for tests and the
// non-interactive commands.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Get returns the shared logger.
func Get() *logrus.Logger {
	return logger
}

// WithComponent tags entries with the emitting package.
func WithComponent(name string) *logrus.Entry {
	return logger.WithField("component", name)
}
