// Package logger builds the process-wide logger.
//
// One logger is created at startup and handed to every component; nothing in
// the tree reaches for a package-level logger. Output goes to stderr and to a
// log file that is truncated on each run.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// FileName is the log file, created in the working directory and truncated
// on each run.
const FileName = "scraper.log"

// New returns a logger writing to stderr and the file at path. The returned
// closer owns the file handle and is closed at process end.
func New(path string) (*log.Logger, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	l := log.NewWithOptions(io.MultiWriter(os.Stderr, f), log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	return l, f, nil
}

// Discard returns a logger that drops everything. Used by tests that do not
// assert on log output.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
