// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. Unknown levels fall back to info;
// format is "text" or "json".
func New(w io.Writer, level, format string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		l.SetFormatter(log.JSONFormatter)
	}
	return l
}

// Init installs a stderr logger as the package default and returns it.
func Init(level, format string) *log.Logger {
	l := New(os.Stderr, level, format)
	log.SetDefault(l)
	return l
}

// Component returns a child of the default logger tagged with name.
func Component(name string) *log.Logger {
	return log.Default().With("component", name)
}
