// Package logging is docview's diagnostic log. It is off unless DOCVIEW_LOG_FILE names a file that can be opened for appending; DOCVIEW_LOG_LEVEL
// (error, warning, notice, info, or debug; default info) sets verbosity. Messages go through commonlog's simple backend.
//
// Packages hold a named *Logger from Get. Loggers resolve the backend on each call, so they may be created in package-level vars before configuration.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const (
	EnvFile  = "DOCVIEW_LOG_FILE"
	EnvLevel = "DOCVIEW_LOG_LEVEL"
)

// verbosityOff is the commonlog verbosity that disables all output.
const verbosityOff = -4

var (
	once sync.Once
	mu   sync.Mutex
)

// Init configures logging from the environment. Only the first call has any effect; later calls (and calls after Configure) are no-ops. A bad level or an unusable
// file leaves logging off.
func Init() {
	once.Do(func() {
		_ = configure(os.Getenv(EnvFile), os.Getenv(EnvLevel))
	})
}

// Configure sends log output at or above level to path, replacing any earlier configuration. An empty path turns logging off. It returns an error (and turns logging
// off) if level is unknown or path cannot be opened for appending.
func Configure(path, level string) error {
	once.Do(func() {})
	return configure(path, level)
}

func configure(path, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		commonlog.Configure(verbosityOff, nil)
		return nil
	}
	verbosity, err := parseLevel(level)
	if err != nil {
		commonlog.Configure(verbosityOff, nil)
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		commonlog.Configure(verbosityOff, nil)
		return fmt.Errorf("log file: %w", err)
	}
	f.Close()

	commonlog.Configure(verbosity, &path)
	return nil
}

// parseLevel maps a level name to a commonlog verbosity.
func parseLevel(level string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return -2, nil
	case "warning", "warn":
		return -1, nil
	case "notice":
		return 0, nil
	case "", "info":
		return 1, nil
	case "debug":
		return 2, nil
	}
	return verbosityOff, fmt.Errorf("unknown log level %q", level)
}

// Logger is a named logger.
type Logger struct {
	name string
}

// Get returns the logger named name (ex: "docview.parse").
func Get(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) backend() commonlog.Logger {
	Init()
	return commonlog.GetLogger(l.name)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.backend().Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.backend().Infof(format, args...)
}

func (l *Logger) Noticef(format string, args ...any) {
	l.backend().Noticef(format, args...)
}

func (l *Logger) Warningf(format string, args ...any) {
	l.backend().Warningf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.backend().Errorf(format, args...)
}
