package starfield

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes leveled, timestamped lines through charmbracelet/log.
type DefaultLogger struct {
	l *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerTo(os.Stderr, prefix, debug)
}

func NewLoggerTo(w io.Writer, prefix string, debug bool) *DefaultLogger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return &DefaultLogger{
		l: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
			Prefix:          prefix,
		}),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.l.GetLevel() <= log.DebugLevel
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.l.SetLevel(log.DebugLevel)
	} else {
		l.l.SetLevel(log.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.l.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.l.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.l.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.l.Errorf(format, args...) }

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Output defaults to stderr.
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	if m.Output == nil {
		app.addResources(NewDefaultLogger(m.Prefix, m.Debug))
		return
	}
	app.addResources(NewLoggerTo(m.Output, m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
