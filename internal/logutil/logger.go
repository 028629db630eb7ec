package logutil

import (
	"context"
	"log/slog"
)

// ComponentLogger provides component-scoped structured logging.
type ComponentLogger struct {
	slogger   *slog.Logger
	component string
}

// NewLogger creates a logger scoped to a named component. The global logger
// is resolved on every call, so loggers created before Setup still follow it.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{component: component}
}

func (l *ComponentLogger) base() *slog.Logger {
	if l.slogger != nil {
		return l.slogger
	}
	return Logger().With("component", l.component)
}

// WithOperation returns a logger with the operation name attached.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return &ComponentLogger{
		slogger:   l.base().With("operation", name),
		component: l.component,
	}
}

// WithFields returns a logger with additional key-value pairs attached.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	return &ComponentLogger{
		slogger:   l.base().With(fields...),
		component: l.component,
	}
}

// Enabled reports whether records at level would be written.
func (l *ComponentLogger) Enabled(level slog.Level) bool {
	return l.base().Enabled(context.Background(), level)
}

// Component returns the component name.
func (l *ComponentLogger) Component() string {
	return l.component
}

func (l *ComponentLogger) Debug(msg string, args ...any) { l.base().Debug(msg, args...) }
func (l *ComponentLogger) Info(msg string, args ...any)  { l.base().Info(msg, args...) }
func (l *ComponentLogger) Warn(msg string, args ...any)  { l.base().Warn(msg, args...) }
func (l *ComponentLogger) Error(msg string, args ...any) { l.base().Error(msg, args...) }
