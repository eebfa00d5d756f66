package logger

import corelogger "github.com/maelqr/ecosched/core/logger"

// Logger mirrors the core logging interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The output format is
// selected through the APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
