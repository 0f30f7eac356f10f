package logger

import corelogger "github.com/kennelops/kennelplan/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The output format is
// detected via the APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
