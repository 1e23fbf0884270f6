package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across witgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Generation inputs
	FieldProject   = "project"
	FieldInterface = "interface"
	FieldWorld     = "world"
	FieldType      = "type"
	FieldMethod    = "method"
	FieldParam     = "param"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
	FieldOp   = "op"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("witgen.watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	projectLogger := logger.ChildLogger(baseLogger, logger.FieldProject, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
