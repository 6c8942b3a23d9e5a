package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings.
const (
	// Components
	FieldComponent = "component"
	FieldTarget    = "target"

	// Files and positions
	FieldFile     = "file"
	FieldRegistry = "registry"
	FieldLine     = "line"

	// Registry content
	FieldEnumerant = "enumerant"
	FieldGroup     = "group"
	FieldAPI       = "api"
	FieldVersion   = "version"
	FieldProfile   = "profile"

	// Counts and timing
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
