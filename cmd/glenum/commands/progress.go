package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/glenum/logger"
)

// ProgressEmitter reports build progress to the user.
//
// Implementations include:
// - CLIEmitter: Pretty-printed terminal output using pterm
// - JSONEmitter: One JSON event per line, for scripts and CI
type ProgressEmitter interface {
	// EmitStage announces a build stage (read, render, write).
	EmitStage(stage string, message string)
	// EmitFile reports a written output file.
	EmitFile(target string, path string)
	// EmitComplete prints the final summary.
	EmitComplete(summary map[string]interface{})
	// EmitError reports a failed stage.
	EmitError(stage string, err error)
	// EmitInfo prints an informational message.
	EmitInfo(message string)
}

// NewEmitter picks the emitter matching the logging mode.
func NewEmitter(w io.Writer, jsonOutput bool, verbosity int) ProgressEmitter {
	if jsonOutput {
		return NewJSONEmitter(w)
	}
	return NewCLIEmitter(w, verbosity)
}

// ProgressEvent represents a structured JSON progress event
type ProgressEvent struct {
	Type      string                 `json:"type"`      // "stage", "file", "complete", "error", "info"
	Timestamp time.Time              `json:"timestamp"` // When this event occurred
	Data      map[string]interface{} `json:"data"`      // Event-specific data
}

// JSONEmitter outputs structured JSON events
type JSONEmitter struct {
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w)}
}

func (e *JSONEmitter) emit(kind string, data map[string]interface{}) {
	e.encoder.Encode(ProgressEvent{Type: kind, Timestamp: time.Now(), Data: data})
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

// EmitFile emits a file event as JSON
func (e *JSONEmitter) EmitFile(target string, path string) {
	e.emit("file", map[string]interface{}{"target": target, "path": path})
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{"message": message})
}

// CLIEmitter outputs pretty-printed progress to terminal using pterm
type CLIEmitter struct {
	w         io.Writer
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter writing to w
func NewCLIEmitter(w io.Writer, verbosity int) *CLIEmitter {
	return &CLIEmitter{w: w, verbosity: verbosity}
}

// EmitStage prints a stage announcement
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		pterm.Fprintln(e.w, fmt.Sprintf("%s: %s", pterm.LightCyan(stage), message))
	}
}

// EmitFile prints a written file
func (e *CLIEmitter) EmitFile(target string, path string) {
	pterm.Fprintln(e.w, fmt.Sprintf("%s %s", pterm.Green("wrote"), path)+pterm.Gray(" ("+target+")"))
}

// EmitComplete prints completion summary
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Success.WithWriter(e.w).Println("Generation complete")
	if logger.ShouldOutput(e.verbosity, logger.OutputWalkSummary) {
		for _, key := range sortedKeys(summary) {
			pterm.Fprintln(e.w, fmt.Sprintf("  %s: %v", key, summary[key]))
		}
	}
}

// EmitError prints an error
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.WithWriter(e.w).Printf("Error in %s: %v\n", stage, err)
}

// EmitInfo prints informational message
func (e *CLIEmitter) EmitInfo(message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
		pterm.Info.WithWriter(e.w).Println(message)
	}
}
