package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Results, errors with hints, final status
//	1 (-v)      - + Files written, walk summary
//	2 (-vv)     - + Resolved configuration, section boundaries
//	3 (-vvv)    - + Every accepted or skipped enum

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Generated files, dump output
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress    // Per-target "wrote file" lines
	OutputWalkSummary // Accepted/skipped counts

	// Level 2 (-vv) - Detailed
	OutputConfig   // Config values loaded/applied
	OutputSections // <enums> section boundaries

	// Level 3 (-vvv) - Trace
	OutputEntries // Per-enum accept/skip decisions
)

// categoryLevels maps each category to its minimum verbosity.
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputErrors:      VerbosityUser,
	OutputUserStatus:  VerbosityUser,
	OutputProgress:    VerbosityInfo,
	OutputWalkSummary: VerbosityInfo,
	OutputConfig:      VerbosityDebug,
	OutputSections:    VerbosityDebug,
	OutputEntries:     VerbosityTrace,
}

// ShouldOutput reports whether a category is visible at the given verbosity.
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return false
	}
	return verbosity >= minLevel
}
