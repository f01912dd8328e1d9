// Package diag defines the compiler's diagnostic payload: a plain value
// type carrying a severity, a message and an optional byte-range position
// into the source, plus a Rust-style terminal renderer for it.
//
// Diagnostics are returned as values, never raised — spec.md §7 is
// explicit that neither parser failure kind is recoverable within the
// parser, but both are ordinary data, not panics or Go errors.
package diag

// Level is a diagnostic's severity.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
)

// Position is an inclusive byte-offset range into the source, e.g. [i, i]
// for a single offending character.
type Position struct {
	Start int
	End   int
}

// Diagnostic is the external contract named in spec.md §4.9: a level, a
// filename, a message, an optional position and an optional copy of the
// full source (kept so a renderer can produce a source snippet without
// needing to re-open the file).
type Diagnostic struct {
	Level    Level
	Filename string
	Message  string
	Position *Position
	Source   *string
}

// UnmatchedClose builds the "unmatched ]" diagnostic of spec.md §4.1,
// pointing at the index of the offending ']'.
func UnmatchedClose(filename, source string, index int) *Diagnostic {
	return &Diagnostic{
		Level:    Error,
		Filename: filename,
		Message:  "this ] has no matching [",
		Position: &Position{Start: index, End: index},
		Source:   &source,
	}
}

// UnmatchedOpen builds the "unmatched [" diagnostic of spec.md §4.1,
// pointing at the index of the outermost unclosed '['.
func UnmatchedOpen(filename, source string, index int) *Diagnostic {
	return &Diagnostic{
		Level:    Error,
		Filename: filename,
		Message:  "this [ has no matching ]",
		Position: &Position{Start: index, End: index},
		Source:   &source,
	}
}
