package lsp

import (
	"bfc/internal/diag"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertDiagnostic turns a parser diagnostic into its LSP wire form. The
// parser stops at the first error, so there is ever at most one of these
// per document — unlike a language with recoverable parsing, there is no
// list to build here.
func ConvertDiagnostic(d *diag.Diagnostic) protocol.Diagnostic {
	line, col := 0, 0
	endCol := col + 1
	if d.Position != nil && d.Source != nil {
		l, c := linePosition(*d.Source, d.Position.Start)
		line, col = l, c
		length := d.Position.End - d.Position.Start + 1
		if length < 1 {
			length = 1
		}
		endCol = col + length
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(endCol)},
		},
		Severity: ptrSeverity(severityOf(d.Level)),
		Source:   ptrString("bfc"),
		Message:  d.Message,
	}
}

func severityOf(level diag.Level) protocol.DiagnosticSeverity {
	if level == diag.Warning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

// linePosition returns the 0-based line and column of a byte offset into
// source, for wire-format positions.
func linePosition(source string, offset int) (line, col int) {
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
