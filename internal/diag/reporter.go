package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Render formats a diagnostic as a colored level tag, a "--> file:line:col"
// location line, a source snippet around the offending line, and a caret
// underline spanning the reported range.
func Render(d *Diagnostic) string {
	var out strings.Builder

	levelColor := levelColorFunc(d.Level)
	dim := color.New(color.Faint).SprintFunc()

	out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))

	if d.Position == nil || d.Source == nil {
		return out.String()
	}

	line, col := lineColumn(*d.Source, d.Position.Start)
	length := d.Position.End - d.Position.Start + 1
	if length < 1 {
		length = 1
	}

	lines := strings.Split(*d.Source, "\n")
	width := lineNumberWidth(line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), d.Filename, line, col))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line >= 1 && line <= len(lines) {
		content := lines[line-1]
		out.WriteString(fmt.Sprintf("%*d %s %s\n", width, line, dim("│"), content))

		marker := strings.Repeat(" ", max(0, col-1)) + levelColor(strings.Repeat("^", length))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	return out.String()
}

func levelColorFunc(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// lineColumn converts a zero-based byte offset into a source string to a
// 1-based (line, column) pair.
func lineColumn(source string, offset int) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
