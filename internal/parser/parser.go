// Package parser turns Brainfuck source text into the IR defined in
// internal/ir, or a diagnostic describing why it could not.
package parser

import (
	"bfc/internal/diag"
	"bfc/internal/ir"
)

// frame records the in-progress instruction buffer of an enclosing scope
// and the byte index of the '[' that opened it, for diagnostics.
type frame struct {
	instructions []ir.Instruction
	openIndex    int
}

// Parse runs the single left-to-right scan of spec.md §4.1 over source,
// maintaining a stack of open-loop frames. filename is used only for
// diagnostics. On success it returns a well-formed instruction sequence;
// on the first structural error (an unmatched '[' or ']') it returns a
// Diagnostic instead.
//
// Bytes outside the eight recognized tokens are comments and are skipped
// silently, including any non-ASCII byte (spec.md §6).
func Parse(filename, source string) (ir.Program, *diag.Diagnostic) {
	var instructions []ir.Instruction
	var stack []frame

	src := []byte(source)
	for index := 0; index < len(src); index++ {
		switch src[index] {
		case '+':
			instructions = append(instructions, ir.Increment{Amount: 1, Offset: 0})
		case '-':
			instructions = append(instructions, ir.Increment{Amount: -1, Offset: 0})
		case '>':
			instructions = append(instructions, ir.PointerIncrement{Amount: 1})
		case '<':
			instructions = append(instructions, ir.PointerIncrement{Amount: -1})
		case ',':
			instructions = append(instructions, ir.Read{})
		case '.':
			instructions = append(instructions, ir.Write{})
		case '[':
			stack = append(stack, frame{instructions: instructions, openIndex: index})
			instructions = nil
		case ']':
			if len(stack) == 0 {
				return nil, diag.UnmatchedClose(filename, source, index)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			instructions = append(top.instructions, ir.Loop{Body: instructions})
		default:
			// Comment: not one of the eight tokens, skip silently.
		}
	}

	if len(stack) > 0 {
		// The first frame pushed is the outermost unmatched opener.
		outermost := stack[0]
		return nil, diag.UnmatchedOpen(filename, source, outermost.openIndex)
	}

	return ir.Program(instructions), nil
}
