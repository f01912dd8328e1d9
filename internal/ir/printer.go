package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders an instruction sequence into the human-readable debug
// form spec.md §6 requires: one instruction per line, loop bodies indented
// two spaces per nesting level, the word "Loop" on the header line.
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a printer starting at the top nesting level.
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print renders a full program.
func Print(program []Instruction) string {
	p := NewPrinter()
	p.printBlock(program)
	return strings.TrimSuffix(p.output.String(), "\n")
}

// printInstruction renders a single instruction starting at the given
// indent level; it backs Instruction.String() for Loop, whose rendering
// is inherently multi-line.
func printInstruction(instr Instruction, indent int) string {
	p := &Printer{indent: indent}
	p.writeInstruction(instr)
	return strings.TrimSuffix(p.output.String(), "\n")
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) printBlock(instrs []Instruction) {
	for _, instr := range instrs {
		p.writeInstruction(instr)
	}
}

func (p *Printer) writeInstruction(instr Instruction) {
	p.writeIndent()

	loop, ok := instr.(Loop)
	if !ok {
		p.output.WriteString(instr.String())
		p.output.WriteString("\n")
		return
	}

	p.output.WriteString("Loop")
	p.output.WriteString("\n")
	p.indent++
	p.printBlock(loop.Body)
	p.indent--
}

// formatMultiplyMap renders a MultiplyMove's offset->factor map in
// ascending offset order so output is stable across runs (Go map
// iteration order is randomized).
func formatMultiplyMap(m map[Offset]Cell) string {
	offsets := make([]Offset, 0, len(m))
	for o := range m {
		offsets = append(offsets, o)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = fmt.Sprintf("%d: %d", o, m[o])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
