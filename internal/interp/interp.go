// Package interp provides a reference tree-walking executor over the IR.
// It is deliberately NOT part of the compiler core spec.md describes —
// spec.md §4.9 names "an abstract interpreter" only as an external
// collaborator consumed by the core — but the core's testable properties
// (semantic preservation, idempotence under a real execution) need a
// runnable reference, and the REPL and CLI -run flag need something to
// execute IR against. This is that something: simple by design, not an
// optimizing VM.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"bfc/internal/ir"
)

// DefaultTapeSize is the conventional Brainfuck tape length.
const DefaultTapeSize = 30000

// EOFPolicy selects what a Read does once the input is exhausted.
// spec.md §9 leaves this undecided; SPEC_FULL.md's Open Questions section
// resolves it as a configuration option with exactly these three values.
type EOFPolicy int

const (
	EOFUnchanged EOFPolicy = iota // leave the current cell's value as-is
	EOFZero                      // write 0
	EOFMinusOne                  // write 255 (-1 as a wrapping Cell)
)

// ParseEOFPolicy maps the three recognized configuration values
// ("unchanged", "zero", "minus_one") to an EOFPolicy.
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch s {
	case "unchanged":
		return EOFUnchanged, nil
	case "zero":
		return EOFZero, nil
	case "minus_one", "minus-one":
		return EOFMinusOne, nil
	default:
		return 0, fmt.Errorf("unrecognized EOF policy %q (want unchanged, zero, or minus_one)", s)
	}
}

// Interpreter executes IR against a fixed-size tape.
type Interpreter struct {
	Tape []ir.Cell
	Head int
	In   io.Reader
	Out  io.Writer
	EOF  EOFPolicy

	reader *bufio.Reader
	eof    bool
}

// New builds an interpreter with a fresh zeroed tape of size cells.
func New(size int, in io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{
		Tape: make([]ir.Cell, size),
		In:   in,
		Out:  out,
		EOF:  EOFZero,
	}
}

// Run executes program from the current tape/head state.
func (vm *Interpreter) Run(program ir.Program) error {
	return vm.run([]ir.Instruction(program))
}

func (vm *Interpreter) run(instrs []ir.Instruction) error {
	for _, instr := range instrs {
		if err := vm.exec(instr); err != nil {
			return err
		}
	}
	return nil
}

func (vm *Interpreter) exec(instr ir.Instruction) error {
	switch i := instr.(type) {
	case ir.Increment:
		vm.set(i.Offset, vm.cellAt(i.Offset).Add(i.Amount))
	case ir.PointerIncrement:
		vm.Head += int(i.Amount)
	case ir.Read:
		return vm.doRead()
	case ir.Write:
		return vm.doWrite()
	case ir.Loop:
		for vm.current() != 0 {
			if err := vm.run(i.Body); err != nil {
				return err
			}
		}
	case ir.Set:
		vm.set(i.Offset, i.Amount)
	case ir.MultiplyMove:
		cur := vm.current()
		for offset, factor := range i.Map {
			vm.set(offset, vm.cellAt(offset).Add(factor.Mul(cur)))
		}
		vm.set(0, 0)
	default:
		return fmt.Errorf("interp: unhandled instruction %T", instr)
	}
	return nil
}

func (vm *Interpreter) index(offset ir.Offset) int {
	n := len(vm.Tape)
	idx := (vm.Head + int(offset)) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func (vm *Interpreter) cellAt(offset ir.Offset) ir.Cell { return vm.Tape[vm.index(offset)] }
func (vm *Interpreter) current() ir.Cell                { return vm.cellAt(0) }
func (vm *Interpreter) set(offset ir.Offset, v ir.Cell) { vm.Tape[vm.index(offset)] = v }

func (vm *Interpreter) doRead() error {
	if vm.reader == nil {
		vm.reader = bufio.NewReader(vm.In)
	}

	b, err := vm.reader.ReadByte()
	if err == io.EOF {
		vm.eof = true
		switch vm.EOF {
		case EOFUnchanged:
			return nil
		case EOFMinusOne:
			vm.set(0, -1)
			return nil
		default:
			vm.set(0, 0)
			return nil
		}
	}
	if err != nil {
		return fmt.Errorf("interp: read: %w", err)
	}

	vm.set(0, ir.Cell(int8(b)))
	return nil
}

func (vm *Interpreter) doWrite() error {
	_, err := vm.Out.Write([]byte{byte(vm.current())})
	if err != nil {
		return fmt.Errorf("interp: write: %w", err)
	}
	return nil
}
