// Package ir defines the intermediate representation for the compiler: a
// tagged-instruction tree produced by the parser and rebuilt, never mutated
// in place, by the optimizer's fixed pass pipeline.
package ir

import "fmt"

// Cell is an 8-bit value with wrapping two's-complement arithmetic. All
// arithmetic on cell contents uses this semantics: overflow wraps modulo
// 256 rather than panicking or saturating.
type Cell int8

// Add returns c+other with wrapping overflow.
func (c Cell) Add(other Cell) Cell {
	return Cell(int8(uint8(c) + uint8(other)))
}

// Mul returns c*other with wrapping overflow, used by MultiplyMove.
func (c Cell) Mul(other Cell) Cell {
	return Cell(int8(uint8(c) * uint8(other)))
}

// Offset is a signed displacement from the current tape head. The parser
// only ever produces offset 0; nonzero offsets are introduced by later
// passes not specified here (see SPEC_FULL.md §9).
type Offset int

// Instruction is a tagged variant of the seven instruction kinds. It is
// implemented by small value-like structs rather than a single struct with
// optional fields, so that a type switch reads as a closed sum type.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Increment adds Amount (wrapping) to the cell at head+Offset.
type Increment struct {
	Amount Cell
	Offset Offset
}

// PointerIncrement moves the head by Amount.
type PointerIncrement struct {
	Amount Offset
}

// Read consumes one byte of input into the current cell. EOF behavior is
// implementation-defined (see internal/interp.EOFPolicy) and is not a
// property of the IR itself.
type Read struct{}

// Write emits the current cell's byte to output.
type Write struct{}

// Loop executes Body repeatedly while the cell at the head is nonzero.
type Loop struct {
	Body []Instruction
}

// Set assigns Amount to the cell at head+Offset. Synthetic: the parser
// never produces a Set; only optimization passes do.
type Set struct {
	Amount Cell
	Offset Offset
}

// MultiplyMove adds Factor*current_cell (wrapping) to the cell at
// head+Offset for every entry, then implicitly zeroes the current cell.
// Synthetic, like Set; no pass in this pipeline produces it, but the
// variant exists so the emitter contract and future passes (copy/multiply
// loop recognition) have somewhere to put their output.
type MultiplyMove struct {
	Map map[Offset]Cell
}

func (Increment) isInstruction()        {}
func (PointerIncrement) isInstruction() {}
func (Read) isInstruction()             {}
func (Write) isInstruction()            {}
func (Loop) isInstruction()             {}
func (Set) isInstruction()              {}
func (MultiplyMove) isInstruction()     {}

func (i Increment) String() string {
	return fmt.Sprintf("Increment{amount:%d, offset:%d}", i.Amount, i.Offset)
}

func (p PointerIncrement) String() string {
	return fmt.Sprintf("PointerIncrement(%d)", p.Amount)
}

func (Read) String() string { return "Read" }

func (Write) String() string { return "Write" }

func (l Loop) String() string {
	return printInstruction(l, 0)
}

func (s Set) String() string {
	return fmt.Sprintf("Set{amount:%d, offset:%d}", s.Amount, s.Offset)
}

func (m MultiplyMove) String() string {
	return fmt.Sprintf("MultiplyMove(%s)", formatMultiplyMap(m.Map))
}

// Equal reports whether two instruction sequences are structurally
// identical, recursing into Loop bodies. Used by tests and by passes that
// need to detect a fixed point (e.g. "is this loop body exactly [-]?").
func Equal(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !instructionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func instructionEqual(a, b Instruction) bool {
	switch av := a.(type) {
	case Increment:
		bv, ok := b.(Increment)
		return ok && av == bv
	case PointerIncrement:
		bv, ok := b.(PointerIncrement)
		return ok && av == bv
	case Read:
		_, ok := b.(Read)
		return ok
	case Write:
		_, ok := b.(Write)
		return ok
	case Set:
		bv, ok := b.(Set)
		return ok && av == bv
	case Loop:
		bv, ok := b.(Loop)
		return ok && Equal(av.Body, bv.Body)
	case MultiplyMove:
		bv, ok := b.(MultiplyMove)
		if !ok || len(av.Map) != len(bv.Map) {
			return false
		}
		for k, v := range av.Map {
			if bv.Map[k] != v {
				return false
			}
		}
		return true
	default:
		return false
	}
}
