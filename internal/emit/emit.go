// Package emit defines the boundary types a native-code emitter consumes,
// per spec.md §4.9. Generating actual machine code is explicitly out of
// scope (spec.md §1, "Deliberately out of scope") — this package only
// gives the emitter/interpreter boundary a concrete Go shape, plus the one
// algorithm spec.md names outright: run-length-encoding a known tape
// prefix into stores.
package emit

import "bfc/internal/ir"

// Input is what a retargetable emitter receives: the residual
// (post-optimization, post-precomputation) IR to compile, a known tape
// prefix to materialize before any of it runs, the head position once
// that prefix has been applied, and any output already known to be
// constant.
type Input struct {
	IR           []ir.Instruction
	CellsPrefix  []ir.Cell
	HeadIndex    int
	StaticOutput []byte
}

// PrefixRun is one run of a run-length-encoded cell prefix: Value repeated
// Count times starting at Offset.
type PrefixRun struct {
	Offset int
	Value  ir.Cell
	Count  int
}

// RunLengthEncodePrefix implements the tape-initialization contract named
// in spec.md §4.9 ("initialize the tape with a run-length-encoded
// sequence of stores using the prefix vector"). Runs of the zero cell are
// omitted entirely, since a fresh tape already starts zeroed and an
// emitter need not emit a store for it.
func RunLengthEncodePrefix(prefix []ir.Cell) []PrefixRun {
	var runs []PrefixRun

	i := 0
	for i < len(prefix) {
		if prefix[i] == 0 {
			i++
			continue
		}

		value := prefix[i]
		start := i
		for i < len(prefix) && prefix[i] == value {
			i++
		}

		runs = append(runs, PrefixRun{Offset: start, Value: value, Count: i - start})
	}

	return runs
}
