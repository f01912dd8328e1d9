package interp

import (
	"bytes"

	"bfc/internal/emit"
	"bfc/internal/ir"
)

// Precompute implements the "may execute some prefix symbolically" half of
// the interpreter boundary in spec.md §4.9: it runs the straight-line
// prefix of a program — the instructions before the first Loop or Read —
// against a zeroed tape, and hands the rest back as residual IR together
// with the tape contents and output produced so far.
//
// Only the straight-line prefix is executed, deliberately: once a Loop is
// reached, precomputing through it in general requires either bounding
// its iteration count or proving termination, and spec.md does not
// specify either. A Loop or Read ends the precomputed prefix and
// everything from that instruction onward becomes residual IR.
func Precompute(program ir.Program, prefixSize int) emit.Input {
	vm := New(prefixSize, bytes.NewReader(nil), &bytes.Buffer{})
	out := vm.Out.(*bytes.Buffer)

	instrs := []ir.Instruction(program)
	i := 0
	for ; i < len(instrs); i++ {
		switch instrs[i].(type) {
		case ir.Loop, ir.Read:
			goto done
		}
		// Straight-line instructions cannot fail this VM: no Loop, no
		// Read, and Write only ever errors via the bytes.Buffer sink,
		// which never errors.
		_ = vm.exec(instrs[i])
	}
done:

	head := vm.Head % prefixSize
	if head < 0 {
		head += prefixSize
	}

	return emit.Input{
		IR:           instrs[i:],
		CellsPrefix:  append([]ir.Cell(nil), vm.Tape...),
		HeadIndex:    head,
		StaticOutput: append([]byte(nil), out.Bytes()...),
	}
}
