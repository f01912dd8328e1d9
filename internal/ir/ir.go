package ir

// Program is the top-level instruction sequence produced by the parser
// and rewritten by Optimize. It is a named slice type, not a struct,
// because spec.md §3 defines a program as nothing more than "an ordered
// sequence of instructions" — there is no separate function/block/CFG
// structure the way a richer IR would have.
type Program []Instruction

// Optimize runs the fixed six-pass pipeline (spec.md §4.8) once over the
// program and returns a newly built program. It never mutates the input
// and never fails: every input IR is, by construction, a valid output IR.
func Optimize(program Program) Program {
	return Program(runPipeline([]Instruction(program)))
}

// String renders the program using the same pretty-printer as individual
// instructions, one top-level instruction per line.
func (p Program) String() string {
	return Print(p)
}
