package ir

// This file implements the fixed six-pass optimization pipeline of
// spec.md §4. Every pass is a pure function: it takes an instruction
// sequence and returns a newly built one, descending into Loop bodies by
// recursion rather than mutating anything in place (spec.md §4.8, §9).

// Pass is a single pipeline stage. Unlike a mutate-in-place analysis pass,
// Apply is pure: its result is what replaces the program, never a
// side effect on the input.
type Pass interface {
	Name() string
	Description() string
	Apply(instrs []Instruction) []Instruction
}

// Pipeline runs its passes once each, in registration order, over the
// top-level instruction sequence. Each pass recurses into nested Loop
// bodies itself, so a single pass over the pipeline is enough to reach
// every nesting level (spec.md §4.8: "No fixed-point iteration is
// required at the top level").
type Pipeline struct {
	passes []Pass
}

// NewPipeline builds the pipeline with the six passes in the fixed order
// spec.md §4.8 mandates.
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.AddPass(combineIncrementsPass{})
	p.AddPass(combinePtrIncrementsPass{})
	p.AddPass(simplifyLoopsPass{})
	p.AddPass(combineSetAndIncrementsPass{})
	p.AddPass(removeDeadLoopsPass{})
	p.AddPass(removeRedundantSetsPass{})
	return p
}

// AddPass appends a pass to the pipeline. Exposed so callers (and tests)
// can build a pipeline with a subset of passes without going through the
// package-level single-pass helpers below.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Run threads instrs through every registered pass in order.
func (p *Pipeline) Run(instrs []Instruction) []Instruction {
	for _, pass := range p.passes {
		instrs = pass.Apply(instrs)
	}
	return instrs
}

func runPipeline(instrs []Instruction) []Instruction {
	return NewPipeline().Run(instrs)
}

// coalesceAdjacent folds a left-to-right run of adjacent instructions
// pairwise: combine(prev, cur) returns the merged instruction and true if
// cur should be absorbed into prev, or (nil, false) if prev should be
// flushed and cur becomes the new accumulator. This is the Go rendering
// of the original Rust implementation's itertools::coalesce traversal
// (SPEC_FULL.md §12) and underlies every pass in spec.md §4.2-4.7 except
// simplify_loops, which rewrites each Loop on its own.
func coalesceAdjacent(instrs []Instruction, combine func(prev, cur Instruction) (Instruction, bool)) []Instruction {
	if len(instrs) == 0 {
		return nil
	}

	result := make([]Instruction, 0, len(instrs))
	prev := instrs[0]
	for _, cur := range instrs[1:] {
		if merged, ok := combine(prev, cur); ok {
			prev = merged
			continue
		}
		result = append(result, prev)
		prev = cur
	}
	return append(result, prev)
}

// mapLoopBodies rewrites every top-level Loop in instrs by passing its
// body through recurse, leaving every other instruction untouched.
func mapLoopBodies(instrs []Instruction, recurse func([]Instruction) []Instruction) []Instruction {
	result := make([]Instruction, len(instrs))
	for i, instr := range instrs {
		if loop, ok := instr.(Loop); ok {
			result[i] = Loop{Body: recurse(loop.Body)}
			continue
		}
		result[i] = instr
	}
	return result
}

// combine_increments (spec.md §4.2): fold adjacent same-offset Increments
// into one, then drop any Increment whose amount is now zero.
type combineIncrementsPass struct{}

func (combineIncrementsPass) Name() string { return "combine_increments" }
func (combineIncrementsPass) Description() string {
	return "fold adjacent same-offset increments, drop zero-amount increments"
}
func (p combineIncrementsPass) Apply(instrs []Instruction) []Instruction {
	return combineIncrements(instrs)
}

func combineIncrements(instrs []Instruction) []Instruction {
	coalesced := coalesceAdjacent(instrs, func(prev, cur Instruction) (Instruction, bool) {
		p, ok1 := prev.(Increment)
		c, ok2 := cur.(Increment)
		if ok1 && ok2 && p.Offset == c.Offset {
			return Increment{Amount: p.Amount.Add(c.Amount), Offset: p.Offset}, true
		}
		return nil, false
	})

	nonZero := make([]Instruction, 0, len(coalesced))
	for _, instr := range coalesced {
		if inc, ok := instr.(Increment); ok && inc.Amount == 0 {
			continue
		}
		nonZero = append(nonZero, instr)
	}

	return mapLoopBodies(nonZero, combineIncrements)
}

// combine_ptr_increments (spec.md §4.3): identical to combine_increments
// but over PointerIncrement, which carries no offset to match on.
type combinePtrIncrementsPass struct{}

func (combinePtrIncrementsPass) Name() string { return "combine_ptr_increments" }
func (combinePtrIncrementsPass) Description() string {
	return "fold adjacent pointer increments, drop zero-amount moves"
}
func (p combinePtrIncrementsPass) Apply(instrs []Instruction) []Instruction {
	return combinePtrIncrements(instrs)
}

func combinePtrIncrements(instrs []Instruction) []Instruction {
	coalesced := coalesceAdjacent(instrs, func(prev, cur Instruction) (Instruction, bool) {
		p, ok1 := prev.(PointerIncrement)
		c, ok2 := cur.(PointerIncrement)
		if ok1 && ok2 {
			return PointerIncrement{Amount: p.Amount + c.Amount}, true
		}
		return nil, false
	})

	nonZero := make([]Instruction, 0, len(coalesced))
	for _, instr := range coalesced {
		if ptr, ok := instr.(PointerIncrement); ok && ptr.Amount == 0 {
			continue
		}
		nonZero = append(nonZero, instr)
	}

	return mapLoopBodies(nonZero, combinePtrIncrements)
}

// simplify_loops (spec.md §4.4): rewrite a loop whose entire body is the
// single instruction Increment{-1, 0} into Set{0, 0}. Multi-decrement
// loops like [--] are left untouched: they only zero the cell when the
// starting value happens to be a multiple of the step, so the rewrite
// would not be semantics-preserving in general.
type simplifyLoopsPass struct{}

func (simplifyLoopsPass) Name() string { return "simplify_loops" }
func (simplifyLoopsPass) Description() string {
	return "rewrite [-]-shaped loops to a direct zeroing Set"
}
func (p simplifyLoopsPass) Apply(instrs []Instruction) []Instruction {
	return simplifyLoops(instrs)
}

var decrementOnlyLoopBody = []Instruction{Increment{Amount: -1, Offset: 0}}

func simplifyLoops(instrs []Instruction) []Instruction {
	result := make([]Instruction, len(instrs))
	for i, instr := range instrs {
		loop, ok := instr.(Loop)
		if !ok {
			result[i] = instr
			continue
		}
		if Equal(loop.Body, decrementOnlyLoopBody) {
			result[i] = Set{Amount: 0, Offset: 0}
			continue
		}
		result[i] = Loop{Body: simplifyLoops(loop.Body)}
	}
	return result
}

// remove_dead_loops (spec.md §4.5): a Loop immediately following a
// Set{0, 0} can never execute, since a loop only runs while its cell is
// nonzero. The Set itself is retained — only the dead Loop is dropped.
type removeDeadLoopsPass struct{}

func (removeDeadLoopsPass) Name() string { return "remove_dead_loops" }
func (removeDeadLoopsPass) Description() string {
	return "drop loops provably unreachable because the cell is known zero"
}
func (p removeDeadLoopsPass) Apply(instrs []Instruction) []Instruction {
	return removeDeadLoops(instrs)
}

func removeDeadLoops(instrs []Instruction) []Instruction {
	coalesced := coalesceAdjacent(instrs, func(prev, cur Instruction) (Instruction, bool) {
		s, ok1 := prev.(Set)
		_, ok2 := cur.(Loop)
		if ok1 && ok2 && s.Amount == 0 && s.Offset == 0 {
			return s, true
		}
		return nil, false
	})

	return mapLoopBodies(coalesced, removeDeadLoops)
}

// combine_set_and_increments (spec.md §4.6): three coalescing rules,
// applied in order, that fold a Set together with a neighboring Set or
// Increment at the same offset. Different offsets act as a barrier.
type combineSetAndIncrementsPass struct{}

func (combineSetAndIncrementsPass) Name() string { return "combine_set_and_increments" }
func (combineSetAndIncrementsPass) Description() string {
	return "fold Set/Set, Set/Increment and Increment/Set pairs at a shared offset"
}
func (p combineSetAndIncrementsPass) Apply(instrs []Instruction) []Instruction {
	return combineSetAndIncrements(instrs)
}

func combineSetAndIncrements(instrs []Instruction) []Instruction {
	// Rule 1: (Set{_, o}, Set{a, o}) -> Set{a, o} — later assignment wins.
	step1 := coalesceAdjacent(instrs, func(prev, cur Instruction) (Instruction, bool) {
		p, ok1 := prev.(Set)
		c, ok2 := cur.(Set)
		if ok1 && ok2 && p.Offset == c.Offset {
			return c, true
		}
		return nil, false
	})

	// Rule 2: (Set{s, o}, Increment{i, o}) -> Set{s+i, o} — fold the
	// increment into the known value.
	step2 := coalesceAdjacent(step1, func(prev, cur Instruction) (Instruction, bool) {
		s, ok1 := prev.(Set)
		i, ok2 := cur.(Increment)
		if ok1 && ok2 && s.Offset == i.Offset {
			return Set{Amount: s.Amount.Add(i.Amount), Offset: s.Offset}, true
		}
		return nil, false
	})

	// Rule 3: (Increment{_, o}, Set{a, o}) -> Set{a, o} — the increment's
	// effect is overwritten by the following assignment.
	step3 := coalesceAdjacent(step2, func(prev, cur Instruction) (Instruction, bool) {
		i, ok1 := prev.(Increment)
		s, ok2 := cur.(Set)
		if ok1 && ok2 && i.Offset == s.Offset {
			return s, true
		}
		return nil, false
	})

	return mapLoopBodies(step3, combineSetAndIncrements)
}

// remove_redundant_sets (spec.md §4.7): a loop only terminates when its
// cell is zero, so a Set{0, 0} immediately following a Loop is redundant.
type removeRedundantSetsPass struct{}

func (removeRedundantSetsPass) Name() string { return "remove_redundant_sets" }
func (removeRedundantSetsPass) Description() string {
	return "drop a Set{0,0} immediately following a Loop"
}
func (p removeRedundantSetsPass) Apply(instrs []Instruction) []Instruction {
	return removeRedundantSets(instrs)
}

func removeRedundantSets(instrs []Instruction) []Instruction {
	coalesced := coalesceAdjacent(instrs, func(prev, cur Instruction) (Instruction, bool) {
		loop, ok1 := prev.(Loop)
		s, ok2 := cur.(Set)
		if ok1 && ok2 && s.Amount == 0 && s.Offset == 0 {
			return loop, true
		}
		return nil, false
	})

	return mapLoopBodies(coalesced, removeRedundantSets)
}
