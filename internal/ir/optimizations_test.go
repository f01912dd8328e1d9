package ir

import "testing"

func inc(amount Cell) Instruction   { return Increment{Amount: amount, Offset: 0} }
func ptr(amount Offset) Instruction { return PointerIncrement{Amount: amount} }

func TestCombineIncrementsFlat(t *testing.T) {
	got := combineIncrements([]Instruction{inc(1), inc(1)})
	want := []Instruction{inc(2)}
	if !Equal(got, want) {
		t.Errorf("combineIncrements(++) = %v, want %v", got, want)
	}
}

func TestCombineIncrementsUnrelated(t *testing.T) {
	initial := []Instruction{inc(1), ptr(1), inc(1), Write{}}
	got := combineIncrements(initial)
	if !Equal(got, initial) {
		t.Errorf("combineIncrements should leave non-increment barriers alone, got %v", got)
	}
}

func TestCombineIncrementsNested(t *testing.T) {
	got := combineIncrements([]Instruction{Loop{Body: []Instruction{inc(1), inc(1)}}})
	want := []Instruction{Loop{Body: []Instruction{inc(2)}}}
	if !Equal(got, want) {
		t.Errorf("combineIncrements should recurse into loop bodies, got %v", got)
	}
}

func TestCombineIncrementsRemovesRedundant(t *testing.T) {
	got := combineIncrements([]Instruction{inc(1), inc(-1)})
	if len(got) != 0 {
		t.Errorf("combineIncrements(+-) = %v, want empty", got)
	}
}

func TestCombinePtrIncrementsFlat(t *testing.T) {
	got := combinePtrIncrements([]Instruction{ptr(1), ptr(1)})
	want := []Instruction{ptr(2)}
	if !Equal(got, want) {
		t.Errorf("combinePtrIncrements(>>) = %v, want %v", got, want)
	}
}

func TestCombinePtrIncrementsRemovesRedundant(t *testing.T) {
	got := combinePtrIncrements([]Instruction{ptr(1), ptr(-1)})
	if len(got) != 0 {
		t.Errorf("combinePtrIncrements(><) = %v, want empty", got)
	}
}

func TestSimplifyZeroingLoop(t *testing.T) {
	got := simplifyLoops([]Instruction{Loop{Body: []Instruction{inc(-1)}}})
	want := []Instruction{Set{Amount: 0, Offset: 0}}
	if !Equal(got, want) {
		t.Errorf("simplifyLoops([-]) = %v, want %v", got, want)
	}
}

func TestSimplifyNestedZeroingLoop(t *testing.T) {
	got := simplifyLoops([]Instruction{Loop{Body: []Instruction{Loop{Body: []Instruction{inc(-1)}}}}})
	want := []Instruction{Loop{Body: []Instruction{Set{Amount: 0, Offset: 0}}}}
	if !Equal(got, want) {
		t.Errorf("simplifyLoops([[-]]) = %v, want %v", got, want)
	}
}

func TestSimplifyLoopsLeavesMultiDecrementLoop(t *testing.T) {
	initial := []Instruction{Loop{Body: []Instruction{inc(-1), inc(-1)}}}
	got := simplifyLoops(initial)
	if !Equal(got, initial) {
		t.Errorf("simplifyLoops([--]) should be a no-op, got %v", got)
	}
}

func TestRemoveDeadLoops(t *testing.T) {
	initial := []Instruction{
		Set{Amount: 0, Offset: 0},
		Loop{Body: nil},
		Loop{Body: nil},
	}
	got := removeDeadLoops(initial)
	want := []Instruction{Set{Amount: 0, Offset: 0}}
	if !Equal(got, want) {
		t.Errorf("removeDeadLoops = %v, want %v", got, want)
	}
}

func TestRemoveDeadLoopsNested(t *testing.T) {
	initial := []Instruction{
		Loop{Body: []Instruction{
			Set{Amount: 0, Offset: 0},
			Loop{Body: nil},
		}},
	}
	got := removeDeadLoops(initial)
	want := []Instruction{Loop{Body: []Instruction{Set{Amount: 0, Offset: 0}}}}
	if !Equal(got, want) {
		t.Errorf("removeDeadLoops nested = %v, want %v", got, want)
	}
}

func TestCombineSetAndIncrement(t *testing.T) {
	got := combineSetAndIncrements([]Instruction{Set{Amount: 0, Offset: 0}, inc(1)})
	want := []Instruction{Set{Amount: 1, Offset: 0}}
	if !Equal(got, want) {
		t.Errorf("combineSetAndIncrements(Set,Increment) = %v, want %v", got, want)
	}
}

func TestCombineSetAndSet(t *testing.T) {
	got := combineSetAndIncrements([]Instruction{
		Set{Amount: 0, Offset: 0},
		Set{Amount: 1, Offset: 0},
	})
	want := []Instruction{Set{Amount: 1, Offset: 0}}
	if !Equal(got, want) {
		t.Errorf("combineSetAndIncrements(Set,Set) = %v, want %v", got, want)
	}
}

func TestCombineSetAndSetNested(t *testing.T) {
	got := combineSetAndIncrements([]Instruction{
		Loop{Body: []Instruction{
			Set{Amount: 0, Offset: 0},
			Set{Amount: 1, Offset: 0},
		}},
	})
	want := []Instruction{Loop{Body: []Instruction{Set{Amount: 1, Offset: 0}}}}
	if !Equal(got, want) {
		t.Errorf("combineSetAndIncrements nested = %v, want %v", got, want)
	}
}

func TestCombineIncrementAndSet(t *testing.T) {
	got := combineSetAndIncrements([]Instruction{inc(2), Set{Amount: 3, Offset: 0}})
	want := []Instruction{Set{Amount: 3, Offset: 0}}
	if !Equal(got, want) {
		t.Errorf("combineSetAndIncrements(Increment,Set) = %v, want %v", got, want)
	}
}

func TestCombineSetAndIncrementsRespectsOffsetBarrier(t *testing.T) {
	initial := []Instruction{
		Set{Amount: 1, Offset: 0},
		Increment{Amount: 1, Offset: 1},
	}
	got := combineSetAndIncrements(initial)
	if !Equal(got, initial) {
		t.Errorf("differing offsets must act as a barrier, got %v", got)
	}
}

func TestRemoveRedundantSet(t *testing.T) {
	got := removeRedundantSets([]Instruction{Loop{Body: nil}, Set{Amount: 0, Offset: 0}})
	want := []Instruction{Loop{Body: nil}}
	if !Equal(got, want) {
		t.Errorf("removeRedundantSets = %v, want %v", got, want)
	}
}

func TestPipelineRunsInFixedOrder(t *testing.T) {
	pipeline := NewPipeline()
	if len(pipeline.passes) != 6 {
		t.Fatalf("pipeline should have 6 passes, got %d", len(pipeline.passes))
	}

	names := make([]string, len(pipeline.passes))
	for i, pass := range pipeline.passes {
		names[i] = pass.Name()
	}

	want := []string{
		"combine_increments",
		"combine_ptr_increments",
		"simplify_loops",
		"combine_set_and_increments",
		"remove_dead_loops",
		"remove_redundant_sets",
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("pass[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestOptimizeZeroingLoopEndToEnd exercises the "[-]" shape through the
// full pipeline: simplify_loops produces Set{0,0}, which is then exactly
// the shape remove_dead_loops and remove_redundant_sets are meant to
// clean up around.
func TestOptimizeZeroingLoopEndToEnd(t *testing.T) {
	program := Program{Loop{Body: []Instruction{inc(-1)}}, Loop{Body: nil}}
	got := Optimize(program)
	want := Program{Set{Amount: 0, Offset: 0}}
	if !Equal([]Instruction(got), []Instruction(want)) {
		t.Errorf("Optimize([-][]) = %v, want %v", got, want)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	programs := []Program{
		{inc(1), inc(1), ptr(1), ptr(-1)},
		{Loop{Body: []Instruction{inc(-1)}}},
		{Set{Amount: 0, Offset: 0}, Loop{Body: nil}},
		{Write{}, Loop{Body: []Instruction{Read{}, inc(1)}}, inc(-1)},
		{Loop{Body: []Instruction{inc(-1), inc(-1)}}},
	}

	for _, p := range programs {
		once := Optimize(p)
		twice := Optimize(once)
		if !Equal([]Instruction(once), []Instruction(twice)) {
			t.Errorf("Optimize is not idempotent for %v: once=%v twice=%v", p, once, twice)
		}
	}
}

// TestOptimizeNormalForm checks the normal-form quantified invariants of
// spec.md §8 on a program with loops: no adjacent same-offset Increments, no adjacent
// PointerIncrements, no zero-amount Increment, no Loop immediately
// preceded by Set{0,0} and no Set{0,0} immediately following a Loop.
func TestOptimizeNormalForm(t *testing.T) {
	program := Program{
		inc(1), inc(2), ptr(1), ptr(-1), inc(0), Write{}, Read{},
		Loop{Body: []Instruction{inc(-1)}}, Loop{Body: nil},
	}

	optimized := []Instruction(Optimize(program))

	for i := 0; i < len(optimized); i++ {
		if inc, ok := optimized[i].(Increment); ok && inc.Amount == 0 {
			t.Errorf("normal form retained a zero-amount Increment at %d: %v", i, optimized)
		}
		if i == 0 {
			continue
		}
		if a, ok := optimized[i-1].(Increment); ok {
			if b, ok := optimized[i].(Increment); ok && a.Offset == b.Offset {
				t.Errorf("normal form retained adjacent same-offset increments at %d: %v", i, optimized)
			}
		}
		if _, ok := optimized[i-1].(PointerIncrement); ok {
			if _, ok := optimized[i].(PointerIncrement); ok {
				t.Errorf("normal form retained adjacent pointer increments at %d: %v", i, optimized)
			}
		}
		if s, ok := optimized[i-1].(Set); ok && s.Amount == 0 && s.Offset == 0 {
			if _, ok := optimized[i].(Loop); ok {
				t.Errorf("normal form retained a Loop right after Set{0,0} at %d: %v", i, optimized)
			}
		}
		if _, ok := optimized[i-1].(Loop); ok {
			if s, ok := optimized[i].(Set); ok && s.Amount == 0 && s.Offset == 0 {
				t.Errorf("normal form retained a redundant Set{0,0} right after a Loop at %d: %v", i, optimized)
			}
		}
	}
}

func TestOptimizeEmptyProgram(t *testing.T) {
	got := Optimize(nil)
	if len(got) != 0 {
		t.Errorf("Optimize(nil) = %v, want empty", got)
	}
}
