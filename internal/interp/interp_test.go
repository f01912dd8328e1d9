package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"bfc/internal/interp"
	"bfc/internal/ir"
	"bfc/internal/parser"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) ir.Program {
	t.Helper()
	program, d := parser.Parse("test.bf", source)
	require.Nil(t, d)
	return program
}

func run(t *testing.T, program ir.Program, input string) string {
	t.Helper()
	var out bytes.Buffer
	vm := interp.New(interp.DefaultTapeSize, strings.NewReader(input), &out)
	require.NoError(t, vm.Run(program))
	return out.String()
}

func TestRunIncrementsAndWrites(t *testing.T) {
	program := mustParse(t, "++++++++.")
	require.Equal(t, []byte{8}, []byte(run(t, program, "")))
}

func TestRunMultiplyLoop(t *testing.T) {
	// 8 * 8 = 64, then print it as a raw byte.
	program := mustParse(t, "++++++++[>++++++++<-]>.")
	require.Equal(t, []byte{64}, []byte(run(t, program, "")))
}

func TestRunEchoesInput(t *testing.T) {
	program := mustParse(t, ",.")
	require.Equal(t, "x", run(t, program, "x"))
}

func TestEOFPolicyZero(t *testing.T) {
	program := mustParse(t, ",.")
	var out bytes.Buffer
	vm := interp.New(interp.DefaultTapeSize, strings.NewReader(""), &out)
	vm.EOF = interp.EOFZero
	require.NoError(t, vm.Run(program))
	require.Equal(t, []byte{0}, out.Bytes())
}

func TestEOFPolicyMinusOne(t *testing.T) {
	program := mustParse(t, ",.")
	var out bytes.Buffer
	vm := interp.New(interp.DefaultTapeSize, strings.NewReader(""), &out)
	vm.EOF = interp.EOFMinusOne
	require.NoError(t, vm.Run(program))
	require.Equal(t, []byte{255}, out.Bytes())
}

func TestEOFPolicyUnchanged(t *testing.T) {
	program := mustParse(t, "+++,.") // cell starts at 3, Read at EOF leaves it
	var out bytes.Buffer
	vm := interp.New(interp.DefaultTapeSize, strings.NewReader(""), &out)
	vm.EOF = interp.EOFUnchanged
	require.NoError(t, vm.Run(program))
	require.Equal(t, []byte{3}, out.Bytes())
}

func TestParseEOFPolicyRejectsUnknownValue(t *testing.T) {
	_, err := interp.ParseEOFPolicy("bogus")
	require.Error(t, err)
}

// TestSemanticPreservation checks spec.md §8's central invariant: running
// p and running optimize(p) must produce identical output for every p
// that terminates.
func TestSemanticPreservation(t *testing.T) {
	programs := []string{
		"++++++++[>++++++++<-]>.",
		"+++++[>+++++<-]>++.",
		"++>+++>+>,.[-]",
		"++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.",
		">+++++++++[<++++++++++>-]<.",
		"+[-]+[-]",
		"[-]+++",
	}

	for _, src := range programs {
		program := mustParse(t, src)
		optimized := ir.Optimize(program)

		gotOriginal := run(t, program, "hi")
		gotOptimized := run(t, optimized, "hi")

		require.Equal(t, gotOriginal, gotOptimized, "optimize changed observable behavior for %q", src)
	}
}

func TestMultiplyMoveExecutesDirectly(t *testing.T) {
	program := ir.Program{
		ir.Set{Amount: 5, Offset: 0},
		ir.MultiplyMove{Map: map[ir.Offset]ir.Cell{1: 3, 2: 1}},
	}
	var out bytes.Buffer
	vm := interp.New(10, strings.NewReader(""), &out)
	require.NoError(t, vm.Run(program))
	require.Equal(t, ir.Cell(0), vm.Tape[vm.Head])
	require.Equal(t, ir.Cell(15), vm.Tape[vm.Head+1])
	require.Equal(t, ir.Cell(5), vm.Tape[vm.Head+2])
}
