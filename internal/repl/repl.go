// Package repl is a line-oriented read-eval-print loop for Brainfuck: each
// line is parsed, optimized and run against a tape that persists across
// lines, so a user can build up a program incrementally and watch its
// effects.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"bfc/internal/diag"
	"bfc/internal/interp"
	"bfc/internal/ir"
	"bfc/internal/parser"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const prompt = "bf> "

// Start runs the loop until in is exhausted. Input read by the program's
// own , instruction comes from in as well, interleaved with REPL lines: a
// line consisting of only , instructions will consume the following
// line(s) of in as program input.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	vm := interp.New(interp.DefaultTapeSize, in, out)

	promptWriter := out
	promptColor := color.New(color.FgCyan)
	if f, ok := out.(*os.File); ok {
		promptWriter = colorable.NewColorable(f)
		if !isatty.IsTerminal(f.Fd()) {
			promptColor.DisableColor()
		}
	} else {
		promptColor.DisableColor()
	}

	for {
		fmt.Fprint(promptWriter, promptColor.Sprint(prompt))

		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		program, d := parser.Parse("<repl>", line)
		if d != nil {
			fmt.Fprintln(out, diag.Render(d))
			continue
		}

		optimized := ir.Optimize(program)
		if err := vm.Run(optimized); err != nil {
			fmt.Fprintf(out, "runtime error: %s\n", err)
		}
	}
}
