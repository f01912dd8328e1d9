// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"bfc/internal/diag"
	"bfc/internal/emit"
	"bfc/internal/interp"
	"bfc/internal/ir"
	"bfc/internal/parser"
	"bfc/internal/repl"

	"github.com/fatih/color"
)

func main() {
	run := flag.Bool("run", false, "interpret the optimized program and print its output")
	printIR := flag.Bool("print-ir", false, "print the optimized IR before running")
	eofFlag := flag.String("eof", "zero", "behavior of , at end of input: unchanged, zero, minus-one")
	prefixBytes := flag.Int("prefix-bytes", 0, "precompute and print the static tape prefix of this many cells, then exit")
	interactive := flag.Bool("repl", false, "start an interactive read-eval-print loop instead of compiling a file")
	flag.Parse()

	if *interactive {
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bfc [flags] <file.bf>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	program, d := parser.Parse(path, string(source))
	if d != nil {
		fmt.Fprintln(os.Stderr, diag.Render(d))
		os.Exit(1)
	}

	optimized := ir.Optimize(program)

	if *printIR {
		fmt.Println(optimized.String())
	}

	if *prefixBytes > 0 {
		result := interp.Precompute(optimized, *prefixBytes)
		for _, r := range emit.RunLengthEncodePrefix(result.CellsPrefix) {
			fmt.Printf("[%d..%d) = %d\n", r.Offset, r.Offset+r.Count, r.Value)
		}
		if len(result.StaticOutput) > 0 {
			os.Stdout.Write(result.StaticOutput)
		}
		return
	}

	if *run {
		policy, err := interp.ParseEOFPolicy(*eofFlag)
		if err != nil {
			color.Red("%s", err)
			os.Exit(1)
		}

		vm := interp.New(interp.DefaultTapeSize, os.Stdin, os.Stdout)
		vm.EOF = policy
		if err := vm.Run(optimized); err != nil {
			color.Red("runtime error: %s", err)
			os.Exit(1)
		}
	}

	color.Green("✅ compiled %s", path)
}
