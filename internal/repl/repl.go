// Package repl implements the interactive line-editing loop for the
// cmd/brashc demo driver. It holds no compiler state of its own: every
// line is compiled independently through internal/compile.Compile over a
// synthetic one-statement module, so the REPL never implies the core
// compiler has session state, matching spec.md §5's "no shared mutable
// state between compilations."
//
// Grounded on the teacher's internal/repl/repl.go (liner-backed prompt
// loop, :command dispatch, persistent on-disk history file) and
// cmd/ailang/main.go's color-function set.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/brashlang/brash/internal/compile"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/source"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

const syntheticPath = "<repl>"

// REPL holds only presentation state (line history, a prompt) — never
// parsed declarations or symbol tables, since each input line is its own
// independent compilation.
type REPL struct {
	history []string
}

// New creates a REPL ready for Start.
func New() *REPL {
	return &REPL{}
}

// Start runs the read-compile-print loop until EOF or a :quit command.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".brash_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("brash"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if !strings.HasPrefix(input, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":history", ":clear"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return c
	})

	for {
		input, err := line.Prompt("brash> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}

		r.compileLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleCommand processes a leading-colon REPL command, returning true if
// the loop should exit.
func (r *REPL) handleCommand(cmd string, out io.Writer) bool {
	switch strings.Fields(cmd)[0] {
	case ":quit", ":q", ":exit":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	case ":help", ":h":
		r.printHelp(out)
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%4d  %s\n", i+1, h)
		}
	case ":clear":
		r.history = nil
		fmt.Fprintln(out, dim("history cleared"))
	default:
		fmt.Fprintf(out, "%s: unknown command %s\n", yellow("Warning"), cmd)
	}
	return false
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  :help      show this message")
	fmt.Fprintln(out, "  :history   show input history")
	fmt.Fprintln(out, "  :clear     clear input history")
	fmt.Fprintln(out, "  :quit      exit the REPL")
	fmt.Fprintln(out, "Anything else is compiled as a one-line brash program and the")
	fmt.Fprintln(out, "generated shell text is printed.")
}

// compileLine runs input through compile.Compile as a standalone module
// and prints either the generated script or the reported diagnostics.
func (r *REPL) compileLine(input string, out io.Writer) {
	reader := source.MapReader{syntheticPath: input}
	result := compile.Compile(syntheticPath, compile.DefaultOptions(reader))

	for _, d := range result.Sink.Diagnostics() {
		fmt.Fprintln(out, formatDiagnostic(d))
	}
	if result.Sink.HasErrors() {
		return
	}
	fmt.Fprint(out, result.Script)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "%s: %s\n", yellow("warning"), w)
	}
}

func formatDiagnostic(d diag.Diagnostic) string {
	if d.Severity == diag.Error {
		return red(d.String())
	}
	return yellow(d.String())
}
