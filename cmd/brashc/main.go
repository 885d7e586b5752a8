// Command brashc is a thin demonstration driver over the brash compiler
// core. It is ambient tooling, not part of the core: everything it does
// (file I/O, flag parsing, colored diagnostic printing, the REPL) is
// driven entirely through the public internal/compile, internal/ast, and
// internal/project seams.
//
// Grounded on the teacher's cmd/ailang/main.go: a flag.Bool/flag.Parse
// front end dispatching on flag.Arg(0), fatih/color for status and error
// output.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/compile"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/parser"
	"github.com/brashlang/brash/internal/preprocess"
	"github.com/brashlang/brash/internal/project"
	"github.com/brashlang/brash/internal/repl"
	"github.com/brashlang/brash/internal/source"
	"github.com/brashlang/brash/internal/stdlib"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		outFlag     = flag.String("o", "", "write the generated script to this path instead of stdout")
		projectFlag = flag.String("project", "", "path to a .bshproject.yaml manifest")
		helpFlag    = flag.Bool("help", false, "show help")
	)
	flag.Parse()

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "compile":
		if flag.NArg() < 2 && *projectFlag == "" {
			fmt.Fprintf(os.Stderr, "%s: missing file argument (or pass --project)\n", red("Error"))
			os.Exit(1)
		}
		entry := ""
		if flag.NArg() >= 2 {
			entry = flag.Arg(1)
		}
		runCompile(entry, *outFlag, *projectFlag)
	case "print-ast":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			os.Exit(1)
		}
		runPrintAST(flag.Arg(1))
	case "repl":
		repl.New().Start(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("brashc — brash-to-shell compiler driver"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  brashc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>       compile a .bsh file to a shell script\n", cyan("compile"))
	fmt.Printf("  %s <file>     print the parsed AST as JSON\n", cyan("print-ast"))
	fmt.Printf("  %s               start the interactive REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -o <path>        write compile output to path instead of stdout")
	fmt.Println("  --project <path> load searchPaths/stdlib from a .bshproject.yaml manifest")
}

// osReader backs source.FileReader with the real filesystem, kept out of
// the core per spec.md §1's external-collaborator boundary.
type osReader struct{}

func (osReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

func (osReader) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runCompile(entry, outPath, projectPath string) {
	opts := compile.DefaultOptions(osReader{})

	if projectPath != "" {
		cfg, err := project.Load(projectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		if entry == "" {
			entry = cfg.EntryPath()
		}
		opts.Std = stdlib.MapLocator(cfg.StdLibLocator())
		opts.SearchPaths = cfg.ResolvedSearchPaths()
	}

	result := compile.Compile(entry, opts)
	for _, d := range result.Sink.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if result.Sink.HasErrors() {
		fmt.Fprintf(os.Stderr, "%s: compilation failed\n", red("Error"))
		os.Exit(1)
	}

	if outPath == "" {
		fmt.Print(result.Script)
		return
	}
	if err := os.WriteFile(outPath, []byte(result.Script), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", red("Error"), outPath, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s wrote %s\n", green("✓"), filepath.Clean(outPath))
}

func runPrintAST(entry string) {
	content, err := os.ReadFile(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", red("Error"), entry, err)
		os.Exit(1)
	}

	sink := diag.NewSink()
	preprocessed := preprocess.Process(string(content), entry, sink)
	l := lexer.New(preprocessed, entry)
	p := parser.New(l, entry, sink)
	prog := p.ParseProgram()

	for _, d := range sink.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	fmt.Println(ast.Print(prog))
}

var _ source.FileReader = osReader{}
