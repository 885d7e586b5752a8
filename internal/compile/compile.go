// Package compile wires the module loader, semantic analyzer, AST
// optimizer, code generator, and bash text optimizer into the single
// Compile entry point described in spec.md §5: each call constructs fresh
// per-compilation state and returns independently of any other call,
// mirroring the teacher's explicit NewXxx() constructor convention rather
// than package-level mutable globals.
//
// This package is the seam a driver (cmd/brashc, internal/repl) builds
// on; the core phase packages never import it.
package compile

import (
	"github.com/brashlang/brash/internal/codegen"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/module"
	"github.com/brashlang/brash/internal/optimize"
	"github.com/brashlang/brash/internal/sema"
	"github.com/brashlang/brash/internal/source"
	"github.com/brashlang/brash/internal/stdlib"
	"github.com/brashlang/brash/internal/textopt"
)

// Options configures a single Compile call. Reader must be set, since every
// source file is read through it. In a zero Options every optimizer and
// text-pass toggle is off; DefaultOptions turns them all on.
type Options struct {
	Reader      source.FileReader
	Std         stdlib.StdLibLocator
	SearchPaths []string
	Optimize    optimize.Options
	Text        textopt.Options
}

// DefaultOptions returns every optimizer and text-pass toggle enabled and
// a nil Std (std/* imports unresolved), suitable for compiling a
// self-contained entry file.
func DefaultOptions(reader source.FileReader) Options {
	return Options{
		Reader:   reader,
		Optimize: optimize.DefaultOptions(),
		Text:     textopt.DefaultOptions(),
	}
}

// Result is the outcome of a single Compile call.
type Result struct {
	Script   string
	Sink     *diag.Sink
	Warnings []string
}

// Compile loads entryPath and its transitive imports, type-checks and
// optimizes the merged program, lowers it to a shell script, and runs the
// bash text optimizer over the result. It never panics on malformed
// input: failures are reported through the returned Sink. When loading or
// analysis reports an error, Compile stops there and Script is empty.
func Compile(entryPath string, opts Options) Result {
	sink := diag.NewSink()

	loader := module.New(opts.Reader, opts.Std, sink).WithSearchPaths(opts.SearchPaths)
	prog := loader.Load(entryPath)
	if sink.HasErrors() {
		return Result{Sink: sink}
	}

	sema.New(entryPath, sink).Analyze(prog)
	if sink.HasErrors() {
		return Result{Sink: sink}
	}

	prog = optimize.Optimize(prog, opts.Optimize)

	gen := codegen.New(entryPath, sink)
	script := gen.Generate(prog)
	script = textopt.Optimize(script, opts.Text)

	return Result{Script: script, Sink: sink, Warnings: gen.Warnings()}
}
