// Package codegen lowers a semantically-valid, transpilation-ready
// *ast.Program to a single POSIX shell script, per spec.md §4.6. It is the
// last compiler stage before internal/textopt's whitespace cleanup.
//
// Grounded on the teacher's internal/planning/scaffolder.go: per-construct
// helper functions building text into a strings.Builder, rather than a
// visitor interface with double dispatch.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
)

// Generator lowers one *ast.Program to shell text. A fresh Generator is
// constructed per compilation, matching spec.md §5's "no shared mutable
// state between compilations."
type Generator struct {
	file string
	sink *diag.Sink

	structs map[string]*ast.StructDeclaration
	enums   map[string]*ast.EnumDeclaration

	flags helperFlags

	warnings map[string]bool // deduplicated by feature name, per spec.md §4.6
	hasMain  bool
}

// New constructs a Generator reporting unsupported-construct warnings for
// file to sink.
func New(file string, sink *diag.Sink) *Generator {
	return &Generator{
		file:     file,
		sink:     sink,
		structs:  make(map[string]*ast.StructDeclaration),
		enums:    make(map[string]*ast.EnumDeclaration),
		warnings: make(map[string]bool),
	}
}

// Generate lowers prog to a complete shell script: shebang, strict mode,
// the subset of runtime helpers the program actually exercises, the
// lowered program body, then an auto-invocation of main if one exists.
func (g *Generator) Generate(prog *ast.Program) string {
	g.collectTypes(prog.Statements)
	g.flags = analyzeHelperUsage(prog.Statements)
	for _, s := range prog.Statements {
		if fn, ok := s.(*ast.FunctionDeclaration); ok && fn.Name == "main" {
			g.hasMain = true
		}
	}

	var out strings.Builder
	out.WriteString("#!/usr/bin/env bash\n")
	out.WriteString("set -euo pipefail\n\n")

	if prologue := g.renderRuntimePrologue(); prologue != "" {
		out.WriteString(prologue)
		out.WriteString("\n")
	}

	e := &emitter{}
	g.lowerStmts(e, prog.Statements)
	out.WriteString(e.sb.String())

	if g.hasMain {
		out.WriteString("\nmain \"$@\"\n")
	}

	return out.String()
}

// collectTypes is a read-only pre-pass registering every struct and enum
// declaration by name, so member access and method-call lowering can tell
// a flat local's field names and an enum's variant set without threading a
// symbol table through from internal/sema.
func (g *Generator) collectTypes(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.StructDeclaration:
			g.structs[n.Name] = n
		case *ast.EnumDeclaration:
			g.enums[n.Name] = n
		}
	}
}

// warnUnsupported records a deduplicated CG001 warning and returns the
// empty string the unsupported construct's emitted text is replaced with,
// per spec.md §4.6.
func (g *Generator) warnUnsupported(pos ast.Pos, feature string) string {
	if !g.warnings[feature] {
		g.warnings[feature] = true
		g.sink.Warnf(g.file, pos.Line, pos.Column, diag.CG001, "unsupported construct replaced with empty string: %s", feature)
	}
	return ""
}

// Warnings returns the deduplicated set of unsupported-feature names
// encountered during the most recent Generate call, in sorted order for
// deterministic output.
func (g *Generator) Warnings() []string {
	out := make([]string, 0, len(g.warnings))
	for f := range g.warnings {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// emitter accumulates indented lines of shell text, grounded on the
// teacher's scaffolder writing directly into a strings.Builder rather than
// building an intermediate line-node tree.
type emitter struct {
	sb     strings.Builder
	indent int
}

func (e *emitter) line(format string, args ...any) {
	e.sb.WriteString(strings.Repeat("    ", e.indent))
	e.sb.WriteString(fmt.Sprintf(format, args...))
	e.sb.WriteString("\n")
}

func (e *emitter) raw(s string) {
	for _, ln := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		e.line("%s", ln)
	}
}

func (e *emitter) blank() {
	e.sb.WriteString("\n")
}
