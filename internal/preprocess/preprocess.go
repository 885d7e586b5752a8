// Package preprocess implements brash's line-preserving conditional
// compilation and macro expansion pass, per spec.md §4.1. Grounded on the
// directive-driven line loop in other_examples' ralph-cc-go C preprocessor
// (pkg/cpp/preprocess.go), simplified to brash's directive set: no
// includes, no token-level output, only #define (and #enddef closing a
// block macro)/#undef/#if/#ifdef/#ifndef/#elif/#else/#endif acting on
// whole physical lines.
package preprocess

import (
	"strings"

	"github.com/brashlang/brash/internal/diag"
)

const defineFuncBodyGuard = "#enddef"

// Process transforms src into source text of identical line count, with
// conditionally-inactive lines and directive lines replaced by empty
// lines, and macro expansion applied to every surviving line. Errors are
// reported to sink with codes PP001-PP005.
func Process(src string, file string, sink *diag.Sink) string {
	lines := strings.Split(src, "\n")
	out := make([]string, len(lines))
	macros := newMacroTable()
	cond := &condStack{}

	collectingFunc := false
	var funcName string
	var funcParams []string
	var funcBody []string

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimLeft(line, " \t")

		if collectingFunc {
			if strings.TrimSpace(trimmed) == defineFuncBodyGuard {
				macros.defineFunc(funcName, funcParams, strings.Join(funcBody, "\n"))
				collectingFunc = false
			} else {
				funcBody = append(funcBody, line)
			}
			out[i] = ""
			continue
		}

		if !strings.HasPrefix(trimmed, "#") {
			if cond.active() {
				out[i] = macros.expandLine(line)
			} else {
				out[i] = ""
			}
			continue
		}

		directive := strings.TrimSpace(trimmed[1:])
		name, rest := splitDirective(directive)

		switch name {
		case "define":
			if cond.active() {
				handleDefine(macros, rest, &collectingFunc, &funcName, &funcParams, &funcBody)
			}
		case "undef":
			if cond.active() {
				macros.undef(strings.TrimSpace(rest))
			}
		case "if":
			handleIf(macros, cond, rest, file, lineNo, sink)
		case "ifdef":
			handleIfdef(macros, cond, strings.TrimSpace(rest), true)
		case "ifndef":
			handleIfdef(macros, cond, strings.TrimSpace(rest), false)
		case "elif":
			handleElif(macros, cond, rest, file, lineNo, sink)
		case "else":
			handleElse(cond, file, lineNo, sink)
		case "endif":
			handleEndif(cond, file, lineNo, sink)
		}
		out[i] = ""
	}

	if !cond.empty() {
		sink.Errorf(file, len(lines), 1, diag.PP002, "unterminated conditional block: %d frame(s) still open at end of file", len(cond.frames))
	}

	return strings.Join(out, "\n")
}

func splitDirective(directive string) (name, rest string) {
	directive = strings.TrimSpace(directive)
	idx := strings.IndexAny(directive, " \t")
	if idx < 0 {
		return directive, ""
	}
	return directive[:idx], strings.TrimSpace(directive[idx+1:])
}

func handleDefine(macros *MacroTable, rest string, collecting *bool, funcName *string, funcParams *[]string, funcBody *[]string) {
	bangIdx := strings.Index(rest, "!(")
	if bangIdx >= 0 {
		name := rest[:bangIdx]
		closeIdx := strings.Index(rest[bangIdx:], ")")
		if closeIdx < 0 {
			return
		}
		paramsRaw := rest[bangIdx+2 : bangIdx+closeIdx]
		var params []string
		for _, p := range strings.Split(paramsRaw, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				params = append(params, p)
			}
		}
		remainder := strings.TrimSpace(rest[bangIdx+closeIdx+1:])
		if remainder != "" {
			// Single-line function-like macro.
			macros.defineFunc(name, params, remainder)
			return
		}
		// Multi-line block macro: collect lines until #enddef.
		*collecting = true
		*funcName = name
		*funcParams = params
		*funcBody = nil
		return
	}

	name, value := splitDirective(rest)
	macros.define(name, value)
}

func handleIf(macros *MacroTable, cond *condStack, expr, file string, line int, sink *diag.Sink) {
	val, err := evalIfExpr(macros, expr)
	if err != nil {
		sink.Errorf(file, line, 1, diag.PP005, "malformed #if expression: %v", err)
		val = false
	}
	cond.push(val)
}

func handleIfdef(macros *MacroTable, cond *condStack, name string, wantDefined bool) {
	defined := macros.isDefined(name)
	cond.push(defined == wantDefined)
}

func handleElif(macros *MacroTable, cond *condStack, expr, file string, line int, sink *diag.Sink) {
	if cond.empty() {
		sink.Errorf(file, line, 1, diag.PP003, "#elif without matching #if")
		return
	}
	f := cond.top()
	if f.elseSeen {
		sink.Errorf(file, line, 1, diag.PP004, "#elif after #else in the same conditional")
		return
	}
	if f.everActive {
		f.branchActive = false
		return
	}
	val, err := evalIfExpr(macros, expr)
	if err != nil {
		sink.Errorf(file, line, 1, diag.PP005, "malformed #if expression: %v", err)
		val = false
	}
	f.branchActive = val
	if val {
		f.everActive = true
	}
}

func handleElse(cond *condStack, file string, line int, sink *diag.Sink) {
	if cond.empty() {
		sink.Errorf(file, line, 1, diag.PP003, "#else without matching opener")
		return
	}
	f := cond.top()
	if f.elseSeen {
		sink.Errorf(file, line, 1, diag.PP004, "second #else in the same conditional")
		return
	}
	f.elseSeen = true
	f.branchActive = !f.everActive
	if f.branchActive {
		f.everActive = true
	}
}

func handleEndif(cond *condStack, file string, line int, sink *diag.Sink) {
	if cond.empty() {
		sink.Errorf(file, line, 1, diag.PP001, "#endif without matching #if/#ifdef/#ifndef")
		return
	}
	cond.pop()
}
