package codegen

import (
	"fmt"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/builtins"
	"github.com/brashlang/brash/internal/types"
)

// funcCtx carries the per-function state statement lowering needs beyond
// lowerCtx's flat-local tracking: whether a `return e` inside the current
// function lowers to main's exit-status form or to an ordinary function's
// echo-and-zero form, per spec.md §4.6.
type funcCtx struct {
	*lowerCtx
	isMainIntReturn bool
}

func newFuncCtx() *funcCtx {
	return &funcCtx{lowerCtx: newLowerCtx()}
}

func (g *Generator) lowerStmts(e *emitter, stmts []ast.Stmt) {
	ctx := newFuncCtx()
	collectFlatLocals(stmts, ctx.flat)
	for _, s := range stmts {
		g.lowerStmt(e, s, ctx)
	}
}

// collectFlatLocals scans stmts, including nested control-flow bodies, for
// variable declarations whose value is a struct literal. Generated shell
// functions have no block scoping narrower than the function itself, so a
// declaration nested inside an if or while is visible for the rest of the
// enclosing body exactly like a top-level one.
func collectFlatLocals(stmts []ast.Stmt, flat map[string]bool) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			if _, ok := n.Value.(*ast.StructLiteral); ok {
				flat[n.Name] = true
			}
		case *ast.IfStatement:
			collectFlatLocals(n.Then, flat)
			for _, ei := range n.ElseIfs {
				collectFlatLocals(ei.Body, flat)
			}
			collectFlatLocals(n.Else, flat)
		case *ast.ForLoop:
			collectFlatLocals(n.Body, flat)
		case *ast.WhileLoop:
			collectFlatLocals(n.Body, flat)
		case *ast.TryStatement:
			collectFlatLocals(n.TryBlock, flat)
			collectFlatLocals(n.CatchBlock, flat)
		}
	}
}

func (g *Generator) lowerStmt(e *emitter, s ast.Stmt, ctx *funcCtx) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		g.lowerVariableDeclaration(e, n, ctx)
	case *ast.TupleVariableDeclaration:
		g.lowerTupleVariableDeclaration(e, n, ctx)
	case *ast.Assignment:
		g.lowerAssignment(e, n, ctx)
	case *ast.FunctionDeclaration:
		g.lowerFunctionDeclaration(e, n)
	case *ast.StructDeclaration:
		// Type-only: no runtime representation is emitted for the
		// declaration itself, only for the literals that instantiate it.
	case *ast.EnumDeclaration:
		g.lowerEnumDeclaration(e, n)
	case *ast.ImplBlock:
		g.lowerImplBlock(e, n)
	case *ast.IfStatement:
		g.lowerIf(e, n, ctx)
	case *ast.ForLoop:
		g.lowerFor(e, n, ctx)
	case *ast.WhileLoop:
		g.lowerWhile(e, n, ctx)
	case *ast.TryStatement:
		g.lowerTry(e, n, ctx)
	case *ast.ThrowStatement:
		e.line("brash_throw %s", g.lowerValue(n.Value, ctx.lowerCtx))
	case *ast.ReturnStatement:
		g.lowerReturn(e, n, ctx)
	case *ast.BreakStatement:
		e.line("break")
	case *ast.ContinueStatement:
		e.line("continue")
	case *ast.ShStatement:
		e.raw(n.Script)
	case *ast.ImportStatement:
		// Unreachable past the transpilation-readiness gate; nothing to do.
	case *ast.ExpressionStatement:
		g.lowerExpressionStatement(e, n, ctx)
	}
}

func (g *Generator) lowerVariableDeclaration(e *emitter, n *ast.VariableDeclaration, ctx *funcCtx) {
	prefix := ""
	if n.Kind == ast.Const {
		prefix = "readonly "
	}
	switch v := n.Value.(type) {
	case *ast.StructLiteral:
		g.lowerStructLiteralDecl(e, n.Name, v, ctx.lowerCtx)
	case *ast.MapLiteral:
		e.line("%s%s=$(brash_map_literal %s)", prefix, n.Name, g.mapLiteralArgs(v, ctx.lowerCtx))
	case *ast.ArrayLiteral:
		e.line("%s%s=(%s)", prefix, n.Name, g.lowerArgList(v.Elements, ctx.lowerCtx))
	default:
		e.line("%s%s=%s", prefix, n.Name, g.lowerValue(n.Value, ctx.lowerCtx))
	}
}

func (g *Generator) mapLiteralArgs(m *ast.MapLiteral, ctx *lowerCtx) string {
	parts := make([]string, 0, len(m.Entries)*2)
	for _, entry := range m.Entries {
		parts = append(parts, g.lowerValue(entry.Key, ctx), g.lowerValue(entry.Value, ctx))
	}
	return joinSpace(parts)
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// lowerStructLiteralDecl flattens a struct literal bound to name into
// `NAME`, `NAME__type`, and one `NAME_field` assignment per field, per
// spec.md §4.6, marking name as a flat local so later member access on it
// takes the direct `${name_field}` path.
func (g *Generator) lowerStructLiteralDecl(e *emitter, name string, n *ast.StructLiteral, ctx *lowerCtx) {
	e.line("%s=%s", name, shellQuote(name))
	e.line("%s__type=%s", name, shellQuote(n.TypeName))
	for _, f := range n.Fields {
		g.lowerStructFieldInit(e, name+"_"+f.Name, f.Value, ctx)
	}
	ctx.flat[name] = true
}

func (g *Generator) lowerStructFieldInit(e *emitter, path string, v ast.Expr, ctx *lowerCtx) {
	if sl, ok := v.(*ast.StructLiteral); ok {
		e.line("%s=%s", path, shellQuote(path))
		e.line("%s__type=%s", path, shellQuote(sl.TypeName))
		for _, f := range sl.Fields {
			g.lowerStructFieldInit(e, path+"_"+f.Name, f.Value, ctx)
		}
		return
	}
	e.line("%s=%s", path, g.lowerValue(v, ctx))
}

func (g *Generator) lowerTupleVariableDeclaration(e *emitter, n *ast.TupleVariableDeclaration, ctx *funcCtx) {
	names := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		names[i] = el.Name
	}
	e.line(`IFS=$'\t' read -r %s <<< %s`, joinSpace(names), g.lowerValue(n.Value, ctx.lowerCtx))
}

func (g *Generator) lowerAssignment(e *emitter, n *ast.Assignment, ctx *funcCtx) {
	switch t := n.Target.(type) {
	case *ast.Identifier:
		e.line("%s=%s", t.Name, g.lowerValue(n.Value, ctx.lowerCtx))
	case *ast.MemberAccess:
		g.lowerMemberAssignment(e, t, n.Value, ctx)
	case *ast.IndexAccess:
		e.line("brash_index_set %s %s %s", shellQuote(g.lowerHandleName(t.Object, ctx.lowerCtx)), g.lowerValue(t.Index, ctx.lowerCtx), g.lowerValue(n.Value, ctx.lowerCtx))
	}
}

func (g *Generator) lowerMemberAssignment(e *emitter, t *ast.MemberAccess, value ast.Expr, ctx *funcCtx) {
	root, path, ok := flatPathOf(t)
	if ok && ctx.flat[root] {
		e.line("%s_%s=%s", root, path, g.lowerValue(value, ctx.lowerCtx))
		return
	}
	e.line(`brash_set_field "%s" %s %s`, g.lowerHandleName(t.Object, ctx.lowerCtx), shellQuote(t.Field), g.lowerValue(value, ctx.lowerCtx))
}

// flatPathOf walks a chain of MemberAccess nodes back to its root
// identifier, returning the root name and the `_`-joined path of the
// remaining field segments (e.g. `obj.f.g` -> "obj", "f_g").
func flatPathOf(m *ast.MemberAccess) (root, path string, ok bool) {
	var segs []string
	var cur ast.Expr = m
	for {
		ma, isMember := cur.(*ast.MemberAccess)
		if !isMember {
			break
		}
		segs = append([]string{ma.Field}, segs...)
		cur = ma.Object
	}
	id, isID := cur.(*ast.Identifier)
	if !isID || len(segs) == 0 {
		return "", "", false
	}
	joined := segs[0]
	for _, s := range segs[1:] {
		joined += "_" + s
	}
	return id.Name, joined, true
}

func (g *Generator) lowerFunctionDeclaration(e *emitter, n *ast.FunctionDeclaration) {
	e.line("%s() {", n.Name)
	e.indent++

	ctx := newFuncCtx()
	collectFlatLocals(n.Body, ctx.flat)

	if n.Name == "main" && len(n.Params) == 1 {
		e.line(`local -a %s=("$@")`, n.Params[0].Name)
	} else {
		for i, p := range n.Params {
			e.line(`local %s="${%d}"`, p.Name, i+1)
		}
	}
	if n.Name == "main" {
		ctx.isMainIntReturn = isIntType(n.ReturnType)
	}

	for _, s := range n.Body {
		g.lowerStmt(e, s, ctx)
	}

	e.indent--
	e.line("}")
	e.blank()
}

func isIntType(t types.Type) bool {
	return t != nil && types.IsPrimitive(t, types.Int)
}

func (g *Generator) lowerReturn(e *emitter, n *ast.ReturnStatement, ctx *funcCtx) {
	if n.Value == nil {
		e.line("return 0")
		return
	}
	if ctx.isMainIntReturn {
		e.line("return $(( %s ))", g.lowerValue(n.Value, ctx.lowerCtx))
		return
	}
	e.line("echo %s", g.lowerValue(n.Value, ctx.lowerCtx))
	e.line("return 0")
}

func (g *Generator) lowerEnumDeclaration(e *emitter, n *ast.EnumDeclaration) {
	for _, v := range n.Variants {
		e.line(`readonly %s_%s=%s`, n.Name, v, shellQuote(v))
	}
	e.blank()
}

func (g *Generator) lowerImplBlock(e *emitter, n *ast.ImplBlock) {
	for _, m := range n.Methods {
		g.lowerMethodDeclaration(e, n.TypeName, m)
	}
}

func (g *Generator) lowerMethodDeclaration(e *emitter, typeName string, m *ast.MethodDeclaration) {
	e.line("%s__%s() {", typeName, m.Name)
	e.indent++

	ctx := newFuncCtx()
	ctx.inMethod = true
	collectFlatLocals(m.Body, ctx.flat)

	argOffset := 1
	if !m.IsStatic {
		e.line(`local __self="${1}"`)
		argOffset = 2
	}
	for i, p := range m.Params {
		e.line(`local %s="${%d}"`, p.Name, argOffset+i)
	}

	for _, s := range m.Body {
		g.lowerStmt(e, s, ctx)
	}

	e.indent--
	e.line("}")
	e.blank()
}

func (g *Generator) lowerIf(e *emitter, n *ast.IfStatement, ctx *funcCtx) {
	e.line("if %s; then", g.lowerCondition(n.Condition, ctx.lowerCtx))
	e.indent++
	for _, s := range n.Then {
		g.lowerStmt(e, s, ctx)
	}
	e.indent--
	for _, ei := range n.ElseIfs {
		e.line("elif %s; then", g.lowerCondition(ei.Condition, ctx.lowerCtx))
		e.indent++
		for _, s := range ei.Body {
			g.lowerStmt(e, s, ctx)
		}
		e.indent--
	}
	if len(n.Else) > 0 {
		e.line("else")
		e.indent++
		for _, s := range n.Else {
			g.lowerStmt(e, s, ctx)
		}
		e.indent--
	}
	e.line("fi")
}

// lowerCondition renders a boolean condition for an if/while test.
// Comparisons already produce a 0/1 integer value (spec.md §4.6), so the
// enclosing test is `[ EXPR -ne 0 ]` unless the condition is itself a
// comparison operator, in which case the comparison is rendered directly
// as a `(( ))` or `[[ ]]` test with no intermediate echo.
func (g *Generator) lowerCondition(cond ast.Expr, ctx *lowerCtx) string {
	if b, ok := cond.(*ast.Binary); ok {
		switch b.Op {
		case "==", "!=", "<", "<=", ">", ">=":
			left := g.lowerValue(b.Left, ctx)
			right := g.lowerValue(b.Right, ctx)
			if looksLikeString(b.Left) || looksLikeString(b.Right) {
				op := b.Op
				if op == "==" {
					op = "="
				}
				return fmt.Sprintf("[[ %s %s %s ]]", left, op, right)
			}
			return fmt.Sprintf("(( %s %s %s ))", left, b.Op, right)
		}
	}
	return fmt.Sprintf("[ %s -ne 0 ]", g.lowerValue(cond, ctx))
}

func (g *Generator) lowerFor(e *emitter, n *ast.ForLoop, ctx *funcCtx) {
	if r, ok := n.Source.(*ast.Range); ok {
		start := g.lowerValue(r.Start, ctx.lowerCtx)
		end := g.lowerValue(r.End, ctx.lowerCtx)
		seqArgs := start
		if r.Step != nil {
			seqArgs += " " + g.lowerValue(r.Step, ctx.lowerCtx)
		}
		seqArgs += " " + end
		e.line("for %s in $(seq %s); do", n.Variable, seqArgs)
	} else if id, ok := n.Source.(*ast.Identifier); ok {
		e.line(`for %s in "${%s[@]}"; do`, n.Variable, id.Name)
	} else {
		e.line("for %s in %s; do", n.Variable, g.lowerValue(n.Source, ctx.lowerCtx))
	}
	e.indent++
	for _, s := range n.Body {
		g.lowerStmt(e, s, ctx)
	}
	e.indent--
	e.line("done")
}

func (g *Generator) lowerWhile(e *emitter, n *ast.WhileLoop, ctx *funcCtx) {
	e.line("while %s; do", g.lowerCondition(n.Condition, ctx.lowerCtx))
	e.indent++
	for _, s := range n.Body {
		g.lowerStmt(e, s, ctx)
	}
	e.indent--
	e.line("done")
}

func (g *Generator) lowerTry(e *emitter, n *ast.TryStatement, ctx *funcCtx) {
	errFile := n.ErrorVar + "_file"
	e.line(`%s="$(mktemp)"`, errFile)
	e.line("{")
	e.indent++
	for _, s := range n.TryBlock {
		g.lowerStmt(e, s, ctx)
	}
	e.indent--
	e.line(`} 2>"${%s}"`, errFile)
	e.line(`if [ -s "${%s}" ]; then`, errFile)
	e.indent++
	e.line(`%s="$(cat "${%s}")"`, n.ErrorVar, errFile)
	for _, s := range n.CatchBlock {
		g.lowerStmt(e, s, ctx)
	}
	e.indent--
	e.line("fi")
}

func (g *Generator) lowerExpressionStatement(e *emitter, n *ast.ExpressionStatement, ctx *funcCtx) {
	switch expr := n.Expression.(type) {
	case *ast.Command:
		e.line("%s", g.lowerCommandStmt(expr, ctx.lowerCtx))
	case *ast.FunctionCall:
		if id, ok := expr.Callee.(*ast.Identifier); ok && (id.Name == "print" || id.Name == "bash") {
			e.line("%s %s", id.Name, g.lowerArgList(expr.Args, ctx.lowerCtx))
			return
		}
		e.line(`: %s`, g.lowerValue(expr, ctx.lowerCtx))
	case *ast.MethodCall:
		if expr.Name == "push" {
			if _, ok := builtins.ArrayMethods["push"]; ok && !expr.IsStaticDispatch {
				name := g.lowerHandleName(expr.Object, ctx.lowerCtx)
				if len(expr.Args) == 1 {
					e.line("%s+=( %s )", name, g.lowerValue(expr.Args[0], ctx.lowerCtx))
					return
				}
			}
		}
		e.line(`: %s`, g.lowerValue(expr, ctx.lowerCtx))
	default:
		e.line(`: %s`, g.lowerValue(expr, ctx.lowerCtx))
	}
}

// lowerCommandStmt renders a command expression used for its side effect
// rather than its value: the command text runs directly instead of being
// captured through a `$( ... )` substitution.
func (g *Generator) lowerCommandStmt(n *ast.Command, ctx *lowerCtx) string {
	text, single := g.commandText(n, ctx)
	switch {
	case n.Kind == ast.Exec && !n.IsAsync:
		return fmt.Sprintf("brash_exec_cmd %s", text)
	case n.Kind == ast.Spawn:
		helper := "brash_spawn_cmd"
		if n.IsAsync {
			helper = "brash_async_spawn_cmd"
		}
		return fmt.Sprintf("%s %s", helper, text)
	case n.Kind == ast.Exec && n.IsAsync:
		return fmt.Sprintf("brash_async_exec_cmd %s", text)
	default:
		if single {
			return text
		}
		return fmt.Sprintf("brash_build_cmd %s", text)
	}
}
