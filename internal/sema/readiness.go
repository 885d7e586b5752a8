package sema

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
)

// readinessPass is spec.md §4.4's non-suppressible transpilation-readiness
// gate: a final structural sweep that rejects constructs the code
// generator has no lowering for, run after the ordinary type-checking
// pass so it sees the whole program regardless of earlier errors.
func (a *Analyzer) readinessPass(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.readyStmt(s)
	}
}

func (a *Analyzer) readyStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		a.readyAssignedExpr(n.Value)
	case *ast.TupleVariableDeclaration:
		a.readyTopExpr(n.Value)
	case *ast.Assignment:
		a.readyExpr(n.Target)
		a.readyAssignedExpr(n.Value)
	case *ast.FunctionDeclaration:
		a.readyStmts(n.Body)
	case *ast.ImplBlock:
		for _, m := range n.Methods {
			a.readyStmts(m.Body)
		}
	case *ast.IfStatement:
		a.readyExpr(n.Condition)
		a.readyStmts(n.Then)
		for _, ei := range n.ElseIfs {
			a.readyExpr(ei.Condition)
			a.readyStmts(ei.Body)
		}
		a.readyStmts(n.Else)
	case *ast.ForLoop:
		// Range is valid exactly here, in the Source slot; skip straight
		// to its children instead of routing through readyExpr so the
		// generic Range case below can reject it everywhere else.
		if r, ok := n.Source.(*ast.Range); ok {
			a.readyExpr(r.Start)
			a.readyExpr(r.End)
			if r.Step != nil {
				a.readyExpr(r.Step)
			}
		} else {
			a.readyExpr(n.Source)
		}
		a.readyStmts(n.Body)
	case *ast.WhileLoop:
		a.readyExpr(n.Condition)
		a.readyStmts(n.Body)
	case *ast.TryStatement:
		a.readyStmts(n.TryBlock)
		a.readyStmts(n.CatchBlock)
	case *ast.ThrowStatement:
		a.readyExpr(n.Value)
	case *ast.ImportStatement:
		a.errorf(n.Pos, diag.TC030, "import statements must be resolved before codegen")
	case *ast.ReturnStatement:
		if n.Value != nil {
			a.readyTopExpr(n.Value)
		}
	case *ast.ShStatement, *ast.BreakStatement, *ast.ContinueStatement,
		*ast.StructDeclaration, *ast.EnumDeclaration:
		// No nested expressions to sweep.
	case *ast.ExpressionStatement:
		a.readyTopExpr(n.Expression)
	}
}

// readyTopExpr checks an expression sitting directly in a statement-level
// slot (a declaration's value, an assignment's value, a return value, or a
// bare expression statement). await is lowerable only in exactly these
// positions, since brash_await's file-draining side effect does not compose
// inside a larger expression; everywhere else it falls through to the
// ordinary, await-rejecting readyExpr.
func (a *Analyzer) readyTopExpr(e ast.Expr) {
	if await, ok := e.(*ast.Await); ok {
		a.readyExpr(await.Value)
		return
	}
	a.readyExpr(e)
}

// readyAssignedExpr is readyTopExpr plus one more carve-out: a map
// literal sitting directly as a variable declaration's or assignment's
// value lowers to `NAME=$(brash_map_literal ...)` per spec.md §4.6, so it
// is valid in exactly this position even though a map literal is
// otherwise rejected everywhere a value is expected (nested in a call
// argument, an array element, a struct field, a return value).
func (a *Analyzer) readyAssignedExpr(e ast.Expr) {
	if m, ok := e.(*ast.MapLiteral); ok {
		for i := range m.Entries {
			a.readyExpr(m.Entries[i].Key)
			a.readyExpr(m.Entries[i].Value)
		}
		return
	}
	a.readyTopExpr(e)
}

func (a *Analyzer) readyStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.readyStmt(s)
	}
}

func (a *Analyzer) readyExpr(e ast.Expr) {
	switch n := e.(type) {
	case nil:
	case *ast.Binary:
		a.readyExpr(n.Left)
		a.readyExpr(n.Right)
	case *ast.Unary:
		a.readyExpr(n.Operand)
	case *ast.Cast:
		a.readyExpr(n.Value)
	case *ast.FunctionCall:
		a.readyExpr(n.Callee)
		for _, arg := range n.Args {
			a.readyExpr(arg)
		}
	case *ast.MethodCall:
		a.readyExpr(n.Object)
		for _, arg := range n.Args {
			a.readyExpr(arg)
		}
	case *ast.MemberAccess:
		a.readyExpr(n.Object)
	case *ast.SafeNavigation:
		a.readyExpr(n.Object)
	case *ast.IndexAccess:
		a.readyExpr(n.Object)
		a.readyExpr(n.Index)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			a.readyExpr(el)
		}
	case *ast.MapLiteral:
		a.errorf(n.Pos, diag.TC030, "map literals cannot be used as values; assign fields individually")
	case *ast.StructLiteral:
		for _, f := range n.Fields {
			a.readyExpr(f.Value)
		}
	case *ast.TupleExpression:
		for _, el := range n.Elements {
			a.readyExpr(el)
		}
	case *ast.Pipe:
		a.readyExpr(n.Left)
		a.readyExpr(n.Right)
	case *ast.NullCoalesce:
		a.readyExpr(n.Left)
		a.readyExpr(n.Right)
	case *ast.Range:
		a.errorf(n.Pos, diag.TC030, "range expressions are only valid directly as a for-loop source")
	case *ast.Command:
		if n.IsAsync && n.Kind != ast.Exec && n.Kind != ast.Spawn {
			a.errorf(n.Pos, diag.TC030, "async is only valid on exec/spawn commands")
		}
		for _, arg := range n.Args {
			a.readyExpr(arg)
		}
	case *ast.Await:
		a.errorf(n.Pos, diag.TC030, "await is not directly lowerable; assign its Process to a variable first")
		a.readyExpr(n.Value)
	case *ast.Literal, *ast.Identifier, *ast.Self, *ast.EnumLiteral:
		// Always lowerable as-is.
	}
}
