package optimize

import "github.com/brashlang/brash/internal/ast"

// optimizeBlock runs propagation+folding and, when enabled, control-flow
// simplification over stmts, per spec.md §4.5. It returns a new statement
// list; parentEnv is copied so writes inside this block never leak to the
// caller (constant propagation is scope-local).
func optimizeBlock(stmts []ast.Stmt, opts Options, parentEnv literalEnv) []ast.Stmt {
	env := literalEnv(nil)
	if opts.EnableConstantPropagation {
		env = parentEnv.clone()
	}
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = optimizeStmt(s, opts, env, out)
	}
	if opts.EnableDeadLocalElimination {
		out = eliminateDeadLocals(out)
	}
	return out
}

// optimizeStmt processes one statement, appending zero or more resulting
// statements to out (an `if`/`while` that folds away contributes zero or
// the inlined branch's statements instead of one IfStatement/WhileLoop).
func optimizeStmt(s ast.Stmt, opts Options, env literalEnv, out []ast.Stmt) []ast.Stmt {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		n.Value = optimizeExpr(n.Value, env, opts)
		bindIfLiteral(env, n.Name, n.Kind, n.Value)
		return append(out, n)
	case *ast.TupleVariableDeclaration:
		n.Value = optimizeExpr(n.Value, env, opts)
		for _, el := range n.Elements {
			delete(env, el.Name)
		}
		return append(out, n)
	case *ast.Assignment:
		n.Value = optimizeExpr(n.Value, env, opts)
		n.Target = optimizeExpr(n.Target, env, opts)
		if id, ok := n.Target.(*ast.Identifier); ok {
			delete(env, id.Name)
		}
		return append(out, n)
	case *ast.ExpressionStatement:
		n.Expression = optimizeExpr(n.Expression, env, opts)
		return append(out, n)
	case *ast.ThrowStatement:
		n.Value = optimizeExpr(n.Value, env, opts)
		return append(out, n)
	case *ast.ReturnStatement:
		if n.Value != nil {
			n.Value = optimizeExpr(n.Value, env, opts)
		}
		return append(out, n)
	case *ast.FunctionDeclaration:
		n.Body = optimizeBlock(n.Body, opts, nil)
		return append(out, n)
	case *ast.ImplBlock:
		for _, m := range n.Methods {
			m.Body = optimizeBlock(m.Body, opts, nil)
		}
		return append(out, n)
	case *ast.IfStatement:
		return optimizeIf(n, opts, env, out)
	case *ast.WhileLoop:
		return optimizeWhile(n, opts, env, out)
	case *ast.ForLoop:
		n.Source = optimizeExpr(n.Source, env, opts)
		n.Body = optimizeBlock(n.Body, opts, env)
		clearScope(env, opts)
		return append(out, n)
	case *ast.TryStatement:
		n.TryBlock = optimizeBlock(n.TryBlock, opts, env)
		n.CatchBlock = optimizeBlock(n.CatchBlock, opts, env)
		clearScope(env, opts)
		return append(out, n)
	default:
		// StructDeclaration, EnumDeclaration, ImportStatement, ShStatement,
		// BreakStatement, ContinueStatement carry no optimizable sub-trees.
		return append(out, s)
	}
}

// clearScope implements spec.md §4.5's conservative union rule: "branches
// are unioned conservatively by clearing the outer state after an
// if/while/for."
func clearScope(env literalEnv, opts Options) {
	if !opts.EnableConstantPropagation {
		return
	}
	for k := range env {
		delete(env, k)
	}
}

func optimizeIf(n *ast.IfStatement, opts Options, env literalEnv, out []ast.Stmt) []ast.Stmt {
	n.Condition = optimizeExpr(n.Condition, env, opts)
	if opts.EnableControlFlowSimplification {
		if lit, ok := asBoolLiteral(n.Condition); ok {
			if lit {
				inlined := optimizeBlock(n.Then, opts, env)
				clearScope(env, opts)
				return append(out, inlined...)
			}
			for _, ei := range n.ElseIfs {
				ei.Condition = optimizeExpr(ei.Condition, env, opts)
				if lit, ok := asBoolLiteral(ei.Condition); ok && lit {
					inlined := optimizeBlock(ei.Body, opts, env)
					clearScope(env, opts)
					return append(out, inlined...)
				} else if !ok {
					return optimizeIfFallback(n, opts, env, out)
				}
			}
			inlined := optimizeBlock(n.Else, opts, env)
			clearScope(env, opts)
			return append(out, inlined...)
		}
	}
	return optimizeIfFallback(n, opts, env, out)
}

// optimizeIfFallback handles the non-eliminated case: every branch is
// optimized independently against a copy of the current environment, and
// the outer environment is cleared afterward.
func optimizeIfFallback(n *ast.IfStatement, opts Options, env literalEnv, out []ast.Stmt) []ast.Stmt {
	n.Then = optimizeBlock(n.Then, opts, env)
	for i := range n.ElseIfs {
		n.ElseIfs[i].Condition = optimizeExpr(n.ElseIfs[i].Condition, env, opts)
		n.ElseIfs[i].Body = optimizeBlock(n.ElseIfs[i].Body, opts, env)
	}
	if n.Else != nil {
		n.Else = optimizeBlock(n.Else, opts, env)
	}
	clearScope(env, opts)
	return append(out, n)
}

func optimizeWhile(n *ast.WhileLoop, opts Options, env literalEnv, out []ast.Stmt) []ast.Stmt {
	n.Condition = optimizeExpr(n.Condition, env, opts)
	if opts.EnableControlFlowSimplification {
		if lit, ok := asBoolLiteral(n.Condition); ok && !lit {
			// `while false` never executes; dropped entirely, per spec.md
			// §4.5. The environment is left untouched since nothing ran.
			return out
		}
	}
	n.Body = optimizeBlock(n.Body, opts, env)
	clearScope(env, opts)
	return append(out, n)
}

func asBoolLiteral(e ast.Expr) (bool, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.BoolLit {
		return false, false
	}
	return lit.BoolValue, true
}
