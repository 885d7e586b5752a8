package optimize

import "github.com/brashlang/brash/internal/ast"

// literalEnv is the scope-local `name -> LiteralExpression` environment
// described in spec.md §4.5. A nil/empty env behaves as "no bindings",
// which is what EnableConstantPropagation=false degrades to.
type literalEnv map[string]*ast.Literal

func (e literalEnv) clone() literalEnv {
	c := make(literalEnv, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// optimizeExpr substitutes propagated literals and folds constant
// sub-expressions bottom-up, per spec.md §4.5. It mutates expression
// trees in place (the AST is single-owner, never shared across
// compilations) and returns the possibly-replaced root.
func optimizeExpr(e ast.Expr, env literalEnv, opts Options) ast.Expr {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.Literal, *ast.Self, *ast.EnumLiteral:
		return n
	case *ast.Identifier:
		if opts.EnableConstantPropagation {
			if lit, ok := env[n.Name]; ok {
				clone := *lit
				clone.Pos = n.Pos
				return &clone
			}
		}
		return n
	case *ast.Binary:
		n.Left = optimizeExpr(n.Left, env, opts)
		n.Right = optimizeExpr(n.Right, env, opts)
		if opts.EnableConstantFolding {
			return foldBinary(n)
		}
		return n
	case *ast.Unary:
		n.Operand = optimizeExpr(n.Operand, env, opts)
		if opts.EnableConstantFolding {
			return foldUnary(n)
		}
		return n
	case *ast.Cast:
		n.Value = optimizeExpr(n.Value, env, opts)
		if opts.EnableConstantFolding {
			return foldCast(n)
		}
		return n
	case *ast.NullCoalesce:
		n.Left = optimizeExpr(n.Left, env, opts)
		n.Right = optimizeExpr(n.Right, env, opts)
		if opts.EnableConstantFolding {
			return foldNullCoalesce(n)
		}
		return n
	case *ast.FunctionCall:
		n.Callee = optimizeExpr(n.Callee, env, opts)
		for i, a := range n.Args {
			n.Args[i] = optimizeExpr(a, env, opts)
		}
		return n
	case *ast.MethodCall:
		n.Object = optimizeExpr(n.Object, env, opts)
		for i, a := range n.Args {
			n.Args[i] = optimizeExpr(a, env, opts)
		}
		return n
	case *ast.MemberAccess:
		n.Object = optimizeExpr(n.Object, env, opts)
		return n
	case *ast.SafeNavigation:
		n.Object = optimizeExpr(n.Object, env, opts)
		return n
	case *ast.IndexAccess:
		n.Object = optimizeExpr(n.Object, env, opts)
		n.Index = optimizeExpr(n.Index, env, opts)
		return n
	case *ast.ArrayLiteral:
		for i, el := range n.Elements {
			n.Elements[i] = optimizeExpr(el, env, opts)
		}
		return n
	case *ast.MapLiteral:
		for i := range n.Entries {
			n.Entries[i].Key = optimizeExpr(n.Entries[i].Key, env, opts)
			n.Entries[i].Value = optimizeExpr(n.Entries[i].Value, env, opts)
		}
		return n
	case *ast.StructLiteral:
		for i := range n.Fields {
			n.Fields[i].Value = optimizeExpr(n.Fields[i].Value, env, opts)
		}
		return n
	case *ast.TupleExpression:
		for i, el := range n.Elements {
			n.Elements[i] = optimizeExpr(el, env, opts)
		}
		return n
	case *ast.Pipe:
		n.Left = optimizeExpr(n.Left, env, opts)
		n.Right = optimizeExpr(n.Right, env, opts)
		return n
	case *ast.Range:
		n.Start = optimizeExpr(n.Start, env, opts)
		n.End = optimizeExpr(n.End, env, opts)
		if n.Step != nil {
			n.Step = optimizeExpr(n.Step, env, opts)
		}
		return n
	case *ast.Command:
		for i, a := range n.Args {
			n.Args[i] = optimizeExpr(a, env, opts)
		}
		return n
	case *ast.Await:
		n.Value = optimizeExpr(n.Value, env, opts)
		return n
	default:
		return e
	}
}

// bindIfLiteral implements the binding half of spec.md §4.5's constant
// propagation rule: "let/const with a literal initializer binds; let mut
// and any assignment invalidates the binding."
func bindIfLiteral(env literalEnv, name string, kind ast.DeclKind, value ast.Expr) {
	if env == nil {
		return
	}
	if kind == ast.Mut {
		delete(env, name)
		return
	}
	if lit, ok := value.(*ast.Literal); ok {
		env[name] = lit
		return
	}
	delete(env, name)
}
