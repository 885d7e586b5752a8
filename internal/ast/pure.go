package ast

// IsPure implements the purity predicate from spec.md §4.5: "literals,
// identifiers, arithmetic/logical/comparison/cast/range/member/index/
// safe-nav/coalesce over pure sub-expressions, array/map/struct/tuple/enum
// literals of pure elements. Function calls, method calls, commands,
// pipes, and await are impure." Self is treated as pure (it is a simple
// reference, like Identifier).
func IsPure(e Expr) bool {
	switch n := e.(type) {
	case nil:
		return true
	case *Literal, *Identifier, *Self, *EnumLiteral:
		return true
	case *Binary:
		return IsPure(n.Left) && IsPure(n.Right)
	case *Unary:
		return IsPure(n.Operand)
	case *Cast:
		return IsPure(n.Value)
	case *Range:
		return IsPure(n.Start) && IsPure(n.End) && (n.Step == nil || IsPure(n.Step))
	case *MemberAccess:
		return IsPure(n.Object)
	case *SafeNavigation:
		return IsPure(n.Object)
	case *IndexAccess:
		return IsPure(n.Object) && IsPure(n.Index)
	case *NullCoalesce:
		return IsPure(n.Left) && IsPure(n.Right)
	case *ArrayLiteral:
		return allPure(n.Elements)
	case *TupleExpression:
		return allPure(n.Elements)
	case *MapLiteral:
		for _, entry := range n.Entries {
			if !IsPure(entry.Key) || !IsPure(entry.Value) {
				return false
			}
		}
		return true
	case *StructLiteral:
		for _, f := range n.Fields {
			if !IsPure(f.Value) {
				return false
			}
		}
		return true
	default:
		// FunctionCall, MethodCall, Command, Pipe, Await are impure.
		return false
	}
}

func allPure(exprs []Expr) bool {
	for _, e := range exprs {
		if !IsPure(e) {
			return false
		}
	}
	return true
}
