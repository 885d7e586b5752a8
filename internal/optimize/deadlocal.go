package optimize

import "github.com/brashlang/brash/internal/ast"

// eliminateDeadLocals implements spec.md §4.5's dead-local elimination: a
// reverse scan of a block collecting a live set, dropping any
// VariableDeclaration/TupleVariableDeclaration/Assignment/ExpressionStatement
// whose bound name(s) are dead and whose value is pure.
func eliminateDeadLocals(stmts []ast.Stmt) []ast.Stmt {
	live := make(map[string]bool)
	// A name assigned here but declared outside this block may be read after
	// the block ends, so it starts out live.
	declared := make(map[string]bool)
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VariableDeclaration:
			declared[n.Name] = true
		case *ast.TupleVariableDeclaration:
			for _, el := range n.Elements {
				declared[el.Name] = true
			}
		}
	}
	for _, s := range stmts {
		if a, ok := s.(*ast.Assignment); ok {
			if id, ok := a.Target.(*ast.Identifier); ok && !declared[id.Name] {
				live[id.Name] = true
			}
		}
	}
	kept := make([]ast.Stmt, 0, len(stmts))
	for i := len(stmts) - 1; i >= 0; i-- {
		s := stmts[i]
		if elidable, reads := deadLocalInfo(s, live); elidable {
			continue
		} else {
			markLive(live, reads)
			kept = append(kept, s)
		}
	}
	// kept was built back-to-front; reverse it back to source order.
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}
	return kept
}

// deadLocalInfo reports whether s is elidable given the current live set,
// and the set of identifier names s reads (which must be marked live when
// s is kept, since later iterations of the reverse scan must see them).
func deadLocalInfo(s ast.Stmt, live map[string]bool) (elidable bool, reads []string) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		if !n.IsPublic && !live[n.Name] && ast.IsPure(n.Value) {
			return true, nil
		}
		return false, identifiersIn(n.Value)
	case *ast.TupleVariableDeclaration:
		anyLive := false
		for _, el := range n.Elements {
			if live[el.Name] {
				anyLive = true
			}
		}
		if !anyLive && ast.IsPure(n.Value) {
			return true, nil
		}
		return false, identifiersIn(n.Value)
	case *ast.Assignment:
		id, ok := n.Target.(*ast.Identifier)
		if ok && !live[id.Name] && ast.IsPure(n.Value) {
			return true, nil
		}
		reads = identifiersIn(n.Value)
		if !ok {
			reads = append(reads, identifiersIn(n.Target)...)
		}
		return false, reads
	case *ast.ExpressionStatement:
		if ast.IsPure(n.Expression) {
			return true, nil
		}
		return false, identifiersIn(n.Expression)
	default:
		return false, allIdentifiersIn(s)
	}
}

func markLive(live map[string]bool, names []string) {
	for _, n := range names {
		live[n] = true
	}
}

// identifiersIn collects every Identifier name reachable from e. It is
// conservative (it does not try to track which reads are shadowed by
// inner declarations), matching spec.md §4.5's "reaching definitions are
// unchanged" soundness requirement: once a name has ever been read after
// this point, it must stay live.
func identifiersIn(e ast.Expr) []string {
	var names []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch n := e.(type) {
		case nil:
		case *ast.Identifier:
			names = append(names, n.Name)
		case *ast.Binary:
			walk(n.Left)
			walk(n.Right)
		case *ast.Unary:
			walk(n.Operand)
		case *ast.Cast:
			walk(n.Value)
		case *ast.FunctionCall:
			walk(n.Callee)
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.MethodCall:
			walk(n.Object)
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.MemberAccess:
			walk(n.Object)
		case *ast.SafeNavigation:
			walk(n.Object)
		case *ast.IndexAccess:
			walk(n.Object)
			walk(n.Index)
		case *ast.ArrayLiteral:
			for _, el := range n.Elements {
				walk(el)
			}
		case *ast.MapLiteral:
			for _, entry := range n.Entries {
				walk(entry.Key)
				walk(entry.Value)
			}
		case *ast.StructLiteral:
			for _, f := range n.Fields {
				walk(f.Value)
			}
		case *ast.TupleExpression:
			for _, el := range n.Elements {
				walk(el)
			}
		case *ast.Pipe:
			walk(n.Left)
			walk(n.Right)
		case *ast.NullCoalesce:
			walk(n.Left)
			walk(n.Right)
		case *ast.Range:
			walk(n.Start)
			walk(n.End)
			walk(n.Step)
		case *ast.Command:
			for _, a := range n.Args {
				walk(a)
			}
		case *ast.Await:
			walk(n.Value)
		}
	}
	walk(e)
	return names
}

// allIdentifiersIn conservatively marks every identifier reachable from
// an arbitrary statement's sub-expressions live, so dead-local
// elimination never removes a declaration still read by a construct this
// package does not special-case for elision (if/while/for/try bodies,
// etc. — those are handled by the recursive optimizeBlock call already
// having committed their own bodies before this scan runs).
func allIdentifiersIn(s ast.Stmt) []string {
	switch n := s.(type) {
	case *ast.IfStatement:
		names := identifiersIn(n.Condition)
		names = append(names, bodyIdentifiers(n.Then)...)
		for _, ei := range n.ElseIfs {
			names = append(names, identifiersIn(ei.Condition)...)
			names = append(names, bodyIdentifiers(ei.Body)...)
		}
		names = append(names, bodyIdentifiers(n.Else)...)
		return names
	case *ast.ForLoop:
		names := identifiersIn(n.Source)
		return append(names, bodyIdentifiers(n.Body)...)
	case *ast.WhileLoop:
		names := identifiersIn(n.Condition)
		return append(names, bodyIdentifiers(n.Body)...)
	case *ast.TryStatement:
		names := bodyIdentifiers(n.TryBlock)
		return append(names, bodyIdentifiers(n.CatchBlock)...)
	case *ast.ThrowStatement:
		return identifiersIn(n.Value)
	case *ast.ReturnStatement:
		return identifiersIn(n.Value)
	default:
		return nil
	}
}

func bodyIdentifiers(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		names = append(names, allIdentifiersIn(s)...)
		if es, ok := s.(*ast.ExpressionStatement); ok {
			names = append(names, identifiersIn(es.Expression)...)
		}
		if vd, ok := s.(*ast.VariableDeclaration); ok {
			names = append(names, identifiersIn(vd.Value)...)
		}
		if as, ok := s.(*ast.Assignment); ok {
			names = append(names, identifiersIn(as.Value)...)
			names = append(names, identifiersIn(as.Target)...)
		}
	}
	return names
}
