package codegen

import "github.com/brashlang/brash/internal/ast"

// helperFlags records which runtime helpers the program actually needs, per
// spec.md §4.6's helper-usage analysis: "a read-only AST walk sets flags...
// the helper prologue emits exactly the flagged helpers."
type helperFlags struct {
	fieldAccess  bool // brash_get_field / brash_set_field
	methodDispatch bool // brash_call_method
	mapOps       bool // brash_map_*
	indexOps     bool // brash_index_*
	execSpawn    bool // brash_exec_cmd / brash_spawn_cmd / brash_build_cmd / brash_pipe_cmd
	asyncExec    bool // brash_async_exec_cmd / brash_async_spawn_cmd / brash_await
	readln       bool // brash_readln
	throwPanic   bool // brash_throw / brash_panic
}

func analyzeHelperUsage(stmts []ast.Stmt) helperFlags {
	var f helperFlags
	walkStmtsForFlags(stmts, &f)
	return f
}

func walkStmtsForFlags(stmts []ast.Stmt, f *helperFlags) {
	for _, s := range stmts {
		walkStmtForFlags(s, f)
	}
}

func walkStmtForFlags(s ast.Stmt, f *helperFlags) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		if _, ok := n.Value.(*ast.MapLiteral); ok {
			f.mapOps = true
		}
		walkExprForFlags(n.Value, f)
	case *ast.TupleVariableDeclaration:
		walkExprForFlags(n.Value, f)
	case *ast.Assignment:
		if _, ok := n.Target.(*ast.IndexAccess); ok {
			f.indexOps = true
		}
		if ma, ok := n.Target.(*ast.MemberAccess); ok {
			_ = ma
			f.fieldAccess = true
		}
		walkExprForFlags(n.Target, f)
		walkExprForFlags(n.Value, f)
	case *ast.FunctionDeclaration:
		walkStmtsForFlags(n.Body, f)
	case *ast.ImplBlock:
		f.methodDispatch = true
		for _, m := range n.Methods {
			walkStmtsForFlags(m.Body, f)
		}
	case *ast.IfStatement:
		walkExprForFlags(n.Condition, f)
		walkStmtsForFlags(n.Then, f)
		for _, ei := range n.ElseIfs {
			walkExprForFlags(ei.Condition, f)
			walkStmtsForFlags(ei.Body, f)
		}
		walkStmtsForFlags(n.Else, f)
	case *ast.ForLoop:
		walkExprForFlags(n.Source, f)
		walkStmtsForFlags(n.Body, f)
	case *ast.WhileLoop:
		walkExprForFlags(n.Condition, f)
		walkStmtsForFlags(n.Body, f)
	case *ast.TryStatement:
		f.throwPanic = true
		walkStmtsForFlags(n.TryBlock, f)
		walkStmtsForFlags(n.CatchBlock, f)
	case *ast.ThrowStatement:
		f.throwPanic = true
		walkExprForFlags(n.Value, f)
	case *ast.ReturnStatement:
		if n.Value != nil {
			walkExprForFlags(n.Value, f)
		}
	case *ast.ExpressionStatement:
		walkExprForFlags(n.Expression, f)
	}
}

func walkExprForFlags(e ast.Expr, f *helperFlags) {
	switch n := e.(type) {
	case nil:
	case *ast.Binary:
		walkExprForFlags(n.Left, f)
		walkExprForFlags(n.Right, f)
	case *ast.Unary:
		walkExprForFlags(n.Operand, f)
	case *ast.Cast:
		walkExprForFlags(n.Value, f)
	case *ast.FunctionCall:
		if id, ok := n.Callee.(*ast.Identifier); ok && id.Name == "panic" {
			f.throwPanic = true
		}
		if id, ok := n.Callee.(*ast.Identifier); ok && id.Name == "readln" {
			f.readln = true
		}
		walkExprForFlags(n.Callee, f)
		for _, a := range n.Args {
			walkExprForFlags(a, f)
		}
	case *ast.MethodCall:
		if !n.IsStaticDispatch {
			f.methodDispatch = true
		}
		if n.Name == "index_of" {
			f.indexOps = true
		}
		walkExprForFlags(n.Object, f)
		for _, a := range n.Args {
			walkExprForFlags(a, f)
		}
	case *ast.MemberAccess:
		f.fieldAccess = true
		walkExprForFlags(n.Object, f)
	case *ast.SafeNavigation:
		f.fieldAccess = true
		walkExprForFlags(n.Object, f)
	case *ast.IndexAccess:
		f.indexOps = true
		walkExprForFlags(n.Object, f)
		walkExprForFlags(n.Index, f)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			walkExprForFlags(el, f)
		}
	case *ast.MapLiteral:
		f.mapOps = true
		for _, entry := range n.Entries {
			walkExprForFlags(entry.Key, f)
			walkExprForFlags(entry.Value, f)
		}
	case *ast.StructLiteral:
		for _, fi := range n.Fields {
			walkExprForFlags(fi.Value, f)
		}
	case *ast.TupleExpression:
		for _, el := range n.Elements {
			walkExprForFlags(el, f)
		}
	case *ast.Pipe:
		f.execSpawn = true
		walkExprForFlags(n.Left, f)
		walkExprForFlags(n.Right, f)
	case *ast.NullCoalesce:
		walkExprForFlags(n.Left, f)
		walkExprForFlags(n.Right, f)
	case *ast.Command:
		if n.IsAsync {
			f.asyncExec = true
		} else {
			f.execSpawn = true
		}
		for _, a := range n.Args {
			walkExprForFlags(a, f)
		}
	case *ast.Await:
		f.asyncExec = true
		walkExprForFlags(n.Value, f)
	}
}
