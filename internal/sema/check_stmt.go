package sema

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/types"
)

// checkStmt validates one statement per spec.md §4.4's contract table,
// recursing into nested blocks with fresh scopes.
func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		a.checkVariableDeclaration(n)
	case *ast.TupleVariableDeclaration:
		a.checkTupleVariableDeclaration(n)
	case *ast.Assignment:
		a.checkAssignment(n)
	case *ast.FunctionDeclaration:
		a.checkFunctionDeclaration(n)
	case *ast.StructDeclaration, *ast.EnumDeclaration:
		// Fully handled by the declaration pass; nothing to validate here.
	case *ast.ImplBlock:
		a.checkImplBlock(n)
	case *ast.IfStatement:
		a.checkIfStatement(n)
	case *ast.ForLoop:
		a.checkForLoop(n)
	case *ast.WhileLoop:
		a.checkWhileLoop(n)
	case *ast.TryStatement:
		a.checkTryStatement(n)
	case *ast.ThrowStatement:
		a.exprType(n.Value)
	case *ast.ImportStatement:
		// Resolved entirely by internal/module before sema runs.
	case *ast.ReturnStatement:
		a.checkReturnStatement(n)
	case *ast.BreakStatement:
		if a.loopDepth == 0 {
			a.errorf(n.Pos, diag.TC019, "break outside a loop")
		}
	case *ast.ContinueStatement:
		if a.loopDepth == 0 {
			a.errorf(n.Pos, diag.TC019, "continue outside a loop")
		}
	case *ast.ShStatement:
		checkShInterpolation(a, n)
	case *ast.ExpressionStatement:
		a.exprType(n.Expression)
	}
}

func (a *Analyzer) checkBlock(stmts []ast.Stmt) {
	pop := a.pushScope()
	defer pop()
	for _, s := range stmts {
		a.checkStmt(s)
	}
}

func (a *Analyzer) checkVariableDeclaration(n *ast.VariableDeclaration) {
	valueType := a.exprType(n.Value)
	declared := n.Type
	if declared == nil {
		declared = valueType
	} else if !types.IsUnknown(valueType) && !types.AssignableFrom(declared, valueType) {
		a.errorf(n.Pos, diag.TC010, "cannot assign %s to %s %s", valueType, n.Name, declared)
	}
	n.ResolvedTy = declared

	if a.scope.declaredHere(n.Name) {
		a.errorf(n.Pos, diag.TC005, "%q already declared in this scope", n.Name)
	}
	a.scope.declare(&VariableSymbol{Name: n.Name, Type: declared, IsMutable: n.Kind == ast.Mut})
}

func (a *Analyzer) checkTupleVariableDeclaration(n *ast.TupleVariableDeclaration) {
	valueType := a.exprType(n.Value)
	tup, ok := valueType.(*types.Tuple)
	if !ok {
		if !types.IsUnknown(valueType) {
			a.errorf(n.Pos, diag.TC013, "cannot destructure non-tuple type %s", valueType)
		}
		for _, el := range n.Elements {
			a.scope.declare(&VariableSymbol{Name: el.Name, Type: &types.Unknown{}, IsMutable: el.IsMutable})
		}
		return
	}
	if len(tup.Elements) != len(n.Elements) {
		a.errorf(n.Pos, diag.TC013, "tuple has %d elements, destructuring binds %d", len(tup.Elements), len(n.Elements))
	}
	for i, el := range n.Elements {
		var t types.Type = &types.Unknown{}
		if i < len(tup.Elements) {
			t = tup.Elements[i]
		}
		if a.scope.declaredHere(el.Name) {
			a.errorf(el.Pos, diag.TC005, "%q already declared in this scope", el.Name)
		}
		a.scope.declare(&VariableSymbol{Name: el.Name, Type: t, IsMutable: el.IsMutable})
	}
}

// checkAssignment implements spec.md §4.4's Assignment contract: the
// target must be a mutable variable, a field of self, or an index
// expression, and the value must be assignable to its resolved type.
func (a *Analyzer) checkAssignment(n *ast.Assignment) {
	valueType := a.exprType(n.Value)

	switch target := n.Target.(type) {
	case *ast.Identifier:
		sym, ok := a.scope.lookup(target.Name)
		if !ok {
			a.errorf(n.Pos, diag.TC010, "undefined variable %q", target.Name)
			return
		}
		if !sym.IsMutable {
			a.errorf(n.Pos, diag.TC011, "cannot assign to immutable variable %q", target.Name)
		}
		if !types.IsUnknown(valueType) && !types.AssignableFrom(sym.Type, valueType) {
			a.errorf(n.Pos, diag.TC010, "cannot assign %s to %q of type %s", valueType, target.Name, sym.Type)
		}
	case *ast.MemberAccess:
		if _, isSelf := target.Object.(*ast.Self); isSelf {
			if a.currentImplType == "" || a.inStaticMethod {
				a.errorf(n.Pos, diag.TC012, "assignment to self.%s outside an instance method", target.Field)
			}
		}
		fieldType := a.exprType(target)
		if !types.IsUnknown(valueType) && !types.IsUnknown(fieldType) && !types.AssignableFrom(fieldType, valueType) {
			a.errorf(n.Pos, diag.TC010, "cannot assign %s to field %q of type %s", valueType, target.Field, fieldType)
		}
	case *ast.IndexAccess:
		elemType := a.exprType(target)
		if !types.IsUnknown(valueType) && !types.IsUnknown(elemType) && !types.AssignableFrom(elemType, valueType) {
			a.errorf(n.Pos, diag.TC010, "cannot assign %s into index of element type %s", valueType, elemType)
		}
	default:
		a.errorf(n.Pos, diag.TC010, "invalid assignment target")
	}
}

// checkFunctionDeclaration implements spec.md §4.4's TC014 main() rule in
// addition to the ordinary parameter-scope-and-body walk.
func (a *Analyzer) checkFunctionDeclaration(n *ast.FunctionDeclaration) {
	if n.Name == "main" && !isMainSignature(n.Params, n.ReturnType) {
		a.errorf(n.Pos, diag.TC014, "main must be either () -> void|int or (args: string[]) -> void|int")
	}

	pop := a.pushScope()
	defer pop()
	for _, p := range n.Params {
		a.scope.declare(&VariableSymbol{Name: p.Name, Type: p.Type, IsMutable: p.IsMutable})
	}

	prevReturn := a.currentReturnType
	if n.ReturnType != nil {
		a.currentReturnType = n.ReturnType
	} else {
		a.currentReturnType = types.NewVoid()
	}
	for _, s := range n.Body {
		a.checkStmt(s)
	}
	a.currentReturnType = prevReturn
}

// isMainSignature implements spec.md §4.4's main() rule: "its signature
// must be either () -> void|int or (args: string[]) -> void|int; any other
// signature => Error."
func isMainSignature(params []*ast.Param, returnType types.Type) bool {
	if !(returnType == nil || types.IsVoid(returnType) || types.IsPrimitive(returnType, types.Int)) {
		return false
	}
	switch len(params) {
	case 0:
		return true
	case 1:
		arr, ok := params[0].Type.(*types.Array)
		return ok && types.IsPrimitive(arr.Elem, types.String)
	default:
		return false
	}
}

func (a *Analyzer) checkImplBlock(n *ast.ImplBlock) {
	if _, ok := a.typesTbl[n.TypeName]; !ok {
		a.errorf(n.Pos, diag.TC017, "impl block for undeclared type %q", n.TypeName)
	}
	prevType := a.currentImplType
	a.currentImplType = n.TypeName
	for _, m := range n.Methods {
		a.checkMethodDeclaration(m)
	}
	a.currentImplType = prevType
}

func (a *Analyzer) checkMethodDeclaration(n *ast.MethodDeclaration) {
	pop := a.pushScope()
	defer pop()

	prevStatic := a.inStaticMethod
	a.inStaticMethod = n.IsStatic
	for _, p := range n.Params {
		a.scope.declare(&VariableSymbol{Name: p.Name, Type: p.Type, IsMutable: p.IsMutable})
	}

	prevReturn := a.currentReturnType
	if n.ReturnType != nil {
		a.currentReturnType = n.ReturnType
	} else {
		a.currentReturnType = types.NewVoid()
	}
	for _, s := range n.Body {
		a.checkStmt(s)
	}
	a.currentReturnType = prevReturn
	a.inStaticMethod = prevStatic
}

// checkIfStatement implements spec.md §4.4's WARN002 and the nullability
// tracker's true-branch narrowing after a `x != null` guard.
func (a *Analyzer) checkIfStatement(n *ast.IfStatement) {
	condType := a.exprType(n.Condition)
	if !types.IsUnknown(condType) && !types.IsPrimitive(condType, types.Bool) {
		a.warnf(n.Pos, diag.WARN002, "if condition is %s, not bool", condType)
	}

	prevScope := a.scope
	if narrowed := narrowingGuard(n.Condition, a.scope); narrowed != nil {
		a.scope = narrowed
	} else {
		a.scope = newScope(a.scope)
	}
	a.checkBlockNoPush(n.Then)
	a.scope = prevScope

	for _, ei := range n.ElseIfs {
		eiType := a.exprType(ei.Condition)
		if !types.IsUnknown(eiType) && !types.IsPrimitive(eiType, types.Bool) {
			a.warnf(ei.Pos, diag.WARN002, "elif condition is %s, not bool", eiType)
		}
		a.checkBlock(ei.Body)
	}
	if n.Else != nil {
		a.checkBlock(n.Else)
	}
}

// checkBlockNoPush runs stmts in a scope that is already the narrowed
// child scope built by the caller, rather than pushing another level.
func (a *Analyzer) checkBlockNoPush(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.checkStmt(s)
	}
}

// narrowingGuard recognizes an `ident != null` guard and returns a scope
// with ident widened for the true branch (any other condition, including
// `ident == null`, yields nil), per spec.md
// §4.4's nullability tracker.
func narrowingGuard(cond ast.Expr, cur *scope) *scope {
	bin, ok := cond.(*ast.Binary)
	if !ok || bin.Op != "!=" {
		return nil
	}
	ident, ok := bin.Left.(*ast.Identifier)
	if !ok {
		return nil
	}
	lit, ok := bin.Right.(*ast.Literal)
	if !ok || lit.Kind != ast.NullLit {
		return nil
	}
	sym, ok := cur.lookup(ident.Name)
	if !ok || !types.IsNullable(sym.Type) {
		return nil
	}
	return cur.narrow(ident.Name, types.NonNullBase(sym.Type))
}

func (a *Analyzer) checkForLoop(n *ast.ForLoop) {
	var elemType types.Type = &types.Unknown{}
	switch src := n.Source.(type) {
	case *ast.Range:
		a.exprType(src.Start)
		a.exprType(src.End)
		if src.Step != nil {
			a.exprType(src.Step)
		}
		elemType = types.NewInt()
	default:
		srcType := a.exprType(n.Source)
		if arr, ok := srcType.(*types.Array); ok {
			elemType = arr.Elem
		} else if !types.IsUnknown(srcType) {
			a.errorf(n.Pos, diag.TC010, "for loop source must be a range or an array, got %s", srcType)
		}
	}

	pop := a.pushScope()
	defer pop()
	a.scope.declare(&VariableSymbol{Name: n.Variable, Type: elemType, IsMutable: false})
	a.loopDepth++
	for _, s := range n.Body {
		a.checkStmt(s)
	}
	a.loopDepth--
}

func (a *Analyzer) checkWhileLoop(n *ast.WhileLoop) {
	condType := a.exprType(n.Condition)
	if !types.IsUnknown(condType) && !types.IsPrimitive(condType, types.Bool) {
		a.warnf(n.Pos, diag.WARN002, "while condition is %s, not bool", condType)
	}
	a.loopDepth++
	a.checkBlock(n.Body)
	a.loopDepth--
}

func (a *Analyzer) checkTryStatement(n *ast.TryStatement) {
	a.checkBlock(n.TryBlock)

	pop := a.pushScope()
	defer pop()
	a.scope.declare(&VariableSymbol{Name: n.ErrorVar, Type: types.NewString(), IsMutable: false})
	for _, s := range n.CatchBlock {
		a.checkStmt(s)
	}
}

func (a *Analyzer) checkReturnStatement(n *ast.ReturnStatement) {
	var t types.Type = types.NewVoid()
	if n.Value != nil {
		t = a.exprType(n.Value)
	}
	want := a.currentReturnType
	if want == nil {
		want = types.NewVoid()
	}
	if !types.IsUnknown(t) && !types.AssignableFrom(want, t) {
		a.errorf(n.Pos, diag.TC010, "return type mismatch: expected %s, got %s", want, t)
	}
}

// checkShInterpolation implements spec.md §4.4's WARN004 heuristic: a raw
// sh block containing `${name}` where name is not a brash identifier in
// scope is almost always an accidental shell-variable reference the author
// meant to interpolate from brash instead.
func checkShInterpolation(a *Analyzer, n *ast.ShStatement) {
	script := n.Script
	for i := 0; i+1 < len(script); i++ {
		if script[i] != '$' || script[i+1] != '{' {
			continue
		}
		end := -1
		for j := i + 2; j < len(script); j++ {
			if script[j] == '}' {
				end = j
				break
			}
		}
		if end == -1 {
			break
		}
		name := script[i+2 : end]
		if name == "" || !isPlainIdent(name) {
			i = end
			continue
		}
		if _, ok := a.scope.lookup(name); !ok {
			a.warnf(n.Pos, diag.WARN004, "${%s} in sh block does not match any variable in scope", name)
		}
		i = end
	}
}

func isPlainIdent(s string) bool {
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
