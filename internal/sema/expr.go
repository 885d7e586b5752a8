package sema

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/builtins"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/types"
)

// exprType resolves e's type, validating every contract spec.md §4.4
// assigns to that expression form along the way. It never returns nil;
// resolution failures return types.Unknown to suppress cascading errors.
func (a *Analyzer) exprType(e ast.Expr) types.Type {
	switch n := e.(type) {
	case nil:
		return &types.Unknown{}
	case *ast.Literal:
		return a.literalType(n)
	case *ast.Identifier:
		if sym, ok := a.scope.lookup(n.Name); ok {
			return sym.Type
		}
		a.errorf(n.Pos, diag.TC010, "undefined variable %q", n.Name)
		return &types.Unknown{}
	case *ast.Self:
		if a.currentImplType == "" {
			a.errorf(n.Pos, diag.TC016, "self used outside an instance method")
			return &types.Unknown{}
		}
		if a.inStaticMethod {
			a.errorf(n.Pos, diag.TC016, "self used inside a static method")
			return &types.Unknown{}
		}
		return &types.Named{Name: a.currentImplType}
	case *ast.Binary:
		return a.binaryType(n)
	case *ast.Unary:
		return a.unaryType(n)
	case *ast.Cast:
		return a.castType(n)
	case *ast.FunctionCall:
		return a.functionCallType(n)
	case *ast.MethodCall:
		return a.methodCallType(n)
	case *ast.MemberAccess:
		return a.memberAccessType(n)
	case *ast.SafeNavigation:
		return a.safeNavigationType(n)
	case *ast.IndexAccess:
		return a.indexAccessType(n)
	case *ast.ArrayLiteral:
		return a.arrayLiteralType(n)
	case *ast.MapLiteral:
		return a.mapLiteralType(n)
	case *ast.StructLiteral:
		return a.structLiteralType(n)
	case *ast.TupleExpression:
		elems := make([]types.Type, 0, len(n.Elements))
		for _, el := range n.Elements {
			elems = append(elems, a.exprType(el))
		}
		return &types.Tuple{Elements: elems}
	case *ast.Pipe:
		return a.pipeType(n)
	case *ast.NullCoalesce:
		return a.nullCoalesceType(n)
	case *ast.Range:
		a.exprType(n.Start)
		a.exprType(n.End)
		if n.Step != nil {
			a.exprType(n.Step)
		}
		// Whether this Range sits in a valid for-loop source slot is a
		// structural question answered by the readiness pass, not here.
		return &types.Named{Name: "Range"}
	case *ast.Command:
		return a.commandType(n)
	case *ast.Await:
		return a.awaitType(n)
	case *ast.EnumLiteral:
		return a.enumLiteralType(n)
	default:
		return &types.Unknown{}
	}
}

func (a *Analyzer) literalType(n *ast.Literal) types.Type {
	switch n.Kind {
	case ast.IntLit:
		return types.NewInt()
	case ast.FloatLit:
		return types.NewFloat()
	case ast.StringLit:
		return types.NewString()
	case ast.CharLit:
		return types.NewChar()
	case ast.BoolLit:
		return types.NewBool()
	case ast.NullLit:
		return types.NullType()
	default:
		return &types.Unknown{}
	}
}

func (a *Analyzer) binaryType(n *ast.Binary) types.Type {
	lt := a.exprType(n.Left)
	rt := a.exprType(n.Right)
	if types.IsUnknown(lt) || types.IsUnknown(rt) {
		return &types.Unknown{}
	}

	switch n.Op {
	case "&&", "||":
		if !types.IsPrimitive(lt, types.Bool) || !types.IsPrimitive(rt, types.Bool) {
			a.errorf(n.Pos, diag.TC010, "operator %s requires bool operands", n.Op)
		}
		return types.NewBool()
	case "==", "!=", "<", ">", "<=", ">=":
		if !lt.Equals(rt) && !(types.IsNumeric(lt) && types.IsNumeric(rt)) {
			a.errorf(n.Pos, diag.TC010, "cannot compare %s and %s", lt, rt)
		}
		return types.NewBool()
	case "+":
		if types.IsPrimitive(lt, types.String) && types.IsPrimitive(rt, types.String) {
			return types.NewString()
		}
		return a.numericBinary(n.Pos, n.Op, lt, rt)
	case "-", "*", "/", "%":
		return a.numericBinary(n.Pos, n.Op, lt, rt)
	default:
		a.errorf(n.Pos, diag.TC010, "unknown operator %s", n.Op)
		return &types.Unknown{}
	}
}

func (a *Analyzer) numericBinary(pos ast.Pos, op string, lt, rt types.Type) types.Type {
	if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
		a.errorf(pos, diag.TC010, "operator %s requires numeric operands, got %s and %s", op, lt, rt)
		return &types.Unknown{}
	}
	if types.IsPrimitive(lt, types.Float) || types.IsPrimitive(rt, types.Float) {
		return types.NewFloat()
	}
	return types.NewInt()
}

func (a *Analyzer) unaryType(n *ast.Unary) types.Type {
	t := a.exprType(n.Operand)
	switch n.Op {
	case "-":
		if !types.IsNumeric(t) {
			a.errorf(n.Pos, diag.TC010, "unary - requires a numeric operand, got %s", t)
			return &types.Unknown{}
		}
		return t
	case "!":
		if !types.IsPrimitive(t, types.Bool) {
			a.errorf(n.Pos, diag.TC010, "unary ! requires a bool operand, got %s", t)
			return &types.Unknown{}
		}
		return types.NewBool()
	default:
		return &types.Unknown{}
	}
}

// castType implements spec.md §4.4's Cast rule: same type; any
// primitive<->primitive except Void; any non-Unknown->String;
// Any->any non-Void primitive; named->string.
func (a *Analyzer) castType(n *ast.Cast) types.Type {
	from := a.exprType(n.Value)
	to := n.TargetType
	if to == nil {
		return &types.Unknown{}
	}
	if types.IsUnknown(from) {
		return to
	}
	if from.Equals(to) {
		return to
	}
	_, fromPrim := from.(*types.Primitive)
	_, toPrim := to.(*types.Primitive)
	if fromPrim && toPrim && !types.IsVoid(from) && !types.IsVoid(to) {
		return to
	}
	if types.IsPrimitive(to, types.String) {
		return to
	}
	if types.IsAny(from) && toPrim && !types.IsVoid(to) {
		return to
	}
	if _, named := from.(*types.Named); named && types.IsPrimitive(to, types.String) {
		return to
	}
	a.errorf(n.Pos, diag.TC022, "invalid cast from %s to %s", from, to)
	return &types.Unknown{}
}

func (a *Analyzer) functionCallType(n *ast.FunctionCall) types.Type {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		a.errorf(n.Pos, diag.TC010, "call target must be a function name")
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}

	if sig, ok := builtins.Globals[ident.Name]; ok {
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		if !sig.Variadic && len(n.Args) != len(sig.Params) {
			a.errorf(n.Pos, diag.TC010, "%s expects %d argument(s), got %d", ident.Name, len(sig.Params), len(n.Args))
		}
		return sig.Return
	}

	fn, ok := a.functions[ident.Name]
	if !ok {
		a.errorf(n.Pos, diag.TC010, "undefined function %q", ident.Name)
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}
	if len(n.Args) != len(fn.ParameterTypes) {
		a.errorf(n.Pos, diag.TC010, "%s expects %d argument(s), got %d", ident.Name, len(fn.ParameterTypes), len(n.Args))
	}
	for i, arg := range n.Args {
		at := a.exprType(arg)
		if i < len(fn.ParameterTypes) && fn.ParameterTypes[i] != nil && !types.AssignableFrom(fn.ParameterTypes[i], at) {
			a.errorf(arg.Position(), diag.TC010, "argument %d to %s: expected %s, got %s", i+1, ident.Name, fn.ParameterTypes[i], at)
		}
	}
	if fn.ReturnType == nil {
		return types.NewVoid()
	}
	return fn.ReturnType
}

// methodCallType implements spec.md §4.4's Method call contract: static
// dispatch when the receiver names a type and the method is static,
// instance dispatch when the receiver is a value and the method is
// non-static, and the string-builtin-method table consulted first.
func (a *Analyzer) methodCallType(n *ast.MethodCall) types.Type {
	if ident, ok := n.Object.(*ast.Identifier); ok {
		if _, isVar := a.scope.lookup(ident.Name); !isVar {
			if tsym, isType := a.typesTbl[ident.Name]; isType {
				return a.staticDispatch(n, tsym)
			}
		}
	}

	objType := a.exprType(n.Object)
	if types.IsUnknown(objType) {
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}

	if types.IsPrimitive(objType, types.String) {
		return a.builtinMethodCall(n, builtins.StringMethods, "string")
	}
	if _, isArray := objType.(*types.Array); isArray {
		if sig, ok := builtins.ArrayMethods[n.Name]; ok {
			return a.checkBuiltinArgs(n, sig)
		}
	}

	named, ok := objType.(*types.Named)
	if !ok {
		a.errorf(n.Pos, diag.TC017, "type %s has no methods", objType)
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}

	methodSet := a.methods[named.Name]
	m, ok := methodSet[n.Name]
	if !ok {
		a.errorf(n.Pos, diag.TC017, "unknown method %q on %s", n.Name, named.Name)
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}
	if m.IsStatic {
		a.errorf(n.Pos, diag.TC015, "%s is a static method; call it as %s.%s(...)", n.Name, named.Name, n.Name)
	}
	return a.checkCallArgs(n.Pos, n.Name, n.Args, m.ParameterTypes, m.ReturnType)
}

func (a *Analyzer) staticDispatch(n *ast.MethodCall, tsym *TypeSymbol) types.Type {
	methodSet := a.methods[tsym.Name]
	m, ok := methodSet[n.Name]
	if !ok {
		a.errorf(n.Pos, diag.TC017, "unknown static method %q on %s", n.Name, tsym.Name)
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}
	if !m.IsStatic {
		a.errorf(n.Pos, diag.TC015, "%s.%s is an instance method; call it on a value", tsym.Name, n.Name)
	}
	n.IsStaticDispatch = true
	n.StaticTypeName = tsym.Name
	return a.checkCallArgs(n.Pos, n.Name, n.Args, m.ParameterTypes, m.ReturnType)
}

func (a *Analyzer) builtinMethodCall(n *ast.MethodCall, table map[string]builtins.Signature, receiverKind string) types.Type {
	sig, ok := table[n.Name]
	if !ok {
		if n.Name == "to_string" {
			for _, arg := range n.Args {
				a.exprType(arg)
			}
			return types.NewString()
		}
		a.errorf(n.Pos, diag.TC017, "unknown %s method %q", receiverKind, n.Name)
		for _, arg := range n.Args {
			a.exprType(arg)
		}
		return &types.Unknown{}
	}
	return a.checkBuiltinArgs(n, sig)
}

func (a *Analyzer) checkBuiltinArgs(n *ast.MethodCall, sig builtins.Signature) types.Type {
	return a.checkCallArgs(n.Pos, n.Name, n.Args, sig.Params, sig.Return)
}

func (a *Analyzer) checkCallArgs(pos ast.Pos, name string, args []ast.Expr, paramTypes []types.Type, ret types.Type) types.Type {
	if len(args) != len(paramTypes) {
		a.errorf(pos, diag.TC010, "%s expects %d argument(s), got %d", name, len(paramTypes), len(args))
	}
	for i, arg := range args {
		at := a.exprType(arg)
		if i < len(paramTypes) && paramTypes[i] != nil && !types.AssignableFrom(paramTypes[i], at) {
			a.errorf(arg.Position(), diag.TC010, "argument %d to %s: expected %s, got %s", i+1, name, paramTypes[i], at)
		}
	}
	if ret == nil {
		return types.NewVoid()
	}
	return ret
}

func (a *Analyzer) memberAccessType(n *ast.MemberAccess) types.Type {
	objType := a.exprType(n.Object)
	if types.IsNullable(objType) {
		a.warnf(n.Pos, diag.WARN001, "dereferencing a nullable value without ?.")
		objType = types.NonNullBase(objType)
	}
	named, ok := objType.(*types.Named)
	if !ok {
		if !types.IsUnknown(objType) {
			a.errorf(n.Pos, diag.TC017, "%s has no field %q", objType, n.Field)
		}
		return &types.Unknown{}
	}
	tsym, ok := a.typesTbl[named.Name]
	if !ok {
		return &types.Unknown{}
	}
	ft := tsym.FieldType(n.Field)
	if ft == nil {
		a.errorf(n.Pos, diag.TC017, "unknown field %q on %s", n.Field, named.Name)
		return &types.Unknown{}
	}
	return ft
}

func (a *Analyzer) safeNavigationType(n *ast.SafeNavigation) types.Type {
	objType := a.exprType(n.Object)
	base := types.NonNullBase(objType)
	named, ok := base.(*types.Named)
	if !ok {
		if !types.IsUnknown(objType) {
			a.errorf(n.Pos, diag.TC017, "%s has no field %q", objType, n.Field)
		}
		return &types.Unknown{}
	}
	tsym, ok := a.typesTbl[named.Name]
	if !ok {
		return &types.Unknown{}
	}
	ft := tsym.FieldType(n.Field)
	if ft == nil {
		a.errorf(n.Pos, diag.TC017, "unknown field %q on %s", n.Field, named.Name)
		return &types.Unknown{}
	}
	return &types.Nullable{Base: ft}
}

func (a *Analyzer) indexAccessType(n *ast.IndexAccess) types.Type {
	objType := a.exprType(n.Object)
	idxType := a.exprType(n.Index)
	switch o := objType.(type) {
	case *types.Array:
		if !types.IsUnknown(idxType) && !types.IsNumeric(idxType) {
			a.errorf(n.Pos, diag.TC023, "array index must be numeric, got %s", idxType)
		}
		return o.Elem
	case *types.Map:
		if !types.IsUnknown(idxType) && !o.Key.Equals(idxType) {
			a.errorf(n.Pos, diag.TC023, "map key must be %s, got %s", o.Key, idxType)
		}
		return o.Value
	default:
		if !types.IsUnknown(objType) {
			a.errorf(n.Pos, diag.TC023, "%s is not indexable", objType)
		}
		return &types.Unknown{}
	}
}

func (a *Analyzer) arrayLiteralType(n *ast.ArrayLiteral) types.Type {
	if len(n.Elements) == 0 {
		return &types.Array{Elem: &types.Unknown{}}
	}
	elem := a.exprType(n.Elements[0])
	for _, e := range n.Elements[1:] {
		a.exprType(e)
	}
	return &types.Array{Elem: elem}
}

func (a *Analyzer) mapLiteralType(n *ast.MapLiteral) types.Type {
	if len(n.Entries) == 0 {
		return &types.Map{Key: &types.Unknown{}, Value: &types.Unknown{}}
	}
	k := a.exprType(n.Entries[0].Key)
	v := a.exprType(n.Entries[0].Value)
	for _, e := range n.Entries[1:] {
		a.exprType(e.Key)
		a.exprType(e.Value)
	}
	return &types.Map{Key: k, Value: v}
}

func (a *Analyzer) structLiteralType(n *ast.StructLiteral) types.Type {
	tsym, ok := a.typesTbl[n.TypeName]
	if !ok || tsym.IsEnum {
		a.errorf(n.Pos, diag.TC021, "unknown struct type %q", n.TypeName)
		for _, f := range n.Fields {
			a.exprType(f.Value)
		}
		return &types.Unknown{}
	}

	provided := make(map[string]bool)
	for _, f := range n.Fields {
		ft := a.exprType(f.Value)
		declared := tsym.FieldType(f.Name)
		if declared == nil {
			a.errorf(f.Pos, diag.TC021, "unknown field %q on %s", f.Name, n.TypeName)
			continue
		}
		provided[f.Name] = true
		if !types.AssignableFrom(declared, ft) {
			a.errorf(f.Pos, diag.TC021, "field %q of %s: expected %s, got %s", f.Name, n.TypeName, declared, ft)
		}
	}
	for _, fd := range tsym.Fields {
		if !provided[fd.Name] {
			a.errorf(n.Pos, diag.TC021, "missing field %q in %s literal", fd.Name, n.TypeName)
		}
	}
	return &types.Named{Name: n.TypeName}
}

// pipeType implements spec.md §4.4's Pipe expression contract: a command
// pipe when the left side is Command, a value pipe (left inserted as the
// stage's first argument) otherwise.
func (a *Analyzer) pipeType(n *ast.Pipe) types.Type {
	lt := a.exprType(n.Left)

	if named, ok := lt.(*types.Named); ok && named.Name == types.CommandTypeName {
		rt := a.exprType(n.Right)
		if rn, ok := rt.(*types.Named); !ok || rn.Name != types.CommandTypeName {
			a.errorf(n.Pos, diag.TC018, "right side of a command pipe must also be a command")
		}
		return &types.Named{Name: types.CommandTypeName}
	}

	switch n.Right.(type) {
	case *ast.FunctionCall, *ast.MethodCall:
	default:
		a.errorf(n.Pos, diag.TC018, "right side of a value pipe must be a function or method call")
		return &types.Unknown{}
	}
	rt := a.exprType(n.Right)
	if !types.IsUnknown(rt) && !types.AssignableFrom(lt, rt) && !types.AssignableFrom(rt, lt) {
		a.errorf(n.Pos, diag.TC018, "pipe stage return type %s is not compatible with input type %s", rt, lt)
	}
	return rt
}

func (a *Analyzer) nullCoalesceType(n *ast.NullCoalesce) types.Type {
	lt := a.exprType(n.Left)
	a.exprType(n.Right)
	if !types.IsNullable(lt) {
		a.warnf(n.Pos, diag.WARN003, "redundant ?? (left operand is never null)")
	}
	return types.NonNullBase(lt)
}

// commandType implements spec.md §4.4's Command/exec/spawn contract.
func (a *Analyzer) commandType(n *ast.Command) types.Type {
	singleCommandArg := len(n.Args) == 1 && isCommandTyped(a, n.Args[0])
	if singleCommandArg && len(n.Args) > 1 {
		a.errorf(n.Pos, diag.TC010, "cannot mix a Command value with positional arguments")
	}
	for _, arg := range n.Args {
		a.exprType(arg)
	}

	switch n.Kind {
	case ast.Cmd:
		return &types.Named{Name: types.CommandTypeName}
	case ast.Exec:
		if n.IsAsync {
			return types.NewVoid()
		}
		return types.NewString()
	case ast.Spawn:
		return &types.Named{Name: types.ProcessTypeName}
	default:
		return &types.Unknown{}
	}
}

func isCommandTyped(a *Analyzer, e ast.Expr) bool {
	t := a.exprType(e)
	named, ok := t.(*types.Named)
	return ok && named.Name == types.CommandTypeName
}

func (a *Analyzer) awaitType(n *ast.Await) types.Type {
	t := a.exprType(n.Value)
	if named, ok := t.(*types.Named); !ok || named.Name != types.ProcessTypeName {
		if !types.IsUnknown(t) {
			a.errorf(n.Pos, diag.TC010, "await requires a Process value, got %s", t)
		}
	}
	return types.NewString()
}

func (a *Analyzer) enumLiteralType(n *ast.EnumLiteral) types.Type {
	tsym, ok := a.typesTbl[n.EnumName]
	if !ok || !tsym.IsEnum {
		a.errorf(n.Pos, diag.TC020, "unknown enum type %q", n.EnumName)
		return &types.Unknown{}
	}
	if !tsym.EnumVariants[n.Variant] {
		a.errorf(n.Pos, diag.TC020, "unknown variant %q on enum %s", n.Variant, n.EnumName)
		return &types.Unknown{}
	}
	return &types.Named{Name: n.EnumName}
}
