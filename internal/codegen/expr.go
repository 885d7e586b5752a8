package codegen

import (
	"fmt"
	"strings"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/builtins"
)

// lowerCtx threads the state that expression lowering needs beyond the
// expression itself: which locals in the enclosing function are known to
// be flattened struct values (so member access can take the cheap
// `${name_field}` path instead of falling back to brash_get_field), and
// whether we're inside an instance method body (so `self` lowers to the
// `__self` handle convention).
type lowerCtx struct {
	flat     map[string]bool
	inMethod bool
}

func newLowerCtx() *lowerCtx {
	return &lowerCtx{flat: make(map[string]bool)}
}

// lowerValue lowers e to a shell value expression suitable for embedding on
// the right-hand side of an assignment or as a function argument: a bare
// `${name}` reference, a literal token, or a `$( ... )`/`$(( ... ))`
// substitution.
func (g *Generator) lowerValue(e ast.Expr, ctx *lowerCtx) string {
	switch n := e.(type) {
	case *rawValue:
		return n.text
	case *ast.Literal:
		return g.lowerLiteral(n)
	case *ast.Identifier:
		return g.lowerIdentifierRef(n.Name, ctx)
	case *ast.Self:
		return "${__self}"
	case *ast.Binary:
		return g.lowerBinary(n, ctx)
	case *ast.Unary:
		return g.lowerUnary(n, ctx)
	case *ast.Cast:
		return g.lowerCast(n, ctx)
	case *ast.FunctionCall:
		return g.lowerFunctionCall(n, ctx)
	case *ast.MethodCall:
		return g.lowerMethodCall(n, ctx)
	case *ast.MemberAccess:
		return g.lowerMemberAccess(n, ctx)
	case *ast.SafeNavigation:
		return fmt.Sprintf(`$(brash_get_field "%s" %s)`, g.lowerHandleName(n.Object, ctx), shellQuote(n.Field))
	case *ast.IndexAccess:
		return fmt.Sprintf(`$(brash_index_get %s %s)`, shellQuote(g.lowerHandleName(n.Object, ctx)), g.lowerValue(n.Index, ctx))
	case *ast.NullCoalesce:
		left := g.lowerValue(n.Left, ctx)
		right := g.lowerValue(n.Right, ctx)
		return fmt.Sprintf(`$(__v=%s; if [ -n "$__v" ]; then printf '%%s' "$__v"; else printf '%%s' %s; fi)`, left, right)
	case *ast.Command:
		return g.lowerCommand(n, ctx)
	case *ast.Pipe:
		return g.lowerPipe(n, ctx)
	case *ast.Await:
		return fmt.Sprintf(`$(brash_await %s)`, g.lowerValue(n.Value, ctx))
	case *ast.EnumLiteral:
		return fmt.Sprintf("${%s_%s}", n.EnumName, n.Variant)
	case *ast.TupleExpression:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = g.lowerValue(el, ctx)
		}
		return fmt.Sprintf(`$(printf '%%s\t' %s)`, strings.Join(parts, " "))
	case *ast.ArrayLiteral:
		return g.warnUnsupported(n.Pos, "array-literal-as-value")
	case *ast.StructLiteral:
		return g.warnUnsupported(n.Pos, "struct-literal-as-value")
	case *ast.MapLiteral:
		return g.warnUnsupported(n.Pos, "map-literal-as-value")
	case *ast.Range:
		return g.warnUnsupported(n.Pos, "range-as-value")
	default:
		return ""
	}
}

// lowerIdentifierRef renders a bare identifier reference. A flat struct
// local's value is its own name string, the same convention
// lowerStructLiteralDecl establishes, so no special case is needed here:
// a plain `${name}` reference already yields the handle value that
// brash_call_method expects.
func (g *Generator) lowerIdentifierRef(name string, ctx *lowerCtx) string {
	return fmt.Sprintf("${%s}", name)
}

func (g *Generator) lowerLiteral(n *ast.Literal) string {
	switch n.Kind {
	case ast.IntLit:
		return fmt.Sprintf("%d", n.IntValue)
	case ast.FloatLit:
		return formatFloat(n.FloatValue)
	case ast.BoolLit:
		if n.BoolValue {
			return "1"
		}
		return "0"
	case ast.NullLit:
		return `""`
	case ast.CharLit:
		return doubleQuoteLiteral(string(n.CharValue))
	case ast.StringLit:
		if n.IsInterpolated {
			return lowerInterpolatedString(n.StringValue)
		}
		return doubleQuoteLiteral(n.StringValue)
	default:
		return `""`
	}
}

// looksLikeString is codegen's best-effort guess at whether an
// un-type-annotated expression produces a string, used to choose between
// `+`'s arithmetic and string-concatenation lowerings and between
// arithmetic and lexicographic comparison lowerings. The AST carries
// resolved types only on VariableDeclaration (internal/ast/stmt.go), not on
// every expression node, so this walks the same structural cues the
// semantic analyzer's own type inference is seeded from: literal kinds and
// the builtin method table's declared return types.
func looksLikeString(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Kind == ast.StringLit || n.Kind == ast.CharLit
	case *ast.MethodCall:
		if n.Name == "to_string" {
			return true
		}
		if sig, ok := builtins.StringMethods[n.Name]; ok {
			return isStringReturn(sig)
		}
		return false
	case *ast.NullCoalesce:
		return looksLikeString(n.Left) || looksLikeString(n.Right)
	case *ast.Binary:
		if n.Op == "+" {
			return looksLikeString(n.Left) || looksLikeString(n.Right)
		}
		return false
	default:
		return false
	}
}

func isStringReturn(sig builtins.Signature) bool {
	if sig.Return == nil {
		return false
	}
	return sig.Return.String() == "string"
}

func (g *Generator) lowerBinary(n *ast.Binary, ctx *lowerCtx) string {
	left := g.lowerValue(n.Left, ctx)
	right := g.lowerValue(n.Right, ctx)

	switch n.Op {
	case "&&":
		return fmt.Sprintf(`$(if [ %s -ne 0 ] && [ %s -ne 0 ]; then echo 1; else echo 0; fi)`, left, right)
	case "||":
		return fmt.Sprintf(`$(if [ %s -ne 0 ] || [ %s -ne 0 ]; then echo 1; else echo 0; fi)`, left, right)
	case "+":
		if looksLikeString(n.Left) || looksLikeString(n.Right) {
			return fmt.Sprintf(`$(printf '%%s%%s' %s %s)`, left, right)
		}
		return fmt.Sprintf("$(( %s + %s ))", left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		return g.lowerComparison(n, left, right)
	default:
		return fmt.Sprintf("$(( %s %s %s ))", left, n.Op, right)
	}
}

func (g *Generator) lowerComparison(n *ast.Binary, left, right string) string {
	if looksLikeString(n.Left) || looksLikeString(n.Right) {
		op := n.Op
		if op == "==" {
			op = "="
		}
		return fmt.Sprintf(`$(if [[ %s %s %s ]]; then echo 1; else echo 0; fi)`, left, op, right)
	}
	return fmt.Sprintf(`$(if (( %s %s %s )); then echo 1; else echo 0; fi)`, left, n.Op, right)
}

func (g *Generator) lowerUnary(n *ast.Unary, ctx *lowerCtx) string {
	v := g.lowerValue(n.Operand, ctx)
	switch n.Op {
	case "-":
		return fmt.Sprintf("$(( -(%s) ))", v)
	case "+":
		return v
	case "!":
		return fmt.Sprintf(`$(if [ %s -eq 0 ]; then echo 1; else echo 0; fi)`, v)
	default:
		return v
	}
}

func (g *Generator) lowerCast(n *ast.Cast, ctx *lowerCtx) string {
	v := g.lowerValue(n.Value, ctx)
	switch fmt.Sprint(n.TargetType) {
	case "int":
		return fmt.Sprintf("$(( %s ))", v)
	case "float":
		return v
	case "string":
		return fmt.Sprintf(`$(printf '%%s' %s)`, v)
	case "bool":
		return fmt.Sprintf(`$(if [ %s -ne 0 ]; then echo 1; else echo 0; fi)`, v)
	default:
		return v
	}
}

func (g *Generator) lowerFunctionCall(n *ast.FunctionCall, ctx *lowerCtx) string {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return g.warnUnsupported(n.Pos, "indirect-function-call")
	}
	args := g.lowerArgList(n.Args, ctx)
	switch id.Name {
	case "panic":
		return fmt.Sprintf(`$(brash_panic %s)`, args)
	case "readln":
		return `$(brash_readln)`
	case "print", "bash":
		return fmt.Sprintf(`$(%s %s)`, id.Name, args)
	default:
		return fmt.Sprintf("$(%s %s)", id.Name, args)
	}
}

func (g *Generator) lowerArgList(args []ast.Expr, ctx *lowerCtx) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.lowerValue(a, ctx)
	}
	return strings.Join(parts, " ")
}

func (g *Generator) lowerMethodCall(n *ast.MethodCall, ctx *lowerCtx) string {
	if n.IsStaticDispatch {
		return fmt.Sprintf("$(%s__%s %s)", n.StaticTypeName, n.Name, g.lowerArgList(n.Args, ctx))
	}
	if n.Name == "to_string" {
		return fmt.Sprintf(`$(printf '%%s' %s)`, g.lowerValue(n.Object, ctx))
	}
	if sig, ok := builtins.StringMethods[n.Name]; ok {
		return g.lowerStringMethod(n, sig, ctx)
	}
	if _, ok := builtins.ArrayMethods[n.Name]; ok {
		return g.lowerArrayMethod(n, ctx)
	}
	handle := g.lowerValue(n.Object, ctx)
	args := g.lowerArgList(n.Args, ctx)
	if args == "" {
		return fmt.Sprintf(`$(brash_call_method "%s" %s)`, handle, shellQuote(n.Name))
	}
	return fmt.Sprintf(`$(brash_call_method "%s" %s %s)`, handle, shellQuote(n.Name), args)
}

// lowerHandleName renders obj as the bare variable name a runtime helper
// should index into (the "$h" slot of brash_get_field/brash_set_field, and
// the array name for the index and array helpers), not a `${...}`-expanded
// value: a handle is the name string of a
// flattened struct binding, per spec.md §4.6's struct-literal flattening.
func (g *Generator) lowerHandleName(obj ast.Expr, ctx *lowerCtx) string {
	switch n := obj.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Self:
		return "__self"
	default:
		return g.lowerValue(obj, ctx)
	}
}

func (g *Generator) lowerStringMethod(n *ast.MethodCall, sig builtins.Signature, ctx *lowerCtx) string {
	v := g.lowerValue(n.Object, ctx)
	switch n.Name {
	case "length":
		return fmt.Sprintf(`$(__v=%s; printf '%%s' "${#__v}")`, v)
	case "contains":
		return fmt.Sprintf(`$(__v=%s; [[ "$__v" == *%s* ]] && echo 1 || echo 0)`, v, g.lowerValue(n.Args[0], ctx))
	case "split":
		return fmt.Sprintf(`$(__v=%s; IFS=%s read -r -a __a <<< "$__v"; printf '%%s\n' "${__a[@]}")`, v, g.lowerValue(n.Args[0], ctx))
	case "substring":
		return fmt.Sprintf(`$(__v=%s; printf '%%s' "${__v:%s:%s}")`, v, g.lowerValue(n.Args[0], ctx), g.lowerValue(n.Args[1], ctx))
	case "to_upper":
		return fmt.Sprintf(`$(__v=%s; printf '%%s' "${__v^^}")`, v)
	case "to_lower":
		return fmt.Sprintf(`$(__v=%s; printf '%%s' "${__v,,}")`, v)
	case "trim":
		return fmt.Sprintf(`$(__v=%s; __v="${__v#"${__v%%%%[![:space:]]*}"}"; printf '%%s' "${__v%%"${__v##*[![:space:]]}"}")`, v)
	case "replace":
		return fmt.Sprintf(`$(__v=%s; printf '%%s' "${__v//%s/%s}")`, v, g.lowerValue(n.Args[0], ctx), g.lowerValue(n.Args[1], ctx))
	case "index_of":
		return fmt.Sprintf(`$(brash_index_of %s %s)`, v, g.lowerValue(n.Args[0], ctx))
	case "starts_with":
		return fmt.Sprintf(`$(__v=%s; [[ "$__v" == %s* ]] && echo 1 || echo 0)`, v, g.lowerValue(n.Args[0], ctx))
	case "ends_with":
		return fmt.Sprintf(`$(__v=%s; [[ "$__v" == *%s ]] && echo 1 || echo 0)`, v, g.lowerValue(n.Args[0], ctx))
	default:
		return g.warnUnsupported(n.Pos, "string-method:"+n.Name)
	}
}

func (g *Generator) lowerArrayMethod(n *ast.MethodCall, ctx *lowerCtx) string {
	name := g.lowerHandleName(n.Object, ctx)
	switch n.Name {
	case "length":
		return fmt.Sprintf(`$(printf '%%s' "${#%s[@]}")`, name)
	case "join":
		return fmt.Sprintf(`$(IFS=%s; echo "${%s[*]}")`, g.lowerValue(n.Args[0], ctx), name)
	case "push":
		return g.warnUnsupported(n.Pos, "array-push-as-value")
	default:
		return g.warnUnsupported(n.Pos, "array-method:"+n.Name)
	}
}

func (g *Generator) lowerMemberAccess(n *ast.MemberAccess, ctx *lowerCtx) string {
	if id, ok := n.Object.(*ast.Identifier); ok && ctx.flat[id.Name] {
		return fmt.Sprintf("${%s_%s}", id.Name, n.Field)
	}
	if _, ok := n.Object.(*ast.Self); ok {
		return fmt.Sprintf("${__self_%s}", n.Field)
	}
	return fmt.Sprintf(`$(brash_get_field "%s" %s)`, g.lowerHandleName(n.Object, ctx), shellQuote(n.Field))
}

func (g *Generator) lowerCommand(n *ast.Command, ctx *lowerCtx) string {
	text, single := g.commandText(n, ctx)
	var helper string
	switch {
	case n.Kind == ast.Exec && !n.IsAsync:
		helper = "brash_exec_cmd"
	case n.Kind == ast.Spawn && !n.IsAsync:
		helper = "brash_spawn_cmd"
	case n.Kind == ast.Exec && n.IsAsync:
		helper = "brash_async_exec_cmd"
	case n.Kind == ast.Spawn && n.IsAsync:
		helper = "brash_async_spawn_cmd"
	default: // cmd(...)
		if single {
			return text
		}
		return fmt.Sprintf(`$(brash_build_cmd %s)`, text)
	}
	return fmt.Sprintf("$(%s %s)", helper, text)
}

// commandText renders a command's argument list. A single string argument
// is literal command text per spec.md §4.6; multiple arguments are
// shell-quoted individually and passed through brash_build_cmd.
func (g *Generator) commandText(n *ast.Command, ctx *lowerCtx) (string, bool) {
	if len(n.Args) == 1 {
		if lit, ok := n.Args[0].(*ast.Literal); ok && lit.Kind == ast.StringLit {
			return doubleQuoteLiteral(lit.StringValue), true
		}
		if pipe, ok := n.Args[0].(*ast.Pipe); ok {
			return g.lowerPipe(pipe, ctx), false
		}
	}
	return g.lowerArgList(n.Args, ctx), false
}

func (g *Generator) lowerPipe(n *ast.Pipe, ctx *lowerCtx) string {
	if isCommandPipeExpr(n.Left) && isCommandPipeExpr(n.Right) {
		stages := flattenCommandPipe(n)
		texts := make([]string, len(stages))
		for i, c := range stages {
			texts[i], _ = g.commandText(c, ctx)
		}
		return fmt.Sprintf("$(brash_pipe_cmd %s)", strings.Join(texts, " "))
	}
	left := g.lowerValue(n.Left, ctx)
	if call, ok := n.Right.(*ast.FunctionCall); ok {
		args := append([]ast.Expr{&rawValue{left}}, call.Args...)
		return fmt.Sprintf("$(%s %s)", calleeName(call.Callee), g.lowerArgList(args, ctx))
	}
	return g.warnUnsupported(n.Pos, "value-pipe-non-call-rhs")
}

// isCommandPipeExpr reports whether e is a Command, or a Pipe whose
// operands are themselves command pipes. A left-associative chain of three
// or more piped commands parses as nested Pipe nodes ((a|b)|c), so this
// recurses rather than only checking for a bare Command on each side.
func isCommandPipeExpr(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Command:
		return true
	case *ast.Pipe:
		return isCommandPipeExpr(v.Left) && isCommandPipeExpr(v.Right)
	default:
		return false
	}
}

// flattenCommandPipe collects every stage of a chain of Pipe nodes, in
// left-to-right execution order, into a flat command list.
func flattenCommandPipe(e ast.Expr) []*ast.Command {
	switch v := e.(type) {
	case *ast.Command:
		return []*ast.Command{v}
	case *ast.Pipe:
		return append(flattenCommandPipe(v.Left), flattenCommandPipe(v.Right)...)
	default:
		return nil
	}
}

func calleeName(e ast.Expr) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

// rawValue is a synthetic expression node used only to splice an
// already-lowered shell value back into lowerArgList when rewriting a value
// pipe's implicit first argument; it never reaches the parser or analyzer.
type rawValue struct {
	text string
}

func (r *rawValue) Position() ast.Pos { return ast.Pos{} }
func (r *rawValue) exprNode()         {}
