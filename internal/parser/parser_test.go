package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	l := lexer.New(src, "test.bsh")
	p := New(l, "test.bsh", sink)
	prog := p.ParseProgram()
	return prog, sink
}

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, sink := parse(t, src)
	require.False(t, sink.HasErrors(), "unexpected parse errors: %v", sink.Errors())
	return prog
}

func TestParseVariableDeclaration(t *testing.T) {
	prog := parseOK(t, "let x = 1\n")
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	require.Equal(t, ast.Let, decl.Kind)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, int64(1), lit.IntValue)
}

func TestParseMutableDeclarationWithType(t *testing.T) {
	prog := parseOK(t, "let mut count: int = 0\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	require.Equal(t, ast.Mut, decl.Kind)
	require.NotNil(t, decl.Type)
	require.Equal(t, "int", decl.Type.String())
}

func TestParseTupleDeclaration(t *testing.T) {
	prog := parseOK(t, "let (mut a, b) = (1, 2)\n")
	decl, ok := prog.Statements[0].(*ast.TupleVariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Elements, 2)
	require.True(t, decl.Elements[0].IsMutable)
	require.False(t, decl.Elements[1].IsMutable)
	tup, ok := decl.Value.(*ast.TupleExpression)
	require.True(t, ok)
	require.Len(t, tup.Elements, 2)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, "let x = 1 + 2 * 3\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	bin, ok := decl.Value.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "*", right.Op)
}

func TestParsePipeLowerThanLogical(t *testing.T) {
	prog := parseOK(t, "let x = a && b | c\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	pipe, ok := decl.Value.(*ast.Pipe)
	require.True(t, ok)
	_, ok = pipe.Left.(*ast.Binary)
	require.True(t, ok, "expected left of pipe to be the && binary expression")
}

func TestParseNullCoalesceAndCast(t *testing.T) {
	prog := parseOK(t, "let x = a ?? b as int\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	nc, ok := decl.Value.(*ast.NullCoalesce)
	require.True(t, ok)
	cast, ok := nc.Right.(*ast.Cast)
	require.True(t, ok)
	require.Equal(t, "int", cast.TargetType.String())
}

func TestParseRangeWithStep(t *testing.T) {
	prog := parseOK(t, "for i in 0..10 step 2\nend\n")
	loop, ok := prog.Statements[0].(*ast.ForLoop)
	require.True(t, ok)
	rng, ok := loop.Source.(*ast.Range)
	require.True(t, ok)
	require.NotNil(t, rng.Step)
}

func TestParseIfElifElse(t *testing.T) {
	src := `if a
  b = 1
elif c
  b = 2
else
  b = 3
end
`
	prog := parseOK(t, src)
	ifs, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.Len(t, ifs.ElseIfs, 1)
	require.Len(t, ifs.Else, 1)
}

func TestParseFunctionDeclarationWithParams(t *testing.T) {
	prog := parseOK(t, "fn add(a: int, mut b: int): int\n  return a + b\nend\n")
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.False(t, fn.Params[0].IsMutable)
	require.True(t, fn.Params[1].IsMutable)
	require.NotNil(t, fn.ReturnType)
}

func TestParseStructAndImpl(t *testing.T) {
	src := `struct Point
  x: int
  y: int
end

impl Point
  fn sum(self): int
    return self.x + self.y
  end
  static fn origin(): Point
    return Point{x: 0, y: 0}
  end
end
`
	prog := parseOK(t, src)
	require.Len(t, prog.Statements, 2)
	sdecl, ok := prog.Statements[0].(*ast.StructDeclaration)
	require.True(t, ok)
	require.Len(t, sdecl.Fields, 2)

	impl, ok := prog.Statements[1].(*ast.ImplBlock)
	require.True(t, ok)
	require.Equal(t, "Point", impl.TypeName)
	require.Len(t, impl.Methods, 2)
	require.False(t, impl.Methods[0].IsStatic)
	require.True(t, impl.Methods[1].IsStatic)

	ret := impl.Methods[1].Body[0].(*ast.ReturnStatement)
	structLit, ok := ret.Value.(*ast.StructLiteral)
	require.True(t, ok)
	require.Equal(t, "Point", structLit.TypeName)
	require.Len(t, structLit.Fields, 2)
}

func TestParseEnumAndVariantAccess(t *testing.T) {
	prog := parseOK(t, "enum Color\n  Red\n  Green\n  Blue\nend\n\nlet c = Color.Red\n")
	edecl, ok := prog.Statements[0].(*ast.EnumDeclaration)
	require.True(t, ok)
	require.Equal(t, []string{"Red", "Green", "Blue"}, edecl.Variants)

	decl := prog.Statements[1].(*ast.VariableDeclaration)
	lit, ok := decl.Value.(*ast.EnumLiteral)
	require.True(t, ok)
	require.Equal(t, "Color", lit.EnumName)
	require.Equal(t, "Red", lit.Variant)
}

func TestParseMethodCallAndMemberAccess(t *testing.T) {
	prog := parseOK(t, "let x = obj.field.method(1, 2)\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	call, ok := decl.Value.(*ast.MethodCall)
	require.True(t, ok)
	require.Equal(t, "method", call.Name)
	require.Len(t, call.Args, 2)
	member, ok := call.Object.(*ast.MemberAccess)
	require.True(t, ok)
	require.Equal(t, "field", member.Field)
}

func TestParseSafeNavigationAndIndex(t *testing.T) {
	prog := parseOK(t, "let x = obj?.field\nlet y = arr[0]\n")
	decl0 := prog.Statements[0].(*ast.VariableDeclaration)
	_, ok := decl0.Value.(*ast.SafeNavigation)
	require.True(t, ok)

	decl1 := prog.Statements[1].(*ast.VariableDeclaration)
	idx, ok := decl1.Value.(*ast.IndexAccess)
	require.True(t, ok)
	lit, ok := idx.Index.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, int64(0), lit.IntValue)
}

func TestParseArrayAndMapLiterals(t *testing.T) {
	prog := parseOK(t, "let a = [1, 2, 3]\nlet m = {\"k\": 1}\n")
	arr := prog.Statements[0].(*ast.VariableDeclaration).Value.(*ast.ArrayLiteral)
	require.Len(t, arr.Elements, 3)

	m := prog.Statements[1].(*ast.VariableDeclaration).Value.(*ast.MapLiteral)
	require.Len(t, m.Entries, 1)
}

func TestParseCommandForms(t *testing.T) {
	prog := parseOK(t, "cmd(\"ls\")\nexec(\"ls\")\nspawn(\"sleep\")\nasync exec(\"ls\")\n")
	c0 := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Command)
	require.Equal(t, ast.Cmd, c0.Kind)
	c1 := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.Command)
	require.Equal(t, ast.Exec, c1.Kind)
	c2 := prog.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.Command)
	require.Equal(t, ast.Spawn, c2.Kind)
	c3 := prog.Statements[3].(*ast.ExpressionStatement).Expression.(*ast.Command)
	require.True(t, c3.IsAsync)
	require.Equal(t, ast.Exec, c3.Kind)
}

func TestParseAwait(t *testing.T) {
	prog := parseOK(t, "let x = await f\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	aw, ok := decl.Value.(*ast.Await)
	require.True(t, ok)
	_, ok = aw.Value.(*ast.Identifier)
	require.True(t, ok)
}

func TestParseTryCatch(t *testing.T) {
	prog := parseOK(t, "try\n  throw 1\ncatch err\n  print(err)\nend\n")
	ts, ok := prog.Statements[0].(*ast.TryStatement)
	require.True(t, ok)
	require.Equal(t, "err", ts.ErrorVar)
	require.Len(t, ts.TryBlock, 1)
	require.Len(t, ts.CatchBlock, 1)
}

func TestParseImportForms(t *testing.T) {
	prog := parseOK(t, "import \"std/io\"\nimport { a, b } from \"std/util\"\nimport Foo from \"std/types\"\n")
	i0 := prog.Statements[0].(*ast.ImportStatement)
	require.Equal(t, "std/io", i0.Module)

	i1 := prog.Statements[1].(*ast.ImportStatement)
	require.Equal(t, "std/util", i1.FromModule)
	require.Equal(t, []string{"a", "b"}, i1.Items)

	i2 := prog.Statements[2].(*ast.ImportStatement)
	require.Equal(t, "std/types", i2.FromModule)
	require.Equal(t, []string{"Foo"}, i2.Items)
}

func TestParseShStatementCapturesBraceContent(t *testing.T) {
	prog := parseOK(t, "sh { echo hello }\n")
	sh, ok := prog.Statements[0].(*ast.ShStatement)
	require.True(t, ok)
	require.True(t, strings.Contains(sh.Script, "echo"))
}

func TestParseAssignment(t *testing.T) {
	prog := parseOK(t, "x = 5\n")
	a, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	_, ok = a.Target.(*ast.Identifier)
	require.True(t, ok)
}

func TestParseBareReturnAndBreakContinue(t *testing.T) {
	prog := parseOK(t, "fn f()\n  while true\n    break\n    continue\n  end\n  return\nend\n")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	wl, ok := fn.Body[0].(*ast.WhileLoop)
	require.True(t, ok)
	_, ok = wl.Body[0].(*ast.BreakStatement)
	require.True(t, ok)
	_, ok = wl.Body[1].(*ast.ContinueStatement)
	require.True(t, ok)
	ret, ok := fn.Body[1].(*ast.ReturnStatement)
	require.True(t, ok)
	require.Nil(t, ret.Value)
}

func TestParseArrayAndNullableTypeAnnotations(t *testing.T) {
	prog := parseOK(t, "let a: int[] = [1]\nlet b: string? = null\n")
	decl0 := prog.Statements[0].(*ast.VariableDeclaration)
	require.Equal(t, "int[]", decl0.Type.String())

	decl1 := prog.Statements[1].(*ast.VariableDeclaration)
	require.Equal(t, "string?", decl1.Type.String())
}

func TestParseMapType(t *testing.T) {
	prog := parseOK(t, "let m: map<string, int> = {}\n")
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	require.Contains(t, decl.Type.String(), "map")
}

func TestParseErrorReportsCode(t *testing.T) {
	_, sink := parse(t, "let = 1\n")
	require.True(t, sink.HasErrors())
	errs := sink.Errors()
	require.NotEmpty(t, errs)
	require.Equal(t, diag.E001, errs[0].Code)
}

func TestParseUnaryAndGrouping(t *testing.T) {
	prog := parseOK(t, "let x = -(1 + 2)\nlet y = !ok\n")
	decl0 := prog.Statements[0].(*ast.VariableDeclaration)
	un, ok := decl0.Value.(*ast.Unary)
	require.True(t, ok)
	require.Equal(t, "-", un.Op)
	_, ok = un.Operand.(*ast.Binary)
	require.True(t, ok)

	decl1 := prog.Statements[1].(*ast.VariableDeclaration)
	un2 := decl1.Value.(*ast.Unary)
	require.Equal(t, "!", un2.Op)
}

func TestParseInterpolatedAndMultilineStrings(t *testing.T) {
	l := lexer.New("let a = $\"hi $name\"\n", "t.bsh")
	sink := diag.NewSink()
	p := New(l, "t.bsh", sink)
	prog := p.ParseProgram()
	require.False(t, sink.HasErrors())
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok)
	require.True(t, lit.IsInterpolated)
}

func TestParseWholeProgramSmoke(t *testing.T) {
	src := `fn main(): int
  let mut total = 0
  for i in 1..5
    total = total + i
  end
  if total > 0
    print("positive")
  end
  return total
end
`
	prog := parseOK(t, src)
	require.Len(t, prog.Statements, 1)
	out := ast.Print(prog)
	require.Contains(t, out, "FunctionDeclaration")
	require.Contains(t, out, "ForLoop")
	require.Contains(t, out, "IfStatement")
}
