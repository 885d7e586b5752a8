package sema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/parser"
)

func analyze(t *testing.T, src string) *diag.Sink {
	t.Helper()
	sink := diag.NewSink()
	l := lexer.New(src, "test.bsh")
	p := parser.New(l, "test.bsh", sink)
	prog := p.ParseProgram()
	require.False(t, sink.HasErrors(), "unexpected parse errors: %v", sink.Errors())
	New("test.bsh", sink).Analyze(prog)
	return sink
}

func requireCode(t *testing.T, sink *diag.Sink, code string) {
	t.Helper()
	for _, d := range sink.Diagnostics() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %s, got: %v", code, sink.Diagnostics())
}

func requireNoErrors(t *testing.T, sink *diag.Sink) {
	t.Helper()
	require.False(t, sink.HasErrors(), "unexpected errors: %v", sink.Errors())
}

func TestAnalyzeSimpleProgramHasNoErrors(t *testing.T) {
	sink := analyze(t, "let x = 1\nlet y = x + 2\nfn main()\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeUndefinedVariableIsError(t *testing.T) {
	sink := analyze(t, "let x = y\n")
	requireCode(t, sink, diag.TC010)
}

func TestAnalyzeAssignToImmutableIsError(t *testing.T) {
	sink := analyze(t, "let x = 1\nx = 2\n")
	requireCode(t, sink, diag.TC011)
}

func TestAnalyzeAssignToMutableIsOK(t *testing.T) {
	sink := analyze(t, "let mut x = 1\nx = 2\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeDuplicateTypeNameIsError(t *testing.T) {
	src := "struct Point\n  x: int\nend\nstruct Point\n  y: int\nend\n"
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC001)
}

func TestAnalyzeRedefineBuiltinIsError(t *testing.T) {
	sink := analyze(t, "fn print()\nend\n")
	requireCode(t, sink, diag.TC002)
}

func TestAnalyzeMainWithParamsIsError(t *testing.T) {
	sink := analyze(t, "fn main(x: int)\nend\n")
	requireCode(t, sink, diag.TC014)
}

func TestAnalyzeMainWithStringArrayArgsAndIntReturnIsOK(t *testing.T) {
	sink := analyze(t, "fn main(args: string[]): int\nreturn 7\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeMainWithNoParamsAndIntReturnIsOK(t *testing.T) {
	sink := analyze(t, "fn main(): int\nreturn 0\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeBreakOutsideLoopIsError(t *testing.T) {
	sink := analyze(t, "fn main()\nbreak\nend\n")
	requireCode(t, sink, diag.TC019)
}

func TestAnalyzeBreakInsideLoopIsOK(t *testing.T) {
	sink := analyze(t, "fn main()\nwhile true\nbreak\nend\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeUnknownEnumVariantIsError(t *testing.T) {
	src := "enum Color\n  Red\n  Green\nend\nlet c = Color.Blue\n"
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC020)
}

func TestAnalyzeKnownEnumVariantIsOK(t *testing.T) {
	src := "enum Color\n  Red\n  Green\nend\nlet c = Color.Red\n"
	sink := analyze(t, src)
	requireNoErrors(t, sink)
}

func TestAnalyzeStructLiteralMissingFieldIsError(t *testing.T) {
	src := "struct Point\n  x: int\n  y: int\nend\nlet p = Point{x: 1}\n"
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC021)
}

func TestAnalyzeStructLiteralExactFieldsIsOK(t *testing.T) {
	src := "struct Point\n  x: int\n  y: int\nend\nlet p = Point{x: 1, y: 2}\n"
	sink := analyze(t, src)
	requireNoErrors(t, sink)
}

func TestAnalyzeNonBoolIfConditionWarns(t *testing.T) {
	sink := analyze(t, "fn main()\nif 1\nend\nend\n")
	requireCode(t, sink, diag.WARN002)
}

func TestAnalyzeStaticMethodCalledAsInstanceIsError(t *testing.T) {
	src := `struct Counter
  n: int
end
impl Counter
  static fn zero(): Counter
    return Counter{n: 0}
  end
end
let c = Counter{n: 1}
let z = c.zero()
`
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC015)
}

func TestAnalyzeStaticMethodCalledOnTypeIsOK(t *testing.T) {
	src := `struct Counter
  n: int
end
impl Counter
  static fn zero(): Counter
    return Counter{n: 0}
  end
end
let z = Counter.zero()
`
	sink := analyze(t, src)
	requireNoErrors(t, sink)
}

func TestAnalyzeSelfOutsideMethodIsError(t *testing.T) {
	sink := analyze(t, "fn main()\nlet x = self\nend\n")
	requireCode(t, sink, diag.TC016)
}

func TestAnalyzeUnknownMethodIsError(t *testing.T) {
	sink := analyze(t, "let s = \"hi\"\nlet n = s.frobnicate()\n")
	requireCode(t, sink, diag.TC017)
}

func TestAnalyzeStringBuiltinMethodIsOK(t *testing.T) {
	sink := analyze(t, "let s = \"hi\"\nlet n = s.length()\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeInvalidCastIsError(t *testing.T) {
	src := "struct Point\n  x: int\nend\nlet p = Point{x: 1}\nlet n = p as int\n"
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC022)
}

func TestAnalyzeArrayIndexWithStringIsError(t *testing.T) {
	src := "let a = [1, 2, 3]\nlet k = \"zero\"\nlet v = a[k]\n"
	sink := analyze(t, src)
	requireCode(t, sink, diag.TC023)
}

func TestAnalyzeTupleDestructureArityMismatchIsError(t *testing.T) {
	sink := analyze(t, "let (a, b) = (1, 2, 3)\n")
	requireCode(t, sink, diag.TC013)
}

func TestAnalyzeTupleDestructureOK(t *testing.T) {
	sink := analyze(t, "let (a, b) = (1, 2)\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeRangeOutsideForLoopIsReadinessError(t *testing.T) {
	sink := analyze(t, "let r = 1..10\n")
	requireCode(t, sink, diag.TC030)
}

func TestAnalyzeRangeInForLoopIsOK(t *testing.T) {
	sink := analyze(t, "fn main()\nfor i in 1..10\nend\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeMapLiteralAsDeclarationValueIsOK(t *testing.T) {
	sink := analyze(t, "let m = {\"a\": 1}\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeMapLiteralNestedInArrayIsReadinessError(t *testing.T) {
	sink := analyze(t, "let xs = [{\"a\": 1}]\n")
	requireCode(t, sink, diag.TC030)
}

func TestAnalyzeAwaitAsVariableValueIsOK(t *testing.T) {
	sink := analyze(t, "fn main()\nlet p = spawn(\"ls\")\nlet out = await p\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeAwaitNestedInExpressionIsReadinessError(t *testing.T) {
	sink := analyze(t, "fn main()\nlet p = spawn(\"ls\")\nlet out = (await p) + \"x\"\nend\n")
	requireCode(t, sink, diag.TC030)
}

func TestAnalyzeAsyncSpawnIsOK(t *testing.T) {
	sink := analyze(t, "fn main()\nlet p = async spawn(\"ls\")\nend\n")
	requireNoErrors(t, sink)
}

func TestAnalyzeNullableDereferenceWarns(t *testing.T) {
	src := `struct Box
  value: int
end
fn useBox(b: Box?)
  let v = b.value
end
`
	sink := analyze(t, src)
	requireCode(t, sink, diag.WARN001)
}

func TestAnalyzeNarrowedNullableHasNoWarning(t *testing.T) {
	src := `struct Box
  value: int
end
fn useBox(b: Box?)
  if b != null
    let v = b.value
  end
end
`
	sink := analyze(t, src)
	requireNoErrors(t, sink)
}

func TestAnalyzeShInterpolationOfUnknownNameWarns(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.ShStatement{Script: "echo ${nope}", Pos: ast.Pos{Line: 1}},
	}}
	sink := diag.NewSink()
	New("test.bsh", sink).Analyze(prog)
	requireCode(t, sink, diag.WARN004)
}

func TestAnalyzeShInterpolationOfBoundNameHasNoWarning(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.VariableDeclaration{Kind: ast.Let, Name: "name", Value: &ast.Literal{Kind: ast.StringLit, StringValue: "x"}, Pos: ast.Pos{Line: 1}},
		&ast.ShStatement{Script: "echo ${name}", Pos: ast.Pos{Line: 2}},
	}}
	sink := diag.NewSink()
	New("test.bsh", sink).Analyze(prog)
	requireNoErrors(t, sink)
	for _, d := range sink.Diagnostics() {
		if d.Code == diag.WARN004 {
			t.Fatalf("unexpected WARN004 for bound name: %v", d)
		}
	}
}

func TestAnalyzeImportStatementIsReadinessError(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.ImportStatement{Module: "lib.bsh", Pos: ast.Pos{Line: 1}},
	}}
	sink := diag.NewSink()
	New("test.bsh", sink).Analyze(prog)
	requireCode(t, sink, diag.TC030)
}
