package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	sink := diag.NewSink()
	l := lexer.New(src, "test.bsh")
	p := parser.New(l, "test.bsh", sink)
	prog := p.ParseProgram()
	require.False(t, sink.HasErrors(), "unexpected parse errors: %v", sink.Errors())
	return prog
}

func onlyStmt(t *testing.T, prog *ast.Program) ast.Stmt {
	t.Helper()
	require.Len(t, prog.Statements, 1)
	return prog.Statements[0]
}

func TestFoldBinaryIntegerArithmetic(t *testing.T) {
	prog := parseProgram(t, "let x = 2 + 3 * 4\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok, "expected a folded literal, got %T", decl.Value)
	require.Equal(t, ast.IntLit, lit.Kind)
	require.Equal(t, int64(14), lit.IntValue)
}

func TestFoldStringConcatenation(t *testing.T) {
	prog := parseProgram(t, `let s = "a" + "b"` + "\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	lit := decl.Value.(*ast.Literal)
	require.Equal(t, ast.StringLit, lit.Kind)
	require.Equal(t, "ab", lit.StringValue)
}

func TestFoldDivisionByZeroLeftUnfolded(t *testing.T) {
	prog := parseProgram(t, "let x = 1 / 0\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	_, ok := decl.Value.(*ast.Binary)
	require.True(t, ok, "expected division by zero to stay a Binary node, got %T", decl.Value)
}

func TestFoldParenCollapse(t *testing.T) {
	prog := parseProgram(t, "let x = (1 + 2)\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, int64(3), lit.IntValue)
}

func TestNullCoalesceNonNullLeftCollapsesToLeft(t *testing.T) {
	prog := parseProgram(t, `let x = "a" ?? "b"` + "\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	lit := decl.Value.(*ast.Literal)
	require.Equal(t, "a", lit.StringValue)
}

func TestNullCoalesceNullLeftCollapsesToRight(t *testing.T) {
	prog := parseProgram(t, `let x = null ?? "b"` + "\n")
	prog = Optimize(prog, DefaultOptions())
	decl := onlyStmt(t, prog).(*ast.VariableDeclaration)
	lit := decl.Value.(*ast.Literal)
	require.Equal(t, "b", lit.StringValue)
}

// propagateFoldOnly exercises propagation+folding without dead-local
// elimination, since a fully-inlined use legitimately makes its source
// declaration eligible for elimination too (the two passes compose, but
// these tests are about substitution, not elimination).
func propagateFoldOnly() Options {
	return Options{EnableConstantPropagation: true, EnableConstantFolding: true}
}

func TestConstantPropagationSubstitutesLiteralLocal(t *testing.T) {
	prog := parseProgram(t, "let a = 2\nlet b = a + 3\n")
	prog = Optimize(prog, propagateFoldOnly())
	decl := prog.Statements[1].(*ast.VariableDeclaration)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok, "expected propagation+folding to produce a literal, got %T", decl.Value)
	require.Equal(t, int64(5), lit.IntValue)
}

func TestConstantPropagationDoesNotCrossMutAssignment(t *testing.T) {
	prog := parseProgram(t, "let mut a = 2\na = 9\nlet b = a + 1\n")
	prog = Optimize(prog, propagateFoldOnly())
	decl := prog.Statements[2].(*ast.VariableDeclaration)
	_, ok := decl.Value.(*ast.Binary)
	require.True(t, ok, "mut variable must never be propagated, got %T", decl.Value)
}

func TestIfTrueConditionInlinesThenBranch(t *testing.T) {
	prog := parseProgram(t, "fn main()\nif true\nlet x = 1\nend\nend\n")
	prog = Optimize(prog, Options{EnableConstantFolding: true, EnableControlFlowSimplification: true})
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok, "expected the then-branch inlined directly, got %T", fn.Body[0])
}

func TestIfFalseConditionFallsThroughToElse(t *testing.T) {
	prog := parseProgram(t, "fn main()\nif false\nlet x = 1\nelse\nlet y = 2\nend\nend\n")
	prog = Optimize(prog, Options{EnableConstantFolding: true, EnableControlFlowSimplification: true})
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 1)
	decl, ok := fn.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, "y", decl.Name)
}

func TestWhileFalseDropsEntirely(t *testing.T) {
	prog := parseProgram(t, "fn main()\nwhile false\nlet x = 1\nend\nend\n")
	prog = Optimize(prog, DefaultOptions())
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 0)
}

func TestDeadLocalEliminationDropsUnreadPureDeclaration(t *testing.T) {
	prog := parseProgram(t, "fn main()\nlet unused = 1 + 2\nlet p = spawn(\"ls\")\nexec(\"printf\", p)\nend\n")
	prog = Optimize(prog, DefaultOptions())
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	var names []string
	for _, s := range fn.Body {
		if decl, ok := s.(*ast.VariableDeclaration); ok {
			names = append(names, decl.Name)
		}
	}
	require.NotContains(t, names, "unused", "dead pure local should have been eliminated")
	require.Contains(t, names, "p", "p is read by exec and must survive elimination")
}

func TestDeadLocalEliminationKeepsImpureInitializer(t *testing.T) {
	prog := parseProgram(t, "fn main()\nlet p = spawn(\"ls\")\nend\n")
	prog = Optimize(prog, DefaultOptions())
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 1, "a command's side effect must never be elided even if p is unread")
}

func TestDeadLocalEliminationKeepsPublicDeclaration(t *testing.T) {
	prog := parseProgram(t, "pub const unused = 1 + 2\n")
	prog = Optimize(prog, DefaultOptions())
	require.Len(t, prog.Statements, 1)
}

func TestOptimizeNoneDisablesEveryPass(t *testing.T) {
	prog := parseProgram(t, "fn main()\nlet unused = 1 + 2\nif true\nlet x = 1\nend\nend\n")
	prog = Optimize(prog, None())
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body, 2, "with every pass disabled nothing should be folded, propagated, or eliminated")
	decl := fn.Body[0].(*ast.VariableDeclaration)
	_, ok := decl.Value.(*ast.Binary)
	require.True(t, ok, "folding disabled: 1 + 2 must remain a Binary node")
}
