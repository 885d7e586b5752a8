package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPrintDeterministic(t *testing.T) {
	prog := &Program{
		Statements: []Stmt{
			&VariableDeclaration{
				Kind: Let,
				Name: "x",
				Value: &Binary{
					Op:    "+",
					Left:  &Literal{Kind: IntLit, IntValue: 1},
					Right: &Literal{Kind: IntLit, IntValue: 2},
				},
			},
		},
	}

	first := Print(prog)
	second := Print(prog)
	require.Equal(t, first, second)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("print output not stable across calls (-first +second):\n%s", diff)
	}
}

func TestIsPure(t *testing.T) {
	pure := &Binary{Op: "+", Left: &Literal{Kind: IntLit, IntValue: 1}, Right: &Identifier{Name: "x"}}
	if !IsPure(pure) {
		t.Fatalf("expected pure expression to be pure")
	}

	impure := &FunctionCall{Callee: &Identifier{Name: "f"}}
	if IsPure(impure) {
		t.Fatalf("expected function call to be impure")
	}
}
