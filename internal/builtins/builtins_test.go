package builtins

import (
	"testing"

	"github.com/brashlang/brash/internal/types"
)

func TestIsGlobalRecognizesBuiltins(t *testing.T) {
	for _, name := range []string{"panic", "bash", "print"} {
		if !IsGlobal(name) {
			t.Fatalf("expected %q to be a recognized global builtin", name)
		}
	}
	if IsGlobal("not_a_builtin") {
		t.Fatalf("did not expect not_a_builtin to be recognized")
	}
}

func TestStringMethodsArityAndTypes(t *testing.T) {
	sig, ok := StringMethods["substring"]
	if !ok {
		t.Fatalf("expected substring to be registered")
	}
	if len(sig.Params) != 2 {
		t.Fatalf("expected substring to take 2 params, got %d", len(sig.Params))
	}
	if !sig.Return.Equals(types.NewString()) {
		t.Fatalf("expected substring to return string")
	}
}

func TestToStringAcceptsExcludesVoidAndUnknown(t *testing.T) {
	if ToStringAccepts(types.NewVoid()) {
		t.Fatalf("did not expect to_string to accept void")
	}
	if ToStringAccepts(&types.Unknown{}) {
		t.Fatalf("did not expect to_string to accept Unknown")
	}
	if !ToStringAccepts(types.NewInt()) {
		t.Fatalf("expected to_string to accept int")
	}
	if !ToStringAccepts(&types.Named{Name: "Point"}) {
		t.Fatalf("expected to_string to accept a named struct type")
	}
}
