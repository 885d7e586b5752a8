package stdlib

import "testing"

func TestIsStdSpecifier(t *testing.T) {
	if !IsStdSpecifier("std/io") {
		t.Fatalf("expected std/io to be recognized")
	}
	if IsStdSpecifier("./local") {
		t.Fatalf("did not expect ./local to be recognized")
	}
}

func TestMapLocatorResolve(t *testing.T) {
	loc := MapLocator{"std/io": "/usr/lib/brash/std/io.bsh"}
	path, ok := loc.Resolve("std/io")
	if !ok || path != "/usr/lib/brash/std/io.bsh" {
		t.Fatalf("unexpected resolve result: %q %v", path, ok)
	}
	if _, ok := loc.Resolve("std/net"); ok {
		t.Fatalf("expected std/net to be unresolved")
	}
}
