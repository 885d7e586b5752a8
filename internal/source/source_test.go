package source

import "testing"

func TestMapReaderReadFile(t *testing.T) {
	r := MapReader{"a.bsh": "let x = 1"}
	content, err := r.ReadFile("a.bsh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "let x = 1" {
		t.Fatalf("got %q", content)
	}
}

func TestMapReaderNotFound(t *testing.T) {
	r := MapReader{}
	if _, err := r.ReadFile("missing.bsh"); err == nil {
		t.Fatalf("expected error")
	}
	if r.Exists("missing.bsh") {
		t.Fatalf("expected Exists to report false")
	}
}
