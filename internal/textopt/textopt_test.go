package textopt

import "testing"

func TestOptimizeNormalizesLineEndings(t *testing.T) {
	got := Optimize("a\r\nb\rc\n", DefaultOptions())
	want := "a\nb\nc\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeTrimsTrailingWhitespace(t *testing.T) {
	got := Optimize("echo hi   \nif true; then  \n", DefaultOptions())
	want := "echo hi\nif true; then\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeEnsuresSingleTrailingNewline(t *testing.T) {
	got := Optimize("echo hi\n\n\n", DefaultOptions())
	want := "echo hi\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeAddsMissingTrailingNewline(t *testing.T) {
	got := Optimize("echo hi", DefaultOptions())
	want := "echo hi\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOptimizeDoesNotReformatStructure(t *testing.T) {
	src := "if true; then\n    echo hi  # a comment\nfi\n"
	got := Optimize(src, DefaultOptions())
	want := "if true; then\n    echo hi  # a comment\nfi\n"
	if got != want {
		t.Errorf("comments and indentation must survive untouched: got %q", got)
	}
}

func TestOptimizeWithEverythingDisabledIsIdentity(t *testing.T) {
	src := "echo hi  \r\n"
	got := Optimize(src, Options{})
	if got != src {
		t.Errorf("got %q, want identity %q", got, src)
	}
}
