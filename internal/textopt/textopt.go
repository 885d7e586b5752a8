// Package textopt implements the bash text optimizer from spec.md §4.7:
// a final pass over the code generator's emitted text that normalizes
// whitespace without touching structure. It must never reformat,
// reorder, or strip comments — those transformations changed observable
// behavior in earlier iterations of this compiler and are disallowed.
package textopt

import "strings"

// Options mirrors internal/optimize's flag-bag style: every knob is an
// independent boolean with a stable all-on default.
type Options struct {
	NormalizeLineEndings   bool
	TrimTrailingWhitespace bool
	EnsureTrailingNewline  bool
}

// DefaultOptions returns every pass enabled.
func DefaultOptions() Options {
	return Options{
		NormalizeLineEndings:   true,
		TrimTrailingWhitespace: true,
		EnsureTrailingNewline:  true,
	}
}

// Optimize runs the enabled passes over script, in the fixed order
// line-ending normalization, then trailing-whitespace trim (so a line's
// own \r is gone before trimming trailing space), then trailing-newline
// enforcement.
func Optimize(script string, opts Options) string {
	if opts.NormalizeLineEndings {
		script = normalizeLineEndings(script)
	}
	if opts.TrimTrailingWhitespace {
		script = trimTrailingWhitespace(script)
	}
	if opts.EnsureTrailingNewline {
		script = ensureTrailingNewline(script)
	}
	return script
}

// normalizeLineEndings converts CRLF and bare CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// trimTrailingWhitespace removes trailing spaces and tabs from every
// line, preserving the line structure itself.
func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// ensureTrailingNewline appends a single \n if the text doesn't already
// end with exactly one, and leaves an empty string untouched.
func ensureTrailingNewline(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimRight(s, "\n") + "\n"
}
