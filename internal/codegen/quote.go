package codegen

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// shellQuote renders s as a single shell-safe word, grounded on the usage
// pattern `syntax.Quote(val, syntax.LangBash)` from mvdan.cc/sh/v3. Quote
// only fails for strings containing a NUL byte or other input the shell
// grammar cannot represent at all, which brash source text never produces;
// falling back to a single-quoted literal keeps codegen total either way.
func shellQuote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return q
}

// doubleQuoteLiteral renders s as the body of a double-quoted shell string
// per spec.md §4.6: "strings are double-quoted with escaping of \ \" $ `".
func doubleQuoteLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// placeholderPath rewrites an interpolation placeholder's dotted identifier
// path to the underscore-joined flat-variable name it resolves to, mapping
// a leading "self" segment to the "__self" convention method bodies use.
func placeholderPath(path string) string {
	segs := strings.Split(path, ".")
	if segs[0] == "self" {
		segs[0] = "__self"
	}
	return strings.Join(segs, "_")
}

// lowerInterpolatedString rewrites the raw source text of an interpolated
// string literal into the body of a double-quoted shell string: every
// `${identifier.path}` placeholder becomes `${flat_path}`, everything else
// is escaped like an ordinary literal. Scanning is grounded on
// internal/sema's checkShInterpolation, which walks the same `${...}`
// placeholder syntax byte by byte rather than via regexp.
func lowerInterpolatedString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	i := 0
	for i < len(s) {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end >= 0 {
				name := s[i+2 : i+2+end]
				if isInterpolationPath(name) {
					b.WriteString("${")
					b.WriteString(placeholderPath(name))
					b.WriteByte('}')
					i = i + 2 + end + 1
					continue
				}
			}
		}
		r := s[i]
		switch r {
		case '\\', '"', '`':
			b.WriteByte('\\')
			b.WriteByte(r)
		case '$':
			b.WriteString(`\$`)
		default:
			b.WriteByte(r)
		}
		i++
	}
	b.WriteByte('"')
	return b.String()
}

func isInterpolationPath(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" || !isPlainIdentifier(seg) {
			return false
		}
	}
	return true
}

func isPlainIdentifier(s string) bool {
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// formatFloat renders a float64 the way brash's numeric literals must
// appear in generated arithmetic expansions: shortest round-tripping
// decimal form, never exponential notation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
