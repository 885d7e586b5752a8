package diag

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a Diagnostic per spec.md §3.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is the record described in spec.md §3.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
	Code     string         `json:"code"`
	FilePath string         `json:"filePath,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// String renders "filePath:line:col [code] message" per spec.md §7.
func (d Diagnostic) String() string {
	file := d.FilePath
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d [%s] %s", file, d.Line, d.Column, d.Code, d.Message)
}

// ToJSON renders the diagnostic deterministically, grounded on the
// teacher's Report.ToJSON.
func (d Diagnostic) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(d)
	} else {
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sink is the single append-only, cross-component mutable channel described
// in spec.md §5: "The DiagnosticSink is the only cross-component mutable
// object; every component writes to it append-only."
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink constructs a fresh sink. Every compilation owns exactly one.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) add(sev Severity, code, msg, file string, line, col int) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: sev,
		Message:  msg,
		Line:     line,
		Column:   col,
		Code:     code,
		FilePath: file,
	})
}

// Errorf appends an Error diagnostic.
func (s *Sink) Errorf(file string, line, col int, code, format string, args ...any) {
	s.add(Error, code, fmt.Sprintf(format, args...), file, line, col)
}

// Warnf appends a Warning diagnostic.
func (s *Sink) Warnf(file string, line, col int, code, format string, args ...any) {
	s.add(Warning, code, fmt.Sprintf(format, args...), file, line, col)
}

// Infof appends an Info diagnostic.
func (s *Sink) Infof(file string, line, col int, code, format string, args ...any) {
	s.add(Info, code, fmt.Sprintf(format, args...), file, line, col)
}

// Add appends a pre-built diagnostic (used when a phase already constructed
// a Diagnostic value, e.g. when propagating one from a nested call).
func (s *Sink) Add(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// HasErrors mirrors the teacher's hasErrors summarization.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic recorded so far, in the natural
// traversal order described by spec.md §5.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Errors returns only Error-severity diagnostics.
func (s *Sink) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only Warning-severity diagnostics.
func (s *Sink) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}
