package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileLineEmitsScript(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.compileLine("let x = 1", &buf)
	require.Contains(t, buf.String(), "x=1")
}

func TestCompileLineReportsErrors(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.compileLine("let x = y", &buf)
	require.Contains(t, buf.String(), "TC010")
}

func TestHandleCommandHelp(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	quit := r.handleCommand(":help", &buf)
	require.False(t, quit)
	require.True(t, strings.Contains(buf.String(), "Commands:"))
}

func TestHandleCommandQuit(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	quit := r.handleCommand(":quit", &buf)
	require.True(t, quit)
}

func TestHandleCommandHistory(t *testing.T) {
	r := New()
	r.history = append(r.history, "let x = 1")
	var buf bytes.Buffer
	r.handleCommand(":history", &buf)
	require.Contains(t, buf.String(), "let x = 1")
}
