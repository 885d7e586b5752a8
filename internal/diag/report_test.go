package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkHasErrors(t *testing.T) {
	s := NewSink()
	assert.False(t, s.HasErrors())

	s.Warnf("a.bsh", 1, 0, WARN002, "condition is not bool")
	assert.False(t, s.HasErrors())

	s.Errorf("a.bsh", 2, 4, TC011, "cannot assign to immutable variable %q", "x")
	assert.True(t, s.HasErrors())

	require.Len(t, s.Diagnostics(), 2)
	require.Len(t, s.Errors(), 1)
	require.Len(t, s.Warnings(), 1)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: Error, Message: "boom", Line: 3, Column: 5, Code: TC011, FilePath: "a.bsh"}
	assert.Equal(t, "a.bsh:3:5 [TC011] boom", d.String())
}

func TestLookup(t *testing.T) {
	info, ok := Lookup(TC011)
	require.True(t, ok)
	assert.Equal(t, PhaseSema, info.Phase)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
}
