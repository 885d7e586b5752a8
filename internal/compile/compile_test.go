package compile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brashlang/brash/internal/source"
)

func TestCompileSimpleEntrySucceeds(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "fn main(): int\nreturn 0\nend\n",
	}
	result := Compile("main.bsh", DefaultOptions(reader))
	require.False(t, result.Sink.HasErrors(), "unexpected errors: %v", result.Sink.Errors())
	require.Contains(t, result.Script, "#!/usr/bin/env bash")
	require.Contains(t, result.Script, "main \"$@\"")
}

func TestCompileMissingEntryReportsError(t *testing.T) {
	reader := source.MapReader{}
	result := Compile("missing.bsh", DefaultOptions(reader))
	require.True(t, result.Sink.HasErrors())
	require.Empty(t, result.Script)
}

func TestCompileMergesImportedModule(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import { inc } from \"lib.bsh\"\nlet value = inc(1)\n",
		"lib.bsh":  "pub fn inc(x: int): int\n  return x + 1\nend\n",
	}
	result := Compile("main.bsh", DefaultOptions(reader))
	require.False(t, result.Sink.HasErrors(), "unexpected errors: %v", result.Sink.Errors())
	require.Contains(t, result.Script, "inc() {")
	require.Contains(t, result.Script, "value=$(inc 1)")
}

func TestCompileTwoCallsDoNotShareState(t *testing.T) {
	reader := source.MapReader{"main.bsh": "let x = 1\n"}
	first := Compile("main.bsh", DefaultOptions(reader))
	second := Compile("main.bsh", DefaultOptions(reader))
	require.Equal(t, first.Script, second.Script)
	require.NotSame(t, first.Sink, second.Sink)
}
