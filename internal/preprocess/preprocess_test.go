package preprocess

import (
	"strings"
	"testing"

	"github.com/brashlang/brash/internal/diag"
	"github.com/stretchr/testify/require"
)

func TestPreservesLineCount(t *testing.T) {
	src := "#define X 1\nfn main() {\n#if X\nlet a = 1\n#endif\nend\n}"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	require.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
	require.False(t, sink.HasErrors())
}

func TestSimpleMacroExpansion(t *testing.T) {
	src := "#define GREETING hello\nlet x = GREETING"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "", lines[0])
	require.Equal(t, "let x = hello", lines[1])
}

func TestIfDefBlocksInactiveCode(t *testing.T) {
	src := "#ifdef FOO\nlet a = 1\n#else\nlet a = 2\n#endif"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "", lines[1])
	require.Equal(t, "let a = 2", lines[3])
}

func TestIfExpressionArithmetic(t *testing.T) {
	src := "#define LEVEL 3\n#if LEVEL > 2 && LEVEL < 10\nlet ok = true\n#endif"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "let ok = true", lines[2])
	require.False(t, sink.HasErrors())
}

func TestUndefinedIdentifierEvaluatesToZero(t *testing.T) {
	src := "#if UNDEFINED_THING\nlet a = 1\n#else\nlet a = 2\n#endif"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "let a = 2", lines[3])
}

func TestFunctionLikeMacro(t *testing.T) {
	src := "#define SQUARE!(x) (x * x)\nlet y = SQUARE!(5)"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "let y = (5 * 5)", lines[1])
}

func TestZeroArgFunctionMacro(t *testing.T) {
	src := "#define STAMP!() built\nlet y = STAMP!"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "let y = built", lines[1])
}

func TestMultilineBlockMacro(t *testing.T) {
	src := "#define LOG!(msg)\nsh { echo msg }\n#enddef\nLOG!(hi)"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "sh { echo hi }", lines[3])
}

func TestUnmatchedEndifIsError(t *testing.T) {
	sink := diag.NewSink()
	Process("#endif\n", "t.bsh", sink)
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.PP001, sink.Errors()[0].Code)
}

func TestUnterminatedConditionalIsError(t *testing.T) {
	sink := diag.NewSink()
	Process("#if 1\nlet a = 1\n", "t.bsh", sink)
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.PP002, sink.Errors()[0].Code)
}

func TestDuplicateElseIsError(t *testing.T) {
	sink := diag.NewSink()
	Process("#if 1\n#else\n#else\n#endif\n", "t.bsh", sink)
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.PP004, sink.Errors()[0].Code)
}

func TestMalformedIfExpressionIsError(t *testing.T) {
	sink := diag.NewSink()
	Process("#if (1 +\n#endif\n", "t.bsh", sink)
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.PP005, sink.Errors()[0].Code)
}

func TestNestedConditionals(t *testing.T) {
	src := "#define A 1\n#define B 0\n#if A\n#if B\nlet x = 1\n#else\nlet x = 2\n#endif\n#endif"
	sink := diag.NewSink()
	out := Process(src, "t.bsh", sink)
	lines := strings.Split(out, "\n")
	require.Equal(t, "let x = 2", lines[6])
	require.False(t, sink.HasErrors())
}
