package module

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/source"
	"github.com/brashlang/brash/internal/stdlib"
)

func TestLoadMergesWholeModuleImport(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import \"lib.bsh\"\nlet x = 1\n",
		"lib.bsh":  "pub fn helper()\n  return 1\nend\nfn private_helper()\n  return 2\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors(), "unexpected errors: %v", sink.Errors())

	var names []string
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			names = append(names, fn.Name)
		}
	}
	require.Contains(t, names, "helper")
	require.NotContains(t, names, "private_helper")
}

func TestLoadSelectiveImportOnlyBringsListedNames(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import { a } from \"lib.bsh\"\nlet x = 1\n",
		"lib.bsh":  "pub fn a()\n  return 1\nend\npub fn b()\n  return 2\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors())

	var names []string
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			names = append(names, fn.Name)
		}
	}
	require.Contains(t, names, "a")
	require.NotContains(t, names, "b")
}

func TestLoadImportingNonPublicNameIsError(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import { hidden } from \"lib.bsh\"\n",
		"lib.bsh":  "fn hidden()\n  return 1\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	l.Load("main.bsh")
	require.True(t, sink.HasErrors())
	found := false
	for _, e := range sink.Errors() {
		if e.Code == diag.MOD001 {
			found = true
		}
	}
	require.True(t, found, "expected a MOD001 diagnostic")
}

func TestLoadCircularImportIsError(t *testing.T) {
	reader := source.MapReader{
		"a.bsh": "import \"b.bsh\"\n",
		"b.bsh": "import \"a.bsh\"\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	l.Load("a.bsh")
	require.True(t, sink.HasErrors())
	found := false
	for _, e := range sink.Errors() {
		if e.Code == diag.MOD002 {
			found = true
		}
	}
	require.True(t, found, "expected a MOD002 diagnostic")
}

func TestLoadMissingModuleIsError(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import \"missing.bsh\"\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	l.Load("main.bsh")
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.MOD003, sink.Errors()[0].Code)
}

func TestLoadStdImportWithoutLocatorIsError(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import \"std/io\"\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	l.Load("main.bsh")
	require.True(t, sink.HasErrors())
	require.Equal(t, diag.MOD005, sink.Errors()[0].Code)
}

func TestLoadStdImportWithLocatorResolves(t *testing.T) {
	reader := source.MapReader{
		"main.bsh":    "import \"std/io\"\n",
		"std/io.bsh":  "pub fn readln()\n  return \"\"\nend\n",
	}
	sink := diag.NewSink()
	loc := stdlib.MapLocator{"std/io": "std/io.bsh"}
	l := New(reader, loc, sink)
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors(), "unexpected errors: %v", sink.Errors())

	found := false
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.Name == "readln" {
			found = true
		}
	}
	require.True(t, found)
}

func TestLoadTransitiveImportOrderingIsInnermostFirst(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import \"mid.bsh\"\nlet x = 1\n",
		"mid.bsh":  "import \"base.bsh\"\npub fn mid()\n  return 1\nend\n",
		"base.bsh": "pub fn base()\n  return 1\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors())

	var order []string
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			order = append(order, fn.Name)
		}
	}
	require.Equal(t, []string{"base", "mid"}, order)
}

func TestLoadDeduplicatesRepeatedImports(t *testing.T) {
	reader := source.MapReader{
		"main.bsh": "import \"a.bsh\"\nimport \"b.bsh\"\n",
		"a.bsh":    "import \"shared.bsh\"\n",
		"b.bsh":    "import \"shared.bsh\"\n",
		"shared.bsh": "pub fn shared()\n  return 1\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink)
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors())

	count := 0
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.Name == "shared" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestLoadFallsBackToSearchPaths(t *testing.T) {
	reader := source.MapReader{
		"main.bsh":     "import \"lib.bsh\"\nlet x = 1\n",
		"vendor/lib.bsh": "pub fn helper()\n  return 1\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink).WithSearchPaths([]string{"vendor"})
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors(), "unexpected errors: %v", sink.Errors())

	var names []string
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			names = append(names, fn.Name)
		}
	}
	require.Contains(t, names, "helper")
}

func TestLoadSearchPathNotConsultedWhenLocalResolves(t *testing.T) {
	reader := source.MapReader{
		"main.bsh":        "import \"lib.bsh\"\nlet x = 1\n",
		"lib.bsh":         "pub fn helper()\n  return 1\nend\n",
		"vendor/lib.bsh":  "pub fn helper()\n  return 2\nend\n",
	}
	sink := diag.NewSink()
	l := New(reader, nil, sink).WithSearchPaths([]string{"vendor"})
	prog := l.Load("main.bsh")
	require.False(t, sink.HasErrors())

	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.Name == "helper" {
			ret, ok := fn.Body[0].(*ast.ReturnStatement)
			require.True(t, ok)
			lit, ok := ret.Value.(*ast.Literal)
			require.True(t, ok)
			require.Equal(t, int64(1), lit.IntValue)
		}
	}
}
