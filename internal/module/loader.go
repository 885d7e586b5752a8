// Package module implements brash's module loader: given an entry file it
// discovers the transitive import graph, enforces declaration visibility,
// and merges every reachable public declaration with the entry module's own
// statements into one ast.Program, per spec.md §4.3.
//
// Grounded on the teacher's internal/loader/loader.go (a caching
// path-resolving file loader) and internal/link/topo.go (DFS topological
// sort with a "currently parsing" set for cycle detection), adapted from
// ailang's per-function export table to brash's broader exportable-
// declaration-kind rule and from file-level linking to single-program
// merge.
package module

import (
	"path"
	"path/filepath"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/parser"
	"github.com/brashlang/brash/internal/preprocess"
	"github.com/brashlang/brash/internal/source"
	"github.com/brashlang/brash/internal/stdlib"
)

// parsedFile is a single file run through the preprocessor and parser,
// cached by its resolved path.
type parsedFile struct {
	path    string
	program *ast.Program
	imports []*ast.ImportStatement
}

// Loader resolves and merges brash's module graph. Create a fresh Loader
// per compilation; it is not safe to reuse across unrelated entry points
// since its cache is keyed by resolved path.
type Loader struct {
	reader      source.FileReader
	std         stdlib.StdLibLocator
	sink        *diag.Sink
	searchPaths []string

	files map[string]*parsedFile // resolved path -> parsed file
}

// New constructs a Loader reading source through reader, resolving std/*
// specifiers through std (nil means std/* is always unresolved), and
// reporting diagnostics to sink.
func New(reader source.FileReader, std stdlib.StdLibLocator, sink *diag.Sink) *Loader {
	return &Loader{reader: reader, std: std, sink: sink, files: make(map[string]*parsedFile)}
}

// WithSearchPaths sets the directories tried, in order, for a non-std
// import specifier that does not resolve relative to the importing
// file's own directory. Typically seeded from a project manifest's
// searchPaths list. Returns l for chaining.
func (l *Loader) WithSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// wantAll is stored in a module's requested-name set to mean "import
// brought every public declaration" (the plain `import "m"` form), as
// opposed to a populated set naming specific symbols.
const wantAll = "*"

// Load discovers and merges the module graph rooted at entryPath, returning
// a single Program: imported public declarations in dependency order
// (innermost first), deduplicated by (resolvedPath, declarationName),
// followed by the entry module's own non-import statements. Only
// declarations actually named by some import along the chain are merged;
// a plain `import "m"` requests every public declaration of m, while
// `import { a, b } from "m"` / `import Name from "m"` request only the
// listed symbols.
func (l *Loader) Load(entryPath string) *ast.Program {
	resolvedEntry := cleanPath(entryPath)

	inPath := map[string]bool{}
	visited := map[string]bool{}
	requested := map[string]map[string]bool{} // resolved path -> requested names (or {wantAll: true})
	var order []string                        // dependency order, innermost first

	request := func(p string, items []string) {
		set, ok := requested[p]
		if !ok {
			set = map[string]bool{}
			requested[p] = set
		}
		if set[wantAll] {
			return
		}
		if len(items) == 0 {
			requested[p] = map[string]bool{wantAll: true}
			return
		}
		for _, name := range items {
			set[name] = true
		}
	}

	var visit func(p string) bool
	visit = func(p string) bool {
		if visited[p] {
			return true
		}
		if inPath[p] {
			l.sink.Errorf(p, 0, 0, diag.MOD002, "circular import involving %s", p)
			return false
		}
		inPath[p] = true

		pf := l.parseFile(p)
		if pf == nil {
			inPath[p] = false
			return false
		}

		for _, imp := range pf.imports {
			specifier := importSpecifier(imp)
			depPath, ok := l.resolveImport(p, specifier, imp.Pos)
			if !ok {
				continue
			}
			request(depPath, imp.Items)
			visit(depPath)
			l.checkRequestedVisible(depPath, imp)
		}

		inPath[p] = false
		visited[p] = true
		order = append(order, p)
		return true
	}

	visit(resolvedEntry)

	merged := &ast.Program{}
	emitted := map[string]bool{} // "resolvedPath\x00declName"

	for _, p := range order {
		if p == resolvedEntry {
			continue // the entry module's own statements are appended separately, unfiltered
		}
		pf := l.files[p]
		if pf == nil {
			continue
		}
		want := requested[p]
		for _, stmt := range pf.program.Statements {
			name, exportable := exportableName(stmt)
			if !exportable {
				continue
			}
			if want != nil && !want[wantAll] && !want[name] {
				continue
			}
			key := p + "\x00" + name
			if emitted[key] {
				continue
			}
			emitted[key] = true
			merged.Statements = append(merged.Statements, stmt)
		}
	}

	if entry := l.files[resolvedEntry]; entry != nil {
		for _, stmt := range entry.program.Statements {
			if _, isImport := stmt.(*ast.ImportStatement); isImport {
				continue
			}
			merged.Statements = append(merged.Statements, stmt)
		}
	}

	return merged
}

// parseFile reads, preprocesses, and parses the file at resolvedPath,
// caching the result. Returns nil (after reporting a diagnostic) on any
// read or fatal parse failure.
func (l *Loader) parseFile(resolvedPath string) *parsedFile {
	if pf, ok := l.files[resolvedPath]; ok {
		return pf
	}

	content, err := l.reader.ReadFile(resolvedPath)
	if err != nil {
		l.sink.Errorf(resolvedPath, 0, 0, diag.MOD003, "module not found: %s", resolvedPath)
		return nil
	}

	preprocessed := preprocess.Process(content, resolvedPath, l.sink)
	lx := lexer.New(preprocessed, resolvedPath)
	ps := parser.New(lx, resolvedPath, l.sink)
	program := ps.ParseProgram()

	var imports []*ast.ImportStatement
	for _, stmt := range program.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok {
			imports = append(imports, imp)
		}
	}

	pf := &parsedFile{path: resolvedPath, program: program, imports: imports}
	l.files[resolvedPath] = pf
	return pf
}

// importSpecifier returns the module specifier an ImportStatement names,
// regardless of which of the three import forms produced it.
func importSpecifier(imp *ast.ImportStatement) string {
	if imp.Module != "" {
		return imp.Module
	}
	return imp.FromModule
}

// resolveImport resolves specifier relative to fromPath's directory, then
// falls back to each configured search path in order, consulting the
// StdLibLocator for std/* specifiers instead. Reports MOD003/MOD005 and
// returns ok=false on failure.
func (l *Loader) resolveImport(fromPath, specifier string, pos ast.Pos) (string, bool) {
	if stdlib.IsStdSpecifier(specifier) {
		if l.std == nil {
			l.sink.Errorf(fromPath, pos.Line, pos.Column, diag.MOD005, "unresolved std import %q: no StdLibLocator configured", specifier)
			return "", false
		}
		resolved, ok := l.std.Resolve(specifier)
		if !ok {
			l.sink.Errorf(fromPath, pos.Line, pos.Column, diag.MOD003, "module not found: %s", specifier)
			return "", false
		}
		return cleanPath(resolved), true
	}

	dir := filepath.Dir(fromPath)
	if resolved := cleanPath(filepath.Join(dir, specifier)); l.reader.Exists(resolved) {
		return resolved, true
	}
	for _, sp := range l.searchPaths {
		if resolved := cleanPath(filepath.Join(sp, specifier)); l.reader.Exists(resolved) {
			return resolved, true
		}
	}
	l.sink.Errorf(fromPath, pos.Line, pos.Column, diag.MOD003, "module not found: %s", specifier)
	return "", false
}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// exportableName reports the declaration name and whether stmt is a
// candidate for export under spec.md §4.3: a FunctionDeclaration,
// StructDeclaration, EnumDeclaration, or a const VariableDeclaration, all
// gated on IsPublic.
func exportableName(stmt ast.Stmt) (string, bool) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		return s.Name, s.IsPublic
	case *ast.StructDeclaration:
		return s.Name, s.IsPublic
	case *ast.EnumDeclaration:
		return s.Name, s.IsPublic
	case *ast.VariableDeclaration:
		return s.Name, s.IsPublic && s.Kind == ast.Const
	default:
		return "", false
	}
}

// checkRequestedVisible reports MOD001 for every name imp.Items names that
// depPath does not export. A plain `import "m"` (empty Items) has nothing
// to check here since it requests the whole public surface.
func (l *Loader) checkRequestedVisible(depPath string, imp *ast.ImportStatement) {
	if len(imp.Items) == 0 {
		return
	}
	pf := l.files[depPath]
	if pf == nil {
		return
	}

	exported := map[string]bool{}
	for _, stmt := range pf.program.Statements {
		if name, ok := exportableName(stmt); ok {
			exported[name] = true
		}
	}

	for _, item := range imp.Items {
		if !exported[item] {
			l.sink.Errorf(depPath, imp.Pos.Line, imp.Pos.Column, diag.MOD001,
				"import of non-public or unknown declaration %q from %s", item, importSpecifier(imp))
		}
	}
}
