package sema

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/builtins"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/types"
)

// Analyzer walks a merged *ast.Program (as produced by internal/module),
// populating a symbol table and validating spec.md §4.4's contracts. It
// accumulates diagnostics rather than stopping at the first error, per
// spec.md §4.4: "attempts to continue after the first error to surface as
// many as possible."
type Analyzer struct {
	sink  *diag.Sink
	file  string
	scope *scope

	functions map[string]*FunctionSymbol
	typesTbl  map[string]*TypeSymbol
	methods   map[string]map[string]*MethodSymbol // type name -> method name -> symbol

	// currentImplType and currentMethodStatic track dispatch context while
	// walking inside an ImplBlock's methods, for the self/static checks.
	currentImplType   string
	inStaticMethod    bool
	currentReturnType types.Type
	loopDepth         int
}

// New constructs an Analyzer reporting diagnostics for file to sink.
func New(file string, sink *diag.Sink) *Analyzer {
	return &Analyzer{
		sink:      sink,
		file:      file,
		scope:     newScope(nil),
		functions: make(map[string]*FunctionSymbol),
		typesTbl:  make(map[string]*TypeSymbol),
		methods:   make(map[string]map[string]*MethodSymbol),
	}
}

// Analyze runs both passes over prog: declaration, then validation,
// followed by the non-suppressible transpilation-readiness gate.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.declarePass(prog.Statements)
	for _, stmt := range prog.Statements {
		a.checkStmt(stmt)
	}
	a.readinessPass(prog.Statements)
}

func (a *Analyzer) errorf(pos ast.Pos, code, format string, args ...any) {
	a.sink.Errorf(a.file, pos.Line, pos.Column, code, format, args...)
}

func (a *Analyzer) warnf(pos ast.Pos, code, format string, args ...any) {
	a.sink.Warnf(a.file, pos.Line, pos.Column, code, format, args...)
}

// declarePass is spec.md §4.4 pass 1: "top-level scan registers every
// struct, enum, function, and impl method."
func (a *Analyzer) declarePass(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.StructDeclaration:
			a.declareStruct(s)
		case *ast.EnumDeclaration:
			a.declareEnum(s)
		case *ast.FunctionDeclaration:
			a.declareFunction(s)
		case *ast.VariableDeclaration:
			if s.IsPublic && s.Kind != ast.Const {
				a.errorf(s.Pos, diag.TC004, "only const declarations may be pub, got %s", s.Kind)
			}
		}
	}
	// impl blocks are registered in a second sub-pass so a method may
	// reference a struct declared later in the same file.
	for _, stmt := range stmts {
		if impl, ok := stmt.(*ast.ImplBlock); ok {
			a.declareImpl(impl)
		}
	}
}

func (a *Analyzer) declareStruct(s *ast.StructDeclaration) {
	if _, exists := a.typesTbl[s.Name]; exists {
		a.errorf(s.Pos, diag.TC001, "duplicate type name %q", s.Name)
		return
	}
	a.typesTbl[s.Name] = &TypeSymbol{Name: s.Name, Fields: s.Fields, Declaration: s, IsPublic: s.IsPublic}
}

func (a *Analyzer) declareEnum(s *ast.EnumDeclaration) {
	if _, exists := a.typesTbl[s.Name]; exists {
		a.errorf(s.Pos, diag.TC001, "duplicate type name %q", s.Name)
		return
	}
	variants := make(map[string]bool)
	for _, v := range s.Variants {
		if variants[v] {
			a.errorf(s.Pos, diag.TC003, "duplicate enum variant %q in %s", v, s.Name)
			continue
		}
		variants[v] = true
	}
	a.typesTbl[s.Name] = &TypeSymbol{Name: s.Name, EnumVariants: variants, IsEnum: true, Declaration: s, IsPublic: s.IsPublic}
}

func (a *Analyzer) declareFunction(s *ast.FunctionDeclaration) {
	if builtins.IsGlobal(s.Name) {
		a.errorf(s.Pos, diag.TC002, "cannot redefine built-in function %q", s.Name)
		return
	}
	if _, exists := a.functions[s.Name]; exists {
		a.errorf(s.Pos, diag.TC005, "function %q already declared", s.Name)
		return
	}
	paramTypes, paramNames := paramSignature(s.Params)
	a.functions[s.Name] = &FunctionSymbol{
		Name: s.Name, ParameterTypes: paramTypes, ParameterNames: paramNames,
		ReturnType: s.ReturnType, Declaration: s, IsPublic: s.IsPublic,
	}
}

func (a *Analyzer) declareImpl(impl *ast.ImplBlock) {
	tbl, ok := a.methods[impl.TypeName]
	if !ok {
		tbl = make(map[string]*MethodSymbol)
		a.methods[impl.TypeName] = tbl
	}
	for _, m := range impl.Methods {
		if _, exists := tbl[m.Name]; exists {
			a.errorf(m.Pos, diag.TC005, "method %q already declared on %s", m.Name, impl.TypeName)
			continue
		}
		paramTypes, paramNames := paramSignature(m.Params)
		tbl[m.Name] = &MethodSymbol{
			TypeName: impl.TypeName, Name: m.Name, IsStatic: m.IsStatic,
			ParameterTypes: paramTypes, ParameterNames: paramNames,
			ReturnType: m.ReturnType, Declaration: m,
		}
	}
}

func paramSignature(params []*ast.Param) ([]types.Type, []string) {
	pts := make([]types.Type, 0, len(params))
	names := make([]string, 0, len(params))
	for _, p := range params {
		pts = append(pts, p.Type)
		names = append(names, p.Name)
	}
	return pts, names
}

// pushScope enters a new variable scope and returns a restore function.
func (a *Analyzer) pushScope() func() {
	prev := a.scope
	a.scope = newScope(prev)
	return func() { a.scope = prev }
}
