// Package sema implements brash's semantic analyzer: symbol table
// population, scope management, type inference/checking, mutability and
// nullability enforcement, method dispatch annotation, pipe-expression
// validation, and the transpilation-readiness gate, per spec.md §4.4.
//
// Grounded on the teacher's internal/types/typechecker_core.go (a checker
// struct accumulating `[]error` across a full-program walk rather than
// failing fast) and internal/types/env.go (a parent-linked scope chain),
// adapted from ailang's Hindley-Milner inference to brash's much simpler
// fully-annotated-or-structurally-inferred type model — there is no
// unification search here, just top-down checking against spec.md §3's
// closed type variants.
package sema

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/types"
)

// VariableSymbol is spec.md §3's VariableSymbol.
type VariableSymbol struct {
	Name       string
	Type       types.Type
	IsMutable  bool
	ScopeLevel int
}

// FunctionSymbol is spec.md §3's FunctionSymbol.
type FunctionSymbol struct {
	Name            string
	ParameterTypes  []types.Type
	ParameterNames  []string
	ReturnType      types.Type
	Declaration     *ast.FunctionDeclaration
	IsBuiltin       bool
	IsPublic        bool
}

// TypeSymbol is spec.md §3's TypeSymbol, covering both struct and enum
// declarations (distinguished by IsEnum).
type TypeSymbol struct {
	Name         string
	Fields       []ast.FieldDecl // ordered, per spec.md "ordered mapping field->Type"
	EnumVariants map[string]bool
	IsEnum       bool
	Declaration  ast.Stmt
	IsPublic     bool
}

// FieldType returns the declared type of a struct field, or nil if name is
// not a field of this type.
func (t *TypeSymbol) FieldType(name string) types.Type {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// MethodSymbol is spec.md §3's MethodSymbol.
type MethodSymbol struct {
	TypeName       string
	Name           string
	IsStatic       bool
	ParameterTypes []types.Type
	ParameterNames []string
	ReturnType     types.Type
	Declaration    *ast.MethodDeclaration
}
