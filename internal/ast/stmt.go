package ast

import "github.com/brashlang/brash/internal/types"

// VariableDeclaration: VariableDeclaration(kind, name, type?, value,
// isPublic) from spec.md §3. Type is nil when the annotation was omitted
// and must be inferred from Value by the semantic analyzer.
type VariableDeclaration struct {
	Kind       DeclKind
	Name       string
	Type       types.Type // nil if not annotated in source
	Value      Expr
	IsPublic   bool
	ResolvedTy types.Type // filled in by the semantic analyzer
	Pos        Pos
}

func (v *VariableDeclaration) Position() Pos { return v.Pos }
func (v *VariableDeclaration) stmtNode()     {}

// TupleElement is one binding in a TupleVariableDeclaration, e.g. `mut a`.
type TupleElement struct {
	Name      string
	IsMutable bool
	Pos       Pos
}

// TupleVariableDeclaration: TupleVariableDeclaration(elements, value).
type TupleVariableDeclaration struct {
	Elements []TupleElement
	Value    Expr
	Pos      Pos
}

func (t *TupleVariableDeclaration) Position() Pos { return t.Pos }
func (t *TupleVariableDeclaration) stmtNode()     {}

// Assignment: Assignment(target, value). Target is an Identifier,
// MemberAccess, or IndexAccess expression, per spec.md §4.4.
type Assignment struct {
	Target Expr
	Value  Expr
	Pos    Pos
}

func (a *Assignment) Position() Pos { return a.Pos }
func (a *Assignment) stmtNode()     {}

// FunctionDeclaration: FunctionDeclaration(name, params, returnType?,
// body, isAsync, isPublic).
type FunctionDeclaration struct {
	Name       string
	Params     []*Param
	ReturnType types.Type // nil means void
	Body       []Stmt
	IsAsync    bool
	IsPublic   bool
	Pos        Pos
}

func (f *FunctionDeclaration) Position() Pos { return f.Pos }
func (f *FunctionDeclaration) stmtNode()     {}

// FieldDecl is one field of a StructDeclaration.
type FieldDecl struct {
	Name string
	Type types.Type
	Pos  Pos
}

// StructDeclaration declares a struct type and its ordered fields.
type StructDeclaration struct {
	Name     string
	Fields   []FieldDecl
	IsPublic bool
	Pos      Pos
}

func (s *StructDeclaration) Position() Pos { return s.Pos }
func (s *StructDeclaration) stmtNode()     {}

// EnumDeclaration declares an enum type and its variant names.
type EnumDeclaration struct {
	Name     string
	Variants []string
	IsPublic bool
	Pos      Pos
}

func (e *EnumDeclaration) Position() Pos { return e.Pos }
func (e *EnumDeclaration) stmtNode()     {}

// MethodDeclaration: MethodDeclaration(name, isStatic, params,
// returnType?, body). Lives inside an ImplBlock.
type MethodDeclaration struct {
	Name       string
	IsStatic   bool
	Params     []*Param
	ReturnType types.Type
	Body       []Stmt
	Pos        Pos
}

func (m *MethodDeclaration) Position() Pos { return m.Pos }
func (m *MethodDeclaration) stmtNode()     {}

// ImplBlock: ImplBlock(typeName, methods).
type ImplBlock struct {
	TypeName string
	Methods  []*MethodDeclaration
	Pos      Pos
}

func (i *ImplBlock) Position() Pos { return i.Pos }
func (i *ImplBlock) stmtNode()     {}

// ElseIf is one `elif` arm of an IfStatement.
type ElseIf struct {
	Condition Expr
	Body      []Stmt
	Pos       Pos
}

// IfStatement: if/elif/else.
type IfStatement struct {
	Condition Expr
	Then      []Stmt
	ElseIfs   []ElseIf
	Else      []Stmt // nil if no else branch
	Pos       Pos
}

func (i *IfStatement) Position() Pos { return i.Pos }
func (i *IfStatement) stmtNode()     {}

// ForLoop: `for x in range/identifier [step N] ... end`. Source is either
// a Range expression or an Identifier naming an array-typed variable, per
// spec.md §4.6 codegen lowering.
type ForLoop struct {
	Variable string
	Source   Expr
	Body     []Stmt
	Pos      Pos
}

func (f *ForLoop) Position() Pos { return f.Pos }
func (f *ForLoop) stmtNode()     {}

// WhileLoop: while condition ... end.
type WhileLoop struct {
	Condition Expr
	Body      []Stmt
	Pos       Pos
}

func (w *WhileLoop) Position() Pos { return w.Pos }
func (w *WhileLoop) stmtNode()     {}

// TryStatement: TryStatement(errorVar, tryBlock, catchBlock).
type TryStatement struct {
	ErrorVar  string
	TryBlock  []Stmt
	CatchBlock []Stmt
	Pos       Pos
}

func (t *TryStatement) Position() Pos { return t.Pos }
func (t *TryStatement) stmtNode()     {}

// ThrowStatement: throw expr.
type ThrowStatement struct {
	Value Expr
	Pos   Pos
}

func (t *ThrowStatement) Position() Pos { return t.Pos }
func (t *ThrowStatement) stmtNode()     {}

// ImportStatement: ImportStatement(module?, fromModule?, items). Two
// source forms per spec.md §4.3:
//   import "m"                -> Module="m", Items=nil (whole module)
//   import { a, b } from "m"  -> FromModule="m", Items=["a","b"]
type ImportStatement struct {
	Module     string // used for `import "m"`
	FromModule string // used for `import {...} from "m"`
	Items      []string
	Pos        Pos
}

func (i *ImportStatement) Position() Pos { return i.Pos }
func (i *ImportStatement) stmtNode()     {}

// ReturnStatement: return expr?.
type ReturnStatement struct {
	Value Expr // nil for bare `return`
	Pos   Pos
}

func (r *ReturnStatement) Position() Pos { return r.Pos }
func (r *ReturnStatement) stmtNode()     {}

// BreakStatement: break.
type BreakStatement struct {
	Pos Pos
}

func (b *BreakStatement) Position() Pos { return b.Pos }
func (b *BreakStatement) stmtNode()     {}

// ContinueStatement: continue.
type ContinueStatement struct {
	Pos Pos
}

func (c *ContinueStatement) Position() Pos { return c.Pos }
func (c *ContinueStatement) stmtNode()     {}

// ShStatement: sh """ ... """ — a raw, opaque shell script block emitted
// verbatim by the code generator.
type ShStatement struct {
	Script string
	Pos    Pos
}

func (s *ShStatement) Position() Pos { return s.Pos }
func (s *ShStatement) stmtNode()     {}

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Expression Expr
	Pos        Pos
}

func (e *ExpressionStatement) Position() Pos { return e.Pos }
func (e *ExpressionStatement) stmtNode()     {}
