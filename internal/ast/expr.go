package ast

import "github.com/brashlang/brash/internal/types"

// LiteralKind enumerates literal expression variants.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	CharLit
	BoolLit
	NullLit
)

// IntLiteral, FloatLiteral, ... are modeled as one Literal node carrying a
// Kind discriminator, mirroring the teacher's ast.Literal, plus the two
// string flags spec.md §3 requires: isInterpolated, isMultiline.
type Literal struct {
	Kind           LiteralKind
	IntValue       int64
	FloatValue     float64
	StringValue    string
	CharValue      rune
	BoolValue      bool
	IsInterpolated bool
	IsMultiline    bool
	Pos            Pos
}

func (l *Literal) Position() Pos { return l.Pos }
func (l *Literal) exprNode()     {}

// Identifier references a variable, function, type, or enum name by path
// (e.g. "a.b.c" is represented as nested MemberAccess, a bare name here).
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) Position() Pos { return i.Pos }
func (i *Identifier) exprNode()     {}

// Self represents the `self` keyword inside an instance method body.
type Self struct {
	Pos Pos
}

func (s *Self) Position() Pos { return s.Pos }
func (s *Self) exprNode()     {}

// Binary: Binary(op, l, r).
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *Binary) Position() Pos { return b.Pos }
func (b *Binary) exprNode()     {}

// Unary: Unary(op, operand).
type Unary struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (u *Unary) Position() Pos { return u.Pos }
func (u *Unary) exprNode()     {}

// Cast: Cast(value, targetType).
type Cast struct {
	Value      Expr
	TargetType types.Type
	Pos        Pos
}

func (c *Cast) Position() Pos { return c.Pos }
func (c *Cast) exprNode()     {}

// FunctionCall: a bare function-name application.
type FunctionCall struct {
	Callee Expr // usually *Identifier
	Args   []Expr
	Pos    Pos
}

func (f *FunctionCall) Position() Pos { return f.Pos }
func (f *FunctionCall) exprNode()     {}

// MethodCall: MethodCall(object, name, args, isStaticDispatch,
// staticTypeName?). IsStaticDispatch/StaticTypeName are annotated by the
// semantic analyzer per spec.md §4.4, not set by the parser.
type MethodCall struct {
	Object          Expr
	Name            string
	Args            []Expr
	IsStaticDispatch bool
	StaticTypeName  string
	Pos             Pos
}

func (m *MethodCall) Position() Pos { return m.Pos }
func (m *MethodCall) exprNode()     {}

// MemberAccess: obj.field.
type MemberAccess struct {
	Object Expr
	Field  string
	Pos    Pos
}

func (m *MemberAccess) Position() Pos { return m.Pos }
func (m *MemberAccess) exprNode()     {}

// SafeNavigation: obj?.field.
type SafeNavigation struct {
	Object Expr
	Field  string
	Pos    Pos
}

func (s *SafeNavigation) Position() Pos { return s.Pos }
func (s *SafeNavigation) exprNode()     {}

// IndexAccess: obj[index].
type IndexAccess struct {
	Object Expr
	Index  Expr
	Pos    Pos
}

func (i *IndexAccess) Position() Pos { return i.Pos }
func (i *IndexAccess) exprNode()     {}

// ArrayLiteral: [e1, e2, ...].
type ArrayLiteral struct {
	Elements []Expr
	Pos      Pos
}

func (a *ArrayLiteral) Position() Pos { return a.Pos }
func (a *ArrayLiteral) exprNode()     {}

// MapEntry is one key:value pair of a MapLiteral.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLiteral: map literal expression.
type MapLiteral struct {
	Entries []MapEntry
	Pos     Pos
}

func (m *MapLiteral) Position() Pos { return m.Pos }
func (m *MapLiteral) exprNode()     {}

// FieldInit is one `name: value` pair of a StructLiteral.
type FieldInit struct {
	Name  string
	Value Expr
	Pos   Pos
}

// StructLiteral: TypeName{field: value, ...}.
type StructLiteral struct {
	TypeName string
	Fields   []FieldInit
	Pos      Pos
}

func (s *StructLiteral) Position() Pos { return s.Pos }
func (s *StructLiteral) exprNode()     {}

// TupleExpression: (e1, e2, ...).
type TupleExpression struct {
	Elements []Expr
	Pos      Pos
}

func (t *TupleExpression) Position() Pos { return t.Pos }
func (t *TupleExpression) exprNode()     {}

// Pipe: Pipe(left, right). Command-pipe vs value-pipe is disambiguated
// during semantic analysis per spec.md §4.4, not at parse time.
type Pipe struct {
	Left  Expr
	Right Expr
	Pos   Pos
}

func (p *Pipe) Position() Pos { return p.Pos }
func (p *Pipe) exprNode()     {}

// NullCoalesce: left ?? right.
type NullCoalesce struct {
	Left  Expr
	Right Expr
	Pos   Pos
}

func (n *NullCoalesce) Position() Pos { return n.Pos }
func (n *NullCoalesce) exprNode()     {}

// Range: start..end, valid only directly in a ForLoop's Source slot per
// spec.md §4.4 transpilation-readiness gate. An optional Step is carried
// for the `step N` form described in spec.md §4.6.
type Range struct {
	Start Expr
	End   Expr
	Step  Expr // nil if not specified
	Pos   Pos
}

func (r *Range) Position() Pos { return r.Pos }
func (r *Range) exprNode()     {}

// CommandKind enumerates cmd/exec/spawn, per spec.md §3.
type CommandKind int

const (
	Cmd CommandKind = iota
	Exec
	Spawn
)

func (k CommandKind) String() string {
	switch k {
	case Cmd:
		return "cmd"
	case Exec:
		return "exec"
	case Spawn:
		return "spawn"
	default:
		return "command"
	}
}

// Command: Command(kind, isAsync, args). Args may be a single Command-typed
// expression (pipeline form) or a list of plain expressions (positional
// argument form); spec.md §4.4 forbids mixing the two.
type Command struct {
	Kind    CommandKind
	IsAsync bool
	Args    []Expr
	Pos     Pos
}

func (c *Command) Position() Pos { return c.Pos }
func (c *Command) exprNode()     {}

// Await: await e, where e: Process.
type Await struct {
	Value Expr
	Pos   Pos
}

func (a *Await) Position() Pos { return a.Pos }
func (a *Await) exprNode()     {}

// EnumLiteral: EnumName.Variant.
type EnumLiteral struct {
	EnumName string
	Variant  string
	Pos      Pos
}

func (e *EnumLiteral) Position() Pos { return e.Pos }
func (e *EnumLiteral) exprNode()     {}
