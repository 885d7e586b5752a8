// Package types implements the closed type-variant set described in
// spec.md §3. Unlike the teacher's Hindley-Milner type system (type
// variables, substitution, unification), this language's types are fully
// resolved at each annotation site or inferred structurally from a single
// initializer — there is no unification search, so the Type interface only
// needs structural equality and a printable form.
package types

import (
	"fmt"
	"strings"
)

// Type is the closed interface every type variant implements. Grounded on
// the teacher's internal/types/types.go Type interface, minus Substitute
// (no type variables exist in this language).
type Type interface {
	String() string
	// Equals reports structural equality, per spec.md §3: "equality is
	// structural".
	Equals(other Type) bool
}

// PrimitiveKind enumerates the built-in scalar kinds.
type PrimitiveKind int

const (
	Int PrimitiveKind = iota
	Float
	String
	Bool
	Char
	Void
	Any
)

func (k PrimitiveKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Void:
		return "void"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// Primitive is PrimitiveType(kind) from spec.md §3.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return p.Kind.String() }
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Kind == p.Kind
}

// Nullable is NullableType(base) from spec.md §3.
type Nullable struct {
	Base Type
}

func (n *Nullable) String() string { return n.Base.String() + "?" }
func (n *Nullable) Equals(other Type) bool {
	o, ok := other.(*Nullable)
	return ok && n.Base.Equals(o.Base)
}

// Array is ArrayType(element) from spec.md §3.
type Array struct {
	Elem Type
}

func (a *Array) String() string { return a.Elem.String() + "[]" }
func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && a.Elem.Equals(o.Elem)
}

// Map is MapType(key, value) from spec.md §3.
type Map struct {
	Key   Type
	Value Type
}

func (m *Map) String() string { return fmt.Sprintf("map<%s,%s>", m.Key, m.Value) }
func (m *Map) Equals(other Type) bool {
	o, ok := other.(*Map)
	return ok && m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
}

// Tuple is TupleType(elements) from spec.md §3.
type Tuple struct {
	Elements []Type
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(o.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Named is NamedType(name) from spec.md §3: references a user struct/enum,
// or one of the built-in pseudo-types Command/Process.
type Named struct {
	Name string
}

func (n *Named) String() string { return n.Name }
func (n *Named) Equals(other Type) bool {
	o, ok := other.(*Named)
	return ok && o.Name == n.Name
}

// Built-in pseudo-type names, per spec.md §3.
const (
	CommandTypeName = "Command"
	ProcessTypeName = "Process"
)

// Unknown is the sentinel used to suppress cascading errors after a
// resolution failure, per spec.md §3. Unknown.Equals always reports true
// against any type so that downstream checks do not also fail.
type Unknown struct{}

func (u *Unknown) String() string   { return "<unknown>" }
func (u *Unknown) Equals(Type) bool { return true }

// IsUnknown reports whether t is the Unknown sentinel.
func IsUnknown(t Type) bool { _, ok := t.(*Unknown); return ok }

// Convenience constructors for the common primitives.
func NewInt() Type    { return &Primitive{Kind: Int} }
func NewFloat() Type  { return &Primitive{Kind: Float} }
func NewString() Type { return &Primitive{Kind: String} }
func NewBool() Type   { return &Primitive{Kind: Bool} }
func NewChar() Type   { return &Primitive{Kind: Char} }
func NewVoid() Type   { return &Primitive{Kind: Void} }
func NewAny() Type    { return &Primitive{Kind: Any} }

// NullType is the type of the null literal, per spec.md §3:
// "null literal has type NullableType(PrimitiveType(Void))".
func NullType() Type { return &Nullable{Base: NewVoid()} }

// IsNullable reports whether t is a Nullable.
func IsNullable(t Type) bool {
	_, ok := t.(*Nullable)
	return ok
}

// NonNullBase returns the base of a Nullable, or t unchanged otherwise.
func NonNullBase(t Type) Type {
	if n, ok := t.(*Nullable); ok {
		return n.Base
	}
	return t
}

// IsPrimitive reports whether t is PrimitiveType(kind).
func IsPrimitive(t Type, kind PrimitiveKind) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == kind
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.Kind == Int || p.Kind == Float)
}

// IsVoid reports whether t is PrimitiveType(Void).
func IsVoid(t Type) bool { return IsPrimitive(t, Void) }

// IsAny reports whether t is PrimitiveType(Any).
func IsAny(t Type) bool { return IsPrimitive(t, Any) }

// AssignableFrom reports whether a value of type `from` may be stored in a
// location of type `to`, per spec.md §3 invariants: Void is never
// assignable; Any accepts any non-Void value but is not implicitly
// narrowed; structural equality otherwise, with nullable widening (T
// assignable to T?).
func AssignableFrom(to, from Type) bool {
	if IsUnknown(to) || IsUnknown(from) {
		return true
	}
	if IsVoid(to) || IsVoid(from) {
		return false
	}
	if IsAny(to) {
		return true
	}
	if to.Equals(from) {
		return true
	}
	if toN, ok := to.(*Nullable); ok {
		if fromN, ok := from.(*Nullable); ok {
			if IsVoid(fromN.Base) {
				// the null literal's type, Nullable(Void), widens to any
				// nullable target.
				return true
			}
			return AssignableFrom(toN.Base, fromN.Base)
		}
		return AssignableFrom(toN.Base, from)
	}
	return false
}
