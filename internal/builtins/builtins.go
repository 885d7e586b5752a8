// Package builtins holds the frozen registry of built-in functions and
// string methods the semantic analyzer resolves before considering any
// user-defined function or method, per spec.md §3 and §4.4.
//
// Grounded on the teacher's internal/types/env.go NewTypeEnvWithBuiltins:
// a fixed table of name -> signature populated once at construction,
// consulted by lookup rather than rebuilt per call.
package builtins

import "github.com/brashlang/brash/internal/types"

// Signature describes a built-in's parameter and return types. Variadic
// builtins (only print, currently) set Variadic and leave Params empty;
// every argument is accepted regardless of its type.
type Signature struct {
	Params   []types.Type
	Return   types.Type
	Variadic bool
}

// Globals is the global built-in function table, pre-populating the
// semantic analyzer's top-level scope per spec.md §3: "panic(string)->void,
// bash(string)->void, print(...variadic)->void".
var Globals = map[string]Signature{
	"panic": {Params: []types.Type{types.NewString()}, Return: types.NewVoid()},
	"bash":  {Params: []types.Type{types.NewString()}, Return: types.NewVoid()},
	"print": {Variadic: true, Return: types.NewVoid()},
}

// IsGlobal reports whether name is a built-in global function. The
// semantic analyzer's declaration pass uses this to reject a user
// function that shadows a built-in (spec.md §4.4: "Redefining a built-in
// function name ... => Error").
func IsGlobal(name string) bool {
	_, ok := Globals[name]
	return ok
}

// StringMethods is the frozen table of built-in string instance methods,
// consulted before any user-defined method when the receiver is a string,
// per spec.md §4.4: "table lookup for string built-in methods (length,
// contains(string), split(string), substring(int,int), ...) validates
// arity/argument types before any user method is considered."
var StringMethods = map[string]Signature{
	"length":       {Return: types.NewInt()},
	"contains":     {Params: []types.Type{types.NewString()}, Return: types.NewBool()},
	"split":        {Params: []types.Type{types.NewString()}, Return: &types.Array{Elem: types.NewString()}},
	"substring":    {Params: []types.Type{types.NewInt(), types.NewInt()}, Return: types.NewString()},
	"to_upper":     {Return: types.NewString()},
	"to_lower":     {Return: types.NewString()},
	"trim":         {Return: types.NewString()},
	"replace":      {Params: []types.Type{types.NewString(), types.NewString()}, Return: types.NewString()},
	"index_of":     {Params: []types.Type{types.NewString()}, Return: types.NewInt()},
	"starts_with":  {Params: []types.Type{types.NewString()}, Return: types.NewBool()},
	"ends_with":    {Params: []types.Type{types.NewString()}, Return: types.NewBool()},
}

// ArrayMethods is the frozen table of built-in array instance methods.
// spec.md §4.4 names only the string table exhaustively ("..."), so this
// table covers the operations the code generator's runtime helper library
// (spec.md §4.6, brash_map_*/brash_index_* helpers) requires an array to
// support.
var ArrayMethods = map[string]Signature{
	"length": {Return: types.NewInt()},
	"push":   {Return: types.NewVoid()}, // element type checked structurally against the array's Elem, not here
	"join":   {Params: []types.Type{types.NewString()}, Return: types.NewString()},
}

// ToStringAccepts reports whether to_string() may be called on t. Per
// spec.md §4.4, "the built-in to_string() accepts any string-convertible
// type" — every primitive except Void, plus named (struct/enum) types,
// mirroring the Cast rule's "any non-Unknown -> String" clause.
func ToStringAccepts(t types.Type) bool {
	if t == nil {
		return false
	}
	if types.IsVoid(t) {
		return false
	}
	if _, ok := t.(*types.Unknown); ok {
		return false
	}
	return true
}
