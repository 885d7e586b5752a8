// Package diag provides the diagnostic sink and structured error reporting
// shared by every phase of the compiler.
package diag

// Diagnostic codes follow a PHASE### taxonomy so downstream tooling can
// group, filter, and explain errors without parsing messages.
const (
	// Lexer (spec.md §4.2: "E000 (lex)")
	E000 = "E000"

	// Parser (spec.md §4.2: "E001 (parse)")
	E001 = "E001"

	// Preprocessor
	PP001 = "PP001" // #endif without matching opener
	PP002 = "PP002" // EOF while a conditional frame is still open
	PP003 = "PP003" // #else without a matching opener
	PP004 = "PP004" // second #else within one frame
	PP005 = "PP005" // malformed #if expression

	// Module loader / visibility
	MOD001 = "MOD001" // importing a non-public name
	MOD002 = "MOD002" // circular import
	MOD003 = "MOD003" // module not found
	MOD004 = "MOD004" // duplicate declaration across merged modules
	MOD005 = "MOD005" // std/* import with no StdLibLocator configured

	// Semantic analyzer: structural
	TC001 = "TC001" // duplicate type name
	TC002 = "TC002" // redefining a built-in function
	TC003 = "TC003" // duplicate enum variant
	TC004 = "TC004" // pub on a non-const declaration
	TC005 = "TC005" // redeclaration in the same scope

	// Semantic analyzer: type/mutability
	TC010 = "TC010" // type mismatch
	TC011 = "TC011" // assignment to immutable variable
	TC012 = "TC012" // assignment to self.field outside instance method
	TC013 = "TC013" // tuple destructuring arity mismatch
	TC014 = "TC014" // invalid main() signature
	TC015 = "TC015" // static/instance dispatch mismatch
	TC016 = "TC016" // self used in a static method
	TC017 = "TC017" // unknown method/field
	TC018 = "TC018" // pipe operator invariant violated
	TC019 = "TC019" // break/continue outside a loop
	TC020 = "TC020" // unknown enum variant
	TC021 = "TC021" // struct literal missing or unknown field
	TC022 = "TC022" // invalid cast
	TC023 = "TC023" // invalid index access

	// Semantic analyzer: readiness gate (spec.md §4.4 "Transpilation readiness")
	TC030 = "TC030"

	// Semantic analyzer: advisory warnings
	WARN001 = "WARN001" // nullable dereference without safe navigation
	WARN002 = "WARN002" // non-bool if/while condition
	WARN003 = "WARN003" // redundant ??
	WARN004 = "WARN004" // suspicious ${} interpolation inside sh block

	// Code generator: unsupported-for-codegen constructs
	CG001 = "CG001"
)

// Phase names used in Report.Phase.
const (
	PhaseLexer      = "lexer"
	PhasePreprocess = "preprocess"
	PhaseParser     = "parser"
	PhaseModule     = "module"
	PhaseSema       = "sema"
	PhaseOptimize   = "optimize"
	PhaseCodegen    = "codegen"
)

// Info describes a diagnostic code for tooling that wants to explain it
// (an external CLI, a language-server-style surface, etc.).
type Info struct {
	Code        string
	Phase       string
	Description string
}

// Registry maps every code this package emits to descriptive metadata.
var Registry = map[string]Info{
	E000:    {E000, PhaseLexer, "Illegal token"},
	E001:    {E001, PhaseParser, "Unexpected token"},
	PP001:   {PP001, PhasePreprocess, "#endif without matching #if/#ifdef/#ifndef"},
	PP002:   {PP002, PhasePreprocess, "Unterminated conditional block at end of file"},
	PP003:   {PP003, PhasePreprocess, "#else without matching opener"},
	PP004:   {PP004, PhasePreprocess, "Duplicate #else in the same conditional"},
	PP005:   {PP005, PhasePreprocess, "Malformed #if expression"},
	MOD001:  {MOD001, PhaseModule, "Import of a non-public declaration"},
	MOD002:  {MOD002, PhaseModule, "Circular import"},
	MOD003:  {MOD003, PhaseModule, "Module not found"},
	MOD004:  {MOD004, PhaseModule, "Duplicate declaration"},
	MOD005:  {MOD005, PhaseModule, "Unresolved std/* import (no StdLibLocator)"},
	TC001:   {TC001, PhaseSema, "Duplicate type name"},
	TC002:   {TC002, PhaseSema, "Redefinition of a built-in function"},
	TC003:   {TC003, PhaseSema, "Duplicate enum variant"},
	TC004:   {TC004, PhaseSema, "Only const declarations can be public"},
	TC005:   {TC005, PhaseSema, "Redeclaration in the same scope"},
	TC010:   {TC010, PhaseSema, "Type mismatch"},
	TC011:   {TC011, PhaseSema, "Cannot assign to immutable variable"},
	TC012:   {TC012, PhaseSema, "Assignment to self.field outside an instance method"},
	TC013:   {TC013, PhaseSema, "Tuple destructuring arity mismatch"},
	TC014:   {TC014, PhaseSema, "Invalid main() signature"},
	TC015:   {TC015, PhaseSema, "Static/instance method dispatch mismatch"},
	TC016:   {TC016, PhaseSema, "self used inside a static method"},
	TC017:   {TC017, PhaseSema, "Unknown method or field"},
	TC018:   {TC018, PhaseSema, "Pipe operator invariant violated"},
	TC019:   {TC019, PhaseSema, "break/continue outside a loop"},
	TC020:   {TC020, PhaseSema, "Unknown enum variant"},
	TC021:   {TC021, PhaseSema, "Struct literal field mismatch"},
	TC022:   {TC022, PhaseSema, "Invalid cast"},
	TC023:   {TC023, PhaseSema, "Invalid index access"},
	TC030:   {TC030, PhaseSema, "Construct cannot be lowered to shell"},
	WARN001: {WARN001, PhaseSema, "Nullable value dereferenced without ?."},
	WARN002: {WARN002, PhaseSema, "Condition is not bool"},
	WARN003: {WARN003, PhaseSema, "Redundant ?? (left is never null)"},
	WARN004: {WARN004, PhaseSema, "Suspicious ${...} interpolation in sh block"},
	CG001:   {CG001, PhaseCodegen, "Unsupported construct replaced with empty string"},
}

// Lookup returns metadata for a code, mirroring the teacher's GetErrorInfo.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}
