// Package optimize implements the AST optimizer: a set of independently
// toggleable passes that produce an observationally-equivalent program
// that is cheaper to generate and execute, grounded on the teacher's
// internal/elaborate tree-walking style (a type switch per node kind,
// no cyclic references since the AST is tree-shaped).
package optimize

// Options is a plain record of independent booleans, mirroring the
// teacher's preference for flag-bag configuration records over a single
// monolithic "optimize" toggle. All passes default to on.
type Options struct {
	EnableConstantPropagation       bool
	EnableConstantFolding           bool
	EnableControlFlowSimplification bool
	EnableDeadLocalElimination      bool
}

// DefaultOptions returns every pass enabled.
func DefaultOptions() Options {
	return Options{
		EnableConstantPropagation:       true,
		EnableConstantFolding:           true,
		EnableControlFlowSimplification: true,
		EnableDeadLocalElimination:      true,
	}
}

// None disables every pass; useful for a "-O0" driver flag.
func None() Options {
	return Options{}
}
