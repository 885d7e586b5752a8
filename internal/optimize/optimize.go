package optimize

import "github.com/brashlang/brash/internal/ast"

// Optimize runs the enabled passes over prog's top-level statements and
// every nested function/method body. prog itself is mutated in place (the
// AST is single-owner per compilation, per spec.md §5) and also returned
// for convenience. Top-level bindings are globals that function bodies may
// read, so dead-local elimination is not applied to the top-level
// statement list itself; nested blocks and bodies get every enabled pass.
func Optimize(prog *ast.Program, opts Options) *ast.Program {
	env := literalEnv(nil)
	if opts.EnableConstantPropagation {
		env = literalEnv{}
	}
	out := make([]ast.Stmt, 0, len(prog.Statements))
	for _, s := range prog.Statements {
		out = optimizeStmt(s, opts, env, out)
	}
	prog.Statements = out
	return prog
}
