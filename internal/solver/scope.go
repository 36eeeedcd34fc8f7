package solver

import "github.com/ishanrk/circuitcount/internal/cnf"

// Scope is a retractable group of clauses gated behind a fresh
// activation variable: a clause added through AddScopedClause is only
// in force while the scope's literal is assumed true. Most SAT
// solvers cannot forget a clause once learned, so retraction is
// simulated by simply never assuming the scope literal again.
type Scope struct {
	Act cnf.Lit
}

// NewScope allocates a fresh activation variable on s and returns the
// Scope built from its positive literal.
func NewScope(s IncrementalSolver) Scope {
	v := s.NewVar()
	return Scope{Act: cnf.NewLit(v, true)}
}

// AddScopedClause adds clause to s with scope.Act's negation
// prepended, so the clause only constrains solutions in which
// scope.Act is assumed true.
func AddScopedClause(s IncrementalSolver, scope Scope, clause []cnf.Lit) {
	scoped := make([]cnf.Lit, 0, len(clause)+1)
	scoped = append(scoped, scope.Act.Neg())
	scoped = append(scoped, clause...)
	s.AddClause(scoped)
}

// LoadFormula grows s by f.NumVars fresh variables and adds every
// clause in f. s must not already have variables allocated: the
// fresh variables are assumed to line up 1:1 with f's 1-indexed
// variable numbering.
func LoadFormula(s IncrementalSolver, f *cnf.Formula) {
	for i := uint32(0); i < f.NumVars; i++ {
		s.NewVar()
	}
	for _, clause := range f.Clauses {
		s.AddClause(clause)
	}
}
