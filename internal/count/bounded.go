// Package count implements projected model counting: exact bounded
// enumeration for small solution spaces, and an ApproxMC-style
// hash-based estimator for larger ones.
package count

import (
	"fmt"

	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/solver"
)

// Bounded is the result of a capped projected-model enumeration.
type Bounded struct {
	Count  int
	HitCap bool
}

// ProjectedCountBounded enumerates models of f projected onto
// projection, stopping once the count exceeds cap. It owns a fresh
// DPLL backend for the whole enumeration.
func ProjectedCountBounded(f *cnf.Formula, projection []uint32, cap int) (Bounded, error) {
	s := solver.NewDpllBackend()
	solver.LoadFormula(s, f)
	return ProjectedCountBoundedSession(s, projection, cap, nil)
}

// ProjectedCountBoundedSession allocates a fresh Scope on s and
// enumerates within it, so the blocking clauses it adds can later be
// retracted by simply not assuming the scope's activation literal.
func ProjectedCountBoundedSession(s solver.IncrementalSolver, projection []uint32, cap int, baseAssumptions []cnf.Lit) (Bounded, error) {
	for _, v := range projection {
		if v == 0 {
			return Bounded{}, fmt.Errorf("count: projection contains variable 0")
		}
	}
	scope := solver.NewScope(s)
	return ProjectedCountBoundedInScope(s, projection, cap, baseAssumptions, scope)
}

// ProjectedCountBoundedInScope enumerates models of s projected onto
// projection within an existing scope, blocking each found assignment
// with a scoped clause until either the solver reports Unsat or the
// count exceeds cap.
func ProjectedCountBoundedInScope(s solver.IncrementalSolver, projection []uint32, cap int, baseAssumptions []cnf.Lit, scope solver.Scope) (Bounded, error) {
	count := 0

	for {
		assumptions := make([]cnf.Lit, 0, len(baseAssumptions)+1)
		assumptions = append(assumptions, baseAssumptions...)
		assumptions = append(assumptions, scope.Act)

		if s.Solve(assumptions) == solver.Unsat {
			return Bounded{Count: count, HitCap: false}, nil
		}

		count++
		if count > cap {
			return Bounded{Count: count, HitCap: true}, nil
		}

		block := make([]cnf.Lit, 0, len(projection))
		for _, v := range projection {
			val, known := s.ModelValue(v)
			if !known {
				return Bounded{}, fmt.Errorf("count: missing model value for var %d", v)
			}
			block = append(block, cnf.NewLit(v, !val))
		}
		solver.AddScopedClause(s, scope, block)
	}
}
