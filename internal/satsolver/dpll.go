// Package satsolver is a reference DPLL SAT solver with unit
// propagation and no clause learning. It backstops the gini-backed
// CDCL solver used for anything performance-sensitive: a second, much
// simpler implementation of the same contract to cross-check against.
package satsolver

import "github.com/ishanrk/circuitcount/internal/cnf"

// Result is the outcome of a satisfiability search: either Sat with a
// complete model or Unsat.
type Result struct {
	Sat   bool
	Model []bool
}

// Solve runs DPLL search over f and returns a complete model (free
// variables default to false) if satisfiable.
func Solve(f *cnf.Formula) Result {
	assignment := make([]*bool, f.NumVars+1)
	if search(f, assignment) {
		model := make([]bool, len(assignment))
		for i, v := range assignment {
			if v != nil {
				model[i] = *v
			}
		}
		return Result{Sat: true, Model: model}
	}
	return Result{Sat: false}
}

// IsSat reports whether f is satisfiable.
func IsSat(f *cnf.Formula) bool {
	return Solve(f).Sat
}

func search(f *cnf.Formula, assignment []*bool) bool {
	if !unitPropagate(f, assignment) {
		return false
	}

	sat, known := f.EvalFormulaPartial(assignment)
	if known {
		return sat
	}

	idx := firstUnassigned(assignment)
	if idx < 0 {
		return false
	}

	tryTrue := cloneAssignment(assignment)
	trueVal := true
	tryTrue[idx] = &trueVal
	if search(f, tryTrue) {
		copy(assignment, tryTrue)
		return true
	}

	tryFalse := cloneAssignment(assignment)
	falseVal := false
	tryFalse[idx] = &falseVal
	if search(f, tryFalse) {
		copy(assignment, tryFalse)
		return true
	}

	return false
}

func unitPropagate(f *cnf.Formula, assignment []*bool) bool {
	for {
		changed := false

		for _, clause := range f.Clauses {
			openCount := 0
			var lastOpen cnf.Lit
			hasTrue := false

			for _, lit := range clause {
				v, known := cnf.EvalLitPartial(lit, assignment)
				if known && v {
					hasTrue = true
					break
				}
				if !known {
					openCount++
					lastOpen = lit
				}
			}

			if hasTrue {
				continue
			}
			if openCount == 0 {
				return false
			}
			if openCount == 1 {
				need := lastOpen.Sign
				cur := assignment[lastOpen.Var]
				switch {
				case cur != nil && *cur != need:
					return false
				case cur == nil:
					assignment[lastOpen.Var] = &need
					changed = true
				}
			}
		}

		if !changed {
			return true
		}
	}
}

func firstUnassigned(assignment []*bool) int {
	for i := 1; i < len(assignment); i++ {
		if assignment[i] == nil {
			return i
		}
	}
	return -1
}

func cloneAssignment(assignment []*bool) []*bool {
	out := make([]*bool, len(assignment))
	copy(out, assignment)
	return out
}
