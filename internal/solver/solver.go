// Package solver provides the IncrementalSolver contract shared by
// the reference DPLL backend and the gini-backed CDCL backend, plus
// the activation-literal Scope mechanism incremental callers use to
// retract groups of clauses a SAT solver can otherwise never forget.
package solver

import "github.com/ishanrk/circuitcount/internal/cnf"

// Result is the outcome of a single Solve call.
type Result int

const (
	Unsat Result = iota
	Sat
)

// Stats accumulates simple solver activity counters across a
// backend's lifetime.
type Stats struct {
	SolveCalls int
	Decisions  int
	Conflicts  int
}

// IncrementalSolver is a SAT solver that can grow its clause database
// and variable set across repeated Solve calls, each under a fresh
// set of assumption literals.
type IncrementalSolver interface {
	NewVar() uint32
	AddClause(clause []cnf.Lit)
	Solve(assumptions []cnf.Lit) Result
	ModelValue(v uint32) (value bool, known bool)
	Stats() Stats
	BackendName() string
}
