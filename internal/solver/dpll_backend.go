package solver

import (
	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/satsolver"
)

// DpllBackend is an IncrementalSolver backed by the reference DPLL
// search. It has no true incremental solving underneath: each Solve
// call re-runs the search from scratch over the accumulated clause
// database plus the current assumptions, re-added as unit clauses on
// a private copy of the formula.
type DpllBackend struct {
	formula   *cnf.Formula
	lastModel []bool
	stats     Stats
}

// NewDpllBackend returns an empty DpllBackend.
func NewDpllBackend() *DpllBackend {
	return &DpllBackend{formula: cnf.New(0)}
}

func (b *DpllBackend) NewVar() uint32 {
	return b.formula.FreshVar()
}

func (b *DpllBackend) AddClause(clause []cnf.Lit) {
	b.formula.AddClause(append([]cnf.Lit(nil), clause...))
}

func (b *DpllBackend) Solve(assumptions []cnf.Lit) Result {
	b.stats.SolveCalls++

	work := &cnf.Formula{
		NumVars: b.formula.NumVars,
		Clauses: append([][]cnf.Lit(nil), b.formula.Clauses...),
	}
	for _, a := range assumptions {
		work.AddClause([]cnf.Lit{a})
	}

	result := satsolver.Solve(work)
	if result.Sat {
		b.lastModel = result.Model
		return Sat
	}
	b.lastModel = nil
	return Unsat
}

func (b *DpllBackend) ModelValue(v uint32) (bool, bool) {
	if b.lastModel == nil || int(v) >= len(b.lastModel) {
		return false, false
	}
	return b.lastModel[v], true
}

func (b *DpllBackend) Stats() Stats { return b.stats }

func (b *DpllBackend) BackendName() string { return "dpll" }
