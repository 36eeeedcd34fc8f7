package solver

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/ishanrk/circuitcount/internal/cnf"
)

// GiniBackend is an IncrementalSolver backed by gini's CDCL engine.
// It is the backend used for anything beyond small reference runs:
// it keeps learned clauses across Solve calls instead of re-deriving
// them every time, which is what makes repeated projected-counting
// queries against the same base formula affordable.
type GiniBackend struct {
	inner     *gini.Gini
	vars      []z.Lit
	lastModel bool
	stats     Stats
}

// NewGiniBackend returns an empty GiniBackend.
func NewGiniBackend() *GiniBackend {
	return &GiniBackend{inner: gini.New()}
}

func (b *GiniBackend) NewVar() uint32 {
	m := b.inner.Lit()
	b.vars = append(b.vars, m)
	return uint32(len(b.vars))
}

func (b *GiniBackend) toGiniLit(l cnf.Lit) z.Lit {
	m := b.vars[l.Var-1]
	if !l.Sign {
		m = m.Not()
	}
	return m
}

func (b *GiniBackend) AddClause(clause []cnf.Lit) {
	for _, lit := range clause {
		b.inner.Add(b.toGiniLit(lit))
	}
	b.inner.Add(0)
}

func (b *GiniBackend) Solve(assumptions []cnf.Lit) Result {
	b.stats.SolveCalls++

	ms := make([]z.Lit, len(assumptions))
	for i, a := range assumptions {
		ms[i] = b.toGiniLit(a)
	}
	b.inner.Assume(ms...)

	switch b.inner.Solve() {
	case 1:
		b.lastModel = true
		return Sat
	default:
		b.lastModel = false
		return Unsat
	}
}

func (b *GiniBackend) ModelValue(v uint32) (bool, bool) {
	if !b.lastModel || v == 0 || int(v) > len(b.vars) {
		return false, false
	}
	return b.inner.Value(b.vars[v-1]), true
}

func (b *GiniBackend) Stats() Stats { return b.stats }

func (b *GiniBackend) BackendName() string { return "gini" }
