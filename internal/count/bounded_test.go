package count_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/count"
	"github.com/ishanrk/circuitcount/internal/solver"
	"github.com/ishanrk/circuitcount/internal/xorenc"
)

func TestBoundedCountOnOrClause(t *testing.T) {
	f := cnf.New(2)
	f.AddClause([]cnf.Lit{cnf.NewLit(1, true), cnf.NewLit(2, true)})

	full, err := count.ProjectedCountBounded(f, []uint32{1, 2}, 10)
	assert.NoError(t, err)
	assert.False(t, full.HitCap)
	assert.Equal(t, 3, full.Count)

	capped, err := count.ProjectedCountBounded(f, []uint32{1, 2}, 2)
	assert.NoError(t, err)
	assert.True(t, capped.HitCap)
	assert.Equal(t, 3, capped.Count)
}

func TestScopedBlockingClausesDoNotLeak(t *testing.T) {
	s := solver.NewDpllBackend()
	s.NewVar()
	s.NewVar()
	s.AddClause([]cnf.Lit{cnf.NewLit(1, true), cnf.NewLit(2, true)})

	c1, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, nil)
	assert.NoError(t, err)
	c2, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, nil)
	assert.NoError(t, err)

	assert.Equal(t, 3, c1.Count)
	assert.Equal(t, 3, c2.Count)
	assert.False(t, c1.HitCap)
	assert.False(t, c2.HitCap)
}

func TestIncrementalXorActivationWorks(t *testing.T) {
	s := solver.NewDpllBackend()
	s.NewVar() // x
	s.NewVar() // y

	c1 := xorenc.Constraint{Vars: []uint32{1, 2}, RHS: false}
	c2 := xorenc.Constraint{Vars: []uint32{1, 2}, RHS: true}

	a1 := cnf.NewLit(s.NewVar(), true)
	xorenc.AppendToSolver(s, c1, &a1)
	a2 := cnf.NewLit(s.NewVar(), true)
	xorenc.AppendToSolver(s, c2, &a2)

	all, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, nil)
	assert.NoError(t, err)
	assert.Equal(t, 4, all.Count)

	only1, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, []cnf.Lit{a1})
	assert.NoError(t, err)
	assert.Equal(t, 2, only1.Count)

	only2, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, []cnf.Lit{a2})
	assert.NoError(t, err)
	assert.Equal(t, 2, only2.Count)

	both, err := count.ProjectedCountBoundedSession(s, []uint32{1, 2}, 100, []cnf.Lit{a1, a2})
	assert.NoError(t, err)
	assert.Equal(t, 0, both.Count)
}
