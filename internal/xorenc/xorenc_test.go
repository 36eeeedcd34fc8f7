package xorenc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/satsolver"
)

func evalXor(vars []uint32, values map[uint32]bool) bool {
	acc := false
	for _, v := range vars {
		acc = acc != values[v]
	}
	return acc
}

// withFixedVars clones f and appends unit clauses pinning each var in
// fixed to its value, so satisfiability of the result tells us
// whether f is consistent with that total assignment of those vars.
func withFixedVars(f *cnf.Formula, fixed map[uint32]bool) *cnf.Formula {
	out := &cnf.Formula{NumVars: f.NumVars, Clauses: append([][]cnf.Lit(nil), f.Clauses...)}
	for v, val := range fixed {
		out.AddClause([]cnf.Lit{cnf.NewLit(v, val)})
	}
	return out
}

func TestAppendBlockPlainMatchesParity(t *testing.T) {
	constraints := []Constraint{
		{Vars: []uint32{1, 2}, RHS: true},
		{Vars: []uint32{2, 3}, RHS: false},
	}

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				values := map[uint32]bool{1: a == 1, 2: b == 1, 3: c == 1}
				want := evalXor(constraints[0].Vars, values) == constraints[0].RHS &&
					evalXor(constraints[1].Vars, values) == constraints[1].RHS

				f := cnf.New(3)
				AppendBlock(f, constraints, Plain)
				got := satsolver.IsSat(withFixedVars(f, values))

				assert.Equal(t, want, got, "a=%v b=%v c=%v", a, b, c)
			}
		}
	}
}

func TestAppendBlockGatedOnlyConstrainsWhenActive(t *testing.T) {
	constraints := []Constraint{{Vars: []uint32{1}, RHS: true}}

	f := cnf.New(1)
	actVar, hasAct := AppendBlock(f, constraints, Gated(false))
	assert.True(t, hasAct)

	// activation left unassumed: var 1 = false must still be satisfiable.
	blocked := withFixedVars(f, map[uint32]bool{1: false})
	assert.True(t, satsolver.IsSat(blocked))

	// once activated, var 1 = false becomes unsatisfiable.
	activated := withFixedVars(f, map[uint32]bool{1: false, actVar: true})
	assert.False(t, satsolver.IsSat(activated))
}

func TestSampleConstraintsRejectsInvalidSparsity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := SampleConstraints([]uint32{1, 2}, 1, 0, rng)
	assert.Error(t, err)
}

func TestSampleConstraintsNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rows, err := SampleConstraints([]uint32{1, 2, 3}, 20, 0.01, rng)
	assert.NoError(t, err)
	for _, row := range rows {
		assert.NotEmpty(t, row.Vars)
	}
}

func TestSampleConstraintsDeterministicForSeed(t *testing.T) {
	rng1 := rand.New(rand.NewSource(7))
	rng2 := rand.New(rand.NewSource(7))
	rows1, err := SampleConstraints([]uint32{1, 2, 3, 4}, 5, 0.5, rng1)
	assert.NoError(t, err)
	rows2, err := SampleConstraints([]uint32{1, 2, 3, 4}, 5, 0.5, rng2)
	assert.NoError(t, err)
	assert.Equal(t, rows1, rows2)
}
