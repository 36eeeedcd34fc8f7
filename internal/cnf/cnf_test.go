package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestEvalLitPartial(t *testing.T) {
	assignment := []*bool{nil, boolPtr(true), boolPtr(false)}

	v, known := EvalLitPartial(NewLit(1, true), assignment)
	assert.True(t, known)
	assert.True(t, v)

	v, known = EvalLitPartial(NewLit(1, false), assignment)
	assert.True(t, known)
	assert.False(t, v)

	_, known = EvalLitPartial(NewLit(9, true), assignment)
	assert.False(t, known)
}

func TestEvalClausePartial(t *testing.T) {
	assignment := []*bool{nil, boolPtr(false), boolPtr(false)}
	clause := []Lit{NewLit(1, true), NewLit(2, true)}

	v, known := EvalClausePartial(clause, assignment)
	assert.True(t, known)
	assert.False(t, v)

	clause2 := []Lit{NewLit(1, false), NewLit(2, true)}
	v, known = EvalClausePartial(clause2, assignment)
	assert.True(t, known)
	assert.True(t, v)
}

func TestEvalFormulaPartialUndetermined(t *testing.T) {
	f := New(2)
	f.AddClause([]Lit{NewLit(1, true)})
	f.AddClause([]Lit{NewLit(2, true)})

	assignment := []*bool{nil, boolPtr(true), nil}
	_, known := f.EvalFormulaPartial(assignment)
	assert.False(t, known)
}

func TestFreshVar(t *testing.T) {
	f := New(2)
	assert.EqualValues(t, 3, f.FreshVar())
	assert.EqualValues(t, 3, f.NumVars)
}
