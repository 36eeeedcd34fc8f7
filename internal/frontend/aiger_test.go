package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTinyAag(t *testing.T) {
	src := `aag 2 1 0 1 1
2
4
4 2 2
`
	circ, err := ParseAagString(src)
	assert.NoError(t, err)

	assert.EqualValues(t, 2, circ.MaxID)
	assert.Equal(t, 1, circ.NumInputs())
	assert.Equal(t, 1, circ.NumGates())
	assert.Equal(t, []uint32{1}, circ.Inputs)
	assert.Len(t, circ.Outputs, 1)
	assert.EqualValues(t, 2, circ.Outputs[0].ID)
	assert.False(t, circ.Outputs[0].Neg)
	assert.EqualValues(t, 2, circ.Gates[0].ID)
	assert.EqualValues(t, 1, circ.Gates[0].A.ID)
	assert.EqualValues(t, 1, circ.Gates[0].B.ID)
}

func TestParseAagRejectsLatches(t *testing.T) {
	src := "aag 2 1 1 1 0\n2\n2\n2\n"
	_, err := ParseAagString(src)
	assert.Error(t, err)
}

func TestParseAagRejectsTopoViolation(t *testing.T) {
	src := `aag 2 1 0 1 1
2
4
2 4 4
`
	_, err := ParseAagString(src)
	assert.Error(t, err)
}

func TestParseAagRejectsUndersizedHeader(t *testing.T) {
	src := `aag 1 1 0 1 1
2
4
4 2 2
`
	_, err := ParseAagString(src)
	assert.Error(t, err)
}

func TestParseAagDemorganExample(t *testing.T) {
	src := `aag 5 3 0 1 2
2
4
6
11
8 2 4
10 9 7
`
	circ, err := ParseAagString(src)
	assert.NoError(t, err)
	assert.Equal(t, 3, circ.NumInputs())
	assert.Equal(t, 2, circ.NumGates())

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			for _, c := range []bool{false, true} {
				out := circ.Eval([]bool{a, b, c})[0]
				assert.Equal(t, (a && b) || c, out)
			}
		}
	}
}
