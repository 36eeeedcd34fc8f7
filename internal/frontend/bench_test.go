package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBenchLineWithSpacesAndComment(t *testing.T) {
	src := `INPUT(a) # input
INPUT(b)
OUTPUT(out)
out = OR( a , b ) # logic
`
	circ, err := ParseBenchString(src)
	assert.NoError(t, err)
	assert.Equal(t, 2, circ.NumInputs())
	assert.Len(t, circ.Outputs, 1)
}

func TestParseAssignCommas(t *testing.T) {
	asn, err := parseAssign("x = XOR(a, b)")
	assert.NoError(t, err)
	assert.Equal(t, "x", asn.lhs)
	assert.Equal(t, []string{"a", "b"}, asn.args)
}

func TestParseBenchRejectsSequentialConstructs(t *testing.T) {
	src := `INPUT(a)
OUTPUT(q)
q = LATCH(a)
`
	_, err := ParseBenchString(src)
	assert.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseBenchForwardReferenceResolved(t *testing.T) {
	src := `INPUT(a)
INPUT(b)
OUTPUT(y)
y = AND(t, b)
t = NOT(a)
`
	circ, err := ParseBenchString(src)
	assert.NoError(t, err)
	assert.Equal(t, 2, circ.NumInputs())
	out := circ.Eval([]bool{false, true})
	assert.Equal(t, []bool{true}, out)
}

func TestParseBenchRejectsRedefinition(t *testing.T) {
	src := `INPUT(a)
INPUT(a)
OUTPUT(a)
`
	_, err := ParseBenchString(src)
	assert.Error(t, err)
}

func TestParseBenchRejectsUndefinedOutput(t *testing.T) {
	src := `INPUT(a)
OUTPUT(missing)
`
	_, err := ParseBenchString(src)
	assert.Error(t, err)
}

func TestParseBenchRejectsCycle(t *testing.T) {
	src := `INPUT(a)
OUTPUT(x)
x = AND(y, a)
y = AND(x, a)
`
	_, err := ParseBenchString(src)
	assert.Error(t, err)
}
