package aig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishanrk/circuitcount/internal/frontend"
)

func TestDuplicateAndBecomesConstZero(t *testing.T) {
	src := `INPUT(a)
INPUT(b)
OUTPUT(out)
n1 = AND(a,b)
n2 = AND(a,b)
out = XOR(n1,n2)
`
	original, err := frontend.ParseBenchString(src)
	assert.NoError(t, err)
	simplified, err := original.Simplify(0)
	assert.NoError(t, err)

	assert.Equal(t, 0, simplified.NumGates())
	assert.Equal(t, 0, simplified.NumInputs())

	trueCount := 0
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			out := original.Eval([]bool{a, b})[0]
			if out {
				trueCount++
			}
			simp := simplified.Eval(nil)[0]
			assert.Equal(t, out, simp)
		}
	}
	assert.Equal(t, 0, trueCount)
}

func TestCommutativeHashingMergesAnds(t *testing.T) {
	src := `INPUT(a)
INPUT(b)
OUTPUT(out)
n1 = AND(a,b)
n2 = AND(b,a)
out = XOR(n1,n2)
`
	original, err := frontend.ParseBenchString(src)
	assert.NoError(t, err)
	simplified, err := original.Simplify(0)
	assert.NoError(t, err)

	assert.Equal(t, 0, simplified.NumGates())
	assert.Equal(t, 0, simplified.NumInputs())

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			out := original.Eval([]bool{a, b})[0]
			simp := simplified.Eval(nil)[0]
			assert.Equal(t, out, simp)
		}
	}
}

func TestConstantFoldingThroughOrLowering(t *testing.T) {
	src := `INPUT(a)
OUTPUT(out)
n1 = AND(a, 1)
n2 = AND(a, 0)
out = OR(n1, n2)
`
	original, err := frontend.ParseBenchString(src)
	assert.NoError(t, err)
	simplified, err := original.Simplify(0)
	assert.NoError(t, err)

	assert.LessOrEqual(t, simplified.NumGates(), 1)

	for _, a := range []bool{false, true} {
		out := original.Eval([]bool{a})[0]
		simp := simplified.Eval([]bool{a})[0]
		assert.Equal(t, a, out)
		assert.Equal(t, a, simp)
	}
}

func TestDropsUnusedInputAndLogic(t *testing.T) {
	src := `INPUT(a)
INPUT(b)
INPUT(c)
INPUT(d)
OUTPUT(out)
n1 = AND(a,b)
out = OR(n1,c)
junk1 = AND(d,a)
junk2 = XOR(junk1,d)
`
	original, err := frontend.ParseBenchString(src)
	assert.NoError(t, err)

	reducedAny, err := original.RestrictToOutput(0)
	assert.NoError(t, err)

	assert.Equal(t, 3, reducedAny.NumInputs())
	assert.Less(t, reducedAny.NumGates(), original.NumGates())

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			for _, c := range []bool{false, true} {
				for _, d := range []bool{false, true} {
					orig := original.Eval([]bool{a, b, c, d})[0]
					red := reducedAny.Eval([]bool{a, b, c})[0]
					assert.Equal(t, orig, red)
				}
			}
		}
	}
}

func TestCoiOnAagDemorganExample(t *testing.T) {
	src := `aag 5 3 0 1 2
2
4
6
11
8 2 4
10 9 7
`
	original, err := frontend.ParseAagString(src)
	assert.NoError(t, err)

	reduced, err := original.RestrictToOutput(0)
	assert.NoError(t, err)

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			for _, c := range []bool{false, true} {
				orig := original.Eval([]bool{a, b, c})[0]
				red := reduced.Eval([]bool{a, b, c})[0]
				assert.Equal(t, orig, red)
			}
		}
	}
}

func TestOutputSelectionMatters(t *testing.T) {
	src := `INPUT(a)
INPUT(b)
INPUT(c)
INPUT(d)
OUTPUT(out1)
OUTPUT(out2)
out1 = AND(a,b)
out2 = AND(c,d)
`
	original, err := frontend.ParseBenchString(src)
	assert.NoError(t, err)

	reduced1, err := original.RestrictToOutput(0)
	assert.NoError(t, err)
	reduced2, err := original.RestrictToOutput(1)
	assert.NoError(t, err)

	assert.Equal(t, 2, reduced1.NumInputs())
	assert.Equal(t, 2, reduced2.NumInputs())

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			for _, c := range []bool{false, true} {
				for _, d := range []bool{false, true} {
					o1 := original.Eval([]bool{a, b, c, d})[0]
					o2 := original.Eval([]bool{a, b, c, d})[1]
					r1 := reduced1.Eval([]bool{a, b})[0]
					r2 := reduced2.Eval([]bool{c, d})[0]
					assert.Equal(t, o1, r1)
					assert.Equal(t, o2, r2)
				}
			}
		}
	}
}
