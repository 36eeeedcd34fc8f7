// Package aig implements a canonical And-Inverter Graph: the
// structurally-hashed, constant-folded intermediate representation
// that sits between the circuit front-ends and the Tseitin encoder.
package aig

import "fmt"

// Lit is a literal over an AIG node: a node id paired with a polarity
// bit. ID 0 is the reserved constant: (0,false) is FALSE, (0,true) is
// TRUE. ID > 0 denotes a graph node (an input or an AND gate output).
type Lit struct {
	ID  uint32
	Neg bool
}

// FalseLit and TrueLit are the two constant literals.
var (
	FalseLit = Lit{ID: 0, Neg: false}
	TrueLit  = Lit{ID: 0, Neg: true}
)

// Not returns the complement of l.
func (l Lit) Not() Lit {
	return Lit{ID: l.ID, Neg: !l.Neg}
}

func (l Lit) isFalse() bool { return l.ID == 0 && !l.Neg }
func (l Lit) isTrue() bool  { return l.ID == 0 && l.Neg }

func (l Lit) String() string {
	if l.Neg {
		return fmt.Sprintf("-%d", l.ID)
	}
	return fmt.Sprintf("%d", l.ID)
}

// Gate is a 2-input AND gate. Invariant: ID > A.ID and ID > B.ID, so a
// Circuit's Gates slice in index order is already topologically
// sorted.
type Gate struct {
	ID   uint32
	A, B Lit
}

// Circuit is an immutable And-Inverter Graph. Values are produced by
// Builder.Finish, by the front-end parsers, or by
// Simplify/restrictToOutput, and are never mutated afterward.
type Circuit struct {
	MaxID   uint32
	Inputs  []uint32
	Outputs []Lit
	Gates   []Gate
}

// ShapeError reports a violated AIG invariant: an out-of-range id, a
// dangling fanin reference, or id-space overflow.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string { return e.Msg }

func shapeErrorf(format string, args ...any) error {
	return &ShapeError{Msg: fmt.Sprintf(format, args...)}
}

// NumInputs returns the number of primary inputs.
func (c *Circuit) NumInputs() int { return len(c.Inputs) }

// NumGates returns the number of AND gates.
func (c *Circuit) NumGates() int { return len(c.Gates) }

// Eval evaluates every output of c against the given input
// assignment. inputBits must have the same length as c.Inputs and is
// indexed in the same order.
func (c *Circuit) Eval(inputBits []bool) []bool {
	if len(inputBits) != len(c.Inputs) {
		panic("aig: input_bits length must match number of inputs")
	}

	values := make([]bool, c.MaxID+1)
	for idx, id := range c.Inputs {
		values[id] = inputBits[idx]
	}
	for _, g := range c.Gates {
		values[g.ID] = litValue(g.A, values) && litValue(g.B, values)
	}

	out := make([]bool, len(c.Outputs))
	for i, lit := range c.Outputs {
		out[i] = litValue(lit, values)
	}
	return out
}

func litValue(l Lit, values []bool) bool {
	base := false
	if l.ID != 0 {
		base = values[l.ID]
	}
	if l.Neg {
		return !base
	}
	return base
}

// Simplify returns a fresh, single-output Circuit equivalent to c on
// all inputs in the cone of influence of output i: unused nodes
// removed, inputs renumbered to a dense range starting at 1, gates
// rebuilt in topological order with structural hashing and constant
// folding, and Outputs = [rewritten lit for output i].
func (c *Circuit) Simplify(outputIdx int) (*Circuit, error) {
	reduced, err := c.restrictToOutput(outputIdx)
	if err != nil {
		return nil, err
	}
	rewritten, err := reduced.rewriteSingleOutput()
	if err != nil {
		return nil, err
	}
	return rewritten.restrictToOutput(0)
}
