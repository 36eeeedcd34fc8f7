// Package tseitin encodes an And-Inverter Graph into an equisatisfiable
// CNF formula: one CNF variable per AIG node id, plus a dedicated
// variable pinned to false standing in for AIG node 0.
package tseitin

import (
	"fmt"

	"github.com/ishanrk/circuitcount/internal/aig"
	"github.com/ishanrk/circuitcount/internal/cnf"
)

// Encoding is the result of Tseitin-encoding a Circuit: the CNF
// formula, the input variables in circuit order, the output literals
// in circuit order, and the dedicated false variable.
type Encoding struct {
	Formula    *cnf.Formula
	InputVars  []uint32
	OutputLits []cnf.Lit
	FalseVar   uint32
}

// EncodeAIG encodes c into an Encoding. Each AND gate g = a & b
// contributes the three standard Tseitin clauses: (!g | a), (!g | b),
// (g | !a | !b).
func EncodeAIG(c *aig.Circuit) (*Encoding, error) {
	falseVar := c.MaxID + 1
	if falseVar < c.MaxID {
		return nil, fmt.Errorf("tseitin: max_id is too large for false var allocation")
	}

	formula := cnf.New(falseVar)
	formula.AddClause([]cnf.Lit{cnf.NewLit(falseVar, false)})

	for _, id := range c.Inputs {
		if id == 0 || id > c.MaxID {
			return nil, fmt.Errorf("tseitin: input id %d is invalid for max_id %d", id, c.MaxID)
		}
	}

	for _, gate := range c.Gates {
		if gate.ID == 0 || gate.ID > c.MaxID {
			return nil, fmt.Errorf("tseitin: and gate id %d is invalid for max_id %d", gate.ID, c.MaxID)
		}
		if gate.A.ID > c.MaxID || gate.B.ID > c.MaxID {
			return nil, fmt.Errorf("tseitin: and gate %d has fanin outside max_id %d", gate.ID, c.MaxID)
		}

		g := cnf.NewLit(gate.ID, true)
		a := litFromAIG(gate.A, falseVar)
		b := litFromAIG(gate.B, falseVar)

		formula.AddClause([]cnf.Lit{g.Neg(), a})
		formula.AddClause([]cnf.Lit{g.Neg(), b})
		formula.AddClause([]cnf.Lit{g, a.Neg(), b.Neg()})
	}

	outLits := make([]cnf.Lit, 0, len(c.Outputs))
	for _, out := range c.Outputs {
		if out.ID > c.MaxID {
			return nil, fmt.Errorf("tseitin: output id %d is invalid for max_id %d", out.ID, c.MaxID)
		}
		outLits = append(outLits, litFromAIG(out, falseVar))
	}

	return &Encoding{
		Formula:    formula,
		InputVars:  append([]uint32(nil), c.Inputs...),
		OutputLits: outLits,
		FalseVar:   falseVar,
	}, nil
}

func litFromAIG(l aig.Lit, falseVar uint32) cnf.Lit {
	v := l.ID
	if v == 0 {
		v = falseVar
	}
	return cnf.NewLit(v, !l.Neg)
}
