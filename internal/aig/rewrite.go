package aig

// andKey is the commutative lookup key for an AND gate: operands
// ordered (ID asc, then Neg asc) so that AND(a,b) and AND(b,a) hash to
// the same entry.
type andKey struct {
	a, b Lit
}

func newAndKey(a, b Lit) andKey {
	if litOrder(a, b) {
		return andKey{a: a, b: b}
	}
	return andKey{a: b, b: a}
}

func litOrder(a, b Lit) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return boolRank(a.Neg) <= boolRank(b.Neg)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// foldAnd applies the constant/identity simplifications for an AND of
// two already-rewritten literals. It returns the folded literal and ok
// if no further hashing is needed.
func foldAnd(a, b Lit) (Lit, bool) {
	switch {
	case a.isFalse() || b.isFalse():
		return FalseLit, true
	case a.isTrue():
		return b, true
	case b.isTrue():
		return a, true
	case a == b:
		return a, true
	case a.ID == b.ID && a.Neg != b.Neg:
		return FalseLit, true
	default:
		return Lit{}, false
	}
}

func applyNeg(l Lit, flip bool) Lit {
	if flip {
		return Lit{ID: l.ID, Neg: !l.Neg}
	}
	return l
}

// rewriteSingleOutput walks a single-output Circuit's gates in
// topological order and rebuilds them with structural hashing and
// constant folding, producing a fresh Circuit with dense ids.
func (c *Circuit) rewriteSingleOutput() (*Circuit, error) {
	if len(c.Outputs) != 1 {
		return nil, shapeErrorf("rewrite_single_output expects one output, got %d", len(c.Outputs))
	}

	mapped := make([]*Lit, c.MaxID+1)
	zero := FalseLit
	mapped[0] = &zero

	nextID := uint32(1)
	var newInputs []uint32
	var newGates []Gate
	hash := make(map[andKey]Lit)

	for _, id := range c.Inputs {
		if id == 0 || id > c.MaxID {
			return nil, shapeErrorf("input id %d is invalid for max_id %d", id, c.MaxID)
		}
		lit := Lit{ID: nextID, Neg: false}
		nextID++
		mapped[id] = &lit
		newInputs = append(newInputs, lit.ID)
	}

	for _, g := range c.Gates {
		if g.ID == 0 || g.ID > c.MaxID {
			return nil, shapeErrorf("and gate id %d is invalid for max_id %d", g.ID, c.MaxID)
		}
		if g.A.ID > c.MaxID || g.B.ID > c.MaxID {
			return nil, shapeErrorf("and gate %d has fanin outside max_id %d", g.ID, c.MaxID)
		}

		aBase := mapped[g.A.ID]
		if aBase == nil {
			return nil, shapeErrorf("fanin %d not mapped yet", g.A.ID)
		}
		bBase := mapped[g.B.ID]
		if bBase == nil {
			return nil, shapeErrorf("fanin %d not mapped yet", g.B.ID)
		}
		a := applyNeg(*aBase, g.A.Neg)
		b := applyNeg(*bBase, g.B.Neg)

		var out Lit
		if folded, ok := foldAnd(a, b); ok {
			out = folded
		} else {
			key := newAndKey(a, b)
			if lit, ok := hash[key]; ok {
				out = lit
			} else {
				lit := Lit{ID: nextID, Neg: false}
				nextID++
				newGates = append(newGates, Gate{ID: lit.ID, A: key.a, B: key.b})
				hash[key] = lit
				out = lit
			}
		}
		mapped[g.ID] = &out
	}

	outOld := c.Outputs[0]
	if outOld.ID > c.MaxID {
		return nil, shapeErrorf("output id %d is invalid for max_id %d", outOld.ID, c.MaxID)
	}
	outBase := mapped[outOld.ID]
	if outBase == nil {
		return nil, shapeErrorf("output id %d not mapped", outOld.ID)
	}
	outLit := applyNeg(*outBase, outOld.Neg)

	maxID := uint32(0)
	if nextID > 0 {
		maxID = nextID - 1
	}

	return &Circuit{
		MaxID:   maxID,
		Inputs:  newInputs,
		Outputs: []Lit{outLit},
		Gates:   newGates,
	}, nil
}
