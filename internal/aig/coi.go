package aig

// Cone is the Cone Of Influence of a single output: every node id
// reachable from that output through gate fanins, materialized as a
// boolean bitmap of length MaxID+1.
type Cone struct {
	inputIDs []uint32
	numGates int
	inCone   []bool
}

// InputIDs returns the ids of c's original inputs that are reachable
// from the output this cone was built for, in original input order.
func (c *Cone) InputIDs() []uint32 { return c.inputIDs }

// NumGates returns the number of AND gates reachable from the output.
func (c *Cone) NumGates() int { return c.numGates }

// Contains reports whether id lies in the cone.
func (c *Cone) Contains(id uint32) bool {
	return int(id) < len(c.inCone) && c.inCone[id]
}

// COI computes the Cone Of Influence of Outputs[outputIdx] via DFS
// from the output node through gate fanins, stopping at inputs or the
// constant 0. It fails if a referenced id is neither an input nor a
// gate output.
func (c *Circuit) COI(outputIdx int) (*Cone, error) {
	return c.coi(outputIdx)
}

func (c *Circuit) coi(outputIdx int) (*Cone, error) {
	if outputIdx < 0 || outputIdx >= len(c.Outputs) {
		return nil, shapeErrorf("output index %d out of range (outputs=%d)", outputIdx, len(c.Outputs))
	}

	inputMask := make([]bool, c.MaxID+1)
	for _, id := range c.Inputs {
		if id > c.MaxID {
			return nil, shapeErrorf("input id %d exceeds max_id %d", id, c.MaxID)
		}
		inputMask[id] = true
	}

	type fanin struct {
		a, b Lit
		set  bool
	}
	gateFanins := make([]fanin, c.MaxID+1)
	for _, g := range c.Gates {
		if g.ID == 0 || g.ID > c.MaxID {
			return nil, shapeErrorf("and gate id %d is invalid for max_id %d", g.ID, c.MaxID)
		}
		if g.A.ID > c.MaxID || g.B.ID > c.MaxID {
			return nil, shapeErrorf("and gate %d has fanin outside max_id %d", g.ID, c.MaxID)
		}
		gateFanins[g.ID] = fanin{a: g.A, b: g.B, set: true}
	}

	inCone := make([]bool, c.MaxID+1)
	stack := []uint32{c.Outputs[outputIdx].ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == 0 {
			continue
		}
		if id > c.MaxID {
			return nil, shapeErrorf("output references id %d beyond max_id %d", id, c.MaxID)
		}
		if inCone[id] {
			continue
		}
		inCone[id] = true

		if fi := gateFanins[id]; fi.set {
			if fi.a.ID > c.MaxID || fi.b.ID > c.MaxID {
				return nil, shapeErrorf("and gate %d has invalid fanin id", id)
			}
			stack = append(stack, fi.a.ID, fi.b.ID)
		} else if !inputMask[id] {
			return nil, shapeErrorf("node %d is referenced but not defined as input or and", id)
		}
	}

	var inputIDs []uint32
	for _, id := range c.Inputs {
		if id <= c.MaxID && inCone[id] {
			inputIDs = append(inputIDs, id)
		}
	}
	numGates := 0
	for _, g := range c.Gates {
		if g.ID <= c.MaxID && inCone[g.ID] {
			numGates++
		}
	}

	return &Cone{inputIDs: inputIDs, numGates: numGates, inCone: inCone}, nil
}

// RestrictToOutput returns a fresh Circuit containing only the nodes
// in the cone of influence of Outputs[outputIdx], with fresh
// contiguous ids: 0 stays 0, then inputs in original order, then AND
// gates in original topological order.
func (c *Circuit) RestrictToOutput(outputIdx int) (*Circuit, error) {
	return c.restrictToOutput(outputIdx)
}

func (c *Circuit) restrictToOutput(outputIdx int) (*Circuit, error) {
	cone, err := c.coi(outputIdx)
	if err != nil {
		return nil, err
	}

	remap := make(map[uint32]uint32, len(c.Inputs)+len(c.Gates)+1)
	remap[0] = 0

	nextID := uint32(1)
	var newInputs []uint32
	for _, oldID := range c.Inputs {
		if oldID <= c.MaxID && cone.Contains(oldID) {
			remap[oldID] = nextID
			newInputs = append(newInputs, nextID)
			nextID++
		}
	}

	var newGates []Gate
	for _, g := range c.Gates {
		if !cone.Contains(g.ID) {
			continue
		}
		if g.A.ID > c.MaxID || g.B.ID > c.MaxID {
			return nil, shapeErrorf("and gate %d has fanin outside max_id %d", g.ID, c.MaxID)
		}
		a, err := rewriteLit(g.A, remap)
		if err != nil {
			return nil, err
		}
		b, err := rewriteLit(g.B, remap)
		if err != nil {
			return nil, err
		}
		newID := nextID
		nextID++
		remap[g.ID] = newID
		newGates = append(newGates, Gate{ID: newID, A: a, B: b})
	}

	oldOut := c.Outputs[outputIdx]
	newOut, err := rewriteLit(oldOut, remap)
	if err != nil {
		return nil, err
	}
	newMax := uint32(0)
	if nextID > 0 {
		newMax = nextID - 1
	}

	return &Circuit{
		MaxID:   newMax,
		Inputs:  newInputs,
		Outputs: []Lit{newOut},
		Gates:   newGates,
	}, nil
}

func rewriteLit(l Lit, remap map[uint32]uint32) (Lit, error) {
	id, ok := remap[l.ID]
	if !ok {
		return Lit{}, shapeErrorf("missing remap for node %d", l.ID)
	}
	return Lit{ID: id, Neg: l.Neg}, nil
}
