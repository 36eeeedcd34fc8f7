package aig

import "fmt"

// Builder incrementally constructs a Circuit from named signals. It
// is the construction-time counterpart of Circuit: front-ends use it
// to lower surface syntax (BENCH assignments, AIGER records) into AIG
// nodes before calling Finish.
type Builder struct {
	nextID uint32
	names  map[string]Lit
	order  []string
	inputs []uint32
	gates  []Gate
}

// NewBuilder returns an empty Builder ready to allocate inputs
// starting at id 1.
func NewBuilder() *Builder {
	return &Builder{nextID: 1, names: make(map[string]Lit)}
}

// Input allocates a fresh primary input named name and returns its
// positive literal. It is an error to reuse a name already bound by
// Input or Set.
func (b *Builder) Input(name string) (Lit, error) {
	if _, ok := b.names[name]; ok {
		return Lit{}, fmt.Errorf("aig: name already defined: %s", name)
	}
	id := b.allocID()
	lit := Lit{ID: id, Neg: false}
	b.names[name] = lit
	b.order = append(b.order, name)
	b.inputs = append(b.inputs, id)
	return lit, nil
}

// Get returns the literal bound to name, or an error if name is
// unknown.
func (b *Builder) Get(name string) (Lit, error) {
	lit, ok := b.names[name]
	if !ok {
		return Lit{}, fmt.Errorf("aig: unknown signal: %s", name)
	}
	return lit, nil
}

// Set binds name to lit. It is an error to reuse a name already
// bound.
func (b *Builder) Set(name string, lit Lit) error {
	if _, ok := b.names[name]; ok {
		return fmt.Errorf("aig: name already defined: %s", name)
	}
	b.names[name] = lit
	return nil
}

// Not returns the complement of x.
func (b *Builder) Not(x Lit) Lit {
	return Lit{ID: x.ID, Neg: !x.Neg}
}

// And allocates a new AND gate computing a && b and returns its
// positive literal.
func (b *Builder) And(a, other Lit) Lit {
	id := b.allocID()
	b.gates = append(b.gates, Gate{ID: id, A: a, B: other})
	return Lit{ID: id, Neg: false}
}

// Or lowers a || b into AND-with-inverters: !( !a && !b ).
func (b *Builder) Or(a, other Lit) Lit {
	t := b.And(b.Not(a), b.Not(other))
	return b.Not(t)
}

// Xor lowers a ^ b into AND/OR-with-inverters.
func (b *Builder) Xor(a, other Lit) Lit {
	l := b.And(a, b.Not(other))
	r := b.And(b.Not(a), other)
	return b.Or(l, r)
}

// Xnor lowers !(a ^ b).
func (b *Builder) Xnor(a, other Lit) Lit {
	return b.Not(b.Xor(a, other))
}

// Finish consumes the Builder and returns the finished Circuit with
// the given ordered output literals.
func (b *Builder) Finish(outputs []Lit) *Circuit {
	maxID := uint32(0)
	if b.nextID > 0 {
		maxID = b.nextID - 1
	}
	return &Circuit{
		MaxID:   maxID,
		Inputs:  b.inputs,
		Outputs: append([]Lit(nil), outputs...),
		Gates:   b.gates,
	}
}

func (b *Builder) allocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}
