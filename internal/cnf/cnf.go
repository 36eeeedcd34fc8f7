// Package cnf is the propositional CNF formula representation that
// the Tseitin encoder targets and the SAT backends consume.
package cnf

// Lit is a CNF literal: a 1-indexed variable paired with a polarity.
// sign=true is the positive literal, sign=false is its negation.
type Lit struct {
	Var  uint32
	Sign bool
}

// NewLit returns the literal over var with the given sign.
func NewLit(v uint32, sign bool) Lit {
	return Lit{Var: v, Sign: sign}
}

// Neg returns the complement of l.
func (l Lit) Neg() Lit {
	return Lit{Var: l.Var, Sign: !l.Sign}
}

// Formula is a conjunction of clauses over variables 1..NumVars.
type Formula struct {
	NumVars uint32
	Clauses [][]Lit
}

// New returns an empty Formula over numVars variables.
func New(numVars uint32) *Formula {
	return &Formula{NumVars: numVars}
}

// AddClause appends clause (a disjunction of literals) to f.
func (f *Formula) AddClause(clause []Lit) {
	f.Clauses = append(f.Clauses, clause)
}

// FreshVar allocates and returns a new variable, growing NumVars.
func (f *Formula) FreshVar() uint32 {
	f.NumVars++
	return f.NumVars
}

// EvalLitPartial evaluates lit under a partial assignment indexed by
// variable. It returns (value, true) when assignment[lit.Var] is set,
// or (false, false) when the variable is unassigned or out of range.
func EvalLitPartial(lit Lit, assignment []*bool) (bool, bool) {
	if int(lit.Var) >= len(assignment) || assignment[lit.Var] == nil {
		return false, false
	}
	v := *assignment[lit.Var]
	if !lit.Sign {
		v = !v
	}
	return v, true
}

// EvalClausePartial evaluates clause under a partial assignment. It
// returns (true, true) as soon as any literal is satisfied, (false,
// true) when every literal is known false, and (_, false) when the
// clause's value is still undetermined.
func EvalClausePartial(clause []Lit, assignment []*bool) (bool, bool) {
	anyUnknown := false
	for _, lit := range clause {
		v, known := EvalLitPartial(lit, assignment)
		if known && v {
			return true, true
		}
		if !known {
			anyUnknown = true
		}
	}
	if anyUnknown {
		return false, false
	}
	return false, true
}

// EvalFormulaPartial evaluates f under a partial assignment: (true,
// true) if every clause is satisfied, (false, true) if any clause is
// known falsified, and (_, false) if satisfaction is still
// undetermined.
func (f *Formula) EvalFormulaPartial(assignment []*bool) (bool, bool) {
	allTrue := true
	for _, clause := range f.Clauses {
		v, known := EvalClausePartial(clause, assignment)
		if known && !v {
			return false, true
		}
		if !known {
			allTrue = false
		}
	}
	if allTrue {
		return true, true
	}
	return false, false
}
