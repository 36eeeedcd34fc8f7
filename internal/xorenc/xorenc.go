// Package xorenc encodes random parity (XOR) constraints into CNF,
// either appended directly to a cnf.Formula or taught incrementally
// to a solver.IncrementalSolver. These are the hash constraints the
// approximate counter uses to partition the solution space.
package xorenc

import (
	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/solver"
)

// Constraint is a single XOR (parity) constraint: the XOR of the
// listed variables must equal RHS.
type Constraint struct {
	Vars []uint32
	RHS  bool
}

// BlockMode selects whether AppendBlock gates the whole block of
// constraints behind a fresh activation variable.
type BlockMode struct {
	Gated    bool
	Activate bool
}

// Plain appends constraints unconditionally.
var Plain = BlockMode{}

// Gated returns a BlockMode that guards the block behind a fresh
// activation variable, optionally pinning it true immediately.
func Gated(activate bool) BlockMode {
	return BlockMode{Gated: true, Activate: activate}
}

// AppendBlock appends the Tseitin encoding of constraints to f. When
// mode.Gated, it allocates and returns a fresh activation variable
// that every clause in the block is conditioned on; otherwise it
// returns (0, false).
func AppendBlock(f *cnf.Formula, constraints []Constraint, mode BlockMode) (uint32, bool) {
	var actVar uint32
	hasAct := mode.Gated
	if hasAct {
		actVar = f.FreshVar()
	}
	if mode.Gated && mode.Activate {
		f.AddClause([]cnf.Lit{cnf.NewLit(actVar, true)})
	}

	for _, c := range constraints {
		appendOne(f, c, actVar, hasAct)
	}
	return actVar, hasAct
}

func appendOne(f *cnf.Formula, c Constraint, actVar uint32, hasAct bool) {
	if len(c.Vars) == 0 {
		if c.RHS {
			pushClause(f, nil, actVar, hasAct)
		}
		return
	}

	if len(c.Vars) == 1 {
		pushClause(f, []cnf.Lit{cnf.NewLit(c.Vars[0], c.RHS)}, actVar, hasAct)
		return
	}

	acc := c.Vars[0]
	for _, next := range c.Vars[1:] {
		out := f.FreshVar()
		appendXor3(f, acc, next, out, actVar, hasAct)
		acc = out
	}
	pushClause(f, []cnf.Lit{cnf.NewLit(acc, c.RHS)}, actVar, hasAct)
}

func appendXor3(f *cnf.Formula, x, y, z uint32, actVar uint32, hasAct bool) {
	pushClause(f, []cnf.Lit{cnf.NewLit(x, true), cnf.NewLit(y, true), cnf.NewLit(z, false)}, actVar, hasAct)
	pushClause(f, []cnf.Lit{cnf.NewLit(x, false), cnf.NewLit(y, false), cnf.NewLit(z, false)}, actVar, hasAct)
	pushClause(f, []cnf.Lit{cnf.NewLit(x, true), cnf.NewLit(y, false), cnf.NewLit(z, true)}, actVar, hasAct)
	pushClause(f, []cnf.Lit{cnf.NewLit(x, false), cnf.NewLit(y, true), cnf.NewLit(z, true)}, actVar, hasAct)
}

func pushClause(f *cnf.Formula, clause []cnf.Lit, actVar uint32, hasAct bool) {
	if hasAct {
		gated := make([]cnf.Lit, 0, len(clause)+1)
		gated = append(gated, cnf.NewLit(actVar, false))
		gated = append(gated, clause...)
		f.AddClause(gated)
		return
	}
	f.AddClause(clause)
}

// AppendToSolver teaches the Tseitin encoding of constraint directly
// to s, gated behind activation if non-nil.
func AppendToSolver(s solver.IncrementalSolver, constraint Constraint, activation *cnf.Lit) {
	if len(constraint.Vars) == 0 {
		if constraint.RHS {
			pushSolverClause(s, nil, activation)
		}
		return
	}

	if len(constraint.Vars) == 1 {
		pushSolverClause(s, []cnf.Lit{cnf.NewLit(constraint.Vars[0], constraint.RHS)}, activation)
		return
	}

	acc := constraint.Vars[0]
	for _, next := range constraint.Vars[1:] {
		out := s.NewVar()
		appendXor3Solver(s, acc, next, out, activation)
		acc = out
	}
	pushSolverClause(s, []cnf.Lit{cnf.NewLit(acc, constraint.RHS)}, activation)
}

func appendXor3Solver(s solver.IncrementalSolver, x, y, z uint32, activation *cnf.Lit) {
	pushSolverClause(s, []cnf.Lit{cnf.NewLit(x, true), cnf.NewLit(y, true), cnf.NewLit(z, false)}, activation)
	pushSolverClause(s, []cnf.Lit{cnf.NewLit(x, false), cnf.NewLit(y, false), cnf.NewLit(z, false)}, activation)
	pushSolverClause(s, []cnf.Lit{cnf.NewLit(x, true), cnf.NewLit(y, false), cnf.NewLit(z, true)}, activation)
	pushSolverClause(s, []cnf.Lit{cnf.NewLit(x, false), cnf.NewLit(y, true), cnf.NewLit(z, true)}, activation)
}

func pushSolverClause(s solver.IncrementalSolver, clause []cnf.Lit, activation *cnf.Lit) {
	if activation != nil {
		scoped := make([]cnf.Lit, 0, len(clause)+1)
		scoped = append(scoped, activation.Neg())
		scoped = append(scoped, clause...)
		s.AddClause(scoped)
		return
	}
	s.AddClause(clause)
}
