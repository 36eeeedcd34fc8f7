package count

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"

	"github.com/ishanrk/circuitcount/internal/aig"
	"github.com/ishanrk/circuitcount/internal/cnf"
	"github.com/ishanrk/circuitcount/internal/solver"
	"github.com/ishanrk/circuitcount/internal/tseitin"
	"github.com/ishanrk/circuitcount/internal/xorenc"
)

// Run counts the models of circuit's outputIdx-th output: an exact
// bounded enumeration first, falling back to hash-based estimation
// when the exact attempt hits cfg.Pivot.
func Run(circuit *aig.Circuit, outputIdx int, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := Tracer(NoopTracer{})
	if cfg.Progress {
		tracer = LoggingTracer{Log: defaultLogger}
	}

	simple, err := circuit.Simplify(outputIdx)
	if err != nil {
		return nil, err
	}
	enc, err := tseitin.EncodeAIG(simple)
	if err != nil {
		return nil, err
	}
	if len(enc.OutputLits) != 1 {
		return nil, fmt.Errorf("count: expected exactly one output after simplification")
	}
	enc.Formula.AddClause([]cnf.Lit{enc.OutputLits[0]})

	s := newBackend(cfg.Backend)
	solver.LoadFormula(s, enc.Formula)

	projection := enc.InputVars
	n := len(projection)

	report := &Report{
		InputsCOI: n,
		Ands:      simple.NumGates(),
		Vars:      enc.Formula.NumVars,
		Clauses:   len(enc.Formula.Clauses),
		Pivot:     cfg.Pivot,
		Trials:    cfg.Trials,
		Backend:   s.BackendName(),
	}

	exact, err := ProjectedCountBoundedSession(s, projection, cfg.Pivot, nil)
	if err != nil {
		return nil, err
	}
	if !exact.HitCap {
		report.Mode = Exact
		report.Result = big.NewInt(int64(exact.Count))
		report.SolveCalls = s.Stats().SolveCalls
		return report, nil
	}

	type trialOutcome struct {
		estimate *big.Int
		mUsed    int
	}
	outcomes := make([]trialOutcome, 0, cfg.Trials)

	for t := 0; t < cfg.Trials; t++ {
		tracer.Trace(t, "Sampling", "seeding trial rng and row deck")
		rng := rand.New(rand.NewSource(int64(cfg.Seed ^ uint64(t))))

		rows, err := xorenc.SampleConstraints(projection, n, cfg.Sparsity, rng)
		if err != nil {
			return nil, err
		}
		deckActs := make([]cnf.Lit, len(rows))
		for i, row := range rows {
			v := s.NewVar()
			deckActs[i] = cnf.NewLit(v, true)
			xorenc.AppendToSolver(s, row, &deckActs[i])
		}

		low, high, found := 0, 0, false
		tracer.Trace(t, "Ramping", "searching for an m below the pivot cap")
		if n > 0 {
			for m := 1; ; {
				b, err := ProjectedCountBoundedSession(s, projection, cfg.Pivot, deckActs[:m])
				if err != nil {
					return nil, err
				}
				if b.HitCap {
					low = m
					if m >= n {
						break
					}
					next := m * 2
					if next > n {
						next = n
					}
					m = next
					continue
				}
				high = m
				found = true
				break
			}
		}

		if !found {
			tracer.Trace(t, "Aborted", "ramp never escaped the pivot cap")
			outcomes = append(outcomes, trialOutcome{estimate: big.NewInt(0), mUsed: 0})
			continue
		}

		tracer.Trace(t, "BinarySearching", fmt.Sprintf("narrowing m in (%d,%d]", low, high))
		mStar, cellCount, err := binarySearchM(s, projection, cfg.Pivot, deckActs, low, high)
		if err != nil {
			return nil, err
		}

		tracer.Trace(t, "Repeating", fmt.Sprintf("resampling %d additional cells at m=%d", cfg.Repeats-1, mStar))
		cellCounts := []int{cellCount}
		for r := 1; r < cfg.Repeats; r++ {
			rows, err := xorenc.SampleConstraints(projection, mStar, cfg.Sparsity, rng)
			if err != nil {
				return nil, err
			}
			acts := make([]cnf.Lit, mStar)
			for i, row := range rows {
				v := s.NewVar()
				acts[i] = cnf.NewLit(v, true)
				xorenc.AppendToSolver(s, row, &acts[i])
			}
			b, err := ProjectedCountBoundedSession(s, projection, cfg.Pivot, acts)
			if err != nil {
				return nil, err
			}
			cellCounts = append(cellCounts, b.Count)
		}

		medianCell := medianInt(cellCounts)
		estimate, err := scaleByPow2(medianCell, mStar)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, trialOutcome{estimate: estimate, mUsed: mStar})
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].estimate.Cmp(outcomes[j].estimate) < 0
	})
	chosen := outcomes[len(outcomes)/2]

	report.Mode = Hash
	report.Result = chosen.estimate
	report.MUsed = chosen.mUsed
	report.SolveCalls = s.Stats().SolveCalls
	return report, nil
}

// binarySearchM finds the smallest m in (low, high] for which a
// bounded count under the first m row-deck activation literals
// neither hits cap nor returns zero, returning that m and its count.
func binarySearchM(s solver.IncrementalSolver, projection []uint32, cap int, deckActs []cnf.Lit, low, high int) (int, int, error) {
	b, err := ProjectedCountBoundedSession(s, projection, cap, deckActs[:high])
	if err != nil {
		return 0, 0, err
	}
	bestM, bestCount := high, b.Count
	bestValid := !b.HitCap && b.Count > 0

	lo, hi := low, high
	for lo+1 < hi {
		mid := (lo + hi) / 2
		b, err := ProjectedCountBoundedSession(s, projection, cap, deckActs[:mid])
		if err != nil {
			return 0, 0, err
		}
		switch {
		case b.HitCap:
			lo = mid
		case b.Count == 0:
			hi = mid
		default:
			bestM, bestCount, bestValid = mid, b.Count, true
			hi = mid
		}
	}

	if !bestValid {
		return 0, 0, fmt.Errorf("count: binary search found no valid cell in (%d,%d]", low, high)
	}
	return bestM, bestCount, nil
}

func newBackend(name string) solver.IncrementalSolver {
	switch name {
	case "gini":
		return solver.NewGiniBackend()
	default:
		return solver.NewDpllBackend()
	}
}

func medianInt(values []int) int {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

// scaleByPow2 computes cellCount * 2^m as a big.Int, erroring if the
// result would not fit in 128 bits.
func scaleByPow2(cellCount, m int) (*big.Int, error) {
	result := new(big.Int).Lsh(big.NewInt(int64(cellCount)), uint(m))
	if result.BitLen() > 128 {
		return nil, &OverflowError{Msg: fmt.Sprintf("2^%d scaling overflows 128 bits", m)}
	}
	return result, nil
}
