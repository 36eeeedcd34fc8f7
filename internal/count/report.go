package count

import "math/big"

// Mode names the path that produced a Report's Result.
type Mode string

const (
	Exact Mode = "exact"
	Hash  Mode = "hash"
)

// Report is the outcome of counting one circuit output.
type Report struct {
	InputsCOI  int
	Ands       int
	Vars       uint32
	Clauses    int
	Pivot      int
	Trials     int
	Result     *big.Int
	Mode       Mode
	MUsed      int
	Backend    string
	SolveCalls int
}

// OverflowError reports that 2^m could not be represented while
// scaling a trial's cell count, which the 128-bit result field makes
// possible only for implausibly large m.
type OverflowError struct {
	Msg string
}

func (e *OverflowError) Error() string { return e.Msg }
