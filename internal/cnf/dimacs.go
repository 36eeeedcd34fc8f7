package cnf

import (
	"fmt"
	"strings"
)

// ToDimacs renders f in DIMACS CNF text format: a "p cnf vars clauses"
// header followed by one 0-terminated line per clause.
func ToDimacs(f *Formula) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", f.NumVars, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(&b, "%d ", litToDimacsInt(lit))
		}
		b.WriteString("0\n")
	}
	return b.String()
}

func litToDimacsInt(lit Lit) int64 {
	v := int64(lit.Var)
	if lit.Sign {
		return v
	}
	return -v
}
