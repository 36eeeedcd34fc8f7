// Package frontend parses textual netlist surface syntax (BENCH and
// AIGER-ASCII) into internal/aig circuits. Neither format is part of
// the counting core's invariant set; this package is the core's only
// supplied front door in this module.
package frontend

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ishanrk/circuitcount/internal/aig"
)

// ParseError reports a malformed BENCH or AIGER-ASCII input. It is
// never retried by a caller.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

type benchOp int

const (
	opAnd benchOp = iota
	opOr
	opNot
	opXor
	opXnor
	opBuf
)

type benchAssign struct {
	lhs  string
	op   benchOp
	args []string
}

type benchNetlist struct {
	inputs  []string
	outputs []string
	assigns []benchAssign
}

// ParseBenchString parses a BENCH netlist given as a string.
func ParseBenchString(s string) (*aig.Circuit, error) {
	return ParseBench(strings.NewReader(s))
}

// ParseBench parses a BENCH netlist: INPUT(name)/OUTPUT(name)
// declarations and name = OP(args) assignments, with OP in
// {AND,OR,NOT,XOR,XNOR,BUF}. Comments start with '#'. LATCH/DFF/REG
// keywords (sequential constructs) are rejected. Forward references
// are permitted and resolved by topological sort.
func ParseBench(r io.Reader) (*aig.Circuit, error) {
	netlist, err := parseNetlist(r)
	if err != nil {
		return nil, err
	}
	return lowerNetlist(netlist)
}

func parseNetlist(r io.Reader) (*benchNetlist, error) {
	var (
		inputs        []string
		outputs       []string
		assigns       []benchAssign
		definedInputs = make(map[string]bool)
		definedAssign = make(map[string]bool)
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		clean := strings.TrimSpace(stripComment(scanner.Text()))
		if clean == "" {
			continue
		}

		switch {
		case strings.HasPrefix(clean, "INPUT("):
			name, err := parseDeclName(clean, "INPUT")
			if err != nil {
				return nil, parseErrorf("line %d: invalid INPUT: %v", lineNo, err)
			}
			if !isValidName(name) {
				return nil, parseErrorf("line %d: invalid name '%s'", lineNo, name)
			}
			if definedInputs[name] || definedAssign[name] {
				return nil, parseErrorf("line %d: redefinition of '%s'", lineNo, name)
			}
			definedInputs[name] = true
			inputs = append(inputs, name)
			continue

		case strings.HasPrefix(clean, "OUTPUT("):
			name, err := parseDeclName(clean, "OUTPUT")
			if err != nil {
				return nil, parseErrorf("line %d: invalid OUTPUT: %v", lineNo, err)
			}
			if !isValidName(name) {
				return nil, parseErrorf("line %d: invalid output name '%s'", lineNo, name)
			}
			outputs = append(outputs, name)
			continue
		}

		if hasSeqKeyword(clean) {
			return nil, parseErrorf("line %d: sequential constructs are not supported", lineNo)
		}

		assign, err := parseAssign(clean)
		if err != nil {
			return nil, parseErrorf("line %d: invalid assign: %v", lineNo, err)
		}
		if !isValidName(assign.lhs) {
			return nil, parseErrorf("line %d: invalid lhs '%s'", lineNo, assign.lhs)
		}
		if definedInputs[assign.lhs] || definedAssign[assign.lhs] {
			return nil, parseErrorf("line %d: redefinition of '%s'", lineNo, assign.lhs)
		}
		for _, arg := range assign.args {
			if arg != "0" && arg != "1" && !isValidName(arg) {
				return nil, parseErrorf("line %d: invalid arg '%s'", lineNo, arg)
			}
		}
		definedAssign[assign.lhs] = true
		assigns = append(assigns, assign)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("frontend: failed to read bench line: %w", err)
	}

	return &benchNetlist{inputs: inputs, outputs: outputs, assigns: assigns}, nil
}

func lowerNetlist(netlist *benchNetlist) (*aig.Circuit, error) {
	builder := aig.NewBuilder()
	for _, name := range netlist.inputs {
		if _, err := builder.Input(name); err != nil {
			return nil, err
		}
	}

	order, err := topoOrder(netlist)
	if err != nil {
		return nil, err
	}
	for _, idx := range order {
		asn := netlist.assigns[idx]
		rhs, err := evalAssignRHS(builder, asn)
		if err != nil {
			return nil, err
		}
		if err := builder.Set(asn.lhs, rhs); err != nil {
			return nil, err
		}
	}

	outLits := make([]aig.Lit, 0, len(netlist.outputs))
	for _, name := range netlist.outputs {
		lit, err := builder.Get(name)
		if err != nil {
			return nil, parseErrorf("output references undefined signal '%s'", name)
		}
		outLits = append(outLits, lit)
	}

	return builder.Finish(outLits), nil
}

func topoOrder(netlist *benchNetlist) ([]int, error) {
	lhsToIdx := make(map[string]int, len(netlist.assigns))
	for idx, asn := range netlist.assigns {
		lhsToIdx[asn.lhs] = idx
	}

	inputSet := make(map[string]bool, len(netlist.inputs))
	for _, name := range netlist.inputs {
		inputSet[name] = true
	}

	indeg := make([]int, len(netlist.assigns))
	uses := make([][]int, len(netlist.assigns))

	for idx, asn := range netlist.assigns {
		for _, arg := range asn.args {
			if arg == "0" || arg == "1" || inputSet[arg] {
				continue
			}
			depIdx, ok := lhsToIdx[arg]
			if !ok {
				return nil, parseErrorf("undefined signal '%s' used in assignment '%s'", arg, asn.lhs)
			}
			indeg[idx]++
			uses[depIdx] = append(uses[depIdx], idx)
		}
	}

	for _, out := range netlist.outputs {
		if !inputSet[out] {
			if _, ok := lhsToIdx[out]; !ok {
				return nil, parseErrorf("output references undefined signal '%s'", out)
			}
		}
	}

	var queue []int
	for idx, d := range indeg {
		if d == 0 {
			queue = append(queue, idx)
		}
	}

	order := make([]int, 0, len(netlist.assigns))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)
		for _, next := range uses[idx] {
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(netlist.assigns) {
		return nil, parseErrorf("cycle detected in assignments")
	}
	return order, nil
}

func evalAssignRHS(builder *aig.Builder, asn benchAssign) (aig.Lit, error) {
	args := make([]aig.Lit, len(asn.args))
	for i, a := range asn.args {
		lit, err := resolveArg(builder, a)
		if err != nil {
			return aig.Lit{}, err
		}
		args[i] = lit
	}

	switch asn.op {
	case opAnd:
		return builder.And(args[0], args[1]), nil
	case opOr:
		return builder.Or(args[0], args[1]), nil
	case opNot:
		return builder.Not(args[0]), nil
	case opXor:
		return builder.Xor(args[0], args[1]), nil
	case opXnor:
		return builder.Xnor(args[0], args[1]), nil
	case opBuf:
		return args[0], nil
	default:
		return aig.Lit{}, parseErrorf("unreachable op")
	}
}

func resolveArg(builder *aig.Builder, arg string) (aig.Lit, error) {
	switch arg {
	case "0":
		return aig.FalseLit, nil
	case "1":
		return aig.TrueLit, nil
	default:
		return builder.Get(arg)
	}
}

func parseAssign(s string) (benchAssign, error) {
	lhsRaw, rhsRaw, ok := strings.Cut(s, "=")
	if !ok {
		return benchAssign{}, fmt.Errorf("expected '=' in assignment")
	}
	lhs := strings.TrimSpace(lhsRaw)
	op, args, err := parseCall(strings.TrimSpace(rhsRaw))
	if err != nil {
		return benchAssign{}, err
	}

	expected := 2
	if op == opNot || op == opBuf {
		expected = 1
	}
	if len(args) != expected {
		return benchAssign{}, fmt.Errorf("wrong arity for op, expected %d args but got %d", expected, len(args))
	}

	return benchAssign{lhs: lhs, op: op, args: args}, nil
}

func parseCall(s string) (benchOp, []string, error) {
	open := strings.Index(s, "(")
	if open < 0 {
		return 0, nil, fmt.Errorf("missing '(' in expression")
	}
	close := strings.LastIndex(s, ")")
	if close < 0 {
		return 0, nil, fmt.Errorf("missing ')' in expression")
	}
	if close < open {
		return 0, nil, fmt.Errorf("malformed expression")
	}
	name := strings.TrimSpace(s[:open])
	inside := strings.TrimSpace(s[open+1 : close])
	if strings.TrimSpace(s[close+1:]) != "" {
		return 0, nil, fmt.Errorf("trailing tokens after ')'")
	}

	var op benchOp
	switch name {
	case "AND":
		op = opAnd
	case "OR":
		op = opOr
	case "NOT":
		op = opNot
	case "XOR":
		op = opXor
	case "XNOR":
		op = opXnor
	case "BUF":
		op = opBuf
	default:
		return 0, nil, fmt.Errorf("unsupported op '%s'", name)
	}

	var args []string
	if inside != "" {
		for _, p := range strings.Split(inside, ",") {
			args = append(args, strings.TrimSpace(p))
		}
	}
	for _, a := range args {
		if a == "" {
			return 0, nil, fmt.Errorf("empty argument in op call")
		}
	}
	return op, args, nil
}

func parseDeclName(s, kind string) (string, error) {
	open := strings.Index(s, "(")
	if open < 0 {
		return "", fmt.Errorf("missing '(' in %s", kind)
	}
	close := strings.LastIndex(s, ")")
	if close < 0 {
		return "", fmt.Errorf("missing ')' in %s", kind)
	}
	if strings.TrimSpace(s[:open]) != kind {
		return "", fmt.Errorf("invalid %s syntax", kind)
	}
	if strings.TrimSpace(s[close+1:]) != "" {
		return "", fmt.Errorf("trailing text after %s", kind)
	}
	return strings.TrimSpace(s[open+1 : close]), nil
}

func stripComment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func hasSeqKeyword(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "LATCH") || strings.Contains(upper, "DFF") || strings.Contains(upper, "REG")
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	first := rune(name[0])
	if !(isAsciiAlpha(first) || first == '_') {
		return false
	}
	for _, c := range name[1:] {
		if !isAsciiAlnum(c) && c != '_' {
			return false
		}
	}
	return true
}

func isAsciiAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAsciiAlnum(c rune) bool {
	return isAsciiAlpha(c) || (c >= '0' && c <= '9')
}
