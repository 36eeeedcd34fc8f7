package frontend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ishanrk/circuitcount/internal/aig"
)

// ParseAagString parses an AIGER-ASCII (.aag) document given as a
// string.
func ParseAagString(s string) (*aig.Circuit, error) {
	return ParseAag(strings.NewReader(s))
}

// ParseAag parses an AIGER-ASCII (.aag) document: header line
// "aag M I L O A" followed by I input literals, O output literals and
// A and-gate records "lhs rhs0 rhs1", each a single line of decimal
// literals. Latches (L) are rejected: only combinational circuits are
// supported. Literal 2k is node k, literal 2k+1 is its complement.
func ParseAag(r io.Reader) (*aig.Circuit, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("frontend: failed to read aag input: %w", err)
	}
	if len(lines) == 0 {
		return nil, parseErrorf("empty input")
	}

	headerParts := strings.Fields(strings.TrimSpace(lines[0]))
	if len(headerParts) != 6 || headerParts[0] != "aag" {
		return nil, parseErrorf("invalid header, expected: aag M I L O A")
	}

	maxID, err := parseU32Token(headerParts[1], "M")
	if err != nil {
		return nil, err
	}
	numInputs, err := parseU32Token(headerParts[2], "I")
	if err != nil {
		return nil, err
	}
	numLatches, err := parseU32Token(headerParts[3], "L")
	if err != nil {
		return nil, err
	}
	numOutputs, err := parseU32Token(headerParts[4], "O")
	if err != nil {
		return nil, err
	}
	numAnds, err := parseU32Token(headerParts[5], "A")
	if err != nil {
		return nil, err
	}

	if numLatches != 0 {
		return nil, parseErrorf("only combinational aag is supported (L must be 0)")
	}

	needed := 1 + int(numInputs) + int(numOutputs) + int(numAnds)
	if len(lines) < needed {
		return nil, parseErrorf("truncated aag: expected at least %d lines, found %d", needed, len(lines))
	}

	cursor := 1
	inputs := make([]uint32, 0, numInputs)
	outputs := make([]aig.Lit, 0, numOutputs)
	gates := make([]aig.Gate, 0, numAnds)
	var maxRefID uint32

	for i := 0; i < int(numInputs); i++ {
		lit, err := parseSingleLit(lines[cursor], cursor+1, "input")
		if err != nil {
			return nil, err
		}
		cursor++

		if lit == 0 || lit%2 == 1 {
			return nil, parseErrorf("invalid input literal on line %d: must be even and nonzero", cursor)
		}
		if lit > 2*maxID {
			return nil, parseErrorf("input literal on line %d exceeds 2*M", cursor)
		}

		id := lit / 2
		if id > maxRefID {
			maxRefID = id
		}
		if id == 0 {
			return nil, parseErrorf("invalid input id 0 at input %d", i)
		}
		inputs = append(inputs, id)
	}

	for i := 0; i < int(numOutputs); i++ {
		lit, err := parseSingleLit(lines[cursor], cursor+1, "output")
		if err != nil {
			return nil, err
		}
		cursor++
		out := litFromAiger(lit)
		if out.ID > maxRefID {
			maxRefID = out.ID
		}
		outputs = append(outputs, out)
	}

	for i := 0; i < int(numAnds); i++ {
		lineNo := cursor + 1
		parts := strings.Fields(lines[cursor])
		cursor++

		if len(parts) != 3 {
			return nil, parseErrorf("invalid and line %d: expected three literals", lineNo)
		}

		lhs, err := parseU32Token(parts[0], "and lhs")
		if err != nil {
			return nil, err
		}
		rhs0, err := parseU32Token(parts[1], "and rhs0")
		if err != nil {
			return nil, err
		}
		rhs1, err := parseU32Token(parts[2], "and rhs1")
		if err != nil {
			return nil, err
		}

		if lhs == 0 || lhs%2 == 1 {
			return nil, parseErrorf("invalid and lhs on line %d: must be even and nonzero", lineNo)
		}

		id := lhs / 2
		a := litFromAiger(rhs0)
		b := litFromAiger(rhs1)

		if id <= a.ID || id <= b.ID {
			return nil, parseErrorf("and gate on line %d violates topo order: id %d depends on %d and %d", lineNo, id, a.ID, b.ID)
		}

		if id > maxRefID {
			maxRefID = id
		}
		if a.ID > maxRefID {
			maxRefID = a.ID
		}
		if b.ID > maxRefID {
			maxRefID = b.ID
		}
		gates = append(gates, aig.Gate{ID: id, A: a, B: b})
	}

	if maxRefID > maxID {
		return nil, parseErrorf("header M=%d is smaller than referenced id %d", maxID, maxRefID)
	}

	return &aig.Circuit{
		MaxID:   maxID,
		Inputs:  inputs,
		Outputs: outputs,
		Gates:   gates,
	}, nil
}

func parseSingleLit(line string, lineNo int, kind string) (uint32, error) {
	parts := strings.Fields(line)
	if len(parts) != 1 {
		return 0, parseErrorf("invalid %s line %d: expected one literal, got %d fields", kind, lineNo, len(parts))
	}
	return parseU32Token(parts[0], kind)
}

func parseU32Token(token, what string) (uint32, error) {
	v, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, parseErrorf("invalid %s value: %s", what, token)
	}
	return uint32(v), nil
}

func litFromAiger(lit uint32) aig.Lit {
	return aig.Lit{ID: lit / 2, Neg: lit%2 == 1}
}
