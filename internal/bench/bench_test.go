package bench_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ishanrk/circuitcount/internal/bench"
	"github.com/ishanrk/circuitcount/internal/count"
)

func TestRunDatasetCsvHasExpectedShape(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "tiny1.bench"),
		[]byte("INPUT(a)\nINPUT(b)\nOUTPUT(out)\nout = XOR(a,b)\n"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(root, "tiny2.aag"),
		[]byte("aag 5 3 0 1 2\n2\n4\n6\n11\n8 2 4\n10 9 7\n"), 0o644))

	csvPath := filepath.Join(root, "results.csv")
	cfg := count.Config{Backend: "dpll", Seed: 0, Pivot: 1000, Trials: 1, Sparsity: 0.35, Repeats: 3}

	rows, err := bench.RunDataset(root, 0, bench.Auto, cfg, 10*time.Second, csvPath, false)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	data, err := os.ReadFile(csvPath)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t,
		"path,status,backend,mode,wall_ms,solve_calls,result,m,trials,repeats,seed,file_bytes,aig_inputs,aig_ands,cone_inputs,cnf_vars,cnf_clauses",
		lines[0])

	for _, line := range lines[1:] {
		cols := strings.Split(line, ",")
		assert.Len(t, cols, 17)
		assert.Equal(t, "ok", cols[1])
		assert.Equal(t, "dpll", cols[2])
	}
}

func TestRunOneIsDeterministicInHashMode(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hash_target.bench")
	assert.NoError(t, os.WriteFile(path,
		[]byte("INPUT(a)\nINPUT(b)\nINPUT(c)\nOUTPUT(out)\nn1 = AND(a,b)\nout = OR(n1,c)\n"), 0o644))

	cfg := count.Config{Backend: "dpll", Seed: 7, Pivot: 2, Trials: 3, Sparsity: 0.35, Repeats: 3}

	row1 := bench.RunOne(path, 0, cfg, 10*time.Second)
	row2 := bench.RunOne(path, 0, cfg, 10*time.Second)
	assert.Equal(t, "ok", row1.Status)
	assert.Equal(t, "ok", row2.Status)
	assert.Equal(t, "hash", row1.Mode)
	assert.Equal(t, "hash", row2.Mode)
	assert.Equal(t, row1.MUsed, row2.MUsed)
	assert.Equal(t, row1.Result.String(), row2.Result.String())
	assert.Equal(t, row1.Trials, row2.Trials)
}

func TestRunOneReportsParseErrorForMalformedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.bench")
	assert.NoError(t, os.WriteFile(path, []byte("this is not bench syntax\n"), 0o644))

	cfg := count.Config{Backend: "dpll", Seed: 0, Pivot: 10, Trials: 1, Sparsity: 0.5, Repeats: 1}
	row := bench.RunOne(path, 0, cfg, 10*time.Second)
	assert.Equal(t, "parse_error", row.Status)
}
