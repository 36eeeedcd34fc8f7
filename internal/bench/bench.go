// Package bench runs the counting driver over a directory of circuit
// files and records a CSV row per file: status, mode, result and the
// shape/cost metrics that explain how the count was produced.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ishanrk/circuitcount/internal/aig"
	"github.com/ishanrk/circuitcount/internal/count"
	"github.com/ishanrk/circuitcount/internal/frontend"
)

// InputFormat restricts directory discovery to one file extension, or
// both when Auto.
type InputFormat int

const (
	Auto InputFormat = iota
	Aag
	Bench
)

// Row is one file's outcome: either a populated count report or a
// status explaining why none was produced.
type Row struct {
	Path       string
	Status     string
	Backend    string
	Mode       string
	WallMs     int64
	SolveCalls int
	Result     *big.Int
	MUsed      int
	Trials     int
	Repeats    int
	Seed       uint64
	FileBytes  int64
	AigInputs  int
	AigAnds    int
	ConeInputs int
	CNFVars    uint32
	CNFClauses int
}

var csvHeader = []string{
	"path", "status", "backend", "mode", "wall_ms", "solve_calls", "result", "m",
	"trials", "repeats", "seed", "file_bytes", "aig_inputs", "aig_ands",
	"cone_inputs", "cnf_vars", "cnf_clauses",
}

func (r Row) csvRecord() []string {
	return []string{
		r.Path,
		r.Status,
		r.Backend,
		r.Mode,
		strconv.FormatInt(r.WallMs, 10),
		optInt(r.SolveCalls, r.Status == "ok" || r.Status == "unsat"),
		optBigInt(r.Result),
		optInt(r.MUsed, r.Status == "ok" || r.Status == "unsat"),
		strconv.Itoa(r.Trials),
		strconv.Itoa(r.Repeats),
		strconv.FormatUint(r.Seed, 10),
		strconv.FormatInt(r.FileBytes, 10),
		optInt(r.AigInputs, r.Status != "parse_error"),
		optInt(r.AigAnds, r.Status != "parse_error"),
		optInt(r.ConeInputs, r.Status != "parse_error"),
		optUint32(r.CNFVars, r.Status == "ok" || r.Status == "unsat"),
		optInt(r.CNFClauses, r.Status == "ok" || r.Status == "unsat"),
	}
}

func optInt(v int, present bool) string {
	if !present {
		return ""
	}
	return strconv.Itoa(v)
}

func optUint32(v uint32, present bool) string {
	if !present {
		return ""
	}
	return strconv.FormatUint(uint64(v), 10)
}

func optBigInt(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// RunDataset discovers every matching file under dir, counts it under
// cfg with the given per-file timeout, writes a CSV to csvPath, and
// returns the rows in the order they were processed.
func RunDataset(dir string, outIdx int, format InputFormat, cfg count.Config, timeout time.Duration, csvPath string, progress bool) ([]Row, error) {
	paths, err := discoverPaths(dir, format)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	w.Flush()

	rows := make([]Row, 0, len(paths))
	for _, path := range paths {
		row := RunOne(path, outIdx, cfg, timeout)
		if progress {
			fmt.Printf("path=%s status=%s wall_ms=%d mode=%s result=%s\n",
				row.Path, row.Status, row.WallMs, row.Mode, optBigInt(row.Result))
		}
		if err := w.Write(row.csvRecord()); err != nil {
			return nil, err
		}
		w.Flush()
		rows = append(rows, row)
	}

	return rows, w.Error()
}

// RunOne counts a single file's chosen output under cfg, returning
// within timeout. A run that does not complete in time yields a
// "timeout" row instead of blocking the caller.
func RunOne(path string, outIdx int, cfg count.Config, timeout time.Duration) Row {
	info, statErr := os.Stat(path)
	var fileBytes int64
	if statErr == nil {
		fileBytes = info.Size()
	}

	base := Row{
		Path:      path,
		Status:    "ok",
		Backend:   cfg.Backend,
		Trials:    cfg.Trials,
		Repeats:   cfg.Repeats,
		Seed:      cfg.Seed,
		FileBytes: fileBytes,
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := make(chan Row, 1)
	go func() {
		result <- runOneInner(path, outIdx, cfg, base)
	}()

	select {
	case row := <-result:
		row.WallMs = time.Since(start).Milliseconds()
		return row
	case <-ctx.Done():
		row := base
		row.Status = "timeout"
		row.WallMs = time.Since(start).Milliseconds()
		return row
	}
}

func runOneInner(path string, outIdx int, cfg count.Config, base Row) Row {
	row := base

	circuit, err := parseAny(path)
	if err != nil {
		row.Status = "parse_error"
		return row
	}

	simple, err := circuit.Simplify(outIdx)
	if err != nil {
		row.Status = "internal_error"
		return row
	}
	row.AigInputs = len(simple.Inputs)
	row.AigAnds = simple.NumGates()
	row.ConeInputs = len(simple.Inputs)

	report, err := count.Run(circuit, outIdx, cfg)
	if err != nil {
		row.Status = "internal_error"
		return row
	}

	row.Mode = string(report.Mode)
	row.SolveCalls = report.SolveCalls
	row.Result = report.Result
	row.MUsed = report.MUsed
	row.CNFVars = report.Vars
	row.CNFClauses = report.Clauses
	if report.Mode == count.Exact && report.Result.Sign() == 0 {
		row.Status = "unsat"
	}
	return row
}

func discoverPaths(dir string, format InputFormat) ([]string, error) {
	var out []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if matchesFormat(path, format) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func matchesFormat(path string, format InputFormat) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch format {
	case Aag:
		return ext == "aag"
	case Bench:
		return ext == "bench"
	default:
		return ext == "aag" || ext == "bench"
	}
}

func parseAny(path string) (*aig.Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "aag":
		return frontend.ParseAagString(string(data))
	case "bench":
		return frontend.ParseBenchString(string(data))
	default:
		return nil, fmt.Errorf("bench: unsupported extension %q", ext)
	}
}
