// Package profile implements the dataset profiling engine: a CSV loader
// with per-column type inference and a set of independent, read-only
// analyses computed over the loaded table.
//
// The engine is deliberately stateless: every operation re-opens and
// re-parses the dataset from its source, so a report is always a pure
// function of the file bytes at the time of the call. This makes the
// service resilient to the underlying file being replaced between requests
// and removes any need for cache invalidation. Adding a cache later would
// require file-modification-time invalidation to preserve that property.
package profile

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"sort"
	"strings"
)

var errNonFinite = errors.New("non-finite quantile")

// Source re-opens the underlying dataset resource. Implementations are
// provided by the dataset store; an open failure surfaces as a LoadError.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// PathSource is a Source backed by a file on the local filesystem.
type PathSource string

func (p PathSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(string(p))
}

// Profiler computes profiling reports over a single dataset source.
// It holds no state between operations.
type Profiler struct {
	src Source
}

func NewProfiler(src Source) *Profiler {
	return &Profiler{src: src}
}

func (p *Profiler) load(ctx context.Context) (*Table, error) {
	rc, err := p.src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer rc.Close()

	return ReadTable(rc)
}

// Summary is the dataset-level overview report.
type Summary struct {
	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"`
	MemoryBytes   int64   `json:"memory_bytes"`
	MissingTotal  int     `json:"missing_total"`
	MissingPct    float64 `json:"missing_pct"`
	DuplicateRows int     `json:"duplicate_rows"`
}

// Summary computes row/column counts, a deep memory estimate, missing-cell
// totals and the count of rows identical to an earlier row.
func (p *Profiler) Summary(ctx context.Context) (*Summary, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	missing := 0
	for _, c := range t.Columns() {
		for _, cell := range c.Cells {
			if cell.Null {
				missing++
			}
		}
	}

	cells := t.NumRows() * t.NumCols()
	pct := 0.0
	if cells > 0 {
		pct = float64(missing) / float64(cells) * 100
	}

	seen := make(map[string]struct{}, t.NumRows())
	dupes := 0
	for i := 0; i < t.NumRows(); i++ {
		key := rowKey(t, i)
		if _, ok := seen[key]; ok {
			dupes++
		} else {
			seen[key] = struct{}{}
		}
	}

	return &Summary{
		Rows:          t.NumRows(),
		Columns:       t.NumCols(),
		MemoryBytes:   t.memoryBytes(),
		MissingTotal:  missing,
		MissingPct:    pct,
		DuplicateRows: dupes,
	}, nil
}

// ColumnMissing is one column's missing-value entry.
type ColumnMissing struct {
	Column     string  `json:"column"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missing_pct"`
}

// MissingReport lists missing-value counts per column, in column order.
type MissingReport struct {
	MissingByColumn []ColumnMissing `json:"missing_by_column"`
}

func (p *Profiler) Missing(ctx context.Context) (*MissingReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ColumnMissing, 0, t.NumCols())
	for _, c := range t.Columns() {
		count := 0
		for _, cell := range c.Cells {
			if cell.Null {
				count++
			}
		}

		pct := 0.0
		if t.NumRows() > 0 {
			pct = float64(count) / float64(t.NumRows()) * 100
		}

		out = append(out, ColumnMissing{Column: c.Name, Missing: count, MissingPct: pct})
	}

	return &MissingReport{MissingByColumn: out}, nil
}

// ColumnDtype pairs a column's storage type with its inferred kind.
type ColumnDtype struct {
	Column   string    `json:"column"`
	Dtype    ValueType `json:"dtype"`
	Inferred Inferred  `json:"inferred"`
}

// DtypesReport lists storage and inferred types per column, in column order.
type DtypesReport struct {
	Dtypes []ColumnDtype `json:"dtypes"`
}

func (p *Profiler) Dtypes(ctx context.Context) (*DtypesReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ColumnDtype, 0, t.NumCols())
	for _, c := range t.Columns() {
		out = append(out, ColumnDtype{
			Column:   c.Name,
			Dtype:    c.Type,
			Inferred: InferKind(c.Cells),
		})
	}

	return &DtypesReport{Dtypes: out}, nil
}

// ColumnUnique is one column's distinct-value count.
type ColumnUnique struct {
	Column string `json:"column"`
	Unique int    `json:"unique"`
}

// NuniqueReport lists distinct-value counts per column, in column order.
// Missing values form one additional distinct class when present.
type NuniqueReport struct {
	Nunique []ColumnUnique `json:"nunique"`
}

func (p *Profiler) Nunique(ctx context.Context) (*NuniqueReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ColumnUnique, 0, t.NumCols())
	for _, c := range t.Columns() {
		distinct := make(map[string]struct{})
		hasNull := false
		for _, cell := range c.Cells {
			if cell.Null {
				hasNull = true
				continue
			}
			distinct[cell.Raw] = struct{}{}
		}

		count := len(distinct)
		if hasNull {
			count++
		}

		out = append(out, ColumnUnique{Column: c.Name, Unique: count})
	}

	return &NuniqueReport{Nunique: out}, nil
}

// ColumnOutliers is one numeric column's IQR outlier entry.
type ColumnOutliers struct {
	Column   string  `json:"column"`
	Outliers int     `json:"outliers"`
	Pct      float64 `json:"pct"`
}

// OutlierReport lists IQR-fence outlier counts for numeric columns, in
// column order. Non-numeric and all-missing columns are omitted.
type OutlierReport struct {
	Outliers []ColumnOutliers `json:"outliers"`
}

func (p *Profiler) Outliers(ctx context.Context) (*OutlierReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ColumnOutliers, 0)
	for _, c := range t.Columns() {
		if !c.Type.Numeric() {
			continue
		}

		values := make([]float64, 0, len(c.Cells))
		for _, cell := range c.Cells {
			if cell.Null {
				continue
			}
			if v, ok := ParseFloat(cell.Raw); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		sort.Float64s(values)

		q1 := quantile(values, 0.25)
		q3 := quantile(values, 0.75)
		if !isFinite(q1) || !isFinite(q3) {
			return nil, &ComputationError{Op: "outliers", Column: c.Name, Err: errNonFinite}
		}

		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr

		count := 0
		for _, v := range values {
			if v < lower || v > upper {
				count++
			}
		}

		pct := float64(count) / float64(len(values)) * 100
		out = append(out, ColumnOutliers{
			Column:   c.Name,
			Outliers: count,
			Pct:      math.Round(pct*100) / 100,
		})
	}

	return &OutlierReport{Outliers: out}, nil
}

// DuplicatesReport counts rows that have at least one identical sibling
// anywhere in the table (every occurrence counts, not just repeats) and
// carries a bounded sample of them in original row order.
type DuplicatesReport struct {
	Count  int              `json:"count"`
	Sample []map[string]any `json:"duplicates_sample"`
}

func (p *Profiler) Duplicates(ctx context.Context, sampleSize int) (*DuplicatesReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		counts[rowKey(t, i)]++
	}

	rep := &DuplicatesReport{Sample: []map[string]any{}}
	for i := 0; i < t.NumRows(); i++ {
		if counts[rowKey(t, i)] < 2 {
			continue
		}
		rep.Count++
		if len(rep.Sample) < sampleSize {
			rep.Sample = append(rep.Sample, rowValues(t, i))
		}
	}

	return rep, nil
}

// ColumnsReport lists the header names verbatim, duplicates included.
type ColumnsReport struct {
	Columns []string `json:"columns"`
}

func (p *Profiler) ColumnNames(ctx context.Context) (*ColumnsReport, error) {
	t, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	return &ColumnsReport{Columns: t.ColumnNames()}, nil
}

// rowKey builds a comparison key for row i across all columns. Missing
// cells compare equal to each other and never to a present empty-adjacent
// value, and the unit separator keeps adjacent cells from gluing together.
func rowKey(t *Table, i int) string {
	var b strings.Builder
	for ci, c := range t.cols {
		if ci > 0 {
			b.WriteByte(0x1f)
		}
		if c.Cells[i].Null {
			b.WriteByte(0x00)
		} else {
			b.WriteByte(0x01)
			b.WriteString(c.Cells[i].Raw)
		}
	}
	return b.String()
}

// rowValues renders row i as a column-name→value map for JSON output.
// Missing cells serialize as null.
func rowValues(t *Table, i int) map[string]any {
	m := make(map[string]any, t.NumCols())
	for _, c := range t.cols {
		if c.Cells[i].Null {
			m[c.Name] = nil
		} else {
			m[c.Name] = c.Cells[i].Raw
		}
	}
	return m
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
