package profile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Cell is a single table cell. A cell is missing when the source field was
// empty or the row was shorter than the header.
type Cell struct {
	Raw  string
	Null bool
}

// Column holds one column of a parsed table in file order.
type Column struct {
	Name  string
	Type  ValueType
	Cells []Cell
}

// Table is the in-memory result of parsing one CSV dataset. It is built
// fresh for every profiling operation and discarded afterwards; it carries
// no identity beyond the request that created it.
type Table struct {
	cols []Column
	rows int
}

// NumRows returns the number of data rows (the header is not a row).
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the table's columns in file order.
func (t *Table) Columns() []Column { return t.cols }

// ColumnNames returns the header names verbatim, duplicates included.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// ReadTable parses a CSV byte stream into a Table. The first record is the
// required header row; its fields become column names verbatim. Data rows
// may be shorter than the header (trailing cells are missing) but not
// longer. Any structural CSV error is reported as a LoadError.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: errors.New("missing header row")}
		}
		return nil, &LoadError{Err: err}
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name, Type: NullType}
	}

	rows := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		if len(record) > len(header) {
			return nil, &LoadError{Err: fmt.Errorf("row %d has %d fields, header has %d", rows+2, len(record), len(header))}
		}

		for i := range cols {
			var cell Cell
			if i >= len(record) || record[i] == "" {
				cell = Cell{Null: true}
			} else {
				cell = Cell{Raw: record[i]}
				cols[i].Type = GeneralizeType(cols[i].Type, cellType(record[i]))
			}
			cols[i].Cells = append(cols[i].Cells, cell)
		}
		rows++
	}

	// An all-missing column never observed a token shape.
	for i := range cols {
		if cols[i].Type == NullType {
			cols[i].Type = ObjectType
		}
	}

	return &Table{cols: cols, rows: rows}, nil
}

// memoryBytes estimates the deep in-memory size of the table: string
// headers plus their byte contents, not fixed-width slot sizes. The
// estimate is deterministic for a given file.
const (
	stringHeaderSize = 16
	cellOverhead     = stringHeaderSize + 1 // raw header + null flag
)

func (t *Table) memoryBytes() int64 {
	var total int64
	for _, c := range t.cols {
		total += stringHeaderSize + int64(len(c.Name))
		for _, cell := range c.Cells {
			total += cellOverhead + int64(len(cell.Raw))
		}
	}
	return total
}
