package profile

import (
	"errors"
	"strings"
	"testing"
)

func mustReadTable(t *testing.T, data string) *Table {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	return tbl
}

func TestReadTable_Basic(t *testing.T) {
	tbl := mustReadTable(t, "id,name,score\n1,alice,9.5\n2,bob,\n3,,7.0\n")

	if got := tbl.NumRows(); got != 3 {
		t.Errorf("NumRows() = %d, want 3", got)
	}
	if got := tbl.NumCols(); got != 3 {
		t.Errorf("NumCols() = %d, want 3", got)
	}

	names := tbl.ColumnNames()
	want := []string{"id", "name", "score"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, names[i], n)
		}
	}

	cols := tbl.Columns()
	if cols[0].Type != IntType {
		t.Errorf("id column type = %v, want %v", cols[0].Type, IntType)
	}
	if cols[1].Type != StringType {
		t.Errorf("name column type = %v, want %v", cols[1].Type, StringType)
	}
	if cols[2].Type != FloatType {
		t.Errorf("score column type = %v, want %v", cols[2].Type, FloatType)
	}

	if !cols[2].Cells[1].Null {
		t.Error("empty score cell should be missing")
	}
	if !cols[1].Cells[2].Null {
		t.Error("empty name cell should be missing")
	}
}

func TestReadTable_ShortRows(t *testing.T) {
	tbl := mustReadTable(t, "a,b,c\n1,2\n3\n")

	cols := tbl.Columns()
	if !cols[2].Cells[0].Null {
		t.Error("absent trailing cell should be missing")
	}
	if !cols[1].Cells[1].Null || !cols[2].Cells[1].Null {
		t.Error("absent cells in one-field row should be missing")
	}
}

func TestReadTable_LongRowFails(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b\n1,2,3\n"))

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("ReadTable() error = %v, want LoadError", err)
	}
}

func TestReadTable_MissingHeader(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("ReadTable() error = %v, want LoadError", err)
	}
}

func TestReadTable_MalformedCSV(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b\n\"unclosed,1\nx,2\n"))

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("ReadTable() error = %v, want LoadError", err)
	}
}

func TestReadTable_DuplicateColumnNames(t *testing.T) {
	tbl := mustReadTable(t, "x,x\n1,a\n")

	names := tbl.ColumnNames()
	if names[0] != "x" || names[1] != "x" {
		t.Errorf("ColumnNames() = %v, want duplicate names preserved", names)
	}
}

func TestReadTable_AllMissingColumnType(t *testing.T) {
	tbl := mustReadTable(t, "a,b\n1,\n2,\n")

	if got := tbl.Columns()[1].Type; got != ObjectType {
		t.Errorf("all-missing column type = %v, want %v", got, ObjectType)
	}
}

func TestReadTable_MixedNonStringTypes(t *testing.T) {
	// Integers mixed with dates fold to object, not string.
	tbl := mustReadTable(t, "a\n1\n2006-01-02\n")

	if got := tbl.Columns()[0].Type; got != ObjectType {
		t.Errorf("mixed int/date column type = %v, want %v", got, ObjectType)
	}
}
