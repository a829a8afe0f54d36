package profile

import "testing"

func cellsOf(raws ...string) []Cell {
	cells := make([]Cell, len(raws))
	for i, r := range raws {
		if r == "" {
			cells[i] = Cell{Null: true}
		} else {
			cells[i] = Cell{Raw: r}
		}
	}
	return cells
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name string
		raws []string
		want Inferred
	}{
		{"integers", []string{"1", "2", "3"}, InferredInteger},
		{"floats", []string{"1.5", "2.25"}, InferredFloating},
		{"ints and floats merge to floating", []string{"1", "2.5"}, InferredFloating},
		{"booleans", []string{"true", "false", "TRUE"}, InferredBoolean},
		{"dates", []string{"2024-01-01", "2024-06-15"}, InferredDate},
		{"datetimes", []string{"2024-01-01 10:00", "2024-06-15 23:59"}, InferredDateTime},
		{"dates and datetimes merge to datetime", []string{"2024-01-01", "2024-06-15 23:59"}, InferredDateTime},
		{"strings", []string{"red", "green"}, InferredString},
		{"numbers with text is mixed", []string{"1", "apple"}, InferredMixed},
		{"missing ignored", []string{"1", "", "2"}, InferredInteger},
		{"all missing is empty", []string{"", ""}, InferredEmpty},
		{"no cells is empty", nil, InferredEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferKind(cellsOf(tt.raws...)); got != tt.want {
				t.Errorf("InferKind(%v) = %q, want %q", tt.raws, got, tt.want)
			}
		})
	}
}

func TestInferKind_IndependentOfStorageType(t *testing.T) {
	// A column that folds to string storage because of one stray token
	// still reports what its values look like.
	cells := cellsOf("1", "2", "n/a")

	storage := NullType
	for _, c := range cells {
		storage = GeneralizeType(storage, cellType(c.Raw))
	}
	if storage != StringType {
		t.Fatalf("storage type = %v, want %v", storage, StringType)
	}

	if got := InferKind(cells); got != InferredMixed {
		t.Errorf("InferKind() = %q, want %q", got, InferredMixed)
	}
}
