package profile

// Inferred is the secondary, value-based classification of a column. It is
// computed over present values only and may be finer grained than the
// storage type: a column whose storage folded to string because of one
// stray token still reports what the bulk of its values look like.
type Inferred string

const (
	InferredEmpty    Inferred = "empty"
	InferredInteger  Inferred = "integer"
	InferredFloating Inferred = "floating"
	InferredBoolean  Inferred = "boolean"
	InferredDate     Inferred = "date"
	InferredDateTime Inferred = "datetime"
	InferredString   Inferred = "string"
	InferredMixed    Inferred = "mixed"
)

// InferKind classifies a column's non-missing values into a closed set of
// human-friendly kinds. Missing values are ignored; a column with no
// present values classifies as empty. Integer and float kinds merge to
// floating, date and datetime merge to datetime, and any other mixture is
// reported as mixed.
func InferKind(cells []Cell) Inferred {
	var seen [6]bool
	present := false

	for _, c := range cells {
		if c.Null {
			continue
		}
		present = true

		switch cellType(c.Raw) {
		case IntType:
			seen[0] = true
		case FloatType:
			seen[1] = true
		case BoolType:
			seen[2] = true
		case DateType:
			seen[3] = true
		case DateTimeType:
			seen[4] = true
		default:
			seen[5] = true
		}
	}

	if !present {
		return InferredEmpty
	}

	kinds := 0
	for _, s := range seen {
		if s {
			kinds++
		}
	}

	switch {
	case kinds == 1 && seen[0]:
		return InferredInteger
	case kinds == 1 && seen[2]:
		return InferredBoolean
	case kinds == 1 && seen[3]:
		return InferredDate
	case kinds == 1 && seen[5]:
		return InferredString
	case seen[1] && !seen[2] && !seen[3] && !seen[4] && !seen[5]:
		return InferredFloating
	case seen[4] && !seen[0] && !seen[1] && !seen[2] && !seen[5]:
		return InferredDateTime
	}

	return InferredMixed
}
