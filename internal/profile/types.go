package profile

import (
	"encoding/json"
	"strings"
)

const (
	UnknownType ValueType = iota
	NullType
	StringType
	IntType
	FloatType
	BoolType
	DateType
	DateTimeType
	ObjectType
)

// ValueType is the storage type of a column, decided at parse time from
// raw token shapes.
type ValueType uint8

func (v ValueType) String() string {
	switch v {
	case NullType:
		return "null"
	case StringType:
		return "string"
	case IntType:
		return "integer"
	case FloatType:
		return "float"
	case BoolType:
		return "boolean"
	case DateType:
		return "date"
	case DateTimeType:
		return "datetime"
	case ObjectType:
		return "object"
	}

	return ""
}

// Numeric reports whether the type is usable in numeric analyses.
func (v ValueType) Numeric() bool {
	return v == IntType || v == FloatType
}

func (v ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *ValueType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	var t ValueType

	switch strings.ToLower(s) {
	case "null":
		t = NullType
	case "string":
		t = StringType
	case "integer":
		t = IntType
	case "float":
		t = FloatType
	case "boolean":
		t = BoolType
	case "date":
		t = DateType
	case "datetime":
		t = DateTimeType
	case "object":
		t = ObjectType
	}

	*v = t

	return nil
}

var typeGeneralizationMap = map[[2]ValueType]ValueType{
	{BoolType, IntType}:      IntType,
	{IntType, FloatType}:     FloatType,
	{BoolType, FloatType}:    FloatType,
	{DateTimeType, DateType}: DateTimeType,
}

// GeneralizeType folds two observed cell types into the narrowest column
// type that can hold both. Nulls are transparent. Incompatible non-string
// pairs (say, integers mixed with dates) fold to object; anything mixed
// with free text folds to string.
func GeneralizeType(t1, t2 ValueType) ValueType {
	if t1 == t2 {
		return t1
	}

	if t1 == NullType || t1 == UnknownType {
		return t2
	}

	if t2 == NullType || t2 == UnknownType {
		return t1
	}

	key := [2]ValueType{t1, t2}

	if t, ok := typeGeneralizationMap[key]; ok {
		return t
	}

	key[0], key[1] = key[1], key[0]

	if t, ok := typeGeneralizationMap[key]; ok {
		return t
	}

	if t1 == StringType || t2 == StringType {
		return StringType
	}

	return ObjectType
}
