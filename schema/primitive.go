package schema

import (
	"strconv"
	"strings"
)

type PrimitiveKind int

const (
	StringKind PrimitiveKind = iota
	IntegerKind
	FloatKind
	BooleanKind
)

func (k PrimitiveKind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntegerKind:
		return "integer"
	case FloatKind:
		return "float"
	case BooleanKind:
		return "boolean"
	default:
		return "unknown"
	}
}

// Primitive is a scalar value of a request file. Two primitives are equal
// when they have the same kind and value.
type Primitive struct {
	kind PrimitiveKind
	s    string
	i    int64
	f    float64
	b    bool
}

func NewString(s string) Primitive { return Primitive{kind: StringKind, s: s} }
func NewInteger(i int64) Primitive { return Primitive{kind: IntegerKind, i: i} }
func NewFloat(f float64) Primitive { return Primitive{kind: FloatKind, f: f} }
func NewBoolean(b bool) Primitive { return Primitive{kind: BooleanKind, b: b} }
func (p Primitive) Kind() PrimitiveKind { return p.kind }

func (p Primitive) Equal(o Primitive) bool {
	return p == o
}

// String renders p the way it is sent in a request.
func (p Primitive) String() string {
	switch p.kind {
	case IntegerKind:
		return strconv.FormatInt(p.i, 10)
	case FloatKind:
		return strconv.FormatFloat(p.f, 'f', -1, 64)
	case BooleanKind:
		return strconv.FormatBool(p.b)
	default:
		return p.s
	}
}

// PrimitiveArray is either a single primitive or a list of them, as written
// in the request file.
type PrimitiveArray struct {
	values   []Primitive
	multiple bool
}

func Single(p Primitive) PrimitiveArray {
	return PrimitiveArray{values: []Primitive{p}}
}

func Multiple(ps ...Primitive) PrimitiveArray {
	values := make([]Primitive, len(ps))
	copy(values, ps)
	return PrimitiveArray{values: values, multiple: true}
}

func (a PrimitiveArray) IsMultiple() bool {
	return a.multiple
}

func (a PrimitiveArray) Values() []Primitive {
	values := make([]Primitive, len(a.values))
	copy(values, a.values)
	return values
}

func (a PrimitiveArray) Equal(o PrimitiveArray) bool {
	if a.multiple != o.multiple || len(a.values) != len(o.values) {
		return false
	}
	for i := range a.values {
		if a.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// Strings returns one string per element.
func (a PrimitiveArray) Strings() []string {
	ss := make([]string, len(a.values))
	for i, v := range a.values {
		ss[i] = v.String()
	}
	return ss
}

// String joins the elements with commas.
func (a PrimitiveArray) String() string {
	return strings.Join(a.Strings(), ",")
}
