package input

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Value binds a placeholder name to the text that replaces it.
type Value struct {
	Name  string
	Value string
}

// Values is an ordered value table.
type Values []Value

// ValuesFromMap returns the entries of m sorted by name.
func ValuesFromMap(m map[string]string) Values {
	names := maps.Keys(m)
	slices.Sort(names)

	vs := make(Values, 0, len(names))
	for _, name := range names {
		vs = append(vs, Value{Name: name, Value: m[name]})
	}
	return vs
}

func (vs Values) Get(name string) (string, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Set replaces the value of name, or appends it when absent.
func (vs Values) Set(name, value string) Values {
	for i := range vs {
		if vs[i].Name == name {
			vs[i].Value = value
			return vs
		}
	}
	return append(vs, Value{Name: name, Value: value})
}

// Merge returns a new table holding vs overridden by other.
func (vs Values) Merge(other Values) Values {
	merged := make(Values, 0, len(vs)+len(other))
	merged = append(merged, vs...)
	for _, v := range other {
		merged = merged.Set(v.Name, v.Value)
	}
	return merged
}
