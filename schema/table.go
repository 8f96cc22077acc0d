package schema

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PrimitiveTable maps keys to primitive values. It backs query parameters,
// headers and url-encoded bodies.
type PrimitiveTable map[string]PrimitiveArray

// Keys returns the keys of t in sorted order.
func (t PrimitiveTable) Keys() []string {
	return sortedKeys(t)
}

// FormDataTable maps multipart field names to their values.
type FormDataTable map[string]FormDataValue

// FormDataValue is either a text field or a file reference.
type FormDataValue struct {
	Text   PrimitiveArray
	File   string
	IsFile bool
}

func TextValue(a PrimitiveArray) FormDataValue {
	return FormDataValue{Text: a}
}

func FileValue(path string) FormDataValue {
	return FormDataValue{File: path, IsFile: true}
}

// String returns the text or the file path.
func (v FormDataValue) String() string {
	if v.IsFile {
		return v.File
	}
	return v.Text.String()
}

// rawTable holds decoded TOML values that have not been checked against the
// primitive set yet.
type rawTable map[string]interface{}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// lookup finds the value stored under any of names. Giving the same field
// under two aliases is an error reported with names[0].
func lookup(t map[string]interface{}, names ...string) (interface{}, bool, error) {
	var (
		value interface{}
		found bool
	)
	for _, name := range names {
		v, ok := t[name]
		if !ok {
			continue
		}
		if found {
			return nil, false, errors.WithStack(&DuplicateFieldError{Field: names[0]})
		}
		value, found = v, true
	}
	return value, found, nil
}

func asTable(field string, v interface{}) (map[string]interface{}, error) {
	t, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.WithStack(&TypeMismatchError{Field: field, Expected: "table", Found: typeName(v)})
	}
	return t, nil
}

func asString(field string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.WithStack(&TypeMismatchError{Field: field, Expected: "string", Found: typeName(v)})
	}
	return s, nil
}

// optionalTable returns the table stored under names, or nil when absent.
func optionalTable(root map[string]interface{}, names ...string) (rawTable, error) {
	v, ok, err := lookup(root, names...)
	if err != nil || !ok {
		return nil, err
	}
	t, err := asTable(names[0], v)
	if err != nil {
		return nil, err
	}
	return rawTable(t), nil
}

// typeName names the TOML type of a decoded value.
func typeName(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case time.Time:
		return "datetime"
	case []interface{}, []map[string]interface{}:
		return "array"
	case map[string]interface{}:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
