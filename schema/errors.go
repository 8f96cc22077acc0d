package schema

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required key absent from the request file.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// DuplicateFieldError reports a key given under two of its aliases.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field `%s`", e.Field)
}

// TypeMismatchError reports a structurally typed key holding a value of
// another TOML type.
type TypeMismatchError struct {
	Field    string
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s for key `%s`", e.Found, e.Expected, e.Field)
}

// VariantError reports a table that must hold exactly one of several keys.
type VariantError struct {
	Field    string
	Found    []string
	Expected []string
}

func (e *VariantError) Error() string {
	if len(e.Found) == 0 {
		return fmt.Sprintf("wanted exactly 1 element, found 0 elements in `%s` (expected one of %s)",
			e.Field, quoteAll(e.Expected))
	}
	return fmt.Sprintf("wanted exactly 1 element, more than 1 element in `%s` (found %s)",
		e.Field, quoteAll(e.Found))
}

// UnknownVariantError reports a key that names none of a table's variants.
type UnknownVariantError struct {
	Field    string
	Variant  string
	Expected []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant `%s` in `%s`, expected one of %s",
		e.Variant, e.Field, quoteAll(e.Expected))
}

// InvalidTypeError reports a value whose TOML type is not a primitive.
type InvalidTypeError struct {
	Field       string
	InvalidType string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type `%s` found in %s (valid: string, integer, float, boolean, array)",
		e.InvalidType, e.Field)
}

// InvalidHeaderError reports a header that cannot be sent as-is.
type InvalidHeaderError struct {
	Name  string
	Value string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header `%s`: %q", e.Name, e.Value)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}
	return strings.Join(quoted, ", ")
}

// InvalidMethodError reports an http.method that is not an HTTP token.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid value: `%s` is not a valid HTTP method for key `http.method`", e.Method)
}
