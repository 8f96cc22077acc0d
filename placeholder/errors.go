package placeholder

import (
	"fmt"

	"github.com/HexmosTech/reqfile/input"
)

// DuplicateValueError reports a value table binding one name twice.
type DuplicateValueError struct {
	Name string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("value `%s` is given more than once", e.Name)
}

// HeaderDecodeError reports a header value that is not valid text.
type HeaderDecodeError struct {
	Header string
	Value  string
}

func (e *HeaderDecodeError) Error() string {
	return fmt.Sprintf("failed to convert header to string: %s %q", e.Header, e.Value)
}

// InvalidHeaderValueError reports a rendered header value that cannot be
// sent.
type InvalidHeaderValueError struct {
	Header string
	Value  string
}

func (e *InvalidHeaderValueError) Error() string {
	return fmt.Sprintf("rendered header value is invalid: %s %q", e.Header, e.Value)
}

// BodyMismatchError is the panic value raised when a body form location is
// applied to a body that has no form fields. It means the catalog was not
// built from the rendered request.
type BodyMismatchError struct {
	Key      string
	BodyType input.BodyType
}

func (e *BodyMismatchError) Error() string {
	return fmt.Sprintf("unexpected body type: body field %q located in a %s body", e.Key, e.BodyType)
}
