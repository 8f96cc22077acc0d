package placeholder

import "fmt"

type LocationKind int

const (
	URLLocation LocationKind = iota
	HeaderLocation
	QueryParamLocation
	BodyFormLocation
	BodyLocation
)

// Location is a place inside a request where a placeholder occurs. Key is
// the header name, query parameter name or form field name; it is empty for
// URLLocation and BodyLocation.
type Location struct {
	Kind LocationKind
	Key  string
}

func URL() Location { return Location{Kind: URLLocation} }
func Header(name string) Location { return Location{Kind: HeaderLocation, Key: name} }
func QueryParam(key string) Location { return Location{Kind: QueryParamLocation, Key: key} }
func BodyForm(key string) Location { return Location{Kind: BodyFormLocation, Key: key} }

// Body marks the request body as a whole.
func Body() Location { return Location{Kind: BodyLocation} }

func (l Location) String() string {
	switch l.Kind {
	case URLLocation:
		return "url"
	case HeaderLocation:
		return fmt.Sprintf("header %q", l.Key)
	case QueryParamLocation:
		return fmt.Sprintf("query param %q", l.Key)
	case BodyFormLocation:
		return fmt.Sprintf("body field %q", l.Key)
	case BodyLocation:
		return "body"
	default:
		return "unknown"
	}
}
