package input

import "net/http"

// Request is a fully parsed request description. It is produced from a
// request file, rendered with placeholder values, and finally turned into an
// *http.Request by the exchange package.
type Request struct {
	Method      Method
	URL         string
	HTTPVersion string
	Metadata    map[string]string
	Header      http.Header
	QueryParams []QueryParam
	Variables   map[string]string
	Body        Body
}

type Method string

// QueryParam is a single query-string pair. Requests keep them as an
// ordered list since the same name may appear several times.
type QueryParam struct {
	Name  string
	Value string
}

type BodyType int

const (
	EmptyBody BodyType = iota
	RawBody
	BinaryBody
	FormDataBody
	FormURLEncodedBody
)

func (t BodyType) String() string {
	switch t {
	case EmptyBody:
		return "empty"
	case RawBody:
		return "raw"
	case BinaryBody:
		return "binary"
	case FormDataBody:
		return "form-data"
	case FormURLEncodedBody:
		return "form-urlencoded"
	default:
		return "unknown"
	}
}

type Body struct {
	BodyType BodyType
	MIME     string                   // used only when BodyType is RawBody or BinaryBody
	Raw      string                   // used only when BodyType == RawBody
	Path     string                   // used only when BodyType == BinaryBody
	FormData map[string]FormDataValue // used only when BodyType == FormDataBody
	Form     map[string]string        // used only when BodyType == FormURLEncodedBody
}

// FormDataValue is one multipart field. Value holds a file path when IsFile
// is set.
type FormDataValue struct {
	Value  string
	IsFile bool
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	c := *r
	c.Metadata = cloneStringMap(r.Metadata)
	c.Variables = cloneStringMap(r.Variables)
	if r.Header != nil {
		c.Header = r.Header.Clone()
	}
	if r.QueryParams != nil {
		c.QueryParams = make([]QueryParam, len(r.QueryParams))
		copy(c.QueryParams, r.QueryParams)
	}
	c.Body = r.Body.Clone()
	return &c
}

// Clone returns a deep copy of b.
func (b Body) Clone() Body {
	c := b
	if b.FormData != nil {
		c.FormData = make(map[string]FormDataValue, len(b.FormData))
		for k, v := range b.FormData {
			c.FormData[k] = v
		}
	}
	c.Form = cloneStringMap(b.Form)
	return c
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
