package placeholder

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/HexmosTech/reqfile/input"
	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

// Renderer substitutes placeholder values into requests.
//
// A Renderer is not modified by Render and may be shared between goroutines.
type Renderer struct {
	catalog Catalog
	values  map[string]string
}

// NewRenderer returns a renderer for requests described by catalog. Every
// name in values must be unique.
func NewRenderer(catalog Catalog, values input.Values) (*Renderer, error) {
	m := make(map[string]string, len(values))
	for _, v := range values {
		if _, ok := m[v.Name]; ok {
			return nil, errors.WithStack(&DuplicateValueError{Name: v.Name})
		}
		m[v.Name] = v.Value
	}
	return &Renderer{catalog: catalog, values: m}, nil
}

// Render returns a copy of req with every {{name}} placeholder of the catalog
// replaced by its value. Names without a value are left as they are. req
// itself is never modified, and no request is returned on error.
//
// Names are processed in Catalog.Names order. A value that itself looks like
// a placeholder may be replaced again by a later name at the same location.
//
// Render panics with a *BodyMismatchError when the catalog holds a body form
// location but req has no form body.
func (r *Renderer) Render(req *input.Request) (*input.Request, error) {
	rendered := req.Clone()

	for _, name := range r.catalog.Names() {
		val, ok := r.values[name]
		if !ok {
			continue
		}
		placeholder := "{{" + name + "}}"
		for _, loc := range r.catalog.Locations(name) {
			if err := renderLocation(rendered, loc, placeholder, val); err != nil {
				return nil, err
			}
		}
	}
	return rendered, nil
}

func renderLocation(req *input.Request, loc Location, placeholder, val string) error {
	switch loc.Kind {
	case URLLocation:
		req.URL = strings.ReplaceAll(req.URL, placeholder, val)
	case HeaderLocation:
		return renderHeader(req.Header, loc.Key, placeholder, val)
	case QueryParamLocation:
		renderQueryParam(req.QueryParams, loc.Key, placeholder, val)
	case BodyFormLocation:
		switch req.Body.BodyType {
		case input.FormDataBody:
			renderFormData(req.Body.FormData, loc.Key, placeholder, val)
		case input.FormURLEncodedBody:
			renderFormURLEncoded(req.Body.Form, loc.Key, placeholder, val)
		default:
			panic(&BodyMismatchError{Key: loc.Key, BodyType: req.Body.BodyType})
		}
	case BodyLocation:
		// whole-body templating is not supported yet
	}
	return nil
}

func renderHeader(header http.Header, name, placeholder, val string) error {
	key, ok := headerKey(header, name)
	if !ok {
		return nil
	}
	values := header[key]
	for i, v := range values {
		if !utf8.ValidString(v) {
			return errors.WithStack(&HeaderDecodeError{Header: name, Value: v})
		}
		v = strings.ReplaceAll(v, placeholder, val)
		if !httpguts.ValidHeaderFieldValue(v) {
			return errors.WithStack(&InvalidHeaderValueError{Header: name, Value: v})
		}
		values[i] = v
	}
	return nil
}

// headerKey finds the map key holding name: the key itself, its canonical
// form, or any key equal to it ignoring case.
func headerKey(header http.Header, name string) (string, bool) {
	if _, ok := header[name]; ok {
		return name, true
	}
	if canonical := http.CanonicalHeaderKey(name); canonical != name {
		if _, ok := header[canonical]; ok {
			return canonical, true
		}
	}
	for key := range header {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// renderQueryParam replaces inside the first parameter named key only.
func renderQueryParam(params []input.QueryParam, key, placeholder, val string) {
	for i := range params {
		if params[i].Name == key {
			params[i].Value = strings.ReplaceAll(params[i].Value, placeholder, val)
			return
		}
	}
}

func renderFormData(form map[string]input.FormDataValue, key, placeholder, val string) {
	if v, ok := form[key]; ok {
		v.Value = strings.ReplaceAll(v.Value, placeholder, val)
		form[key] = v
	}
}

func renderFormURLEncoded(form map[string]string, key, placeholder, val string) {
	if v, ok := form[key]; ok {
		form[key] = strings.ReplaceAll(v, placeholder, val)
	}
}
