package schema

import (
	"net/http"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/HexmosTech/reqfile/input"
	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

const (
	DefaultMethod  = "GET"
	DefaultVersion = "HTTP/1.1"
)

// Schema is a validated request file.
type Schema struct {
	HTTP        HTTP
	Headers     PrimitiveTable
	QueryParams PrimitiveTable
	Metadata    PrimitiveTable
	Variables   PrimitiveTable
	Body        Body
}

type HTTP struct {
	URL string
	// Method is an HTTP token, upper-cased when parsed ("post" becomes "POST").
	Method  string
	Version string
}

// document is a request file after structural decoding. Its tables still
// hold raw TOML values.
type document struct {
	http        HTTP
	headers     rawTable
	queryParams rawTable
	metadata    rawTable
	variables   rawTable
	body        rawBody
}

// Parse decodes and validates a TOML request file. Either a complete Schema
// or an error is returned.
func Parse(s string) (*Schema, error) {
	root := map[string]interface{}{}
	if _, err := toml.Decode(s, &root); err != nil {
		return nil, errors.Wrap(err, "parsing request document")
	}

	doc, err := decodeDocument(root)
	if err != nil {
		return nil, err
	}
	return validateTypes(doc)
}

func ParseBytes(b []byte) (*Schema, error) {
	return Parse(string(b))
}

func decodeDocument(root map[string]interface{}) (*document, error) {
	doc := document{}

	v, ok := root["http"]
	if !ok {
		return nil, errors.WithStack(&MissingFieldError{Field: "http"})
	}
	t, err := asTable("http", v)
	if err != nil {
		return nil, err
	}
	if doc.http, err = decodeHTTP(t); err != nil {
		return nil, err
	}

	if doc.headers, err = optionalTable(root, "headers"); err != nil {
		return nil, err
	}
	if doc.queryParams, err = optionalTable(root, "query_params", "queryparams", "query-params"); err != nil {
		return nil, err
	}
	if doc.metadata, err = optionalTable(root, "metadata"); err != nil {
		return nil, err
	}
	if doc.variables, err = optionalTable(root, "variables"); err != nil {
		return nil, err
	}

	if v, ok := root["body"]; ok {
		t, err := asTable("body", v)
		if err != nil {
			return nil, err
		}
		if doc.body, err = decodeBody(t); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func decodeHTTP(t map[string]interface{}) (HTTP, error) {
	h := HTTP{Method: DefaultMethod, Version: DefaultVersion}

	v, ok := t["url"]
	if !ok {
		return HTTP{}, errors.WithStack(&MissingFieldError{Field: "url"})
	}
	url, err := asString("http.url", v)
	if err != nil {
		return HTTP{}, err
	}
	h.URL = url

	if v, ok := t["method"]; ok {
		method, err := asString("http.method", v)
		if err != nil {
			return HTTP{}, err
		}
		// a method has the same token grammar as a header name
		if !httpguts.ValidHeaderFieldName(method) {
			return HTTP{}, errors.WithStack(&InvalidMethodError{Method: method})
		}
		h.Method = strings.ToUpper(method)
	}

	if v, ok := t["version"]; ok {
		version, err := asString("http.version", v)
		if err != nil {
			return HTTP{}, err
		}
		h.Version = version
	}
	return h, nil
}

// Request converts s into the public request model. Query parameters and
// headers are emitted in key order, one entry per array element.
func (s *Schema) Request() *input.Request {
	r := input.Request{
		Method:      input.Method(s.HTTP.Method),
		URL:         s.HTTP.URL,
		HTTPVersion: s.HTTP.Version,
		Metadata:    flattenTable(s.Metadata),
		Header:      make(http.Header),
		Variables:   flattenTable(s.Variables),
		Body:        s.Body.ToInput(),
	}
	for _, name := range s.Headers.Keys() {
		for _, value := range s.Headers[name].Strings() {
			r.Header.Add(name, value)
		}
	}
	for _, key := range s.QueryParams.Keys() {
		for _, value := range s.QueryParams[key].Strings() {
			r.QueryParams = append(r.QueryParams, input.QueryParam{Name: key, Value: value})
		}
	}
	return &r
}

func flattenTable(t PrimitiveTable) map[string]string {
	m := make(map[string]string, len(t))
	for key, value := range t {
		m[key] = value.String()
	}
	return m
}
