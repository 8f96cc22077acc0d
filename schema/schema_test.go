package schema

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/HexmosTech/reqfile/input"
	"github.com/google/go-cmp/cmp"
)

const all = `
[http]
method = "GET"
url = "https://example.org/api"

[queryparams]
string = "string"
integer = 10
float = 0.1
array = [ "first", "second" ]
boolean = true
`

func TestParse_All(t *testing.T) {
	// Exercise
	schema, err := Parse(all)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if schema.HTTP.URL != "https://example.org/api" {
		t.Errorf("unexpected url: %s", schema.HTTP.URL)
	}
	if schema.HTTP.Method != "GET" {
		t.Errorf("unexpected method: %s", schema.HTTP.Method)
	}
	expected := PrimitiveTable{
		"string":  Single(NewString("string")),
		"integer": Single(NewInteger(10)),
		"float":   Single(NewFloat(0.1)),
		"array":   Multiple(NewString("first"), NewString("second")),
		"boolean": Single(NewBoolean(true)),
	}
	if diff := cmp.Diff(expected, schema.QueryParams); diff != "" {
		t.Errorf("unexpected query params (-expected +actual):\n%s", diff)
	}
}

func TestParse_MissingFields(t *testing.T) {
	testCases := []struct {
		title    string
		document string
		field    string
	}{
		{title: "Empty document", document: "", field: "http"},
		{title: "Empty http table", document: "[http]", field: "url"},
		{title: "Only method", document: "http.method = \"POST\"", field: "url"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := Parse(tt.document)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tt.field {
				t.Errorf("unexpected field: expected=%s, actual=%s", tt.field, missing.Field)
			}
			if !strings.Contains(err.Error(), "missing field `"+tt.field+"`") {
				t.Errorf("unexpected message: %s", err)
			}
		})
	}
}

func TestParse_DefaultValues(t *testing.T) {
	schema, err := Parse(`http.url = "url"`)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if schema.HTTP.Method != "GET" {
		t.Errorf("unexpected method: %s", schema.HTTP.Method)
	}
	if schema.HTTP.Version != "HTTP/1.1" {
		t.Errorf("unexpected version: %s", schema.HTTP.Version)
	}
	if schema.QueryParams != nil {
		t.Errorf("unexpected query params: %v", schema.QueryParams)
	}
	if schema.Body.Kind != BodyNone {
		t.Errorf("unexpected body kind: %v", schema.Body.Kind)
	}
}

func TestParse_InvalidType(t *testing.T) {
	testCases := []struct {
		title    string
		document string
		expected InvalidTypeError
	}{
		{
			title: "Date in query params",
			document: `
			[http]
			method = "GET"
			url = "url"

			[queryparams]
			date = 1970-01-01
			`,
			expected: InvalidTypeError{Field: "params of [query_params]", InvalidType: "datetime"},
		},
		{
			title: "Table in query params",
			document: `
			http.url = "url"
			query-params.nested = { a = 1 }
			`,
			expected: InvalidTypeError{Field: "params of [query_params]", InvalidType: "table"},
		},
		{
			title: "Nested array in headers",
			document: `
			http.url = "url"
			headers.Accept = [["a"]]
			`,
			expected: InvalidTypeError{Field: "params of [headers]", InvalidType: "array"},
		},
		{
			title: "Datetime in url-encoded body",
			document: `
			http.url = "url"
			body.form_urlencoded.when = 1979-05-27T07:32:00Z
			`,
			expected: InvalidTypeError{Field: "params of [body.form_urlencoded]", InvalidType: "datetime"},
		},
		{
			title: "Table in form-data text",
			document: `
			http.url = "url"
			body.form-data.key.text = { a = 1 }
			`,
			expected: InvalidTypeError{Field: "text of [body.form_data]", InvalidType: "table"},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := Parse(tt.document)
			var invalid *InvalidTypeError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTypeError, got %v", err)
			}
			if *invalid != tt.expected {
				t.Errorf("unexpected error: expected=%+v, actual=%+v", tt.expected, *invalid)
			}
		})
	}
}

func TestParse_TypeMismatch(t *testing.T) {
	testCases := []struct {
		title    string
		document string
		field    string
	}{
		{title: "Integer url", document: `http.url = 1`, field: "http.url"},
		{title: "Boolean method", document: "http.url = \"url\"\nhttp.method = true", field: "http.method"},
		{title: "Scalar http", document: `http = "url"`, field: "http"},
		{title: "Scalar query params", document: "queryparams = 1\nhttp.url = \"url\"", field: "query_params"},
		{title: "Integer raw body", document: "http.url = \"url\"\nbody.raw = 1", field: "body.raw"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := Parse(tt.document)
			var mismatch *TypeMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected TypeMismatchError, got %v", err)
			}
			if mismatch.Field != tt.field {
				t.Errorf("unexpected field: expected=%s, actual=%s", tt.field, mismatch.Field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("message does not name the field: %s", err)
			}
		})
	}
}

func TestParse_DuplicateAlias(t *testing.T) {
	document := `
	http.url = "url"
	queryparams.a = 1
	query_params.b = 2
	`
	_, err := Parse(document)
	var duplicate *DuplicateFieldError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if duplicate.Field != "query_params" {
		t.Errorf("unexpected field: %s", duplicate.Field)
	}
}

func TestParse_InvalidSyntax(t *testing.T) {
	_, err := Parse(`http.url = `)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "parsing request document") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParse_Method(t *testing.T) {
	testCases := []struct {
		title    string
		method   string
		expected string
	}{
		{title: "Lower case", method: "post", expected: "POST"},
		{title: "Token with hyphen", method: "M-SEARCH", expected: "M-SEARCH"},
		{title: "Token with symbols", method: "x_purge!", expected: "X_PURGE!"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			schema, err := Parse("http.url = \"url\"\nhttp.method = \"" + tt.method + "\"")
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if schema.HTTP.Method != tt.expected {
				t.Errorf("unexpected method: expected=%s, actual=%s", tt.expected, schema.HTTP.Method)
			}
		})
	}
}

func TestParse_InvalidMethod(t *testing.T) {
	for _, method := range []string{"GET/POST", "GET POST", ""} {
		_, err := Parse("http.url = \"url\"\nhttp.method = \"" + method + "\"")
		var invalid *InvalidMethodError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidMethodError for %q, got %v", method, err)
		}
		if invalid.Method != method {
			t.Errorf("unexpected method: expected=%s, actual=%s", method, invalid.Method)
		}
	}
}

func TestParse_InvalidHeader(t *testing.T) {
	_, err := Parse("http.url = \"url\"\nheaders.\"Bad Header\" = \"x\"")
	var invalid *InvalidHeaderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidHeaderError, got %v", err)
	}
	if invalid.Name != "Bad Header" {
		t.Errorf("unexpected header name: %s", invalid.Name)
	}
}

func TestSchema_Request(t *testing.T) {
	// Setup
	document := `
	[http]
	url = "https://example.com/{{id}}"
	method = "put"
	version = "HTTP/1.0"

	[headers]
	Authorization = "Bearer {{token}}"
	Accept = ["application/json", "text/plain"]

	[query_params]
	size = 10
	page = "{{page}}"
	tags = ["a", "b"]

	[metadata]
	name = "update user"

	[variables]
	id = 42

	[body]
	raw = "hello"
	`
	schema, err := Parse(document)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Exercise
	request := schema.Request()

	// Verify
	expected := &input.Request{
		Method:      input.Method("PUT"),
		URL:         "https://example.com/{{id}}",
		HTTPVersion: "HTTP/1.0",
		Metadata:    map[string]string{"name": "update user"},
		Header: http.Header{
			"Authorization": []string{"Bearer {{token}}"},
			"Accept":        []string{"application/json", "text/plain"},
		},
		QueryParams: []input.QueryParam{
			{Name: "page", Value: "{{page}}"},
			{Name: "size", Value: "10"},
			{Name: "tags", Value: "a"},
			{Name: "tags", Value: "b"},
		},
		Variables: map[string]string{"id": "42"},
		Body: input.Body{
			BodyType: input.RawBody,
			Raw:      "hello",
			MIME:     "text/plain; charset=utf-8",
		},
	}
	if diff := cmp.Diff(expected, request); diff != "" {
		t.Errorf("unexpected request (-expected +actual):\n%s", diff)
	}
}

func TestPrimitiveArray_String(t *testing.T) {
	testCases := []struct {
		title    string
		array    PrimitiveArray
		expected string
	}{
		{title: "String", array: Single(NewString("hello")), expected: "hello"},
		{title: "Integer", array: Single(NewInteger(-3)), expected: "-3"},
		{title: "Float", array: Single(NewFloat(0.5)), expected: "0.5"},
		{title: "Whole float", array: Single(NewFloat(2)), expected: "2"},
		{title: "Large float", array: Single(NewFloat(1e20)), expected: "100000000000000000000"},
		{title: "Small float", array: Single(NewFloat(1.5e-7)), expected: "0.00000015"},
		{title: "Boolean", array: Single(NewBoolean(false)), expected: "false"},
		{title: "Array", array: Multiple(NewInteger(1), NewString("x")), expected: "1,x"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			if actual := tt.array.String(); actual != tt.expected {
				t.Errorf("unexpected string: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}

func TestPrimitiveArray_Equal(t *testing.T) {
	if !Single(NewInteger(1)).Equal(Single(NewInteger(1))) {
		t.Error("equal singles compare unequal")
	}
	if Single(NewInteger(1)).Equal(Multiple(NewInteger(1))) {
		t.Error("single compares equal to array")
	}
	if Single(NewInteger(1)).Equal(Single(NewFloat(1))) {
		t.Error("integer compares equal to float")
	}
	if !reflect.DeepEqual(Multiple(NewString("a")).Values(), []Primitive{NewString("a")}) {
		t.Error("unexpected values")
	}
}
