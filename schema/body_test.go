package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/HexmosTech/reqfile/input"
	"github.com/google/go-cmp/cmp"
)

func parseBody(t *testing.T, document string) (Body, error) {
	t.Helper()
	schema, err := Parse("http.url = \"url\"\n" + document)
	if err != nil {
		return Body{}, err
	}
	return schema.Body, nil
}

func TestBody_Deserialize(t *testing.T) {
	testCases := []struct {
		title    string
		document string
		expected Body
	}{
		{
			title:    "Raw",
			document: `body.raw = "content"`,
			expected: Body{Kind: BodyRaw, Content: "content"},
		},
		{
			title:    "Raw via text alias",
			document: `body.text = "content"`,
			expected: Body{Kind: BodyRaw, Content: "content"},
		},
		{
			title:    "Binary via file alias",
			document: `body.file = "/tmp/image.png"`,
			expected: Body{Kind: BodyBinary, Path: "/tmp/image.png"},
		},
		{
			title:    "Form urlencoded",
			document: `body.form-urlencoded = { type = "integer", value = 1 }`,
			expected: Body{Kind: BodyXFormURLEncoded, Form: PrimitiveTable{
				"type":  Single(NewString("integer")),
				"value": Single(NewInteger(1)),
			}},
		},
		{
			title:    "Form urlencoded via x-www alias",
			document: `body.x-www-form-urlencoded = { ids = [1, 2] }`,
			expected: Body{Kind: BodyXFormURLEncoded, Form: PrimitiveTable{
				"ids": Multiple(NewInteger(1), NewInteger(2)),
			}},
		},
		{
			title: "Form data",
			document: `
			[body.form_data]
			raw.text = "raw"
			binary.file = "path"
			`,
			expected: Body{Kind: BodyFormData, FormData: FormDataTable{
				"raw":    TextValue(Single(NewString("raw"))),
				"binary": FileValue("path"),
			}},
		},
		{
			title:    "Form data via multipart alias",
			document: `body.multipart-form-data.count.text = 3`,
			expected: Body{Kind: BodyFormData, FormData: FormDataTable{
				"count": TextValue(Single(NewInteger(3))),
			}},
		},
		{
			title:    "No body",
			document: ``,
			expected: Body{Kind: BodyNone},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			body, err := parseBody(t, tt.document)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if diff := cmp.Diff(tt.expected, body); diff != "" {
				t.Errorf("unexpected body (-expected +actual):\n%s", diff)
			}
		})
	}
}

func TestBody_OnlyOneType(t *testing.T) {
	testCases := []struct {
		title    string
		document string
		field    string
	}{
		{
			title: "Raw and binary",
			document: `
			[body]
			raw = "raw"
			binary = "file"
			`,
			field: "body",
		},
		{
			title: "Alias and canonical name",
			document: `
			[body]
			text = "raw"
			raw = "raw"
			`,
			field: "body",
		},
		{
			title: "Text and file in one form-data entry",
			document: `
			[body.form-data]
			key.text = 2
			key.file = "path"
			`,
			field: "body.form-data.key",
		},
		{
			title:    "Empty body table",
			document: `[body]`,
			field:    "body",
		},
		{
			title: "Empty form-data entry",
			document: `
			[body.form-data.key]
			`,
			field: "body.form-data.key",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, err := parseBody(t, tt.document)
			var variantErr *VariantError
			if !errors.As(err, &variantErr) {
				t.Fatalf("expected VariantError, got %v", err)
			}
			if variantErr.Field != tt.field {
				t.Errorf("unexpected field: expected=%s, actual=%s", tt.field, variantErr.Field)
			}
			if !strings.Contains(err.Error(), "wanted exactly 1 element") {
				t.Errorf("unexpected message: %s", err)
			}
		})
	}
}

func TestBody_UnknownVariant(t *testing.T) {
	_, err := parseBody(t, `body.json = "{}"`)
	var unknown *UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownVariantError, got %v", err)
	}
	if unknown.Variant != "json" {
		t.Errorf("unexpected variant: %s", unknown.Variant)
	}
	if !strings.Contains(err.Error(), "`form_urlencoded`") {
		t.Errorf("message does not list the expected variants: %s", err)
	}
}

func TestBody_ToInput(t *testing.T) {
	testCases := []struct {
		title    string
		body     Body
		expected input.Body
	}{
		{
			title:    "None",
			body:     Body{Kind: BodyNone},
			expected: input.Body{BodyType: input.EmptyBody},
		},
		{
			title:    "Raw",
			body:     Body{Kind: BodyRaw, Content: "hello"},
			expected: input.Body{BodyType: input.RawBody, Raw: "hello", MIME: "text/plain; charset=utf-8"},
		},
		{
			title:    "Binary",
			body:     Body{Kind: BodyBinary, Path: "/tmp/a.bin"},
			expected: input.Body{BodyType: input.BinaryBody, Path: "/tmp/a.bin", MIME: "application/octet-stream"},
		},
		{
			title: "Form data",
			body: Body{Kind: BodyFormData, FormData: FormDataTable{
				"name":  TextValue(Single(NewString("{{name}}"))),
				"ids":   TextValue(Multiple(NewInteger(1), NewInteger(2))),
				"photo": FileValue("{{path}}/photo.png"),
			}},
			expected: input.Body{BodyType: input.FormDataBody, FormData: map[string]input.FormDataValue{
				"name":  {Value: "{{name}}"},
				"ids":   {Value: "1,2"},
				"photo": {Value: "{{path}}/photo.png", IsFile: true},
			}},
		},
		{
			title: "Form urlencoded",
			body: Body{Kind: BodyXFormURLEncoded, Form: PrimitiveTable{
				"page":  Single(NewInteger(2)),
				"exact": Single(NewBoolean(true)),
			}},
			expected: input.Body{BodyType: input.FormURLEncodedBody, Form: map[string]string{
				"page":  "2",
				"exact": "true",
			}},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.body.ToInput()); diff != "" {
				t.Errorf("unexpected body (-expected +actual):\n%s", diff)
			}
		})
	}
}
