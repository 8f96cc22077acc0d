package schema

import (
	"github.com/HexmosTech/reqfile/input"
	"github.com/pkg/errors"
)

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyRaw
	BodyBinary
	BodyFormData
	BodyXFormURLEncoded
)

const (
	mimeTextPlain   = "text/plain; charset=utf-8"
	mimeOctetStream = "application/octet-stream"
)

// Body is the request body of a request file. Only the field matching Kind
// is set.
type Body struct {
	Kind     BodyKind
	Content  string
	Path     string
	FormData FormDataTable
	Form     PrimitiveTable
}

type variant struct {
	kind  BodyKind
	names []string
}

var bodyVariants = []variant{
	{kind: BodyRaw, names: []string{"raw", "text"}},
	{kind: BodyBinary, names: []string{"binary", "file"}},
	{kind: BodyFormData, names: []string{"form_data", "form-data", "multipart_form_data", "multipart-form-data"}},
	{kind: BodyXFormURLEncoded, names: []string{"form_urlencoded", "form-urlencoded", "x-www-form-urlencoded", "x_www_form_urlencoded"}},
}

var (
	bodyVariantNames     = []string{"raw", "binary", "form_data", "form_urlencoded"}
	formDataVariantNames = []string{"text", "file"}
)

func findBodyVariant(name string) (variant, bool) {
	for _, v := range bodyVariants {
		for _, n := range v.names {
			if n == name {
				return v, true
			}
		}
	}
	return variant{}, false
}

// rawBody is a body whose tables are not validated yet.
type rawBody struct {
	kind     BodyKind
	content  string
	path     string
	formData map[string]rawFormDataValue
	form     rawTable
}

type rawFormDataValue struct {
	text   interface{}
	file   string
	isFile bool
}

// decodeBody resolves the body table into exactly one variant. A document
// without a body table has no body, but a present table must not be empty.
func decodeBody(t map[string]interface{}) (rawBody, error) {
	if len(t) == 0 {
		return rawBody{}, errors.WithStack(&VariantError{Field: "body", Expected: bodyVariantNames})
	}

	keys := sortedKeys(t)
	for _, key := range keys {
		if _, ok := findBodyVariant(key); !ok {
			return rawBody{}, errors.WithStack(&UnknownVariantError{
				Field:    "body",
				Variant:  key,
				Expected: bodyVariantNames,
			})
		}
	}
	if len(keys) > 1 {
		return rawBody{}, errors.WithStack(&VariantError{Field: "body", Found: keys, Expected: bodyVariantNames})
	}

	key := keys[0]
	field := "body." + key
	v, _ := findBodyVariant(key)
	switch v.kind {
	case BodyRaw:
		content, err := asString(field, t[key])
		if err != nil {
			return rawBody{}, err
		}
		return rawBody{kind: BodyRaw, content: content}, nil
	case BodyBinary:
		path, err := asString(field, t[key])
		if err != nil {
			return rawBody{}, err
		}
		return rawBody{kind: BodyBinary, path: path}, nil
	case BodyFormData:
		table, err := asTable(field, t[key])
		if err != nil {
			return rawBody{}, err
		}
		formData := make(map[string]rawFormDataValue, len(table))
		for _, name := range sortedKeys(table) {
			value, err := decodeFormDataValue(field+"."+name, table[name])
			if err != nil {
				return rawBody{}, err
			}
			formData[name] = value
		}
		return rawBody{kind: BodyFormData, formData: formData}, nil
	default:
		table, err := asTable(field, t[key])
		if err != nil {
			return rawBody{}, err
		}
		return rawBody{kind: BodyXFormURLEncoded, form: rawTable(table)}, nil
	}
}

func decodeFormDataValue(field string, v interface{}) (rawFormDataValue, error) {
	t, err := asTable(field, v)
	if err != nil {
		return rawFormDataValue{}, err
	}

	keys := sortedKeys(t)
	for _, key := range keys {
		if key != "text" && key != "file" {
			return rawFormDataValue{}, errors.WithStack(&UnknownVariantError{
				Field:    field,
				Variant:  key,
				Expected: formDataVariantNames,
			})
		}
	}
	if len(keys) != 1 {
		return rawFormDataValue{}, errors.WithStack(&VariantError{
			Field:    field,
			Found:    keys,
			Expected: formDataVariantNames,
		})
	}

	if keys[0] == "file" {
		path, err := asString(field+".file", t["file"])
		if err != nil {
			return rawFormDataValue{}, err
		}
		return rawFormDataValue{file: path, isFile: true}, nil
	}
	return rawFormDataValue{text: t["text"]}, nil
}

// ToInput converts b into the public body model.
func (b Body) ToInput() input.Body {
	switch b.Kind {
	case BodyRaw:
		return input.Body{BodyType: input.RawBody, Raw: b.Content, MIME: mimeTextPlain}
	case BodyBinary:
		return input.Body{BodyType: input.BinaryBody, Path: b.Path, MIME: mimeOctetStream}
	case BodyFormData:
		formData := make(map[string]input.FormDataValue, len(b.FormData))
		for key, value := range b.FormData {
			formData[key] = input.FormDataValue{Value: value.String(), IsFile: value.IsFile}
		}
		return input.Body{BodyType: input.FormDataBody, FormData: formData}
	case BodyXFormURLEncoded:
		form := make(map[string]string, len(b.Form))
		for key, value := range b.Form {
			form[key] = value.String()
		}
		return input.Body{BodyType: input.FormURLEncodedBody, Form: form}
	default:
		return input.Body{BodyType: input.EmptyBody}
	}
}
