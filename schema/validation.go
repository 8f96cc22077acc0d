package schema

import (
	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

// validateTypes narrows the loosely typed tables of doc into primitives.
// Any value outside string, integer, float, boolean or an array of those is
// rejected, nothing is coerced.
func validateTypes(doc *document) (*Schema, error) {
	s := Schema{HTTP: doc.http}

	var err error
	if s.Headers, err = narrowTable("params of [headers]", doc.headers); err != nil {
		return nil, err
	}
	if err := validateHeaders(s.Headers); err != nil {
		return nil, err
	}
	if s.QueryParams, err = narrowTable("params of [query_params]", doc.queryParams); err != nil {
		return nil, err
	}
	if s.Metadata, err = narrowTable("params of [metadata]", doc.metadata); err != nil {
		return nil, err
	}
	if s.Variables, err = narrowTable("params of [variables]", doc.variables); err != nil {
		return nil, err
	}
	if s.Body, err = narrowBody(doc.body); err != nil {
		return nil, err
	}
	return &s, nil
}

func narrowBody(b rawBody) (Body, error) {
	switch b.kind {
	case BodyRaw:
		return Body{Kind: BodyRaw, Content: b.content}, nil
	case BodyBinary:
		return Body{Kind: BodyBinary, Path: b.path}, nil
	case BodyFormData:
		table := make(FormDataTable, len(b.formData))
		for _, key := range sortedKeys(b.formData) {
			value := b.formData[key]
			if value.isFile {
				table[key] = FileValue(value.file)
				continue
			}
			text, err := narrowArray("text of [body.form_data]", value.text)
			if err != nil {
				return Body{}, err
			}
			table[key] = TextValue(text)
		}
		return Body{Kind: BodyFormData, FormData: table}, nil
	case BodyXFormURLEncoded:
		form, err := narrowTable("params of [body.form_urlencoded]", b.form)
		if err != nil {
			return Body{}, err
		}
		return Body{Kind: BodyXFormURLEncoded, Form: form}, nil
	default:
		return Body{Kind: BodyNone}, nil
	}
}

func narrowTable(field string, t rawTable) (PrimitiveTable, error) {
	if t == nil {
		return nil, nil
	}
	table := make(PrimitiveTable, len(t))
	for _, key := range sortedKeys(t) {
		a, err := narrowArray(field, t[key])
		if err != nil {
			return nil, err
		}
		table[key] = a
	}
	return table, nil
}

func narrowArray(field string, v interface{}) (PrimitiveArray, error) {
	elements, ok := v.([]interface{})
	if !ok {
		p, err := narrowPrimitive(field, v)
		if err != nil {
			return PrimitiveArray{}, err
		}
		return Single(p), nil
	}

	ps := make([]Primitive, 0, len(elements))
	for _, e := range elements {
		p, err := narrowPrimitive(field, e)
		if err != nil {
			return PrimitiveArray{}, err
		}
		ps = append(ps, p)
	}
	return Multiple(ps...), nil
}

func narrowPrimitive(field string, v interface{}) (Primitive, error) {
	switch v := v.(type) {
	case string:
		return NewString(v), nil
	case int64:
		return NewInteger(v), nil
	case float64:
		return NewFloat(v), nil
	case bool:
		return NewBoolean(v), nil
	default:
		return Primitive{}, errors.WithStack(&InvalidTypeError{Field: field, InvalidType: typeName(v)})
	}
}

func validateHeaders(headers PrimitiveTable) error {
	for _, name := range headers.Keys() {
		if !httpguts.ValidHeaderFieldName(name) {
			return errors.WithStack(&InvalidHeaderError{Name: name})
		}
		for _, value := range headers[name].Strings() {
			if !httpguts.ValidHeaderFieldValue(value) {
				return errors.WithStack(&InvalidHeaderError{Name: name, Value: value})
			}
		}
	}
	return nil
}
