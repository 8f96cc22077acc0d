package placeholder

import (
	"regexp"

	"github.com/HexmosTech/reqfile/input"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var rePlaceholder = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Discover builds the catalog of every placeholder found in req.
func Discover(req *input.Request) Catalog {
	c := Catalog{}

	c.AddAll(URL(), names(req.URL)...)

	headerNames := maps.Keys(req.Header)
	slices.Sort(headerNames)
	for _, name := range headerNames {
		for _, value := range req.Header[name] {
			c.AddAll(Header(name), names(value)...)
		}
	}

	for _, param := range req.QueryParams {
		c.AddAll(QueryParam(param.Name), names(param.Value)...)
	}

	switch req.Body.BodyType {
	case input.RawBody:
		c.AddAll(Body(), names(req.Body.Raw)...)
	case input.BinaryBody:
		c.AddAll(Body(), names(req.Body.Path)...)
	case input.FormDataBody:
		keys := maps.Keys(req.Body.FormData)
		slices.Sort(keys)
		for _, key := range keys {
			c.AddAll(BodyForm(key), names(req.Body.FormData[key].Value)...)
		}
	case input.FormURLEncodedBody:
		keys := maps.Keys(req.Body.Form)
		slices.Sort(keys)
		for _, key := range keys {
			c.AddAll(BodyForm(key), names(req.Body.Form[key])...)
		}
	}
	return c
}

func names(s string) []string {
	var ns []string
	for _, m := range rePlaceholder.FindAllStringSubmatch(s, -1) {
		ns = append(ns, m[1])
	}
	return ns
}
