package exchange

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/HexmosTech/reqfile/input"
	"github.com/HexmosTech/reqfile/version"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// BuildHTTPRequest turns a rendered request into an *http.Request. Bodies
// are read into memory so that GetBody can replay them.
func BuildHTTPRequest(in *input.Request, options *Options) (*http.Request, error) {
	u, err := buildURL(in)
	if err != nil {
		return nil, err
	}

	protoMajor, protoMinor, err := parseHTTPVersion(in.HTTPVersion)
	if err != nil {
		return nil, err
	}

	header := buildHTTPHeader(in)

	bodyTuple, err := buildHTTPBody(in)
	if err != nil {
		return nil, err
	}

	if header.Get("Content-Type") == "" && bodyTuple.contentType != "" {
		header.Set("Content-Type", bodyTuple.contentType)
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", "reqfile/"+version.Current().String())
	}

	r := http.Request{
		Method:     string(in.Method),
		URL:        u,
		Proto:      in.HTTPVersion,
		ProtoMajor: protoMajor,
		ProtoMinor: protoMinor,
		Header:     header,
		Host:       header.Get("Host"),
	}
	if len(bodyTuple.content) > 0 {
		content := bodyTuple.content
		r.Body = io.NopCloser(bytes.NewReader(content))
		r.ContentLength = int64(len(content))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		}
	}
	if options != nil && options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}
	return &r, nil
}

func parseHTTPVersion(v string) (int, int, error) {
	if v == "" {
		return 1, 1, nil
	}
	major, minor, ok := http.ParseHTTPVersion(v)
	if !ok {
		return 0, 0, errors.Errorf("invalid HTTP version: %s", v)
	}
	return major, minor, nil
}

// buildURL appends the query parameters to the URL in their original order.
func buildURL(in *input.Request) (*url.URL, error) {
	u, err := url.Parse(in.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("URL must be absolute: %s", in.URL)
	}

	var query strings.Builder
	query.WriteString(u.RawQuery)
	for _, param := range in.QueryParams {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(url.QueryEscape(param.Name))
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(param.Value))
	}
	u.RawQuery = query.String()
	return u, nil
}

func buildHTTPHeader(in *input.Request) http.Header {
	if in.Header == nil {
		return make(http.Header)
	}
	return in.Header.Clone()
}

type bodyTuple struct {
	content     []byte
	contentType string
}

func buildHTTPBody(in *input.Request) (bodyTuple, error) {
	switch in.Body.BodyType {
	case input.EmptyBody:
		return bodyTuple{}, nil
	case input.RawBody:
		return bodyTuple{
			content:     []byte(in.Body.Raw),
			contentType: in.Body.MIME,
		}, nil
	case input.BinaryBody:
		return buildBinaryBody(in)
	case input.FormDataBody:
		return buildMultipartBody(in)
	case input.FormURLEncodedBody:
		return buildFormBody(in)
	default:
		return bodyTuple{}, errors.Errorf("unknown body type: %v", in.Body.BodyType)
	}
}

func buildBinaryBody(in *input.Request) (bodyTuple, error) {
	content, err := os.ReadFile(in.Body.Path)
	if err != nil {
		return bodyTuple{}, errors.Wrapf(err, "reading body file '%s'", in.Body.Path)
	}
	return bodyTuple{
		content:     content,
		contentType: in.Body.MIME,
	}, nil
}

func buildMultipartBody(in *input.Request) (bodyTuple, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := maps.Keys(in.Body.FormData)
	slices.Sort(keys)
	for _, key := range keys {
		field := in.Body.FormData[key]
		if !field.IsFile {
			if err := mw.WriteField(key, field.Value); err != nil {
				return bodyTuple{}, errors.Wrapf(err, "writing form field '%s'", key)
			}
			continue
		}
		if err := writeFormFile(mw, key, field.Value); err != nil {
			return bodyTuple{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return bodyTuple{}, errors.Wrap(err, "closing multipart body")
	}
	return bodyTuple{
		content:     buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}, nil
}

func writeFormFile(mw *multipart.Writer, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening file of form field '%s'", key)
	}
	defer f.Close()

	w, err := mw.CreateFormFile(key, filepath.Base(path))
	if err != nil {
		return errors.Wrapf(err, "writing form field '%s'", key)
	}
	if _, err := io.Copy(w, f); err != nil {
		return errors.Wrapf(err, "reading file of form field '%s'", key)
	}
	return nil
}

func buildFormBody(in *input.Request) (bodyTuple, error) {
	form := url.Values{}
	for key, value := range in.Body.Form {
		form.Add(key, value)
	}
	return bodyTuple{
		content:     []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded; charset=utf-8",
	}, nil
}
