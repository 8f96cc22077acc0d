package exchange

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HexmosTech/reqfile/input"
)

func TestSendRequest(t *testing.T) {
	// Setup
	var received struct {
		method string
		query  string
		body   string
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received.method = r.Method
		received.query = r.URL.RawQuery
		received.body = string(b)
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	in := &input.Request{
		Method:      input.Method("PUT"),
		URL:         server.URL + "/users/1",
		QueryParams: []input.QueryParam{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}},
		Body:        input.Body{BodyType: input.RawBody, Raw: "hello", MIME: "text/plain; charset=utf-8"},
	}
	options := &Options{Timeout: 5 * time.Second}
	r, err := BuildHTTPRequest(in, options)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Exercise
	resp, err := SendRequest(r, options)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	defer resp.Body.Close()

	// Verify
	if resp.StatusCode != http.StatusFound {
		t.Errorf("redirect was followed: status=%d", resp.StatusCode)
	}
	if received.method != "PUT" {
		t.Errorf("unexpected method: %s", received.method)
	}
	if received.query != "b=2&a=1" {
		t.Errorf("unexpected query: %s", received.query)
	}
	if received.body != "hello" {
		t.Errorf("unexpected body: %s", received.body)
	}
}

func TestBuildHTTPClient(t *testing.T) {
	client, err := BuildHTTPClient(&Options{FollowRedirects: true, SkipVerify: true, ForceHTTP1: true})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if client.CheckRedirect != nil {
		t.Errorf("redirects are not followed")
	}
	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport: %T", client.Transport)
	}
	if !transport.TLSClientConfig.InsecureSkipVerify {
		t.Errorf("certificate verification not skipped")
	}
	if len(transport.TLSNextProto) != 0 {
		t.Errorf("HTTP/2 not disabled")
	}
}
