package exchange

import (
	"net/http"

	"github.com/pkg/errors"
)

// SendRequest sends r with a client configured by options.
func SendRequest(r *http.Request, options *Options) (*http.Response, error) {
	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}

	return resp, nil
}
