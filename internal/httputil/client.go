package httputil

import (
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// UserAgent identifies outbound requests to upstream archives.
const UserAgent = "paradecast/1.0"

// NewClient returns an HTTP client with standard timeout configuration
// and a stable User-Agent.
func NewClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: userAgentTransport{base: http.DefaultTransport},
	}
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(req)
}
