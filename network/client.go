// Package network provides the pre-configured HTTP client shared by the catalog clients.
package network

import (
	"net/http"
	"time"

	"github.com/animeverse/animeverse/constant"
)

// Client is the HTTP client shared across the application.
var Client = New(10 * time.Second)

// New builds a client with the given overall timeout that identifies itself with the application user agent.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: newTransport()},
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// userAgentTransport stamps outgoing requests that don't carry their own User-Agent.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(req)
}
