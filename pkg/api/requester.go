package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
)

// RequesterSettings holds the transport-level configuration applied to every
// request an HTTPRequester sends.
type RequesterSettings struct {
	Proxy       string
	UserAgent   string
	Compression bool
	Timeout     time.Duration
}

// HTTPRequester adapts a Request descriptor to the net/http transport. It
// owns the transport-level settings and a cookie jar shared by all requests
// it sends. Connection pooling, redirects, and TLS remain the transport's
// concern.
type HTTPRequester struct {
	Settings RequesterSettings

	jar    http.CookieJar
	client *http.Client
}

// NewHTTPRequester creates a requester with default settings and a fresh
// public-suffix-aware cookie jar.
func NewHTTPRequester() *HTTPRequester {
	// cookiejar.New never fails with a valid public suffix list.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &HTTPRequester{
		Settings: RequesterSettings{
			UserAgent:   DefaultUserAgent,
			Compression: true,
			Timeout:     DefaultTimeout,
		},
		jar: jar,
	}
}

// Configure copies the transport-relevant fields of a Request descriptor
// into the requester's settings. It must be called before the first Do.
func (r *HTTPRequester) Configure(req *Request) {
	r.Settings.Proxy = req.Proxy
	r.Settings.Compression = req.Compression
	if req.UserAgent != "" {
		r.Settings.UserAgent = req.UserAgent
	}
	if req.Timeout > 0 {
		r.Settings.Timeout = req.Timeout
	}
	r.client = nil
}

// Build turns a Request descriptor into an *http.Request bound to ctx.
func (r *HTTPRequester) Build(ctx context.Context, req *Request) (*http.Request, error) {
	var body *bytes.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	var hr *http.Request
	var err error
	if body != nil {
		hr, err = http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	} else {
		hr, err = http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for key, values := range req.Headers {
		for _, v := range values {
			hr.Header.Add(key, v)
		}
	}
	if hr.Header.Get("User-Agent") == "" {
		hr.Header.Set("User-Agent", r.Settings.UserAgent)
	}
	return hr, nil
}

// Do sends a previously built request using a client configured from the
// requester's settings.
func (r *HTTPRequester) Do(hr *http.Request) (*http.Response, error) {
	client, err := r.httpClient()
	if err != nil {
		return nil, err
	}
	return client.Do(hr)
}

// Jar exposes the cookie jar so callers can seed or inspect cookies.
func (r *HTTPRequester) Jar() http.CookieJar {
	return r.jar
}

func (r *HTTPRequester) httpClient() (*http.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	transport := &http.Transport{
		DisableCompression: !r.Settings.Compression,
	}
	if r.Settings.Proxy != "" {
		proxyURL, err := url.Parse(r.Settings.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", r.Settings.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	r.client = &http.Client{
		Transport: transport,
		Jar:       r.jar,
		Timeout:   r.Settings.Timeout,
	}
	return r.client, nil
}
