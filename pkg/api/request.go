package api

import (
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is sent when a request does not set its own.
const DefaultUserAgent = "mimicr/1.0"

// DefaultTimeout applies to requests built without an explicit timeout.
const DefaultTimeout = 30 * time.Second

// Request describes one HTTP call: method, URL, headers, body, timeout,
// proxy, compression, and the set of status codes treated as success.
//
// A Request is built once by a step's OnRequest and is not modified by the
// engine afterwards. Each StepContext owns its own copy.
type Request struct {
	Method      string
	URL         string
	Headers     http.Header
	Body        []byte
	Timeout     time.Duration
	Proxy       string
	UserAgent   string
	Compression bool

	// StatusCodes, when non-nil, is the exhaustive list of status codes
	// accepted as success. When nil, any 2xx response is accepted.
	StatusCodes []int
}

// NewRequest creates a Request with the default timeout, compression
// enabled, and the default user agent. Refine it with the With* methods:
//
//	req := api.NewRequest(http.MethodGet, "https://example.com/robots.txt").
//	    WithTimeout(10 * time.Second).
//	    WithStatusCodes(200)
func NewRequest(method, url string) *Request {
	return &Request{
		Method:      method,
		URL:         url,
		Headers:     make(http.Header),
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Compression: true,
	}
}

// WithHeaders replaces the request headers.
func (r *Request) WithHeaders(h http.Header) *Request {
	r.Headers = h
	return r
}

// WithHeader sets a single header, replacing any existing values for key.
func (r *Request) WithHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(http.Header)
	}
	r.Headers.Set(key, value)
	return r
}

// WithBody sets the raw request body.
func (r *Request) WithBody(body []byte) *Request {
	r.Body = body
	return r
}

// WithTimeout sets the transport deadline for the request. The timeout is
// carried on the descriptor; the engine manages no timer of its own.
func (r *Request) WithTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

// WithProxy routes the request through the given proxy URL.
func (r *Request) WithProxy(proxy string) *Request {
	r.Proxy = proxy
	return r
}

// WithUserAgent overrides the default user agent.
func (r *Request) WithUserAgent(ua string) *Request {
	r.UserAgent = ua
	return r
}

// WithCompression toggles transparent response decompression.
func (r *Request) WithCompression(enabled bool) *Request {
	r.Compression = enabled
	return r
}

// WithStatusCodes restricts success to the given status codes.
func (r *Request) WithStatusCodes(codes ...int) *Request {
	r.StatusCodes = codes
	return r
}

// Clone returns a deep copy. Headers, body, and status codes are copied so
// the clone shares no mutable state with the original.
func (r *Request) Clone() *Request {
	c := *r
	if r.Headers != nil {
		c.Headers = r.Headers.Clone()
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	if r.StatusCodes != nil {
		c.StatusCodes = make([]int, len(r.StatusCodes))
		copy(c.StatusCodes, r.StatusCodes)
	}
	return &c
}

// ParseHeaders converts a newline-separated "Key: Value" block into an
// http.Header. Lines without a colon and empty lines are skipped.
//
//	h := api.ParseHeaders(`
//	    Accept: */*
//	    Accept-Language: en-US`)
func ParseHeaders(block string) http.Header {
	h := make(http.Header)
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		h.Add(key, value)
	}
	return h
}
