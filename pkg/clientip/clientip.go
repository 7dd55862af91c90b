package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address of a request.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the trusted proxy headers. No headers means only
// RemoteAddr is used, which is right when the API is not behind a proxy.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

// New creates a Resolver trusting DefaultHeaders unless told otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetIP resolves the client address with DefaultHeaders.
func GetIP(r *http.Request) string {
	return New().Resolve(r)
}

// Resolve returns the first valid address found in the trusted headers or,
// failing that, the host part of RemoteAddr. It returns "" when nothing
// parses.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, header := range res.headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// Forwarded lists put the original client first.
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
