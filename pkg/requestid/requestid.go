package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default request id header.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Generate returns a time ordered UUID (v7), so ids sort with log time.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type options struct {
	header   string
	generate func() string
	trust    bool
}

// Option configures the middleware.
type Option func(*options)

// WithHeader reads and writes the id under name instead of X-Request-ID.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithGenerator replaces Generate.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// WithTrustIncoming controls whether a well-formed client id is reused.
// It is on by default.
func WithTrustIncoming(trust bool) Option {
	return func(o *options) { o.trust = trust }
}

// New returns middleware that stores the request id in the context and
// echoes it in the response header. Client ids longer than 128 characters or
// with characters outside [a-zA-Z0-9_-] are replaced.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, generate: Generate, trust: true}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !o.trust || !valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with the defaults.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
