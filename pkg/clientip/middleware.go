package clientip

import "net/http"

// Middleware stores the resolved client address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.Resolve(r))))
	})
}

// Middleware resolves with DefaultHeaders.
func Middleware(next http.Handler) http.Handler {
	return New().Middleware(next)
}
