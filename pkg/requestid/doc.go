// Package requestid attaches a correlation identifier to every HTTP request
// served by the blueprint API.
//
// The middleware reuses a well-formed client supplied "X-Request-ID" header
// or generates a UUIDv7, stores it in the request context and echoes it in
// the response header. Malformed ids are replaced silently. New accepts a
// different header name, a custom generator, or distrust of client ids.
//
// LoggerExtractor plugs into logger.WithContextExtractors so every record
// logged with the request context carries a "request_id" attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
