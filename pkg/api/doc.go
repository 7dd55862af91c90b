// Package api serves blueprint validation and filtering over HTTP.
//
// Routes:
//
//	GET  /healthz                        ready once blueprints are loaded
//	GET  /metrics                        Prometheus metrics (WithMetrics)
//	GET  /blueprints                     loaded blueprint names
//	GET  /blueprints/{name}              declared fields and types
//	POST /blueprints/{name}/validate     validate a payload
//	POST /blueprints/{name}/filter       filter a payload (?missing=null)
//
// Blueprint names may contain slashes ("user/register"). Payloads are read
// with the binder package, so JSON, YAML, urlencoded and multipart bodies are
// accepted. Responses use a single JSON envelope:
//
//	{"data": ...}
//	{"error": {"code": "validation_error", "message": "...", "details": {"email": ["..."]}}}
//
// Messages are localized when a translator is configured: the language comes
// from the "lang" cookie, the "lang" query parameter or Accept-Language.
package api
