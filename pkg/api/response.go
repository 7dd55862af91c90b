package api

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/binder"
	"github.com/dmitrymomot/blueprint/pkg/loader"
)

// JSONResponse is the envelope of every API response.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithStatus sets a custom HTTP status code.
func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithMeta adds metadata to the response.
func WithMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v as the response data.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as an error envelope with the matching status.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{}
	r.body.Error, r.status = errorToDetail(err)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorToDetail maps domain and transport errors to a status and detail.
// Unknown errors are reported without their message.
func errorToDetail(err error) (*ErrorDetail, int) {
	var valErr blueprint.ValidationError
	if errors.As(err, &valErr) {
		detail := &ErrorDetail{Code: CodeValidation, Message: "validation failed"}
		if len(valErr) > 0 {
			detail.Details = make(map[string][]string, len(valErr))
			maps.Copy(detail.Details, valErr)
		}
		return detail, http.StatusUnprocessableEntity
	}

	var violation *blueprint.SchemaViolationError
	if errors.As(err, &violation) {
		return &ErrorDetail{
			Code:    CodeSchemaViolation,
			Message: violation.Error(),
			Details: map[string][]string{violation.Path: {violation.Error()}},
		}, http.StatusBadRequest
	}

	var httpErr HTTPError
	switch {
	case errors.Is(err, blueprint.ErrMaxDepthExceeded), errors.Is(err, blueprint.ErrCyclicData):
		return &ErrorDetail{Code: CodeMalformedData, Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, loader.ErrBlueprintNotFound):
		return &ErrorDetail{Code: CodeBlueprintNotFound, Message: err.Error()}, http.StatusNotFound
	case errors.Is(err, binder.ErrBodyTooLarge):
		httpErr = ErrRequestEntityTooLarge
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		httpErr = ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseYAML),
		errors.Is(err, binder.ErrFailedToParseForm):
		return &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}, http.StatusBadRequest
	case errors.As(err, &httpErr):
	default:
		httpErr = ErrInternalServerError
	}
	return &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}, httpErr.Code
}
