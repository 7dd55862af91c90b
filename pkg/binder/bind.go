package binder

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// DefaultMaxBodySize bounds request bodies and the in-memory part of
// multipart forms (10MB).
const DefaultMaxBodySize = 10 << 20

const (
	MIMEApplicationJSON  = "application/json"
	MIMEApplicationForm  = "application/x-www-form-urlencoded"
	MIMEMultipartForm    = "multipart/form-data"
	MIMEApplicationYAML  = "application/yaml"
	MIMEApplicationXYAML = "application/x-yaml"
	MIMETextYAML         = "text/yaml"
)

type config struct {
	maxBodySize int64
}

// Option configures binding.
type Option func(*config)

// WithMaxBodySize sets the body size limit. Values below 1 are ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind decodes the request body according to its content type. A request
// without body yields an empty map.
func Bind(r *http.Request, opts ...Option) (*data.Map, error) {
	cfg := newConfig(opts)

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			return data.NewMap(), nil
		}
		return nil, ErrMissingContentType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	switch mediaType {
	case MIMEApplicationJSON:
		return bindJSON(r, cfg)
	case MIMEApplicationForm:
		return bindForm(r, cfg)
	case MIMEMultipartForm:
		return bindMultipart(r, cfg)
	case MIMEApplicationYAML, MIMEApplicationXYAML, MIMETextYAML:
		return bindYAML(r, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// JSON decodes a JSON object body regardless of the content type header.
func JSON(r *http.Request, opts ...Option) (*data.Map, error) {
	return bindJSON(r, newConfig(opts))
}

func bindJSON(r *http.Request, cfg *config) (*data.Map, error) {
	body, err := readBody(r, cfg.maxBodySize)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return data.NewMap(), nil
	}

	m, err := data.FromJSON(body)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return m, nil
}

func bindYAML(r *http.Request, cfg *config) (*data.Map, error) {
	body, err := readBody(r, cfg.maxBodySize)
	if err != nil {
		return nil, err
	}

	m, err := data.FromYAML(body)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return m, nil
}

func bindForm(r *http.Request, cfg *config) (*data.Map, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
	if err := r.ParseForm(); err != nil {
		return nil, classify(ErrFailedToParseForm, err)
	}
	return data.FromValues(r.PostForm), nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}

func classify(kind, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	return errors.Join(kind, err)
}
