package requestid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint/pkg/logger"
	"github.com/dmitrymomot/blueprint/pkg/requestid"
)

// serve runs mw with an incoming header value and returns the id seen by the
// handler and the id echoed in the response.
func serve(t *testing.T, mw func(http.Handler) http.Handler, header, incoming string) (string, string) {
	t.Helper()

	var seen string
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/blueprints/contact/validate", nil)
	if incoming != "" {
		req.Header.Set(header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{name: "no header"},
		{name: "plain id", incoming: "req-42_a", reused: true},
		{name: "uuid", incoming: "550e8400-e29b-41d4-a716-446655440000", reused: true},
		{name: "spaces", incoming: "a b"},
		{name: "markup", incoming: "<script>"},
		{name: "slashes", incoming: "a/b"},
		{name: "too long", incoming: strings.Repeat("a", 129)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seen, echoed := serve(t, requestid.Middleware, requestid.Header, tt.incoming)
			require.NotEmpty(t, seen)
			assert.Equal(t, seen, echoed)
			if tt.reused {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			assert.NotEqual(t, tt.incoming, seen)
			parsed, err := uuid.Parse(seen)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	t.Run("custom header and generator", func(t *testing.T) {
		t.Parallel()

		mw := requestid.New(
			requestid.WithHeader("X-Correlation-ID"),
			requestid.WithGenerator(func() string { return "fixed" }),
		)
		seen, echoed := serve(t, mw, "X-Correlation-ID", "")
		assert.Equal(t, "fixed", seen)
		assert.Equal(t, "fixed", echoed)
	})

	t.Run("client ids can be ignored", func(t *testing.T) {
		t.Parallel()

		mw := requestid.New(
			requestid.WithTrustIncoming(false),
			requestid.WithGenerator(func() string { return "server-side" }),
		)
		seen, _ := serve(t, mw, requestid.Header, "client-side")
		assert.Equal(t, "server-side", seen)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id-1", requestid.FromContext(requestid.WithContext(context.Background(), "id-1")))
	assert.Empty(t, requestid.FromContext(context.Background()))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	h := requestid.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "handled")
	}))
	req := httptest.NewRequest(http.MethodPost, "/blueprints/contact/validate", nil)
	req.Header.Set(requestid.Header, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])

	_, ok := requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
