package clientip_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blueprint/pkg/clientip"
	"github.com/dmitrymomot/blueprint/pkg/logger"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		opts       []clientip.Option
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{
			name:       "cloudflare first",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			want:       "203.0.113.7",
		},
		{
			name:       "leftmost forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.1, 10.0.0.2"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.1",
		},
		{
			name:       "ipv4 mapped address",
			headers:    map[string]string{"X-Real-IP": "::ffff:198.51.100.9"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.9",
		},
		{
			name:       "untrusted headers are ignored",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			opts:       []clientip.Option{clientip.WithHeaders()},
			want:       "10.0.0.1",
		},
		{name: "nothing parses", remoteAddr: "not-an-ip", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.New(tt.opts...).Resolve(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "198.51.100.4")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "198.51.100.4", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(clientip.LoggerExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.5"), "hello")
	log.InfoContext(context.Background(), "no ip")

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "192.0.2.5", first["client_ip"])
	assert.NotContains(t, second, "client_ip")
}
