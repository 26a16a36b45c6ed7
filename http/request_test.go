package http

import (
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/indigo-web/inject/config"
	"github.com/indigo-web/inject/http/mime"
	"github.com/indigo-web/inject/internal/payload"
	"github.com/indigo-web/inject/internal/urlutil"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, opts Options) *Request {
	request, err := NewRequest(config.Default(), opts)
	require.NoError(t, err)
	return request
}

func TestNewRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/"})
		require.Equal(t, "/", request.URL)
		require.Equal(t, "1.1", request.HTTPVersion)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "127.0.0.1", request.Connection.RemoteAddress)
		require.Equal(t, "indigo-inject", request.Headers.Value("user-agent"))
		require.Equal(t, "localhost:80", request.Headers.Value("host"))
		require.False(t, request.Headers.Has("content-length"))
		require.False(t, request.Headers.Has("content-type"))
		require.Equal(t, Ready, request.State())
		require.False(t, request.IsDone())
	})

	t.Run("method is uppercased", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Method: "pAtCh"})
		require.Equal(t, "PATCH", request.Method)
	})

	t.Run("remote address", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", RemoteAddress: "10.0.0.1"})
		require.Equal(t, "10.0.0.1", request.Connection.RemoteAddress)
		require.Equal(t, "tcp", request.Connection.RemoteAddr().Network())
	})

	t.Run("query merge", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/x?a=1", Query: map[string]any{"b": 2}})
		require.Equal(t, "/x?a=1&b=2", request.URL)
	})

	t.Run("structured URL", func(t *testing.T) {
		request := newRequest(t, Options{Target: &url.URL{
			Scheme: "https",
			Host:   "example.com",
			Path:   "/api",
		}})
		require.Equal(t, "/api", request.URL)
		require.Equal(t, "example.com:443", request.Headers.Value("host"))
	})

	t.Run("malformed URL", func(t *testing.T) {
		_, err := NewRequest(config.Default(), Options{URL: "http://[::1"})
		require.ErrorIs(t, err, urlutil.ErrBadURL)
	})

	t.Run("unserializable payload", func(t *testing.T) {
		_, err := NewRequest(config.Default(), Options{URL: "/", Payload: func() {}})
		require.ErrorIs(t, err, payload.ErrPayload)
	})
}

func TestHeaders(t *testing.T) {
	t.Run("lowercased", func(t *testing.T) {
		request := newRequest(t, Options{
			URL: "/",
			Headers: map[string]string{
				"X-Custom":     "1",
				"Content-TYPE": "text/plain",
			},
		})

		for key := range request.Headers.Keys() {
			require.Equal(t, strings.ToLower(key), key)
		}

		require.Equal(t, "1", request.Headers.Value("x-custom"))
		require.Equal(t, "text/plain", request.Headers.Value("content-type"))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		request := newRequest(t, Options{
			URL: "/",
			Headers: map[string]string{
				"X-Token": "first",
				"x-token": "second",
			},
		})

		require.Equal(t, []string{"second"}, slices.Collect(request.Headers.Values("x-token")))
	})

	t.Run("host from port", func(t *testing.T) {
		request := newRequest(t, Options{URL: "http://example.com:8080/"})
		require.Equal(t, "example.com:8080", request.Headers.Value("host"))
	})

	t.Run("host from scheme", func(t *testing.T) {
		request := newRequest(t, Options{URL: "http://example.com/"})
		require.Equal(t, "example.com:80", request.Headers.Value("host"))
	})

	t.Run("host from authority", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Authority: "api.internal"})
		require.Equal(t, "api.internal", request.Headers.Value("host"))
	})

	t.Run("explicit host is preserved", func(t *testing.T) {
		request := newRequest(t, Options{
			URL:       "https://example.com:8443/",
			Authority: "api.internal",
			Headers:   map[string]string{"HoSt": "custom.host"},
		})
		require.Equal(t, []string{"custom.host"}, slices.Collect(request.Headers.Values("host")))
	})

	t.Run("explicit user-agent is preserved", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Headers: map[string]string{"User-Agent": "curl/8.0"}})
		require.Equal(t, "curl/8.0", request.Headers.Value("user-agent"))
	})

	t.Run("caller headers are not mutated", func(t *testing.T) {
		headers := map[string]string{"X-Custom": "1"}
		newRequest(t, Options{URL: "/", Headers: headers, Payload: "hello"})
		require.Equal(t, map[string]string{"X-Custom": "1"}, headers)
	})
}

func TestPayload(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Payload: "hello"})
		require.Equal(t, "5", request.Headers.Value("content-length"))
		require.False(t, request.Headers.Has("content-type"))
	})

	t.Run("json", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Payload: map[string]int{"a": 1}})
		require.Equal(t, mime.JSON, request.Headers.Value("content-type"))
		require.Equal(t, "7", request.Headers.Value("content-length"))
		require.Equal(t, `{"a":1}`, string(request.payload.Data))
	})

	t.Run("json keeps explicit content-type", func(t *testing.T) {
		request := newRequest(t, Options{
			URL:     "/",
			Payload: []int{1, 2, 3},
			Headers: map[string]string{"Content-Type": "application/vnd.api+json"},
		})
		require.Equal(t, "application/vnd.api+json", request.Headers.Value("content-type"))
		require.Equal(t, "[1,2,3]", string(request.payload.Data))
	})

	t.Run("explicit content-length is kept", func(t *testing.T) {
		request := newRequest(t, Options{
			URL:     "/",
			Payload: "hello",
			Headers: map[string]string{"Content-Length": "100"},
		})
		require.Equal(t, "100", request.Headers.Value("content-length"))
	})

	t.Run("body alias", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Body: "from body"})
		require.Equal(t, "from body", string(request.payload.Data))
	})

	t.Run("payload wins over body", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Payload: "payload", Body: "body"})
		require.Equal(t, "payload", string(request.payload.Data))
	})

	t.Run("stream is pending", func(t *testing.T) {
		request := newRequest(t, Options{URL: "/", Payload: strings.NewReader("hello")})
		require.Equal(t, Pending, request.State())
		require.False(t, request.Headers.Has("content-length"))
	})
}
