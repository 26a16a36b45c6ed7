package fixture

import (
	"path/filepath"
	"testing"

	"github.com/indigo-web/inject/http/mime"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		opts, err := Load(filepath.Join("testdata", "create_user.toml"))
		require.NoError(t, err)
		require.Equal(t, "/users?source=fixture", opts.URL)
		require.Equal(t, "post", opts.Method)
		require.Equal(t, "192.168.0.10", opts.RemoteAddress)
		require.Equal(t, "api.internal", opts.Authority)
		require.Equal(t, map[string]string{"X-Request-Id": "42"}, opts.Headers)
		require.EqualValues(t, 2, opts.Query["page"])
		require.Equal(t, map[string]any{"name": "Pavlo", "admin": false}, opts.Payload)
		require.True(t, opts.Simulate.Split)
		require.False(t, opts.Simulate.Ends())
	})

	t.Run("json with payload file", func(t *testing.T) {
		opts, err := Load(filepath.Join("testdata", "upload.json"))
		require.NoError(t, err)
		require.Equal(t, "PUT", opts.Method)
		require.Equal(t, "<svg xmlns=\"http://www.w3.org/2000/svg\"/>\n", string(opts.Payload.([]byte)))
		require.Equal(t, mime.SVG, opts.Headers["content-type"])
		require.True(t, opts.Simulate.Close)
		require.True(t, opts.Simulate.Ends())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Load("request.yaml")
		require.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("missing payload file", func(t *testing.T) {
		f, err := Decode([]byte(`{"url": "/", "payloadFile": "nope.bin"}`), JSON)
		require.NoError(t, err)
		_, err = f.Resolve(t.TempDir())
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	t.Run("explicit content-type wins", func(t *testing.T) {
		f, err := Decode([]byte(`
url = "/"
payload_file = "avatar.svg"

[headers]
Content-Type = "image/x-icon"
`), TOML)
		require.NoError(t, err)

		opts, err := f.Resolve("testdata")
		require.NoError(t, err)
		require.Equal(t, map[string]string{"Content-Type": "image/x-icon"}, opts.Headers)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode([]byte(`url = `), TOML)
		require.Error(t, err)

		_, err = Decode([]byte(`{"url": `), JSON)
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Decode(nil, "yaml")
		require.ErrorIs(t, err, ErrUnknownFormat)
	})
}
