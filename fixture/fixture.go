// Package fixture loads request options from TOML or JSON files, so request scenarios can be
// kept aside from the tests driving them.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/indigo-web/inject/http"
	"github.com/indigo-web/inject/http/mime"
	json "github.com/json-iterator/go"
)

var ErrUnknownFormat = errors.New("unknown fixture format")

type Format string

const (
	TOML Format = "toml"
	JSON Format = "json"
)

// Fixture is a request description. Along with ordinary options it may refer to a file whose
// content becomes the payload.
type Fixture struct {
	http.Options
	// PayloadFile is resolved relatively to the fixture itself. The content-type is guessed by
	// its extension, unless set explicitly.
	PayloadFile string `toml:"payload_file" json:"payloadFile"`
}

// FormatOf guesses the format by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode parses the fixture. Payload files are not resolved, as there's no base directory.
func Decode(data []byte, format Format) (f Fixture, err error) {
	switch format {
	case TOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	case JSON:
		err = json.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &f)
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return f, fmt.Errorf("decode %s fixture: %w", format, err)
	}

	return f, nil
}

// Load reads the fixture from the file and returns ready-to-use options.
func Load(path string) (http.Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return http.Options{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return http.Options{}, err
	}

	f, err := Decode(data, format)
	if err != nil {
		return http.Options{}, err
	}

	return f.Resolve(filepath.Dir(path))
}

// Resolve reads the payload file (if any) relatively to the base directory.
func (f Fixture) Resolve(base string) (http.Options, error) {
	opts := f.Options
	if len(f.PayloadFile) == 0 {
		return opts, nil
	}

	path := f.PayloadFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read payload file: %w", err)
	}

	opts.Payload = data
	if !hasHeader(opts.Headers, "content-type") {
		headers := make(map[string]string, len(opts.Headers)+1)
		for key, value := range opts.Headers {
			headers[key] = value
		}

		headers["content-type"] = mime.ByFilename(path)
		opts.Headers = headers
	}

	return opts, nil
}

func hasHeader(headers map[string]string, key string) bool {
	for k := range headers {
		if strings.EqualFold(k, key) {
			return true
		}
	}

	return false
}
