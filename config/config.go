package config

import (
	"github.com/rs/zerolog"
)

type (
	Defaults struct {
		// Method is used whenever the request method is omitted.
		Method string
		// RemoteAddress is exposed via the request connection, unless explicitly set.
		RemoteAddress string
		// UserAgent is the value of the user-agent header, unless explicitly set.
		UserAgent string
		// Host is the last resort for the host header, when neither the URL nor the
		// authority are able to provide one.
		Host string
	}

	Body struct {
		// DrainBufferSize is the size of a buffer used to read from a stream-like payload
		// while preparing the request.
		DrainBufferSize int
		// DrainPrealloc is the initial capacity of the buffer the whole stream-like payload
		// is accumulated into.
		DrainPrealloc int
	}

	Headers struct {
		// Prealloc is the initial capacity of the request headers storage.
		Prealloc int
	}
)

// Config holds defaults and pre-allocations used while synthesizing requests.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Defaults Defaults
	Headers  Headers
	Body     Body
	// Logger receives debug traces of the body emitter. Disabled by default.
	Logger *zerolog.Logger
}

// Default returns default config.
func Default() *Config {
	nop := zerolog.Nop()

	return &Config{
		Defaults: Defaults{
			Method:        "GET",
			RemoteAddress: "127.0.0.1",
			UserAgent:     "indigo-inject",
			Host:          "localhost:80",
		},
		Headers: Headers{
			Prealloc: 8,
		},
		Body: Body{
			DrainBufferSize: 4 * 1024,
			DrainPrealloc:   1024,
		},
		Logger: &nop,
	}
}
