package inject

import (
	"context"
	"fmt"

	"github.com/indigo-web/inject/config"
	"github.com/indigo-web/inject/fixture"
	"github.com/indigo-web/inject/http"
	"github.com/rs/zerolog"
)

// Injector synthesizes requests sharing the same config.
type Injector struct {
	cfg *config.Config
}

// New returns an Injector with the default config.
func New() *Injector {
	return &Injector{
		cfg: config.Default(),
	}
}

// Tune replaces the config. Nil resets it to the default one.
func (i *Injector) Tune(cfg *config.Config) *Injector {
	if cfg == nil {
		cfg = config.Default()
	}

	i.cfg = cfg
	return i
}

// Logger sets the logger tracing the body emission of all the requests made afterwards.
func (i *Injector) Logger(logger zerolog.Logger) *Injector {
	i.cfg.Logger = &logger
	return i
}

// Config exposes the current config.
func (i *Injector) Config() *config.Config {
	return i.cfg
}

// Request synthesizes a request. Stream-like payloads must be prepared before pulling the body.
func (i *Injector) Request(opts http.Options) (*http.Request, error) {
	return http.NewRequest(i.cfg, opts)
}

// Prepared synthesizes a request and waits until it's ready to be pulled.
func (i *Injector) Prepared(ctx context.Context, opts http.Options) (*http.Request, error) {
	request, err := i.Request(opts)
	if err != nil {
		return nil, err
	}

	if err = request.PrepareContext(ctx); err != nil {
		return nil, err
	}

	return request, nil
}

// Fixture loads the options from a TOML or JSON file and returns a prepared request.
func (i *Injector) Fixture(ctx context.Context, path string) (*http.Request, error) {
	opts, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}

	return i.Prepared(ctx, opts)
}

// Request synthesizes a request using the default config.
func Request(opts http.Options) (*http.Request, error) {
	return New().Request(opts)
}

// MustRequest is like Request, but panics on error. Handy for static options in tests.
func MustRequest(opts http.Options) *http.Request {
	request, err := Request(opts)
	if err != nil {
		panic(fmt.Errorf("inject: %w", err))
	}

	return request
}
