package http

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/inject/config"
	"github.com/indigo-web/inject/internal/payload"
	"github.com/indigo-web/inject/internal/urlutil"
	"github.com/indigo-web/inject/transport/dummy"
	"github.com/rs/zerolog"
)

const HTTPVersion = "1.1"

// Request is a synthesized inbound request. Its body is never read from anywhere, but emitted
// by the request itself on pulls, exactly once.
type Request struct {
	// URL is the resolved request target: path and, if any, the merged query.
	URL string
	// HTTPVersion is always "1.1".
	HTTPVersion string
	// Method is always uppercased.
	Method string
	// Headers hold lowercased keys only. Must not be accessed concurrently with the preparation
	// of a stream-like payload, as it may set the content-length.
	Headers Headers
	// Connection stands for the socket the request came from.
	Connection *dummy.Conn

	cfg         *config.Config
	log         zerolog.Logger
	payload     payload.Payload
	simulate    Simulate
	isDone      atomic.Bool
	state       atomic.Uint32
	prepared    chan struct{}
	prepareOnce sync.Once
	prepareErr  error
}

// NewRequest synthesizes a request. The only possible errors are a malformed URL and a payload
// which cannot be serialized into JSON.
func NewRequest(cfg *config.Config, opts Options) (*Request, error) {
	target, err := urlutil.Resolve(opts.URL, opts.Target, opts.Query)
	if err != nil {
		return nil, err
	}

	body, err := payload.Coerce(opts.payload())
	if err != nil {
		return nil, err
	}

	method := opts.Method
	if len(method) == 0 {
		method = cfg.Defaults.Method
	}

	remote := opts.RemoteAddress
	if len(remote) == 0 {
		remote = cfg.Defaults.RemoteAddress
	}

	headers := normalizeHeaders(cfg, opts, target)
	applyPayloadHeaders(headers, body)

	request := &Request{
		URL:         target.Path,
		HTTPVersion: HTTPVersion,
		Method:      strings.ToUpper(method),
		Headers:     headers,
		Connection:  dummy.NewConn(remote),
		cfg:         cfg,
		payload:     body,
		simulate:    opts.Simulate,
		prepared:    make(chan struct{}),
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	request.log = logger.With().
		Str("method", request.Method).
		Str("url", request.URL).
		Logger()

	if body.Kind == payload.Pending {
		request.state.Store(uint32(Pending))
	} else {
		request.state.Store(uint32(Ready))
		close(request.prepared)
	}

	return request, nil
}

// State returns the current state of the body emitter.
func (r *Request) State() State {
	return State(r.state.Load())
}

// IsDone tells whether the body was already pulled.
func (r *Request) IsDone() bool {
	return r.isDone.Load()
}

// Simulation returns the simulation options the request was created with.
func (r *Request) Simulation() Simulate {
	return r.simulate
}
