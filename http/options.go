package http

import (
	"net/url"
)

// Simulate controls edge-case delivery behaviours of the request body.
type Simulate struct {
	// End tells whether the end of stream must be signalled after the body was delivered.
	// Nil means true.
	End *bool `toml:"end,omitempty" json:"end,omitempty"`
	// Split delivers the body in two chunks: the first byte and the rest.
	Split bool `toml:"split" json:"split"`
	// Error emits ErrSimulated after the body was delivered.
	Error bool `toml:"error" json:"error"`
	// Close emits the close event after the body was delivered.
	Close bool `toml:"close" json:"close"`
}

// Ends reports whether the end of stream is going to be signalled.
func (s Simulate) Ends() bool {
	return s.End == nil || *s.End
}

// Options describe the request to be synthesized. They are read once and never modified.
type Options struct {
	// URL is the request target. Can be either absolute or just a path with an optional query.
	URL string `toml:"url" json:"url"`
	// Target is a structured alternative to URL. Wins if set.
	Target *url.URL `toml:"-" json:"-"`
	// Method is case-insensitive and defaults to config.Defaults.Method.
	Method        string `toml:"method" json:"method"`
	RemoteAddress string `toml:"remote_address" json:"remoteAddress"`
	// Headers keys are case-insensitive.
	Headers map[string]string `toml:"headers" json:"headers"`
	// Query is merged into the query of the URL, overriding its values by the same keys.
	// Values are either strings, slices of strings (repeated keys) or anything printable.
	Query map[string]any `toml:"query" json:"query"`
	// Payload is the request body: io.Reader, []byte, string or any value serializable into JSON.
	Payload any `toml:"payload" json:"payload"`
	// Body is an alias for the Payload, used only if Payload is nil.
	//
	// Deprecated: use Payload instead.
	Body any `toml:"body" json:"body"`
	// Authority is the host header fallback, used when the URL carries no host information.
	Authority string   `toml:"authority" json:"authority"`
	Simulate  Simulate `toml:"simulate" json:"simulate"`
}

func (o Options) payload() any {
	if o.Payload != nil {
		return o.Payload
	}

	return o.Body
}
