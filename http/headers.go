package http

import (
	"slices"
	"strconv"
	"strings"

	"github.com/indigo-web/inject/config"
	"github.com/indigo-web/inject/http/mime"
	"github.com/indigo-web/inject/internal/payload"
	"github.com/indigo-web/inject/internal/urlutil"
	"github.com/indigo-web/inject/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// normalizeHeaders builds a fresh storage with lowercased keys. As maps have no order, keys
// are visited sorted, so among the keys differing only in case the last one in the sorted
// order wins.
func normalizeHeaders(cfg *config.Config, opts Options, target urlutil.Resolved) Headers {
	keys := make([]string, 0, len(opts.Headers))
	for key := range opts.Headers {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	headers := kv.NewPrealloc(max(cfg.Headers.Prealloc, len(keys)+4))
	for _, key := range keys {
		headers.Set(strings.ToLower(key), opts.Headers[key])
	}

	if !headers.Has("user-agent") {
		headers.Add("user-agent", cfg.Defaults.UserAgent)
	}

	if !headers.Has("host") {
		headers.Add("host", target.HostHeader(opts.Authority, cfg.Defaults.Host))
	}

	return headers
}

// applyPayloadHeaders sets the content-type for serialized values and the content-length for
// concrete payloads, unless already set.
func applyPayloadHeaders(headers Headers, body payload.Payload) {
	if body.JSON && !headers.Has("content-type") {
		headers.Add("content-type", mime.JSON)
	}

	if body.Kind == payload.Bytes && !headers.Has("content-length") {
		headers.Add("content-length", strconv.Itoa(len(body.Data)))
	}
}
