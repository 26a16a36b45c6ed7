package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/indigo-web/inject/kv"
)

var ErrBadURL = errors.New("malformed request URL")

// Resolved holds the components of a request target, which are later used to derive default
// headers.
type Resolved struct {
	// Path is the request target as it must appear in the request line: escaped path and,
	// if any, the query.
	Path     string
	Scheme   string
	Host     string
	Hostname string
	Port     string
}

// Resolve parses the URL (the structured form wins if non-nil) and merges the query mapping
// into its own query. Values from the mapping override the ones with the same key. A mapping
// producing no pairs at all leaves the query string intact.
func Resolve(raw string, target *url.URL, query map[string]any) (Resolved, error) {
	if target != nil {
		raw = target.String()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: %w", ErrBadURL, err)
	}

	resolved := Resolved{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Hostname: u.Hostname(),
		Port:     u.Port(),
	}

	path := u.EscapedPath()
	if len(path) == 0 {
		path = "/"
	}

	if !contributes(query) {
		if len(u.RawQuery) > 0 || u.ForceQuery {
			path += "?" + u.RawQuery
		}

		resolved.Path = path
		return resolved, nil
	}

	merged := Encode(Merge(ParseQuery(u.RawQuery), query))
	if len(merged) > 0 {
		path += "?" + merged
	}

	resolved.Path = path
	return resolved, nil
}

// HostHeader derives the host header value. Explicit port wins, then the scheme default port,
// then the authority and finally the fallback.
func (r Resolved) HostHeader(authority, fallback string) string {
	switch {
	case len(r.Port) > 0:
		return r.Host
	case len(r.Scheme) > 0:
		if strings.EqualFold(r.Scheme, "https") {
			return r.Hostname + ":443"
		}

		return r.Hostname + ":80"
	case len(authority) > 0:
		return authority
	default:
		return fallback
	}
}

// ParseQuery splits the raw query into pairs, preserving their order. Malformed escapes are
// kept as they are.
func ParseQuery(raw string) *kv.Storage {
	params := kv.New()

	for len(raw) > 0 {
		var param string
		param, raw, _ = strings.Cut(raw, "&")
		if len(param) == 0 {
			continue
		}

		key, value, _ := strings.Cut(param, "=")
		params.Add(unescape(key), unescape(value))
	}

	return params
}

// Merge overlays the mapping onto the params. Keys are compared case-sensitively. Overridden
// keys keep the position of their first occurrence, new keys are appended in sorted order.
func Merge(params *kv.Storage, query map[string]any) *kv.Storage {
	merged := kv.NewPrealloc(params.Len() + len(query))
	seen := make(map[string]bool, len(query))

	for _, pair := range params.Expose() {
		value, overridden := query[pair.Key]
		if !overridden {
			merged.Add(pair.Key, pair.Value)
			continue
		}

		if !seen[pair.Key] {
			seen[pair.Key] = true
			addValues(merged, pair.Key, value)
		}
	}

	keys := make([]string, 0, len(query))
	for key := range query {
		if !seen[key] {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	for _, key := range keys {
		addValues(merged, key, query[key])
	}

	return merged
}

// Encode serializes params into an urlencoded query string.
func Encode(params *kv.Storage) string {
	var b strings.Builder

	for key, value := range params.Pairs() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	return b.String()
}

// contributes tells whether at least a single pair is produced by the mapping. Empty slices
// produce nothing.
func contributes(query map[string]any) bool {
	for _, value := range query {
		switch v := value.(type) {
		case []string:
			if len(v) > 0 {
				return true
			}
		case []any:
			if len(v) > 0 {
				return true
			}
		default:
			return true
		}
	}

	return false
}

func addValues(params *kv.Storage, key string, value any) {
	switch v := value.(type) {
	case []string:
		for _, elem := range v {
			params.Add(key, elem)
		}
	case []any:
		for _, elem := range v {
			params.Add(key, Stringify(elem))
		}
	default:
		params.Add(key, Stringify(v))
	}
}

// Stringify renders a single query value.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func unescape(str string) string {
	unescaped, err := url.QueryUnescape(str)
	if err != nil {
		return str
	}

	return unescaped
}
