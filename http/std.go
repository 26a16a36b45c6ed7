package http

import (
	"context"
	nethttp "net/http"
	"net/url"
	"strconv"
)

// Std converts the request into the net/http one, so it can be passed directly into an
// ordinary http.Handler. Its Body pulls the body of this request, therefore the same rules apply:
// a stream-like payload must be prepared first. The host header is moved into the Host field,
// just like net/http servers do.
func (r *Request) Std(ctx context.Context) *nethttp.Request {
	target, err := url.ParseRequestURI(r.URL)
	if err != nil {
		target = &url.URL{Path: r.URL}
	}

	header := make(nethttp.Header, r.Headers.Len())
	for key, value := range r.Headers.Pairs() {
		header.Add(key, value)
	}

	host := header.Get("Host")
	header.Del("Host")

	request := &nethttp.Request{
		Method:        r.Method,
		URL:           target,
		Proto:         "HTTP/" + r.HTTPVersion,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          r.Body(ctx),
		ContentLength: r.contentLength(),
		Host:          host,
		RemoteAddr:    r.Connection.RemoteAddress,
		RequestURI:    r.URL,
	}

	return request.WithContext(ctx)
}

func (r *Request) contentLength() int64 {
	if value, found := r.Headers.Get("content-length"); found {
		if length, err := strconv.ParseInt(value, 10, 64); err == nil {
			return length
		}
	}

	if r.State() == Pending {
		return -1
	}

	return 0
}
