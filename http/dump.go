package http

import (
	"io"

	"github.com/indigo-web/inject/internal/payload"
	"github.com/indigo-web/inject/internal/serialize"
)

// Dump writes the request as it would appear on the wire. A still pending stream-like payload
// is streamed in the chunked transfer encoding, which prepares the request as a side effect:
// the payload becomes concrete and the content-length is set (but not written). If the payload
// is being drained by Prepare at the moment, Dump waits for it to finish.
//
// Write errors are returned, but never affect the request: the stream is drained to its end
// anyway.
func (r *Request) Dump(w io.Writer) error {
	var (
		dumped bool
		err    error
	)

	r.prepareOnce.Do(func() {
		if r.State() != Pending {
			return
		}

		dumped = true
		sink := &stickyWriter{w: w}
		headers := r.Headers.Clone().Set("transfer-encoding", "chunked")
		_, _ = sink.Write(serialize.Headers(nil, r.Method, r.URL, r.HTTPVersion, headers))

		data, drainErr := serialize.Chunked(sink, r.payload.Source, r.cfg.Body.DrainBufferSize, nil)
		r.complete(payload.Payload{Kind: payload.Bytes, Data: data}, drainErr)

		if err = sink.err; err == nil {
			err = drainErr
		}
	})

	if dumped {
		return err
	}

	<-r.prepared
	buff := serialize.Headers(nil, r.Method, r.URL, r.HTTPVersion, r.Headers)
	buff = append(buff, r.payload.Data...)
	_, err = w.Write(buff)

	return err
}

// stickyWriter remembers the first write error and discards everything written after it.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(b []byte) (int, error) {
	if s.err == nil {
		_, s.err = s.w.Write(b)
	}

	return len(b), nil
}
