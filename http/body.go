package http

import (
	"context"
	"io"

	"github.com/indigo-web/inject/http/mime"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

type BodyCallback func([]byte) error

// Body consumes the request body by pulling it. It is what a request handler under test
// normally sees: an io.ReadCloser with a few conveniences on top.
type Body struct {
	ctx     context.Context
	request *Request
	queue   []Event
	buff    []byte
	pending []byte
	error   error
	closed  bool
}

// Body returns a new consumer of the request body. The context bounds waits for events which
// are never going to come, e.g. when the end of stream is suppressed.
func (r *Request) Body(ctx context.Context) *Body {
	return &Body{
		ctx:     ctx,
		request: r,
	}
}

// Retrieve returns the next piece of the body. io.EOF is returned when the end of stream is
// signalled. If a pull produced neither data nor the end of stream, it blocks until the context
// is done and returns its error.
func (b *Body) Retrieve() ([]byte, error) {
	if b.error != nil {
		return nil, b.error
	}

	for {
		if len(b.queue) == 0 {
			if b.error = b.pull(); b.error != nil {
				return nil, b.error
			}
		}

		event := b.queue[0]
		b.queue = b.queue[1:]

		switch event.Kind {
		case EventData:
			return event.Data, nil
		case EventError:
			b.error = event.Err
			return nil, b.error
		case EventEnd:
			b.error = io.EOF
			return nil, b.error
		}
	}
}

func (b *Body) pull() error {
	events := b.request.Pull(0)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				if len(b.queue) == 0 {
					<-b.ctx.Done()
					return b.ctx.Err()
				}

				return nil
			}

			if event.Kind == EventClose {
				b.closed = true
				continue
			}

			b.queue = append(b.queue, event)
		case <-b.ctx.Done():
			return b.ctx.Err()
		}
	}
}

// Callback invokes the callback every time as there's a piece of body available
// for reading. If the callback returns an error, it'll be passed back to the caller.
//
// Please note: this method can be used only once.
func (b *Body) Callback(cb BodyCallback) error {
	for {
		data, err := b.Retrieve()
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}

		if b.error = cb(data); b.error != nil {
			return b.error
		}
	}
}

// Bytes returns the whole body at once in a byte representation.
func (b *Body) Bytes() ([]byte, error) {
	if len(b.buff) != 0 {
		return b.buff, nil
	}

	for {
		data, err := b.Retrieve()
		b.buff = append(b.buff, data...)
		switch err {
		case nil:
		case io.EOF:
			return b.buff, nil
		default:
			return b.buff, err
		}
	}
}

// String returns the whole body at once in a string representation.
func (b *Body) String() (string, error) {
	bytes, err := b.Bytes()
	return uf.B2S(bytes), err
}

// Read implements the io.Reader interface.
func (b *Body) Read(into []byte) (n int, err error) {
	if len(b.pending) == 0 && b.error == nil {
		b.pending, err = b.Retrieve()
	}

	n = copy(into, b.pending)
	b.pending = b.pending[n:]

	if len(b.pending) == 0 && b.error != nil {
		err = b.error
	}

	return n, err
}

// JSON convoys the body to a json unmarshaller automatically. Bodies with a Content-Type
// incompatible with mime.JSON are rejected with ErrUnsupportedMediaType.
func (b *Body) JSON(model any) error {
	if !mime.Complies(mime.JSON, b.request.Headers.Value("content-type")) {
		return ErrUnsupportedMediaType
	}

	data, err := b.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// Discard discards the rest of the body (if any). If the body ended gracefully, nil is returned.
func (b *Body) Discard() error {
	for b.error == nil {
		_, _ = b.Retrieve()
	}

	if b.error == io.EOF {
		return nil
	}

	return b.error
}

// Error returns a previously encountered error, otherwise nil.
func (b *Body) Error() error {
	return b.error
}

// Closed tells whether the close event was observed.
func (b *Body) Closed() bool {
	return b.closed
}

// Close implements io.Closer. Further reads return ErrBodyClosed.
func (b *Body) Close() error {
	if b.error == nil {
		b.error = ErrBodyClosed
	}

	b.request.Destroy()
	return nil
}
