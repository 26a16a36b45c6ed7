package http

import (
	"context"
	"strconv"

	"github.com/indigo-web/inject/internal/payload"
)

type State uint32

const (
	// Pending means the payload is a stream-like source which wasn't drained yet.
	Pending State = iota
	// Ready means the payload is concrete or absent, so the body can be pulled.
	Ready
	// Emitting means the first pull is delivering the body right now.
	Emitting
	// Done is terminal: the body was delivered.
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Emitting:
		return "emitting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// maxPullEvents is the most events a single pull may produce: two data chunks, drain error,
// simulated error, close and end.
const maxPullEvents = 6

// Prepare drains a stream-like payload (if any) and calls next afterwards. It must be called
// and awaited before pulling the body. next is always called, even if the stream fails; in this
// case the failure is emitted as an error on the first pull. Concrete or absent payloads call
// next immediately.
func (r *Request) Prepare(next func()) {
	select {
	case <-r.prepared:
		next()
		return
	default:
	}

	r.prepareOnce.Do(func() {
		go func() {
			buff := make([]byte, 0, r.cfg.Body.DrainPrealloc)
			body, err := r.payload.Drain(buff, r.cfg.Body.DrainBufferSize)
			r.complete(body, err)
		}()
	})

	go func() {
		<-r.prepared
		next()
	}()
}

// PrepareContext is a blocking equivalent of Prepare.
func (r *Request) PrepareContext(ctx context.Context) error {
	done := make(chan struct{})
	r.Prepare(func() {
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// complete replaces the pending source by the drained payload and opens the gate.
func (r *Request) complete(body payload.Payload, err error) {
	if err != nil {
		r.prepareErr = err
		r.log.Warn().Err(err).Int("drained", len(body.Data)).Msg("payload drain failed")
	}

	if !r.Headers.Has("content-length") {
		r.Headers.Add("content-length", strconv.Itoa(len(body.Data)))
	}

	r.payload = body
	r.state.Store(uint32(Ready))
	r.log.Debug().Int("bytes", len(body.Data)).Msg("payload drained")
	close(r.prepared)
}

// Pull requests the body. It never runs synchronously: the returned channel receives the
// events once the request is prepared and is closed afterwards. The first pull delivers the
// body followed by the simulated signals, while all the consequent ones signal only the end of
// stream (unless suppressed). The size is ignored, as the body is always delivered at once.
func (r *Request) Pull(int) <-chan Event {
	events := make(chan Event, maxPullEvents)
	go r.pull(events)

	return events
}

func (r *Request) pull(events chan<- Event) {
	defer close(events)
	<-r.prepared

	if !r.isDone.CompareAndSwap(false, true) {
		if r.simulate.Ends() {
			events <- Event{Kind: EventEnd}
		}

		return
	}

	r.state.Store(uint32(Emitting))

	if data := r.payload.Data; len(data) > 0 {
		if r.simulate.Split && len(data) > 1 {
			events <- Event{Kind: EventData, Data: data[:1]}
			events <- Event{Kind: EventData, Data: data[1:]}
		} else {
			events <- Event{Kind: EventData, Data: data}
		}
	}

	if r.prepareErr != nil {
		events <- Event{Kind: EventError, Err: r.prepareErr}
	}

	if r.simulate.Error {
		events <- Event{Kind: EventError, Err: ErrSimulated}
	}

	if r.simulate.Close {
		events <- Event{Kind: EventClose}
	}

	if r.simulate.Ends() {
		events <- Event{Kind: EventEnd}
	}

	r.state.Store(uint32(Done))
	r.log.Debug().
		Int("bytes", len(r.payload.Data)).
		Bool("split", r.simulate.Split).
		Bool("error", r.simulate.Error).
		Bool("close", r.simulate.Close).
		Bool("end", r.simulate.Ends()).
		Msg("body emitted")
}

// Destroy is accepted for compatibility with stream consumers. There's nothing to release.
func (r *Request) Destroy() {}
