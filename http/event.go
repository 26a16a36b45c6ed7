package http

type EventKind uint8

const (
	// EventData carries a chunk of the body.
	EventData EventKind = iota + 1
	// EventError carries an error, either a simulated one or a failure to drain the payload.
	EventError
	// EventClose signals the underlying connection was closed.
	EventClose
	// EventEnd signals the end of stream.
	EventEnd
)

func (e EventKind) String() string {
	switch e {
	case EventData:
		return "data"
	case EventError:
		return "error"
	case EventClose:
		return "close"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a single notification produced by a pull.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}
