package payload

import (
	"errors"
	"fmt"
	"io"

	json "github.com/json-iterator/go"
)

var ErrPayload = errors.New("cannot coerce payload")

// DefaultReadBuffSize is used whenever a non-positive read buffer size is requested.
const DefaultReadBuffSize = 512

// serializer leaves HTML characters unescaped, so the body holds exactly the bytes a plain
// JSON encoder of a JavaScript-like runtime would produce.
var serializer = json.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type Kind uint8

const (
	// Absent means there's no body at all.
	Absent Kind = iota
	// Bytes is a concrete body known in advance.
	Bytes
	// Pending is a stream-like source, which must be drained before the body can be emitted.
	Pending
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Bytes:
		return "bytes"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Payload is the request body, classified once at construction.
type Payload struct {
	Kind   Kind
	Data   []byte
	Source io.Reader
	// JSON tells whether Data was produced by serializing an arbitrary value.
	JSON bool
}

// Coerce classifies the value. Stream-like values (io.Reader) are left pending, strings and
// byte slices are used as-is and everything else is serialized into JSON. Empty strings and
// slices are considered absent.
func Coerce(value any) (Payload, error) {
	switch v := value.(type) {
	case nil:
		return Payload{}, nil
	case io.Reader:
		return Payload{Kind: Pending, Source: v}, nil
	case []byte:
		return concrete(v), nil
	case string:
		return concrete([]byte(v)), nil
	case json.RawMessage:
		return concrete(v), nil
	}

	data, err := serializer.Marshal(value)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrPayload, err)
	}

	p := concrete(data)
	p.JSON = true

	return p, nil
}

// Drain reads the pending source to its end into buff and turns the payload into a concrete one.
// Concrete and absent payloads are returned unchanged.
func (p Payload) Drain(buff []byte, readBuffSize int) (Payload, error) {
	if p.Kind != Pending {
		return p, nil
	}

	if readBuffSize <= 0 {
		readBuffSize = DefaultReadBuffSize
	}

	chunk := make([]byte, readBuffSize)

	for {
		n, err := p.Source.Read(chunk)
		buff = append(buff, chunk[:n]...)

		switch err {
		case nil:
		case io.EOF:
			return Payload{Kind: Bytes, Data: buff}, nil
		default:
			return Payload{Kind: Bytes, Data: buff}, err
		}
	}
}

// Len returns the length of a concrete payload. Pending payloads have no known length yet.
func (p Payload) Len() (length int, known bool) {
	switch p.Kind {
	case Pending:
		return 0, false
	default:
		return len(p.Data), true
	}
}

func concrete(data []byte) Payload {
	if len(data) == 0 {
		return Payload{}
	}

	return Payload{Kind: Bytes, Data: data}
}
