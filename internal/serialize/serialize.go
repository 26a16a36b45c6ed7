package serialize

import (
	"io"
	"strconv"

	"github.com/indigo-web/inject/kv"
)

const defaultBuffSize = 512

// Headers renders the request line and the header fields, including the terminating empty line.
func Headers(buff []byte, method, target, version string, headers *kv.Storage) []byte {
	buff = append(buff, method...)
	buff = append(buff, ' ')
	buff = append(buff, target...)
	buff = append(buff, " HTTP/"...)
	buff = append(buff, version...)
	buff = crlf(buff)

	for key, value := range headers.Pairs() {
		buff = header(buff, key, value)
	}

	return crlf(buff)
}

// Chunked copies the source into the writer in the chunked transfer encoding, using a buffer
// of the given size. Everything read is appended to the accumulator, which is returned along
// with an error, if any. A source error is returned as is, without writing the last chunk.
// Non-positive buffer sizes fall back to the default one.
func Chunked(w io.Writer, src io.Reader, buffSize int, acc []byte) ([]byte, error) {
	if buffSize <= 0 {
		buffSize = defaultBuffSize
	}

	chunk := make([]byte, buffSize)
	frame := make([]byte, 0, buffSize+32)

	for {
		n, err := src.Read(chunk)
		if n > 0 {
			acc = append(acc, chunk[:n]...)
			frame = strconv.AppendUint(frame[:0], uint64(n), 16)
			frame = crlf(frame)
			frame = append(frame, chunk[:n]...)
			frame = crlf(frame)

			if _, werr := w.Write(frame); werr != nil {
				return acc, werr
			}
		}

		switch err {
		case nil:
		case io.EOF:
			_, err = w.Write([]byte("0\r\n\r\n"))
			return acc, err
		default:
			return acc, err
		}
	}
}

func header(b []byte, key, value string) []byte {
	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)

	return crlf(b)
}

func crlf(b []byte) []byte {
	return append(b, '\r', '\n')
}
