package codec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/xy-planning-network/reply/reactive"
)

// A Body is what a Writer encodes.
type Body struct {
	// Elements produces the values to encode.
	Elements reactive.Flux[any]

	// Type describes each element.
	Type reactive.TypeRef

	// Single is set when Elements produces at most one value.
	Single bool
}

// A Writer encodes a Body for the media types it supports.
type Writer interface {
	// MediaTypes lists the media types offered during negotiation, most preferred first.
	MediaTypes() []string

	// CanWrite reports whether elements of type elem can be written as mediaType.
	// elem may be nil when the element type is unknown.
	CanWrite(elem reflect.Type, mediaType string) bool

	// Write encodes every element of body to w.
	Write(ctx context.Context, w io.Writer, mediaType string, body Body) error
}

// Writers is an ordered set of Writer.
// Earlier Writers take precedence.
type Writers []Writer

// DefaultWriters returns the Writers used when none are configured.
func DefaultWriters() Writers {
	return Writers{TextWriter{}, JSONWriter{}, XMLWriter{}, SSEWriter{}}
}

// Select picks the Writer and media type for elements of type elem.
//
// When contentType is set, the first Writer able to write it is chosen,
// otherwise ErrNoWriter returns.
// When it is not, accept is negotiated against each Writer's MediaTypes;
// ErrNotAcceptable returns if nothing matches.
func (ws Writers) Select(contentType, accept string, elem reflect.Type) (Writer, string, error) {
	if contentType != "" {
		for _, w := range ws {
			if w.CanWrite(elem, contentType) {
				return w, contentType, nil
			}
		}

		return nil, "", fmt.Errorf("%w: %s for %v", ErrNoWriter, contentType, elem)
	}

	for _, rng := range ParseAccept(accept) {
		for _, w := range ws {
			for _, mt := range w.MediaTypes() {
				if rng.Includes(mt) && w.CanWrite(elem, mt) {
					return w, mt, nil
				}
			}
		}
	}

	return nil, "", fmt.Errorf("%w: %q for %v", ErrNotAcceptable, accept, elem)
}

func flush(w io.Writer) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
