package codec

import (
	"context"
	"fmt"
	"io"
	"reflect"
)

// TextWriter writes strings and byte slices as they are.
// It writes them under any media type but text/event-stream,
// though negotiates only text/plain.
type TextWriter struct{}

func (TextWriter) MediaTypes() []string { return []string{TextPlain} }

func (TextWriter) CanWrite(elem reflect.Type, mediaType string) bool {
	if elem == nil || Essence(mediaType) == TextEventStream {
		return false
	}

	switch {
	case elem.Kind() == reflect.String:
		return true
	case elem.Kind() == reflect.Slice && elem.Elem().Kind() == reflect.Uint8:
		return true
	default:
		return false
	}
}

func (TextWriter) Write(ctx context.Context, w io.Writer, _ string, body Body) error {
	return body.Elements.Publish(ctx, func(item any) error {
		var err error
		switch v := item.(type) {
		case string:
			_, err = io.WriteString(w, v)
		case []byte:
			_, err = w.Write(v)
		default:
			rv := reflect.ValueOf(item)
			switch {
			case rv.Kind() == reflect.String:
				_, err = io.WriteString(w, rv.String())
			case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
				_, err = w.Write(rv.Bytes())
			default:
				err = fmt.Errorf("%w: text for %T", ErrNoWriter, item)
			}
		}

		if err != nil {
			return err
		}

		if !body.Single {
			flush(w)
		}

		return nil
	})
}
