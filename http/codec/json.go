package codec

import (
	"context"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// JSONWriter encodes elements as JSON.
//
// A single element is written as one JSON value.
// A stream is written as a JSON array for application/json
// and as newline-delimited values for application/x-ndjson,
// flushing after each element.
type JSONWriter struct{}

func (JSONWriter) MediaTypes() []string { return []string{ApplicationJSON, ApplicationNDJSON} }

func (JSONWriter) CanWrite(_ reflect.Type, mediaType string) bool {
	mt := Essence(mediaType)
	return mt == ApplicationJSON || mt == ApplicationNDJSON || strings.HasSuffix(mt, "+json")
}

func (JSONWriter) Write(ctx context.Context, w io.Writer, mediaType string, body Body) error {
	if body.Single {
		return body.Elements.Publish(ctx, func(item any) error {
			b, err := json.Marshal(item)
			if err != nil {
				return err
			}

			_, err = w.Write(b)
			return err
		})
	}

	if Essence(mediaType) == ApplicationNDJSON {
		enc := json.NewEncoder(w)
		return body.Elements.Publish(ctx, func(item any) error {
			if err := enc.Encode(item); err != nil {
				return err
			}

			flush(w)
			return nil
		})
	}

	sep := "["
	err := body.Elements.Publish(ctx, func(item any) error {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, sep); err != nil {
			return err
		}

		sep = ","
		if _, err := w.Write(b); err != nil {
			return err
		}

		flush(w)
		return nil
	})
	if err != nil {
		return err
	}

	if sep == "[" {
		_, err = io.WriteString(w, "[]")
		return err
	}

	_, err = io.WriteString(w, "]")
	return err
}
