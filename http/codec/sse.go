package codec

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// A ServerSentEvent carries the optional fields of a text/event-stream event alongside its data.
//
// Elements of a body that are not a ServerSentEvent are written as an event with only data.
type ServerSentEvent[T any] struct {
	ID      string
	Event   string
	Retry   time.Duration
	Comment string
	Data    T
}

type eventFields struct {
	id, event, comment string
	retry              time.Duration
	data               any
	hasData            bool
}

func (e ServerSentEvent[T]) fields() eventFields {
	return eventFields{id: e.ID, event: e.Event, comment: e.Comment, retry: e.Retry, data: e.Data, hasData: present(e.Data)}
}

// present reports whether data is non-nil; zero values such as 0, false or "" are present.
func present(data any) bool {
	rv := reflect.ValueOf(data)
	if !rv.IsValid() {
		return false
	}

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return !rv.IsNil()
	default:
		return true
	}
}

type sseEvent interface{ fields() eventFields }

// SSEWriter writes elements as server-sent events, flushing after each.
//
// String data is written as is, split across data lines on newlines;
// other data is JSON-encoded.
type SSEWriter struct{}

func (SSEWriter) MediaTypes() []string { return []string{TextEventStream} }

func (SSEWriter) CanWrite(_ reflect.Type, mediaType string) bool {
	return Essence(mediaType) == TextEventStream
}

func (SSEWriter) Write(ctx context.Context, w io.Writer, _ string, body Body) error {
	return body.Elements.Publish(ctx, func(item any) error {
		f := eventFields{data: item, hasData: present(item)}
		if ev, ok := item.(sseEvent); ok {
			f = ev.fields()
		}

		b := new(strings.Builder)
		if f.comment != "" {
			for _, line := range strings.Split(f.comment, "\n") {
				fmt.Fprintf(b, ":%s\n", line)
			}
		}

		if f.id != "" {
			fmt.Fprintf(b, "id:%s\n", f.id)
		}

		if f.event != "" {
			fmt.Fprintf(b, "event:%s\n", f.event)
		}

		if f.retry > 0 {
			fmt.Fprintf(b, "retry:%d\n", f.retry.Milliseconds())
		}

		if f.hasData {
			data, err := eventData(f.data)
			if err != nil {
				return err
			}

			for _, line := range strings.Split(data, "\n") {
				fmt.Fprintf(b, "data:%s\n", line)
			}
		}

		b.WriteString("\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		flush(w)
		return nil
	})
}

func eventData(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
