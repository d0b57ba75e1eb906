package codec

import (
	"context"
	"encoding/xml"
	"io"
	"reflect"
	"strings"
)

// XMLWriter encodes each element as an XML document fragment.
type XMLWriter struct{}

func (XMLWriter) MediaTypes() []string { return []string{ApplicationXML, TextXML} }

func (XMLWriter) CanWrite(elem reflect.Type, mediaType string) bool {
	mt := Essence(mediaType)
	if mt != ApplicationXML && mt != TextXML && !strings.HasSuffix(mt, "+xml") {
		return false
	}

	if elem == nil {
		return false
	}

	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return false
	default:
		return true
	}
}

func (XMLWriter) Write(ctx context.Context, w io.Writer, _ string, body Body) error {
	enc := xml.NewEncoder(w)
	return body.Elements.Publish(ctx, func(item any) error {
		if err := enc.Encode(item); err != nil {
			return err
		}

		if !body.Single {
			flush(w)
		}

		return nil
	})
}
