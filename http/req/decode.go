package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/reply"
)

// queryParamDecoder decodes url.Values into structs using "schema" struct tags.
type queryParamDecoder struct {
	dec *schema.Decoder
}

func newQueryParamDecoder() queryParamDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return queryParamDecoder{dec}
}

// decode fills structPtr with params, translating failures with translateDecoderError.
func (q queryParamDecoder) decode(structPtr any, params url.Values) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", reply.ErrBadAny, structPtr)
	}

	if err := q.dec.Decode(structPtr, params); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into reply errors.
//
// Conversion failures and unknown keys become ValidationErrors.
// Struct tags schema cannot honor are ErrNotImplemented,
// anything else is ErrUnexpected, or ErrBadFormat when schema did not collect it.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", reply.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// Index is -1 for non-slice values.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate pkg to set "required" fields, not schema`, reply.ErrNotImplemented)

		case schema.UnknownKeyError:
			// Only reachable if the decoder stops ignoring unknown keys.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// A field without a registered schema.Converter fails only once a value is set for it.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", reply.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", reply.ErrUnexpected, err)
		}
	}

	return validErrs
}
