package resp

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/reactive"
)

// A Builder accumulates the status, headers and cookies of a response
// until a terminal operation finalizes it:
//
//	Body
//	BodyValue
//	Build
//	Render
//	RenderModel
//
// A Builder may be finalized once and is not safe for concurrent use.
type Builder struct {
	status   int
	header   http.Header
	cookies  []*http.Cookie
	registry *reactive.Registry
	done     bool
}

// Status starts a Builder responding with code.
func Status(code int) *Builder {
	return &Builder{status: code, header: make(http.Header)}
}

// OK starts a Builder responding with 200.
func OK() *Builder { return Status(http.StatusOK) }

// Created starts a Builder responding with 201 and location set in the Location header.
func Created(location *url.URL) *Builder {
	return Status(http.StatusCreated).Location(location)
}

// Accepted starts a Builder responding with 202.
func Accepted() *Builder { return Status(http.StatusAccepted) }

// NoContent starts a Builder responding with 204.
func NoContent() *Builder { return Status(http.StatusNoContent) }

// SeeOther starts a Builder redirecting to location with 303.
func SeeOther(location *url.URL) *Builder {
	return Status(http.StatusSeeOther).Location(location)
}

// TemporaryRedirect starts a Builder redirecting to location with 307.
func TemporaryRedirect(location *url.URL) *Builder {
	return Status(http.StatusTemporaryRedirect).Location(location)
}

// PermanentRedirect starts a Builder redirecting to location with 308.
func PermanentRedirect(location *url.URL) *Builder {
	return Status(http.StatusPermanentRedirect).Location(location)
}

// BadRequest starts a Builder responding with 400.
func BadRequest() *Builder { return Status(http.StatusBadRequest) }

// NotFound starts a Builder responding with 404.
func NotFound() *Builder { return Status(http.StatusNotFound) }

// UnprocessableEntity starts a Builder responding with 422.
func UnprocessableEntity() *Builder { return Status(http.StatusUnprocessableEntity) }

// From starts a Builder copying the status, headers and cookies of sr.
func From(sr ServerResponse) *Builder {
	b := Status(sr.StatusCode())
	b.header = sr.Header().Clone()
	if b.header == nil {
		b.header = make(http.Header)
	}

	b.cookies = slices.Clone(sr.Cookies())
	return b
}

// Header adds values under name, replacing any already set.
func (b *Builder) Header(name string, values ...string) *Builder {
	b.header.Del(name)
	for _, v := range values {
		b.header.Add(name, v)
	}

	return b
}

// Headers calls fn with the headers of the response for arbitrary changes.
func (b *Builder) Headers(fn func(http.Header)) *Builder {
	fn(b.header)
	return b
}

// Cookie adds c to the response.
func (b *Builder) Cookie(c *http.Cookie) *Builder {
	b.cookies = append(b.cookies, c)
	return b
}

// ContentType sets the Content-Type header.
func (b *Builder) ContentType(mediaType string) *Builder {
	return b.Header("Content-Type", mediaType)
}

// ContentLength sets the Content-Length header.
func (b *Builder) ContentLength(n int64) *Builder {
	return b.Header("Content-Length", strconv.FormatInt(n, 10))
}

// ETag sets the ETag header, quoting tag if it is not yet.
func (b *Builder) ETag(tag string) *Builder {
	if !strings.HasPrefix(tag, `"`) && !strings.HasPrefix(tag, `W/"`) {
		tag = `"` + tag
	}

	if !strings.HasSuffix(tag, `"`) || len(tag) == 1 {
		tag += `"`
	}

	return b.Header("ETag", tag)
}

// LastModified sets the Last-Modified header.
func (b *Builder) LastModified(t time.Time) *Builder {
	return b.Header("Last-Modified", t.UTC().Format(http.TimeFormat))
}

// Location sets the Location header.
func (b *Builder) Location(u *url.URL) *Builder {
	if u == nil {
		b.header.Del("Location")
		return b
	}

	return b.Header("Location", u.String())
}

// CacheControl sets the Cache-Control header.
func (b *Builder) CacheControl(directives ...string) *Builder {
	return b.Header("Cache-Control", strings.Join(directives, ", "))
}

// Allow sets the Allow header.
func (b *Builder) Allow(methods ...string) *Builder {
	return b.Header("Allow", strings.Join(methods, ", "))
}

// Vary sets the Vary header.
func (b *Builder) Vary(headers ...string) *Builder {
	return b.Header("Vary", strings.Join(headers, ", "))
}

// Registry sets the reactive.Registry Body adapts producers with.
// The default is reactive.SharedRegistry.
func (b *Builder) Registry(r *reactive.Registry) *Builder {
	b.registry = r
	return b
}

// Body finalizes the response with the elements producer emits,
// each described by ref.
//
// producer is anything the Builder's reactive.Registry can adapt.
// If it cannot, reactive.ErrUnsupportedType returns through the Mono.
func (b *Builder) Body(producer any, ref reactive.TypeRef) reactive.Mono[ServerResponse] {
	if err := b.finalize(); err != nil {
		return reactive.Error[ServerResponse](err)
	}

	a, err := b.reg().Lookup(producer)
	if err != nil {
		return reactive.Error[ServerResponse](err)
	}

	return reactive.Just[ServerResponse](&bodyResponse{
		meta: b.snapshot(),
		body: codec.Body{
			Elements: a.Convert(reflect.ValueOf(producer)),
			Type:     ref,
			Single:   !a.Multi,
		},
	})
}

// BodyValue finalizes the response with the single value v.
//
// If v is nil or is a producer the Builder's reactive.Registry can adapt,
// ErrInvalidArgument returns through the Mono; use Body for producers.
func (b *Builder) BodyValue(v any) reactive.Mono[ServerResponse] {
	if err := b.finalize(); err != nil {
		return reactive.Error[ServerResponse](err)
	}

	if v == nil {
		return reactive.Error[ServerResponse](fmt.Errorf("%w: body value is nil", ErrInvalidArgument))
	}

	if b.reg().Supports(v) {
		return reactive.Error[ServerResponse](fmt.Errorf("%w: %T is a producer, use Body", ErrInvalidArgument, v))
	}

	return reactive.Just[ServerResponse](&bodyResponse{
		meta: b.snapshot(),
		body: codec.Body{
			Elements: reactive.Just[any](v).Flux(),
			Type:     reactive.TypeFor(reflect.TypeOf(v)),
			Single:   true,
		},
	})
}

// Render finalizes the response with the view called name,
// adding each of attrs to the model under a name derived from its type.
// See ConventionName.
//
// nil attrs are skipped.
// Attributes sharing a derived name overwrite those before them.
func (b *Builder) Render(name string, attrs ...any) reactive.Mono[ServerResponse] {
	model := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if attr == nil {
			continue
		}

		model[ConventionName(attr)] = attr
	}

	return b.render(name, model)
}

// RenderModel finalizes the response with the view called name rendering model.
func (b *Builder) RenderModel(name string, model map[string]any) reactive.Mono[ServerResponse] {
	m := maps.Clone(model)
	if m == nil {
		m = make(map[string]any)
	}

	return b.render(name, m)
}

// Build finalizes the response without a body.
func (b *Builder) Build() reactive.Mono[ServerResponse] {
	if err := b.finalize(); err != nil {
		return reactive.Error[ServerResponse](err)
	}

	return reactive.Just[ServerResponse](&headersResponse{meta: b.snapshot()})
}

func (b *Builder) render(name string, model map[string]any) reactive.Mono[ServerResponse] {
	if err := b.finalize(); err != nil {
		return reactive.Error[ServerResponse](err)
	}

	if name == "" {
		return reactive.Error[ServerResponse](fmt.Errorf("%w: no view name", ErrInvalidArgument))
	}

	return reactive.Just[ServerResponse](&renderingResponse{meta: b.snapshot(), name: name, model: model})
}

func (b *Builder) finalize() error {
	if b.done {
		return ErrFinalized
	}

	b.done = true
	return nil
}

func (b *Builder) reg() *reactive.Registry {
	if b.registry == nil {
		return reactive.SharedRegistry()
	}

	return b.registry
}

func (b *Builder) snapshot() meta {
	return meta{status: b.status, header: b.header.Clone(), cookies: slices.Clone(b.cookies)}
}
