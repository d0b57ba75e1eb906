package resp

import (
	"context"
	"iter"

	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/reactive"
)

// BodyPublisherWithType finalizes b with the elements p emits,
// described by the element type T inferred at the call site.
func BodyPublisherWithType[T any](b *Builder, p reactive.Publisher[T]) reactive.Mono[ServerResponse] {
	return b.Body(p, reactive.TypeOf[T]())
}

// BodyPublisher finalizes b with the elements p emits.
//
// Deprecated: use BodyPublisherWithType.
func BodyPublisher[T any](b *Builder, p reactive.Publisher[T]) reactive.Mono[ServerResponse] {
	return BodyPublisherWithType(b, p)
}

// BodyWithType finalizes b with the elements producer emits,
// described by the element type T.
//
// producer is anything the reactive.Registry of b can adapt, e.g., a channel or an iter.Seq.
func BodyWithType[T any](b *Builder, producer any) reactive.Mono[ServerResponse] {
	return b.Body(producer, reactive.TypeOf[T]())
}

// BodyAndAwait finalizes b with the single value body and waits for the response.
func BodyAndAwait(ctx context.Context, b *Builder, body any) (ServerResponse, error) {
	return reactive.AwaitSingle[ServerResponse](ctx, b.BodyValue(body))
}

// BodySeqAndAwait finalizes b with the elements seq yields and waits for the response.
func BodySeqAndAwait[T any](ctx context.Context, b *Builder, seq iter.Seq[T]) (ServerResponse, error) {
	return reactive.AwaitSingle[ServerResponse](ctx, b.Body(seq, reactive.TypeOf[T]()))
}

// BodyToServerSentEvents finalizes b with the elements p emits as server-sent events.
//
// Deprecated: use BodyPublisherWithType with a Builder set by SSE.
func BodyToServerSentEvents[T any](b *Builder, p reactive.Publisher[T]) reactive.Mono[ServerResponse] {
	return BodyPublisherWithType(b.SSE(), p)
}

// JSON sets the Content-Type header to application/json.
func (b *Builder) JSON() *Builder { return b.ContentType(codec.ApplicationJSON) }

// XML sets the Content-Type header to application/xml.
func (b *Builder) XML() *Builder { return b.ContentType(codec.ApplicationXML) }

// HTML sets the Content-Type header to text/html.
func (b *Builder) HTML() *Builder { return b.ContentType(codec.TextHTML) }

// SSE sets the Content-Type header to text/event-stream.
func (b *Builder) SSE() *Builder { return b.ContentType(codec.TextEventStream) }

// RenderAndAwait finalizes b with the view called name and waits for the response.
// Each of attrs is added to the model as Render does.
func RenderAndAwait(ctx context.Context, b *Builder, name string, attrs ...string) (ServerResponse, error) {
	vals := make([]any, len(attrs))
	for i, a := range attrs {
		vals[i] = a
	}

	return reactive.AwaitSingle[ServerResponse](ctx, b.Render(name, vals...))
}

// RenderModelAndAwait finalizes b with the view called name rendering model and waits for the response.
func RenderModelAndAwait(ctx context.Context, b *Builder, name string, model map[string]any) (ServerResponse, error) {
	return reactive.AwaitSingle[ServerResponse](ctx, b.RenderModel(name, model))
}

// BuildAndAwait finalizes b without a body and waits for the response.
func BuildAndAwait(ctx context.Context, b *Builder) (ServerResponse, error) {
	return reactive.AwaitSingle[ServerResponse](ctx, b.Build())
}
