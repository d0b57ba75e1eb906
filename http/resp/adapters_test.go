package resp_test

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/http/resp"
	tt "github.com/xy-planning-network/reply/http/template/templatetest"
	"github.com/xy-planning-network/reply/reactive"
)

type mono = reactive.Mono[resp.ServerResponse]

func TestBodyPublisherWithType(t *testing.T) {
	tcs := []struct {
		name     string
		typed    func() mono
		explicit func() mono
		accept   string
		single   bool
		expected string
	}{
		{
			"Flux-JSON",
			func() mono { return resp.BodyPublisherWithType(resp.OK(), reactive.FromSlice(orders...)) },
			func() mono { return resp.OK().Body(reactive.FromSlice(orders...), reactive.TypeOf[order]()) },
			codec.ApplicationJSON,
			false,
			`[{"id":1,"item":"tea"},{"id":2,"item":"scone"}]`,
		},
		{
			"Flux-NDJSON",
			func() mono { return resp.BodyPublisherWithType(resp.OK(), reactive.FromSlice(orders...)) },
			func() mono { return resp.OK().Body(reactive.FromSlice(orders...), reactive.TypeOf[order]()) },
			codec.ApplicationNDJSON,
			false,
			"{\"id\":1,\"item\":\"tea\"}\n{\"id\":2,\"item\":\"scone\"}\n",
		},
		{
			"Mono-JSON",
			func() mono { return resp.BodyPublisherWithType[order](resp.OK(), reactive.Just(orders[0])) },
			func() mono { return resp.OK().Body(reactive.Just(orders[0]), reactive.TypeOf[order]()) },
			codec.ApplicationJSON,
			true,
			`{"id":1,"item":"tea"}`,
		},
		{
			"Strings-Text",
			func() mono { return resp.BodyPublisherWithType(resp.OK(), reactive.FromSlice("a", "b")) },
			func() mono { return resp.OK().Body(reactive.FromSlice("a", "b"), reactive.TypeOf[string]()) },
			"",
			false,
			"ab",
		},
		{
			"Deprecated-Form",
			func() mono { return resp.BodyPublisher(resp.OK(), reactive.FromSlice(orders...)) },
			func() mono { return resp.OK().Body(reactive.FromSlice(orders...), reactive.TypeOf[order]()) },
			codec.ApplicationJSON,
			false,
			`[{"id":1,"item":"tea"},{"id":2,"item":"scone"}]`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			typed, err := tc.typed().Await(context.Background())
			require.Nil(t, err)

			explicit, err := tc.explicit().Await(context.Background())
			require.Nil(t, err)

			// Assert
			require.Equal(t, explicit.(resp.BodyResponse).Body().Type, typed.(resp.BodyResponse).Body().Type)
			require.Equal(t, tc.single, typed.(resp.BodyResponse).Body().Single)

			tw := write(t, typed, resp.Context{}, tc.accept)
			ew := write(t, explicit, resp.Context{}, tc.accept)
			require.Equal(t, tc.expected, tw.Body.String())
			require.Equal(t, ew.Body.String(), tw.Body.String())
			require.Equal(t, ew.Header(), tw.Header())
			require.Equal(t, ew.Code, tw.Code)
		})
	}
}

func TestBodyWithType(t *testing.T) {
	tcs := []struct {
		name     string
		producer func() any
	}{
		{"Channel", func() any { return ordersChan() }},
		{"Seq", func() any { return slices.Values(orders) }},
		{"Flux", func() any { return reactive.FromSlice(orders...) }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			typed, err := resp.BodyWithType[order](resp.OK(), tc.producer()).Await(context.Background())
			require.Nil(t, err)

			explicit, err := resp.OK().Body(tc.producer(), reactive.TypeOf[order]()).Await(context.Background())
			require.Nil(t, err)

			// Assert
			require.Equal(t, reactive.TypeOf[order](), typed.(resp.BodyResponse).Body().Type)

			tw := write(t, typed, resp.Context{}, codec.ApplicationJSON)
			ew := write(t, explicit, resp.Context{}, codec.ApplicationJSON)
			require.Equal(t, `[{"id":1,"item":"tea"},{"id":2,"item":"scone"}]`, tw.Body.String())
			require.Equal(t, ew.Body.String(), tw.Body.String())
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		// Act
		sr, err := resp.BodyWithType[order](resp.OK(), 42).Await(context.Background())

		// Assert
		require.ErrorIs(t, err, reactive.ErrUnsupportedType)
		require.Nil(t, sr)
	})

	t.Run("Deferred", func(t *testing.T) {
		// Arrange
		fn := func(context.Context) (order, error) { return orders[1], nil }

		// Act
		sr, err := resp.BodyWithType[order](resp.OK(), fn).Await(context.Background())

		// Assert
		require.Nil(t, err)
		require.True(t, sr.(resp.BodyResponse).Body().Single)
		require.Equal(t, `{"id":2,"item":"scone"}`, write(t, sr, resp.Context{}, "").Body.String())
	})
}

func TestBodyAndAwait(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		// Arrange
		ctx := context.Background()

		// Act
		awaited, err := resp.BodyAndAwait(ctx, resp.Created(nil).JSON(), orders[0])
		require.Nil(t, err)

		subscribed, err := reactive.Collect[resp.ServerResponse](ctx, resp.Created(nil).JSON().BodyValue(orders[0]))
		require.Nil(t, err)

		// Assert
		require.Len(t, subscribed, 1)
		require.Equal(t, subscribed[0].StatusCode(), awaited.StatusCode())
		require.Equal(t, subscribed[0].Header(), awaited.Header())

		aw := write(t, awaited, resp.Context{}, "")
		sw := write(t, subscribed[0], resp.Context{}, "")
		require.Equal(t, http.StatusCreated, aw.Code)
		require.Equal(t, `{"id":1,"item":"tea"}`, aw.Body.String())
		require.Equal(t, sw.Body.String(), aw.Body.String())
	})

	tcs := []struct {
		name string
		ctx  func() context.Context
		b    func() *resp.Builder
		body any
		err  error
	}{
		{"Nil", context.Background, resp.OK, nil, resp.ErrInvalidArgument},
		{"Producer", context.Background, resp.OK, reactive.FromSlice(orders...), resp.ErrInvalidArgument},
		{"Channel", context.Background, resp.OK, ordersChan(), resp.ErrInvalidArgument},
		{
			"Finalized",
			context.Background,
			func() *resp.Builder {
				b := resp.OK()
				b.Build()
				return b
			},
			orders[0],
			resp.ErrFinalized,
		},
		{
			"Cancelled",
			func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			resp.OK,
			orders[0],
			context.Canceled,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			sr, err := resp.BodyAndAwait(tc.ctx(), tc.b(), tc.body)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, sr)
		})
	}
}

func TestBodySeqAndAwait(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	awaited, err := resp.BodySeqAndAwait(ctx, resp.OK(), slices.Values(orders))
	require.Nil(t, err)

	explicit, err := resp.OK().Body(slices.Values(orders), reactive.TypeOf[order]()).Await(ctx)
	require.Nil(t, err)

	// Assert
	require.Equal(t, reactive.TypeOf[order](), awaited.(resp.BodyResponse).Body().Type)
	require.False(t, awaited.(resp.BodyResponse).Body().Single)

	aw := write(t, awaited, resp.Context{}, codec.ApplicationNDJSON)
	ew := write(t, explicit, resp.Context{}, codec.ApplicationNDJSON)
	require.Equal(t, "{\"id\":1,\"item\":\"tea\"}\n{\"id\":2,\"item\":\"scone\"}\n", aw.Body.String())
	require.Equal(t, ew.Body.String(), aw.Body.String())
	require.Equal(t, codec.ApplicationNDJSON, aw.Header().Get("Content-Type"))
}

func TestBodyToServerSentEvents(t *testing.T) {
	// Arrange
	ctx := context.Background()
	p := reactive.FromSlice("tick", "tock")

	// Act
	deprecated, err := resp.BodyToServerSentEvents(resp.OK(), p).Await(ctx)
	require.Nil(t, err)

	typed, err := resp.BodyPublisherWithType(resp.OK().SSE(), p).Await(ctx)
	require.Nil(t, err)

	// Assert
	require.Equal(t, codec.TextEventStream, deprecated.Header().Get("Content-Type"))
	require.Equal(t, typed.Header(), deprecated.Header())

	dw := write(t, deprecated, resp.Context{}, "")
	tw := write(t, typed, resp.Context{}, "")
	require.Equal(t, "data:tick\n\ndata:tock\n\n", dw.Body.String())
	require.Equal(t, tw.Body.String(), dw.Body.String())
	require.Equal(t, codec.TextEventStream, dw.Header().Get("Content-Type"))
	require.True(t, dw.Flushed)
}

func TestContentTypeShortcuts(t *testing.T) {
	tcs := []struct {
		name     string
		shortcut func(*resp.Builder) *resp.Builder
		expected string
	}{
		{"JSON", (*resp.Builder).JSON, "application/json"},
		{"XML", (*resp.Builder).XML, "application/xml"},
		{"HTML", (*resp.Builder).HTML, "text/html"},
		{"SSE", (*resp.Builder).SSE, "text/event-stream"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := resp.Accepted().Header("X-Test", "kept")

			// Act
			actual := tc.shortcut(b)

			// Assert
			require.Same(t, b, actual)

			sr, err := resp.BuildAndAwait(context.Background(), actual.CacheControl("no-store"))
			require.Nil(t, err)
			require.Equal(t, http.StatusAccepted, sr.StatusCode())
			require.Equal(t, http.Header{
				"Cache-Control": {"no-store"},
				"Content-Type":  {tc.expected},
				"X-Test":        {"kept"},
			}, sr.Header())
		})
	}
}

func TestRenderAndAwait(t *testing.T) {
	// Arrange
	ctx := context.Background()
	views := tt.NewViewResolver([]tt.FileMocker{
		tt.NewMockFile("page", []byte(`<p>{{ .string }}</p>`)),
	})

	// Act
	varargs, err := resp.RenderAndAwait(ctx, resp.OK().Header("X-Test", "1"), "page", "hi")
	require.Nil(t, err)

	model, err := resp.RenderModelAndAwait(ctx, resp.OK().Header("X-Test", "1"), "page", map[string]any{"string": "hi"})
	require.Nil(t, err)

	// Assert
	require.Equal(t, model.StatusCode(), varargs.StatusCode())
	require.Equal(t, model.Header(), varargs.Header())
	require.Equal(t, model.(resp.RenderingResponse).Name(), varargs.(resp.RenderingResponse).Name())
	require.Equal(t, model.(resp.RenderingResponse).Model(), varargs.(resp.RenderingResponse).Model())

	vw := write(t, varargs, resp.Context{Views: views}, "")
	mw := write(t, model, resp.Context{Views: views}, "")
	require.Equal(t, "<p>hi</p>", vw.Body.String())
	require.Equal(t, mw.Body.String(), vw.Body.String())
	require.Equal(t, "text/html;charset=UTF-8", vw.Header().Get("Content-Type"))
}

func TestRenderModelAndAwait(t *testing.T) {
	// Arrange
	model := map[string]any{"name": "Ada"}

	// Act
	sr, err := resp.RenderModelAndAwait(context.Background(), resp.OK(), "hello", model)
	model["name"] = "Grace"

	// Assert
	require.Nil(t, err)
	require.Equal(t, map[string]any{"name": "Ada"}, sr.(resp.RenderingResponse).Model())
}

func TestBuildAndAwait(t *testing.T) {
	t.Run("Headers-Only", func(t *testing.T) {
		// Arrange
		b := resp.NoContent().Header("X-Test", "a", "b").ETag("v1")

		// Act
		sr, err := resp.BuildAndAwait(context.Background(), b)

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusNoContent, sr.StatusCode())
		require.Equal(t, http.Header{"X-Test": {"a", "b"}, "Etag": {`"v1"`}}, sr.Header())

		w := write(t, sr, resp.Context{}, "")
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Zero(t, w.Body.Len())
		require.Equal(t, []string{"a", "b"}, w.Header().Values("X-Test"))
	})

	t.Run("Finalized", func(t *testing.T) {
		// Arrange
		b := resp.OK()
		_, err := resp.BuildAndAwait(context.Background(), b)
		require.Nil(t, err)

		// Act
		sr, err := resp.BuildAndAwait(context.Background(), b)

		// Assert
		require.ErrorIs(t, err, resp.ErrFinalized)
		require.Nil(t, sr)
	})
}
