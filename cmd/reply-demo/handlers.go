package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/req"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/http/router"
	"github.com/xy-planning-network/reply/ranger"
	"github.com/xy-planning-network/reply/reactive"
)

const (
	defaultTicks = 5
	maxTicks     = 50
	tickEvery    = 500 * time.Millisecond
)

var errNoOrder = errors.New("no such order")

type mono = reactive.Mono[resp.ServerResponse]

// Handler shares the *ranger.Ranger and the orders across all demo responses.
type Handler struct {
	*ranger.Ranger
	parser *req.Parser
	store  *orderStore
	every  time.Duration
}

type tick struct {
	N  int       `json:"n"`
	At time.Time `json:"at"`
}

// routes binds every handler to its path.
func (h *Handler) routes() []router.Route {
	return []router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.index},
		{Path: "/hello", Method: http.MethodGet, Handler: h.hello},
		{Path: "/health", Method: http.MethodGet, Handler: h.health},
		{Path: "/orders", Method: http.MethodGet, Handler: h.listOrders, Middlewares: []middleware.Adapter{middleware.Compress()}},
		{Path: "/orders", Method: http.MethodPost, Handler: h.createOrder},
		{Path: "/orders/seq", Method: http.MethodGet, Handler: h.seqOrders},
		{Path: "/orders/stream", Method: http.MethodGet, Handler: h.streamOrders},
		{Path: "/orders/{id:[0-9]+}", Method: http.MethodGet, Handler: h.getOrder},
		{Path: "/orders/{id:[0-9]+}", Method: http.MethodDelete, Handler: h.deleteOrder},
		{Path: "/ticks", Method: http.MethodGet, Handler: h.ticks},
		{Path: "/ticks/legacy", Method: http.MethodGet, Handler: h.legacyTicks},
	}
}

// index renders every order with the model named by convention, i.e., "orderList".
func (h *Handler) index(*http.Request) mono {
	var list []order
	for o := range h.store.All() {
		list = append(list, o)
	}

	return resp.OK().Render("index", list)
}

// hello renders with the suspending form, the name landing under "string".
func (h *Handler) hello(r *http.Request) mono {
	var in struct {
		Name string `schema:"name" validate:"omitempty,alphaunicode,max=32"`
	}
	if err := h.parser.Parse(r, &in); err != nil {
		return reactive.Error[resp.ServerResponse](err)
	}

	if in.Name == "" {
		in.Name = "stranger"
	}

	return reactive.FromFunc(func(ctx context.Context) (resp.ServerResponse, error) {
		return resp.RenderAndAwait(ctx, resp.OK(), "hello", in.Name)
	})
}

// health responds with headers alone.
func (h *Handler) health(*http.Request) mono {
	return reactive.FromFunc(func(ctx context.Context) (resp.ServerResponse, error) {
		return resp.BuildAndAwait(ctx, resp.NoContent().CacheControl("no-store"))
	})
}

// listOrders emits orders as a JSON array, or newline-delimited JSON when asked for.
func (h *Handler) listOrders(*http.Request) mono {
	return resp.BodyPublisherWithType[order](resp.OK().Vary("Accept"), reactive.FromSeq(h.store.All()))
}

// createOrder decodes {"item": "..."} and responds with the stored order,
// or with what is wrong with the payload.
func (h *Handler) createOrder(r *http.Request) mono {
	var in struct {
		Item string `json:"item" validate:"required,max=64"`
	}

	var verrs req.ValidationErrors
	err := h.parser.Parse(r, &in)
	switch {
	case errors.As(err, &verrs):
		return resp.UnprocessableEntity().BodyValue(verrs)
	case err != nil:
		return reactive.Error[resp.ServerResponse](err)
	}

	o := h.store.Add(in.Item)
	loc := &url.URL{Path: fmt.Sprintf("/orders/%d", o.ID)}
	return reactive.FromFunc(func(ctx context.Context) (resp.ServerResponse, error) {
		return resp.BodyAndAwait(ctx, resp.Created(loc), o)
	})
}

// seqOrders responds with the suspending form over an iter.Seq.
func (h *Handler) seqOrders(*http.Request) mono {
	return reactive.FromFunc(func(ctx context.Context) (resp.ServerResponse, error) {
		return resp.BodySeqAndAwait[order](ctx, resp.OK(), h.store.All())
	})
}

// streamOrders emits orders from a channel, the element type given explicitly.
func (h *Handler) streamOrders(*http.Request) mono {
	return resp.BodyWithType[order](resp.OK().ContentType(codec.ApplicationNDJSON), h.store.Stream())
}

func (h *Handler) getOrder(r *http.Request) mono {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	o, ok := h.store.Get(id)
	if !ok {
		return reactive.Error[resp.ServerResponse](resp.NewStatusError(http.StatusNotFound, errNoOrder))
	}

	return resp.OK().ETag(strconv.Itoa(o.ID)).BodyValue(o)
}

func (h *Handler) deleteOrder(r *http.Request) mono {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if !h.store.Delete(id) {
		return reactive.Error[resp.ServerResponse](resp.NewStatusError(http.StatusNotFound, errNoOrder))
	}

	return resp.NoContent().Build()
}

// ticks streams ?n= server-sent events, each with its own ID.
func (h *Handler) ticks(r *http.Request) mono {
	return resp.BodyPublisherWithType[codec.ServerSentEvent[tick]](resp.OK().SSE(), h.ticker(count(r)))
}

// legacyTicks streams the same events as bare text through the deprecated form.
func (h *Handler) legacyTicks(r *http.Request) mono {
	lines := reactive.Map(h.ticker(count(r)), func(ev codec.ServerSentEvent[tick]) (string, error) {
		return fmt.Sprintf("tick %d", ev.Data.N), nil
	})

	return resp.BodyToServerSentEvents[string](resp.OK(), lines)
}

func (h *Handler) ticker(n int) reactive.Flux[codec.ServerSentEvent[tick]] {
	return func(ctx context.Context, emit func(codec.ServerSentEvent[tick]) error) error {
		t := time.NewTicker(h.every)
		defer t.Stop()

		for i := 1; i <= n; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-t.C:
				ev := codec.ServerSentEvent[tick]{
					ID:    uuid.NewString(),
					Event: "tick",
					Data:  tick{N: i, At: now.UTC()},
				}
				if err := emit(ev); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// count reads ?n=, bounded by maxTicks.
func count(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	switch {
	case err != nil || n < 1:
		return defaultTicks
	case n > maxTicks:
		return maxTicks
	default:
		return n
	}
}
