package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
)

// A Route maps a path and HTTP method to a [resp.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     resp.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to the [resp.HandlerFunc] of matching Routes,
// writing the responses they produce with a [*resp.Responder].
type Router struct {
	Env           reply.Environment
	doer          *resp.Responder
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// If logReq is nil, middleware.NoopAdapter is used in its place.
func New(env reply.Environment, doer *resp.Responder, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, doer: doer, logReq: logReq, r: mux.NewRouter()}
}

// Assets serves the files in fsys under prefix, e.g., "/assets/".
func (r *Router) Assets(prefix string, fsys fs.FS) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.FS(fsys))),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler resp.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(r.doer.Handle(handler)),
			r.everyReqStack...,
		),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [resp.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler resp.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(r.doer.Handle(handler)),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(r.doer.Handle(route.Handler)), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// SubrouterHost constructs a [Router] that handles requests to host.
func (r *Router) SubrouterHost(host string) *Router {
	return &Router{
		Env:           r.Env,
		doer:          r.doer,
		r:             r.r.Host(host).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/orders
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		doer:          r.doer,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
