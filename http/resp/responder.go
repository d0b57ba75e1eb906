package resp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/http/template"
	"github.com/xy-planning-network/reply/logger"
	"github.com/xy-planning-network/reply/reactive"
)

const responderFrames = 0

// A HandlerFunc handles an HTTP request by producing the ServerResponse to write.
type HandlerFunc func(r *http.Request) reactive.Mono[ServerResponse]

// Responder writes ServerResponses to HTTP clients.
// It holds what responses need while writing their bodies:
//
//	codec.Writers
//	template.ViewResolver
//	ContextInjector
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// Meaning, one needs only application-wide configuration of how HTTP responses should look.
// Our suggestion does not exclude creating diverse Responders
// for non-overlapping segments of an application.
//
// When producing or writing a response fails, the Responder logs the error
// and, if nothing was written yet, responds with the error template
// or, without one, with http.Error.
type Responder struct {
	logger logger.Logger

	// What ServerResponse.WriteTo receives
	ctx Context

	// Initialized template parser
	parser template.Parser

	// Registry builders in handlers are given through Registry
	registry *reactive.Registry

	// Pool of *bytes.Buffer to prerender error responses into
	pool *sync.Pool

	// Error message to use for "contact us" style client-side error messages
	contactErrMsg string

	templates struct {
		// Root template to render when an error occurs
		// and no other response can be formed
		err string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
//
// If WithParser is passed in and WithViewResolver is not,
// views are resolved by a template.Resolver with that parser.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	if len(d.ctx.Writers) == 0 {
		d.ctx.Writers = codec.DefaultWriters()
	}

	if d.ctx.Injector == nil {
		d.ctx.Injector = NoopInjector{}
	}

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
		if d.ctx.Views == nil {
			d.ctx.Views = template.NewViewResolver(d.parser)
		}
	}

	if d.registry == nil {
		d.registry = reactive.SharedRegistry()
	}

	return d
}

// Registry returns the reactive.Registry for builders to adapt producers with.
//
//	resp.OK().Registry(doer.Registry()).Body(producer, ref)
func (doer *Responder) Registry() *reactive.Registry { return doer.registry }

// Handle adapts fn into an http.Handler, writing the ServerResponse fn produces.
func (doer *Responder) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr, err := reactive.AwaitSingle[ServerResponse](r.Context(), fn(r))
		if err != nil {
			doer.Err(w, r, err)
			return
		}

		doer.Write(w, r, sr)
	})
}

// HandleAwait adapts fn into an http.Handler, writing the ServerResponse fn returns.
func (doer *Responder) HandleAwait(fn func(r *http.Request) (ServerResponse, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr, err := fn(r)
		if err != nil {
			doer.Err(w, r, err)
			return
		}

		doer.Write(w, r, sr)
	})
}

// Write writes sr to w.
//
// If writing fails, Write handles the error as Err does and returns it.
func (doer *Responder) Write(w http.ResponseWriter, r *http.Request, sr ServerResponse) error {
	if sr == nil {
		err := fmt.Errorf("%w: no response to write", ErrInvalidArgument)
		doer.Err(w, r, err)
		return err
	}

	tw := &trackingWriter{ResponseWriter: w}
	if err := sr.WriteTo(tw, r, doer.ctx); err != nil {
		if tw.wrote {
			doer.logger.Error(
				fmt.Sprintf("failed writing %d response after committing", sr.StatusCode()),
				newLogContext(r, err, nil),
			)
			return err
		}

		doer.Err(w, r, err)
		return err
	}

	return nil
}

// Err logs err and responds with an error status.
//
// The status is the one a *StatusError carries,
// 406 for codec.ErrNotAcceptable
// and 500 for anything else.
//
// If the request context is done, Err only logs at the debug level.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil || errors.Is(err, context.Canceled) {
		doer.logger.Debug(fmt.Errorf("%w: %s", ErrDone, err).Error(), newLogContext(r, err, nil))
		return
	}

	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
	} else {
		doer.logger.Warn(err.Error(), newLogContext(r, err, map[string]any{"status": code}))
	}

	if doer.templates.err == "" || doer.ctx.Views == nil {
		http.Error(w, http.StatusText(code), code)
		return
	}

	if nested := doer.renderErr(w, code, err); nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, nested, nil))
		http.Error(w, http.StatusText(code), code)
	}
}

// renderErr specially renders the error template set on the Responder.
func (doer *Responder) renderErr(w http.ResponseWriter, code int, err error) error {
	view, nested := doer.ctx.Views.Resolve(doer.templates.err)
	if nested != nil {
		return fmt.Errorf("%w: %s", nested, err)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	data := map[string]any{"Contact": doer.contactErrMsg, "Error": err, "Status": code}
	if nested = view.Render(b, data); nested != nil {
		return fmt.Errorf("%w: %s", nested, err)
	}

	w.Header().Set("Content-Type", view.ContentType())
	w.WriteHeader(code)
	if _, nested = b.WriteTo(w); nested != nil {
		return fmt.Errorf("%w: %s", nested, err)
	}

	return nil
}

func statusOf(err error) int {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return se.Code
	case errors.Is(err, codec.ErrNotAcceptable):
		return http.StatusNotAcceptable
	default:
		return http.StatusInternalServerError
	}
}

// trackingWriter records whether the status code has been sent.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(p []byte) (int, error) {
	tw.wrote = true
	return tw.ResponseWriter.Write(p)
}

func (tw *trackingWriter) Flush() {
	tw.wrote = true
	if f, ok := tw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (tw *trackingWriter) Unwrap() http.ResponseWriter { return tw.ResponseWriter }
