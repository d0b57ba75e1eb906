package resp

import (
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/http/template"
)

// A ServerResponse is a finalized HTTP response, ready to be written.
type ServerResponse interface {
	// StatusCode is the HTTP status code to respond with.
	StatusCode() int

	// Header holds the headers set while building the response.
	Header() http.Header

	// Cookies holds the cookies set while building the response.
	Cookies() []*http.Cookie

	// WriteTo writes the response to w, using c to encode its body.
	WriteTo(w http.ResponseWriter, r *http.Request, c Context) error
}

// A BodyResponse is a ServerResponse whose body is encoded by a codec.Writer.
type BodyResponse interface {
	ServerResponse
	Body() codec.Body
}

// A RenderingResponse is a ServerResponse whose body is a rendered view.
type RenderingResponse interface {
	ServerResponse
	Name() string
	Model() map[string]any
}

// A Context holds what a ServerResponse needs when writing its body.
type Context struct {
	// Writers encode bodies; codec.DefaultWriters is used when empty.
	Writers codec.Writers

	// Views resolves the views RenderingResponse names.
	Views template.ViewResolver

	// Injector merges request scoped values into rendered models.
	Injector ContextInjector
}

func (c Context) writers() codec.Writers {
	if len(c.Writers) == 0 {
		return codec.DefaultWriters()
	}

	return c.Writers
}

// meta is what every ServerResponse carries.
type meta struct {
	status  int
	header  http.Header
	cookies []*http.Cookie
}

func (m meta) StatusCode() int         { return m.status }
func (m meta) Header() http.Header     { return m.header }
func (m meta) Cookies() []*http.Cookie { return m.cookies }
func (m meta) String() string          { return fmt.Sprintf("%d %s", m.status, http.StatusText(m.status)) }

// writeHeaders copies headers and cookies onto w without committing them.
func (m meta) writeHeaders(w http.ResponseWriter) {
	h := w.Header()
	for k, vs := range m.header {
		h[k] = slices.Clone(vs)
	}

	for _, c := range m.cookies {
		http.SetCookie(w, c)
	}
}

type headersResponse struct {
	meta
}

func (hr *headersResponse) WriteTo(w http.ResponseWriter, _ *http.Request, _ Context) error {
	hr.writeHeaders(w)
	w.WriteHeader(hr.status)
	return nil
}

type bodyResponse struct {
	meta
	body codec.Body
}

func (br *bodyResponse) Body() codec.Body { return br.body }

// WriteTo selects a codec.Writer by the Content-Type header set while building
// or, absent one, by negotiating the Accept header of r.
//
// The status, headers and cookies are committed on the first write or flush,
// so a failure before then leaves w untouched.
func (br *bodyResponse) WriteTo(w http.ResponseWriter, r *http.Request, c Context) error {
	writer, mt, err := c.writers().Select(br.header.Get("Content-Type"), r.Header.Get("Accept"), br.body.Type.Type())
	if err != nil {
		return err
	}

	cw := &commitWriter{ResponseWriter: w, meta: br.meta, contentType: codec.ContentType(mt)}
	if err := writer.Write(r.Context(), cw, mt, br.body); err != nil {
		return err
	}

	cw.commit()
	return nil
}

type renderingResponse struct {
	meta
	name  string
	model map[string]any
}

func (rr *renderingResponse) Name() string          { return rr.name }
func (rr *renderingResponse) Model() map[string]any { return rr.model }

// WriteTo resolves the view named by rr and renders the model with it.
//
// If c has no ViewResolver, ErrBadConfig returns.
func (rr *renderingResponse) WriteTo(w http.ResponseWriter, r *http.Request, c Context) error {
	if c.Views == nil {
		return fmt.Errorf("%w: no view resolver to render %q", ErrBadConfig, rr.name)
	}

	view, err := c.Views.Resolve(rr.name)
	if err != nil {
		return err
	}

	model := maps.Clone(rr.model)
	if model == nil {
		model = make(map[string]any)
	}

	if c.Injector != nil {
		c.Injector.Inject(model, r.Context())
	}

	cw := &commitWriter{ResponseWriter: w, meta: rr.meta, contentType: view.ContentType()}
	if err := view.Render(cw, model); err != nil {
		return err
	}

	cw.commit()
	return nil
}

// commitWriter delays copying headers and writing the status code
// until the body is first written or flushed.
// contentType applies when the response sets no Content-Type of its own.
type commitWriter struct {
	http.ResponseWriter
	meta        meta
	contentType string
	committed   bool
}

func (cw *commitWriter) commit() {
	if cw.committed {
		return
	}

	cw.committed = true
	cw.meta.writeHeaders(cw.ResponseWriter)
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", cw.contentType)
	}

	cw.ResponseWriter.WriteHeader(cw.meta.status)
}

func (cw *commitWriter) Write(p []byte) (int, error) {
	cw.commit()
	return cw.ResponseWriter.Write(p)
}

func (cw *commitWriter) Flush() {
	cw.commit()
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *commitWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }
