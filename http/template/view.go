package template

import (
	"bytes"
	html "html/template"
	"io"
	"path"
	"sync"
)

const defaultContentType = "text/html;charset=UTF-8"

// A View renders a model.
type View interface {
	ContentType() string
	Render(w io.Writer, model map[string]any) error
}

// A ViewResolver finds the View for a name.
type ViewResolver interface {
	Resolve(name string) (View, error)
}

// Resolver implements ViewResolver by parsing templates with a Parser.
type Resolver struct {
	p           Parser
	prefix      string
	suffix      string
	layouts     []string
	contentType string

	// Pool of *bytes.Buffer to prerender views into
	pool *sync.Pool
}

// NewViewResolver constructs a *Resolver parsing templates with p.
func NewViewResolver(p Parser, opts ...ResolverOptFn) *Resolver {
	r := &Resolver{
		p:           p,
		contentType: defaultContentType,
		pool:        &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve parses the template for name alongside any layouts.
//
// If the template does not exist, ErrNotFound returns.
func (r *Resolver) Resolve(name string) (View, error) {
	fps := append(append([]string{}, r.layouts...), r.prefix+name+r.suffix)
	tmpl, err := r.p.Parse(fps...)
	if err != nil {
		return nil, err
	}

	return &htmlView{
		tmpl:        tmpl,
		exec:        tmpl.Name(),
		contentType: r.contentType,
		pool:        r.pool,
	}, nil
}

type htmlView struct {
	tmpl        *html.Template
	exec        string
	contentType string
	pool        *sync.Pool
}

func (v *htmlView) ContentType() string { return v.contentType }

// Render executes the view into a pooled buffer, only writing to w once execution succeeds.
func (v *htmlView) Render(w io.Writer, model map[string]any) error {
	b := v.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer v.pool.Put(b)

	if err := v.tmpl.ExecuteTemplate(b, path.Base(v.exec), model); err != nil {
		return err
	}

	_, err := b.WriteTo(w)
	return err
}
