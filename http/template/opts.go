package template

import "io/fs"

// The ParserOptFn applies functional options to a *Parse when constructing it.
type ParserOptFn func(*Parse)

// WithFn encloses a named function so it can be added to a *Parse's function map.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) {
		p.AddFn(name, fn)
	}
}

// WithFS sets the filesystem templates are read from.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) {
		p.fs = filesys
	}
}

// A ResolverOptFn configures a *Resolver when constructing it.
type ResolverOptFn func(*Resolver)

// WithPrefix prepends prefix to every view name, e.g., "tmpl/".
func WithPrefix(prefix string) ResolverOptFn {
	return func(r *Resolver) {
		r.prefix = prefix
	}
}

// WithSuffix appends suffix to every view name, e.g., ".tmpl".
func WithSuffix(suffix string) ResolverOptFn {
	return func(r *Resolver) {
		r.suffix = suffix
	}
}

// WithLayouts sets the templates every view is parsed with.
// The first layout is the one executed, so it ought to include the view's blocks.
//
// Layouts are file paths and do not receive the prefix or suffix.
func WithLayouts(fps ...string) ResolverOptFn {
	return func(r *Resolver) {
		r.layouts = fps
	}
}

// WithContentType sets the Content-Type views render as.
// The default is "text/html;charset=UTF-8".
func WithContentType(ct string) ResolverOptFn {
	return func(r *Resolver) {
		r.contentType = ct
	}
}
