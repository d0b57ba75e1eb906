package template

import (
	"errors"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
	mu  sync.RWMutex
}

// NewParser constructs a Parse with the provided functional options.
//
// If WithFS is not among opts, templates are read relative to the current working directory.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The first file names the returned template.
//
// Empty file paths are skipped.
// If a file does not exist, ErrNotFound returns.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp == "" {
			continue
		}

		if _, err := fs.Stat(p.fs, fp); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, fp)
			}

			return nil, fmt.Errorf("unable to open template %s: %w", fp, err)
		}

		files = append(files, fp)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}
