package ranger

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/xy-planning-network/reply"
)

// virtualFS implements fs.FS
type virtualFS struct {
	// A cache for minimizing ascertaining which directory holds the template.
	cache map[string]func(string) (fs.File, error)

	// The application's templates
	appDir fs.FS

	// Package-level templates
	pkgDir fs.FS

	mu sync.RWMutex
}

func newVirtualFS(appDir fs.FS) *virtualFS {
	return &virtualFS{
		cache:  make(map[string]func(string) (fs.File, error)),
		appDir: appDir,
		pkgDir: pkgFS,
	}
}

// Open opens the file matching the name using the following strategy:
// - check the cache
// - check the application's filesystem
// - check the package-level embedded filesystem
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
//
// If a file is removed from the application's filesystem during runtime,
// then a reference to it from the cache returns the same error (fs.ErrNotExist)
// as if the cache did not have that reference.
func (vfs *virtualFS) Open(name string) (fs.File, error) {
	vfs.mu.RLock()
	fn, ok := vfs.cache[name]
	vfs.mu.RUnlock()
	if ok {
		return fn(name)
	}

	file, err := vfs.appDir.Open(name)
	if err == nil {
		vfs.remember(name, vfs.appDir.Open)
		return file, nil
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		file, err = vfs.pkgDir.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		if err != nil {
			return nil, fmt.Errorf("%w: could not open template from ranger: %s", reply.ErrUnexpected, err)
		}

		vfs.remember(name, vfs.pkgDir.Open)
		return file, nil
	}

	return nil, fmt.Errorf("unable to open template: %w", err)
}

func (vfs *virtualFS) remember(name string, fn func(string) (fs.File, error)) {
	vfs.mu.Lock()
	vfs.cache[name] = fn
	vfs.mu.Unlock()
}

//go:embed tmpl/*
var pkgFS embed.FS
