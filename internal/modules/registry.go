// Package modules implements the module resolver and source reader used to
// expand embed directives and relative image targets.
package modules

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/fileutil"
)

// Sentinel errors for registry operations.
var (
	ErrEmptyDir   = errors.New("module directory cannot be empty")
	ErrInvalidURL = errors.New("module URL must start with http:// or https://")
)

// Module locates one module on disk and on the web.
type Module struct {
	Name string
	Dir  string // absolute source directory
	URL  string // public base URL without trailing slash, may be empty
}

// Registry maps module names to their locations. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry builds a registry from configured modules.
// Returns an error wrapping config.ErrInvalidModule for a bad name.
func NewRegistry(entries map[string]config.ModuleConfig) (*Registry, error) {
	r := &Registry{modules: make(map[string]Module, len(entries))}
	for name, entry := range entries {
		if err := r.Set(name, entry.Dir, entry.URL); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Set adds or replaces a module. dir is made absolute.
func (r *Registry) Set(name, dir, url string) error {
	if err := config.ValidateModuleName(name); err != nil {
		return err
	}
	if dir == "" {
		return fmt.Errorf("%w: %s", ErrEmptyDir, name)
	}
	if url != "" && !fileutil.IsURL(url) {
		return fmt.Errorf("%w: %s: %q", ErrInvalidURL, name, url)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s dir: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[name] = Module{Name: name, Dir: abs, URL: strings.TrimRight(url, "/")}
	return nil
}

// SetDir changes the directory of a module, creating it if unknown.
func (r *Registry) SetDir(name, dir string) error {
	m, _ := r.Lookup(name)
	return r.Set(name, dir, m.URL)
}

// SetURL changes the base URL of an existing module.
func (r *Registry) SetURL(name, url string) error {
	m, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q has no directory", config.ErrInvalidModule, name)
	}
	return r.Set(name, m.Dir, url)
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, bool) {
	if r == nil {
		return Module{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// ModulePath returns the source directory of module.
func (r *Registry) ModulePath(module string) (string, bool) {
	m, ok := r.Lookup(module)
	return m.Dir, ok
}

// ModuleURL returns the public base URL of module. A module without a URL
// reports false.
func (r *Registry) ModuleURL(module string) (string, bool) {
	m, ok := r.Lookup(module)
	if !ok || m.URL == "" {
		return "", false
	}
	return m.URL, true
}

// Names returns the registered module names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// owner returns the module whose directory contains path, preferring the
// deepest directory when modules nest.
func (r *Registry) owner(path string) (Module, bool) {
	if r == nil {
		return Module{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best Module
	found := false
	for _, m := range r.modules {
		if !strings.HasPrefix(path, m.Dir+string(filepath.Separator)) {
			continue
		}
		if !found || len(m.Dir) > len(best.Dir) {
			best, found = m, true
		}
	}
	return best, found
}
