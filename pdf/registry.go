package pdf

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/types"
)

// Options carries the document metadata of a render request.
type Options struct {
	Filename string `json:"filename,omitempty"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
}

// GenerateFunc renders data into a PDF document.
type GenerateFunc func(ctx context.Context, data types.JSON, opts Options) ([]byte, error)

// TemplateNotFoundError is returned when a name is not registered.
type TemplateNotFoundError struct {
	Name  string
	Names []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("Template %q not found", e.Name)
}

// Registry maps template names to generators.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]GenerateFunc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]GenerateFunc)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry populated by pdf/templates.
func Default() *Registry { return defaultRegistry }

// Register adds a template. An existing name is overwritten.
func (r *Registry) Register(name string, fn GenerateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[name]; ok {
		logger.Warnf(context.Background(), "Template %q is already registered. Overwriting...", name)
	}
	r.templates[name] = fn
}

// Get looks up a template
func (r *Registry) Get(name string) (GenerateFunc, error) {
	r.mu.RLock()
	fn, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &TemplateNotFoundError{Name: name, Names: r.Names()}
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Unregister removes a template and reports whether it existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[name]; !ok {
		return false
	}
	delete(r.templates, name)
	return true
}

// Generate renders the named template.
func (r *Registry) Generate(ctx context.Context, name string, data types.JSON, opts Options) ([]byte, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn(ctx, data, opts)
}
