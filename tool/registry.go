package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/smallnest/agenttools/log"
)

// Registry is a thread-safe collection of tool definitions keyed by name.
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Definition
}

// NewRegistry creates an empty registry and registers the given tools.
// It panics if any of them fail to register, so it is safe to seed a
// registry from package Tools() lists at startup.
func NewRegistry(defs ...*Definition) *Registry {
	r := &Registry{tools: make(map[string]*Definition)}
	r.MustRegister(defs...)
	return r
}

// Register adds tools to the registry. It fails on an empty name, a nil
// handler, or a name that is already registered.
func (r *Registry) Register(defs ...*Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		if def == nil || def.name == "" {
			return fmt.Errorf("%w: tool name is empty", ErrInvalidInput)
		}
		if def.handler == nil {
			return fmt.Errorf("%w: tool %q has no handler", ErrInvalidInput, def.name)
		}
		if _, exists := r.tools[def.name]; exists {
			return fmt.Errorf("%w: tool %q already registered", ErrInvalidInput, def.name)
		}
		r.tools[def.name] = def
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(defs ...*Definition) {
	if err := r.Register(defs...); err != nil {
		panic(err)
	}
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the sorted distinct categories of registered tools.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	for _, def := range r.tools {
		if def.category != "" {
			seen[def.category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// ByCategory returns the tools in the given category sorted by name.
func (r *Registry) ByCategory(category string) []*Definition {
	return r.filter(func(def *Definition) bool {
		return def.category == category
	})
}

// ByTag returns the tools carrying the given tag sorted by name.
func (r *Registry) ByTag(tag string) []*Definition {
	return r.filter(func(def *Definition) bool {
		for _, t := range def.tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

// Search returns tools whose name, description, category or tags contain the
// query, case-insensitively, sorted by name.
func (r *Registry) Search(query string) []*Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.List()
	}
	return r.filter(func(def *Definition) bool {
		if strings.Contains(strings.ToLower(def.name), q) ||
			strings.Contains(strings.ToLower(def.description), q) ||
			strings.Contains(strings.ToLower(def.category), q) {
			return true
		}
		for _, t := range def.tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	})
}

func (r *Registry) filter(keep func(*Definition) bool) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var defs []*Definition
	for _, def := range r.tools {
		if keep(def) {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })
	return defs
}

// Execute looks up a tool by name and calls it with the JSON string input.
func (r *Registry) Execute(ctx context.Context, name, input string) (string, error) {
	def, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: tool %q", ErrNotFound, name)
	}
	result, err := def.Call(ctx, input)
	if err != nil {
		log.Debug("tool %s failed: %v", name, err)
		return "", err
	}
	return result, nil
}
