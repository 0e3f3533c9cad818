// Package packs provides builtin rule pack constructors covering all five
// result shapes, plus a name-keyed registry so packs can be instantiated
// from configuration.
package packs

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kieroneil/ruler/pkg/rules"
)

// BuildFunc constructs a pack from configuration options.
type BuildFunc func(opts map[string]any) (rules.Pack, error)

// Spec describes a registered builtin pack.
type Spec struct {
	Name        string
	Description string
	Type        rules.PackType
	OptionKeys  []string
	Build       BuildFunc
}

// globalRegistry is the single registry for builtin packs.
var globalRegistry = &registry{specs: make(map[string]Spec)}

type registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// Register adds a pack spec to the registry. Call this from init()
// functions in pack packages.
func Register(spec Spec) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.specs[spec.Name] = spec
}

// Get returns a spec by name.
func Get(name string) (Spec, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	spec, ok := globalRegistry.specs[name]
	return spec, ok
}

// All returns all registered specs sorted by name.
func All() []Spec {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	specs := make([]Spec, 0, len(globalRegistry.specs))
	for _, spec := range globalRegistry.specs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Count returns the number of registered specs.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.specs)
}

// Build constructs a named builtin pack with the given options.
func Build(name string, opts map[string]any) (rules.Pack, error) {
	spec, ok := Get(name)
	if !ok {
		return rules.Pack{}, fmt.Errorf("unknown builtin pack %q", name)
	}
	pack, err := spec.Build(opts)
	if err != nil {
		return rules.Pack{}, fmt.Errorf("failed to build pack %q: %w", name, err)
	}
	return pack, nil
}
