package dataset

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Constructor builds a dataset on demand. Arguments are carried by the
// closure, making a Constructor the deferred-construction recipe a
// registry stores.
type Constructor func() (*Dataset, error)

type regKey struct {
	kind string
	name string
}

// Registry maps (kind, name) to a deferred-construction recipe.
//
// Registries are explicit objects rather than hidden package state so
// tests can isolate them and callers can run several independently; the
// package-level Default registry covers the common case. A registry
// assumes a single writer: concurrent Add/Get is not supported.
type Registry struct {
	entries     map[regKey]Constructor
	order       []regKey // insertion order for deterministic listing
	summarizers map[string]Summarizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:     make(map[regKey]Constructor),
		summarizers: make(map[string]Summarizer),
	}
}

// Add registers a recipe under (kind, name). Re-registering an existing
// key silently replaces the recipe and keeps its original position in
// the listing order.
func (r *Registry) Add(kind, name string, build Constructor) {
	k := regKey{kind: kind, name: name}
	if _, exists := r.entries[k]; !exists {
		r.order = append(r.order, k)
	}
	r.entries[k] = build
}

// AddFunc registers a named top-level constructor function under a name
// derived from its identifier, with underscores mapped to hyphens.
func (r *Registry) AddFunc(kind string, build Constructor) {
	r.Add(kind, funcName(build), build)
}

// Get materializes the dataset registered under (kind, name).
//
// The recipe runs inside a named diagnostic scope, so a construction
// failure is attributed to the dataset name. The produced dataset has
// its Name set to the registry name. Fails with ErrNotRegistered when
// the key is unknown.
func (r *Registry) Get(kind, name string) (*Dataset, error) {
	sc := newScope(name)
	build, ok := r.entries[regKey{kind: kind, name: name}]
	if !ok {
		return nil, sc.wrap(fmt.Errorf("%w: no %q dataset named %q", ErrNotRegistered, kind, name))
	}
	ds, err := build()
	if err != nil {
		return nil, sc.wrap(err)
	}
	ds.Name = name
	return ds, nil
}

// List returns the names registered under kind, in registration order.
func (r *Registry) List(kind string) []string {
	var names []string
	for _, k := range r.order {
		if k.kind == kind {
			names = append(names, k.name)
		}
	}
	return names
}

// funcName derives a registry name from a function's identifier:
// the last path segment of its symbol name, underscores mapped to
// hyphens. Closures get their compiler-assigned names (".func1"
// suffixes), so AddFunc is meant for named top-level functions.
func funcName(fn Constructor) string {
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.ReplaceAll(full, "_", "-")
}

// Default is the process-wide registry that built-in catalogs register
// into. It starts empty and is populated by package init and explicit
// registration calls; it is never cleared during normal operation.
var Default = NewRegistry()

// Add registers a recipe in the Default registry.
func Add(kind, name string, build Constructor) {
	Default.Add(kind, name, build)
}

// Get materializes a dataset from the Default registry.
func Get(kind, name string) (*Dataset, error) {
	return Default.Get(kind, name)
}

// List returns the Default registry's names under kind.
func List(kind string) []string {
	return Default.List(kind)
}
