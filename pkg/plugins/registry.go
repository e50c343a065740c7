package plugins

import (
	"errors"
	"fmt"
	"io"
)

// Registry is the insertion-ordered list of loaded plugin records. Names are
// unique; the first-discovered module under a given name wins. The registry
// exclusively owns every module handle until Teardown.
type Registry struct {
	types   *TypeSet
	records []*PluginRecord
}

// NewRegistry creates an empty registry rendering descriptions against the
// given type set.
func NewRegistry(types *TypeSet) *Registry {
	return &Registry{types: types}
}

// Contains reports whether a plugin with the exact basename is registered.
func (r *Registry) Contains(name string) bool {
	for _, rec := range r.records {
		if rec.Name == name {
			return true
		}
	}
	return false
}

// insert appends a record in discovery order. Callers have already verified
// the name is unused and the capability mask is non-zero.
func (r *Registry) insert(rec *PluginRecord) {
	r.records = append(r.records, rec)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.records)
}

// Empty reports whether no plugins have been registered.
func (r *Registry) Empty() bool {
	return len(r.records) == 0
}

// Descriptions renders every record, in discovery order, into a finite
// restartable slice of description records.
func (r *Registry) Descriptions() []Description {
	out := make([]Description, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, Description{
			Name:         rec.Name,
			Version:      rec.Version,
			Capabilities: r.types.render(rec.Capabilities),
			Path:         rec.handle.Path(),
		})
	}
	return out
}

// DumpAll writes name, version, capability list and path for every plugin,
// tab-separated, one per line.
func (r *Registry) DumpAll(w io.Writer) {
	for _, d := range r.Descriptions() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Version, d.Capabilities, d.Path)
	}
}

// Teardown closes every module handle and releases all records. Called once
// at process exit.
func (r *Registry) Teardown() error {
	var errs []error
	for _, rec := range r.records {
		if err := rec.handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing plugin %s: %w", rec.Name, err))
		}
	}
	r.records = nil
	return errors.Join(errs...)
}
