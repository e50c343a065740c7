package plugins

import (
	"errors"
	"fmt"
)

// ErrTooManyCapabilityTypes is returned by TypeSet.Register once
// MaxCapabilityTypes types are already installed.
var ErrTooManyCapabilityTypes = errors.New("at most 32 capability types can be registered")

// TypeSet is the ordered collection of registered capability types.
// Registration order is significant: it fixes each type's bit slot and the
// order type names appear in rendered capability lists.
type TypeSet struct {
	types []CapabilityType
}

// NewTypeSet creates an empty capability type set.
func NewTypeSet() *TypeSet {
	return &TypeSet{}
}

// Register installs a capability type under the next free slot, starting at
// 0. The attempted type is not installed when the set is full; the caller
// must treat the capability as disabled.
func (s *TypeSet) Register(name string, predicate CapabilityPredicate) (int, error) {
	if len(s.types) >= MaxCapabilityTypes {
		return 0, fmt.Errorf("capability type %q won't be supported: %w", name, ErrTooManyCapabilityTypes)
	}

	slot := len(s.types)
	s.types = append(s.types, CapabilityType{
		Name:      name,
		Slot:      slot,
		predicate: predicate,
	})

	return slot, nil
}

// Types returns the registered capability types in registration order.
func (s *TypeSet) Types() []CapabilityType {
	out := make([]CapabilityType, len(s.types))
	copy(out, s.types)
	return out
}

// Len returns the number of registered capability types.
func (s *TypeSet) Len() int {
	return len(s.types)
}

// classify probes every registered predicate against an opened module, in
// slot order, and returns the resulting capability mask.
func (s *TypeSet) classify(h ModuleHandle) uint32 {
	var mask uint32
	for _, ct := range s.types {
		if ct.predicate != nil && ct.predicate(h) {
			mask |= 1 << uint(ct.Slot)
		}
	}
	return mask
}

// render builds the comma-joined list of capability type names whose bits
// are set in mask, iterating in slot order.
func (s *TypeSet) render(mask uint32) string {
	var out string
	sep := ""
	for _, ct := range s.types {
		if mask&(1<<uint(ct.Slot)) != 0 {
			out += sep + ct.Name
			sep = ", "
		}
	}
	return out
}

// reset releases the type list. Called from Catalog.Teardown.
func (s *TypeSet) reset() {
	s.types = nil
}
