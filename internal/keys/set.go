package keys

import (
	"sort"

	"github.com/gvalkov/golang-evdev"
)

// Set is a set of event codes within one event type.
type Set map[int]struct{}

// NewSet builds a Set from the given codes.
func NewSet(codes ...int) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a code.
func (s Set) Add(code int) {
	s[code] = struct{}{}
}

// Has reports whether code is in the set.
func (s Set) Has(code int) bool {
	_, ok := s[code]
	return ok
}

// SupersetOf reports whether every code in other is also in s.
func (s Set) SupersetOf(other Set) bool {
	for c := range other {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Union returns a new Set containing the codes of both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Difference returns a new Set with the codes of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for c := range s {
		if !other.Has(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// Sorted returns the codes in ascending order, for deterministic output.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// Capabilities is the set of event codes a device can emit or a symbol
// requires, partitioned by event type. Only key events and relative-motion
// events matter for target resolution.
type Capabilities struct {
	Key Set // EV_KEY codes
	Rel Set // EV_REL codes
}

// NewCapabilities returns empty capabilities.
func NewCapabilities() Capabilities {
	return Capabilities{Key: NewSet(), Rel: NewSet()}
}

// Merge adds every code of other into c.
func (c Capabilities) Merge(other Capabilities) {
	for code := range other.Key {
		c.Key.Add(code)
	}
	for code := range other.Rel {
		c.Rel.Add(code)
	}
}

// AddCode inserts a code into the set for the given event type. Event types
// other than EV_KEY and EV_REL are ignored; they never influence targets.
func (c Capabilities) AddCode(evType, code int) {
	switch evType {
	case evdev.EV_KEY:
		c.Key.Add(code)
	case evdev.EV_REL:
		c.Rel.Add(code)
	}
}
