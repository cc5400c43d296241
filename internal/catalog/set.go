// Package catalog loads the authoritative pattern identifier set for a project.
package catalog

import "sort"

// IDSet is the set of valid pattern identifiers declared by a catalog.
// Identifiers are lowercase alphanumerics and hyphens.
type IDSet struct {
	ids map[string]struct{}
}

// NewIDSet creates an empty identifier set.
func NewIDSet() *IDSet {
	return &IDSet{ids: make(map[string]struct{})}
}

// Add inserts an identifier. Empty strings are ignored; duplicates collapse.
func (s *IDSet) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s *IDSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (s *IDSet) Len() int {
	return len(s.ids)
}

// Sorted returns the identifiers in lexical order.
func (s *IDSet) Sorted() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
