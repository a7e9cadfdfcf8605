// Package selection tracks the facet values a user has chosen.
package selection

import (
	"slices"
	"strings"
	"sync"

	"github.com/Veraticus/wallmatch/internal/model"
)

// Cardinality is the number of values a facet may hold.
type Cardinality int

const (
	// OneOrMore keeps an ordered set per facet.
	OneOrMore Cardinality = iota
	// ExactlyOne keeps at most one value per facet.
	ExactlyOne
)

// CardinalityFor maps a request selection mode to its cardinality policy.
func CardinalityFor(mode model.SelectionMode) Cardinality {
	if mode == model.ModeSingle {
		return ExactlyOne
	}
	return OneOrMore
}

// Store holds the current selection for each facet.
type Store struct {
	values map[model.FacetKind][]string
	policy Cardinality
	mu     sync.RWMutex
}

// NewStore creates an empty store with the given policy.
func NewStore(policy Cardinality) *Store {
	return &Store{
		policy: policy,
		values: make(map[model.FacetKind][]string),
	}
}

// Policy returns the store's cardinality policy.
func (s *Store) Policy() Cardinality {
	return s.policy
}

// Toggle flips value in the facet. With ExactlyOne the value replaces any
// prior one; selecting the current value again keeps it selected.
func (s *Store) Toggle(kind model.FacetKind, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.values[kind]

	if s.policy == ExactlyOne {
		s.values[kind] = []string{value}
		return
	}

	if i := slices.Index(current, value); i >= 0 {
		s.values[kind] = slices.Delete(slices.Clone(current), i, i+1)
		return
	}
	s.values[kind] = append(slices.Clone(current), value)
}

// Clear empties every facet.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[model.FacetKind][]string)
}

// Values returns a copy of the facet's values in insertion order.
func (s *Store) Values(kind model.FacetKind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.values[kind])
}

// Has reports whether value is selected in the facet.
func (s *Store) Has(kind model.FacetKind, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Contains(s.values[kind], value)
}

// Mirror returns the comma-joined serialized form of the facet.
func (s *Store) Mirror(kind model.FacetKind) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return strings.Join(s.values[kind], ",")
}

// Satisfied reports whether the facet meets the cardinality policy.
func (s *Store) Satisfied(kind model.FacetKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.values[kind])
	if s.policy == ExactlyOne {
		return n == 1
	}
	return n >= 1
}

// Empty reports whether no facet holds a value.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.values {
		if len(v) > 0 {
			return false
		}
	}
	return true
}
