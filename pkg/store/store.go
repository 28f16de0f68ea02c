// Package store owns the filter and search selection of a browsing session.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matst80/slask-storefront/pkg/types"
)

var (
	ErrUnknownFacet        = errors.New("unknown facet")
	ErrUnknownAvailability = errors.New("unknown availability value")
)

// Store holds the mutable FilterState. All reads hand out copies.
type Store struct {
	mu    sync.RWMutex
	state types.FilterState
}

func New() *Store {
	return &Store{state: types.DefaultFilterState()}
}

func (s *Store) Snapshot() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = types.DefaultFilterState()
}

// ToggleCategory applies a category checkbox change and returns the new selection.
func (s *Store) ToggleCategory(value string, checked bool) types.ValueSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = ToggleCategory(s.state.Categories, value, checked)
	return s.state.Categories.Clone()
}

// ToggleFacet adds or removes a value of any facet. Categories and
// availability are routed through their own rules.
func (s *Store) ToggleFacet(facet types.Facet, value string, checked bool) error {
	switch facet {
	case types.FacetCategory:
		s.ToggleCategory(value, checked)
		return nil
	case types.FacetAvailability:
		return s.SetAvailability(value, checked)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.state.Values(facet)
	if current == nil {
		return fmt.Errorf("%w: %s", ErrUnknownFacet, facet)
	}
	if checked {
		current = current.With(value)
	} else {
		current = current.Without(value)
	}
	s.state.SetValues(facet, current)
	return nil
}

func (s *Store) SetAvailability(value string, checked bool) error {
	if value != types.InStock && value != types.OutOfStock {
		return fmt.Errorf("%w: %q", ErrUnknownAvailability, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if checked {
		s.state.Availability = s.state.Availability.With(value)
	} else {
		s.state.Availability = s.state.Availability.Without(value)
	}
	return nil
}

// SetPriceRange stores the bounds as given; clamping is done by the price editor.
func (s *Store) SetPriceRange(min, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Price = types.PriceRange{Min: min, Max: max}
}

// SetSearchTerm stores the trimmed term.
func (s *Store) SetSearchTerm(term string) {
	term = strings.TrimSpace(term)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchTerm = term
}

// ToggleCategory implements the "all" versus specific category rules.
//
// Checking "all" selects only "all". Checking a specific value drops "all".
// Unchecking the last specific value restores "all". Unchecking "all" only
// removes it while something else is selected, so the set is never empty.
func ToggleCategory(current types.ValueSet, value string, checked bool) types.ValueSet {
	if value == types.AllCategories {
		if checked {
			return types.NewValueSet(types.AllCategories)
		}
		next := current.Without(types.AllCategories)
		if len(next) == 0 {
			return types.NewValueSet(types.AllCategories)
		}
		return next
	}
	if checked {
		return current.Without(types.AllCategories).With(value)
	}
	next := current.Without(value)
	if len(next) == 0 {
		return types.NewValueSet(types.AllCategories)
	}
	return next
}
