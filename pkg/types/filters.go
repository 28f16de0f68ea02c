package types

import (
	"slices"
	"strings"
)

// Facet identifies one filterable product attribute.
type Facet string

const (
	FacetCategory     Facet = "categories"
	FacetAvailability Facet = "availability"
	FacetMaterial     Facet = "materials"
	FacetStoneType    Facet = "stoneTypes"
	FacetBrand        Facet = "brands"
	FacetGender       Facet = "genders"
	FacetOccasion     Facet = "occasions"
)

// MultiValueFacets are the plain add/remove facets without exclusivity rules.
var MultiValueFacets = []Facet{FacetMaterial, FacetStoneType, FacetBrand, FacetGender, FacetOccasion}

const (
	AllCategories = "all"
	InStock       = "in-stock"
	OutOfStock    = "out-of-stock"
)

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1_000_000
)

// ValueSet is a set of facet values kept in insertion order.
type ValueSet []string

func NewValueSet(values ...string) ValueSet {
	s := ValueSet{}
	for _, v := range values {
		s = s.With(v)
	}
	return s
}

func (s ValueSet) Contains(value string) bool {
	return slices.Contains(s, value)
}

// With returns a copy of the set including value.
func (s ValueSet) With(value string) ValueSet {
	if s.Contains(value) {
		return s.Clone()
	}
	return append(s.Clone(), value)
}

// Without returns a copy of the set excluding value.
func (s ValueSet) Without(value string) ValueSet {
	res := make(ValueSet, 0, len(s))
	for _, v := range s {
		if v != value {
			res = append(res, v)
		}
	}
	return res
}

func (s ValueSet) Clone() ValueSet {
	res := make(ValueSet, len(s))
	copy(res, s)
	return res
}

func (s ValueSet) Equal(other ValueSet) bool {
	if len(s) != len(other) {
		return false
	}
	for _, v := range s {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterState is everything the user has selected on the listing page.
type FilterState struct {
	Categories   ValueSet   `json:"categories"`
	Availability ValueSet   `json:"availability"`
	Price        PriceRange `json:"priceRange"`
	Materials    ValueSet   `json:"materials"`
	StoneTypes   ValueSet   `json:"stoneTypes"`
	Brands       ValueSet   `json:"brands"`
	Genders      ValueSet   `json:"genders"`
	Occasions    ValueSet   `json:"occasions"`
	SearchTerm   string     `json:"searchTerm"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Categories:   NewValueSet(AllCategories),
		Availability: NewValueSet(InStock),
		Price:        PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Materials:    ValueSet{},
		StoneTypes:   ValueSet{},
		Brands:       ValueSet{},
		Genders:      ValueSet{},
		Occasions:    ValueSet{},
	}
}

func (f FilterState) Clone() FilterState {
	res := f
	res.Categories = f.Categories.Clone()
	res.Availability = f.Availability.Clone()
	res.Materials = f.Materials.Clone()
	res.StoneTypes = f.StoneTypes.Clone()
	res.Brands = f.Brands.Clone()
	res.Genders = f.Genders.Clone()
	res.Occasions = f.Occasions.Clone()
	return res
}

// AllCategoriesSelected reports whether categories is exactly {"all"}.
func (f FilterState) AllCategoriesSelected() bool {
	return len(f.Categories) == 1 && f.Categories[0] == AllCategories
}

// Term is the search term as sent to the backend.
func (f FilterState) Term() string {
	return strings.TrimSpace(f.SearchTerm)
}

// Values returns the selection for a facet, nil for unknown facets.
func (f FilterState) Values(facet Facet) ValueSet {
	switch facet {
	case FacetCategory:
		return f.Categories
	case FacetAvailability:
		return f.Availability
	case FacetMaterial:
		return f.Materials
	case FacetStoneType:
		return f.StoneTypes
	case FacetBrand:
		return f.Brands
	case FacetGender:
		return f.Genders
	case FacetOccasion:
		return f.Occasions
	}
	return nil
}

// SetValues replaces the selection of a facet and reports whether the facet is known.
func (f *FilterState) SetValues(facet Facet, values ValueSet) bool {
	switch facet {
	case FacetCategory:
		f.Categories = values
	case FacetAvailability:
		f.Availability = values
	case FacetMaterial:
		f.Materials = values
	case FacetStoneType:
		f.StoneTypes = values
	case FacetBrand:
		f.Brands = values
	case FacetGender:
		f.Genders = values
	case FacetOccasion:
		f.Occasions = values
	default:
		return false
	}
	return true
}

// StockFilter translates the availability selection into inStock values.
// Both boxes checked yields both values; the backend treats that as no filter.
func (f FilterState) StockFilter() []bool {
	res := make([]bool, 0, 2)
	if f.Availability.Contains(InStock) {
		res = append(res, true)
	}
	if f.Availability.Contains(OutOfStock) {
		res = append(res, false)
	}
	return res
}
