package types

type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type StockCounts struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSummary is the per value count block returned by the filter endpoint.
// It is display data only and never changes a selection.
type FacetSummary struct {
	Categories []FacetValue `json:"categories"`
	Materials  []FacetValue `json:"materials"`
	StoneTypes []FacetValue `json:"stone_types"`
	Brands     []FacetValue `json:"brands"`
	Genders    []FacetValue `json:"genders"`
	Occasions  []FacetValue `json:"occasions"`
	Stock      *StockCounts `json:"stock,omitempty"`
	PriceRange *PriceBounds `json:"priceRange,omitempty"`
}

func (s *FacetSummary) Values(facet Facet) []FacetValue {
	if s == nil {
		return nil
	}
	switch facet {
	case FacetCategory:
		return s.Categories
	case FacetMaterial:
		return s.Materials
	case FacetStoneType:
		return s.StoneTypes
	case FacetBrand:
		return s.Brands
	case FacetGender:
		return s.Genders
	case FacetOccasion:
		return s.Occasions
	case FacetAvailability:
		if s.Stock == nil {
			return nil
		}
		return []FacetValue{
			{Value: InStock, Count: s.Stock.InStock},
			{Value: OutOfStock, Count: s.Stock.OutOfStock},
		}
	}
	return nil
}

func (s *FacetSummary) Clone() *FacetSummary {
	if s == nil {
		return nil
	}
	c := func(v []FacetValue) []FacetValue {
		if v == nil {
			return nil
		}
		return append([]FacetValue{}, v...)
	}
	res := &FacetSummary{
		Categories: c(s.Categories),
		Materials:  c(s.Materials),
		StoneTypes: c(s.StoneTypes),
		Brands:     c(s.Brands),
		Genders:    c(s.Genders),
		Occasions:  c(s.Occasions),
	}
	if s.Stock != nil {
		stock := *s.Stock
		res.Stock = &stock
	}
	if s.PriceRange != nil {
		rng := *s.PriceRange
		res.PriceRange = &rng
	}
	return res
}
