package devserver

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/matst80/slask-storefront/pkg/types"
)

// matcher holds one request's filters in lookup form.
type matcher struct {
	search     string
	minPrice   float64
	maxPrice   float64
	categories map[string]bool
	facets     map[types.Facet]map[string]bool
	stock      map[bool]bool
}

func lookup(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	res := make(map[string]bool, len(values))
	for _, v := range values {
		res[strings.ToLower(v)] = true
	}
	return res
}

func newMatcher(q types.FacetQuery, categories []string) *matcher {
	m := &matcher{
		search:     strings.ToLower(strings.TrimSpace(q.Search)),
		minPrice:   float64(q.MinPrice),
		maxPrice:   float64(q.MaxPrice),
		categories: lookup(categories),
		facets: map[types.Facet]map[string]bool{
			types.FacetMaterial:  lookup(q.Material),
			types.FacetStoneType: lookup(q.StoneType),
			types.FacetBrand:     lookup(q.Brand),
			types.FacetGender:    lookup(q.Gender),
			types.FacetOccasion:  lookup(q.Occasion),
		},
	}
	// both values selected means no stock filter
	if len(q.InStock) > 0 {
		m.stock = map[bool]bool{}
		for _, v := range q.InStock {
			m.stock[v] = true
		}
		if len(m.stock) == 2 {
			m.stock = nil
		}
	}
	return m
}

func anyIn(set map[string]bool, values []string) bool {
	for _, v := range values {
		if set[strings.ToLower(v)] {
			return true
		}
	}
	return false
}

func (m *matcher) matchSearch(p *types.Product) bool {
	if m.search == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Brand, p.Description, p.Sku} {
		if strings.Contains(strings.ToLower(field), m.search) {
			return true
		}
	}
	return false
}

func (m *matcher) match(p *types.Product) bool {
	if !m.matchSearch(p) {
		return false
	}
	if p.DiscountedPrice < m.minPrice || p.DiscountedPrice > m.maxPrice {
		return false
	}
	if m.categories != nil && !anyIn(m.categories, p.FacetValues(types.FacetCategory)) {
		return false
	}
	for facet, set := range m.facets {
		if set == nil {
			continue
		}
		if !anyIn(set, p.FacetValues(facet)) {
			return false
		}
	}
	if m.stock != nil && !m.stock[p.IsInStock()] {
		return false
	}
	return true
}

func (c *Catalog) filter(m *matcher) []*types.Product {
	res := make([]*types.Product, 0)
	for i := range c.products {
		if m.match(&c.products[i]) {
			res = append(res, &c.products[i])
		}
	}
	return res
}

// Products returns one page of matching products and the page block.
func (c *Catalog) Products(q types.ProductQuery) types.ProductPage {
	matching := c.filter(newMatcher(q.Facets, q.Category))
	total := len(matching)
	limit := max(q.Limit, 1)
	pages := int(math.Ceil(float64(total) / float64(limit)))
	page := max(q.Page, 1)

	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	products := make([]types.Product, 0, end-start)
	for _, p := range matching[start:end] {
		products = append(products, *p)
	}
	return types.ProductPage{
		Products: products,
		Pagination: types.Pagination{
			Page:  page,
			Pages: pages,
			Total: types.TotalCount(total),
		},
	}
}

func countValues(products []*types.Product, facet types.Facet) []types.FacetValue {
	counts := map[string]int{}
	order := []string{}
	for _, p := range products {
		for _, v := range p.FacetValues(facet) {
			if _, seen := counts[v]; !seen {
				order = append(order, v)
			}
			counts[v]++
		}
	}
	res := make([]types.FacetValue, 0, len(order))
	for _, v := range order {
		res = append(res, types.FacetValue{Value: v, Count: counts[v]})
	}
	slices.SortStableFunc(res, func(a, b types.FacetValue) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return res
}

// Filters counts facet values over the products matching q. Category is never
// applied so every category keeps its count.
func (c *Catalog) Filters(q types.FacetQuery) types.FacetSummary {
	matching := c.filter(newMatcher(q, nil))
	summary := types.FacetSummary{
		Categories: countValues(matching, types.FacetCategory),
		Materials:  countValues(matching, types.FacetMaterial),
		StoneTypes: countValues(matching, types.FacetStoneType),
		Brands:     countValues(matching, types.FacetBrand),
		Genders:    countValues(matching, types.FacetGender),
		Occasions:  countValues(matching, types.FacetOccasion),
		Stock:      &types.StockCounts{},
		PriceRange: &types.PriceBounds{},
	}
	for i, p := range matching {
		if p.IsInStock() {
			summary.Stock.InStock++
		} else {
			summary.Stock.OutOfStock++
		}
		if i == 0 || p.DiscountedPrice < summary.PriceRange.Min {
			summary.PriceRange.Min = p.DiscountedPrice
		}
		if p.DiscountedPrice > summary.PriceRange.Max {
			summary.PriceRange.Max = p.DiscountedPrice
		}
	}
	return summary
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Suggestions completes query against brands first and then product name words.
func (c *Catalog) Suggestions(q types.SuggestionQuery) []types.Suggestion {
	prefix := strings.ToLower(strings.TrimSpace(q.Query))
	res := []types.Suggestion{}
	if len([]rune(prefix)) < 2 {
		return res
	}
	limit := max(q.Limit, 1)
	seen := map[string]bool{}
	add := func(text, kind string) bool {
		key := kind + ":" + strings.ToLower(text)
		if seen[key] {
			return len(res) < limit
		}
		seen[key] = true
		res = append(res, types.Suggestion{Text: text, Type: kind})
		return len(res) < limit
	}
	for i := range c.products {
		if b := c.products[i].Brand; b != "" && strings.HasPrefix(strings.ToLower(b), prefix) {
			if !add(b, "brand") {
				return res
			}
		}
	}
	for i := range c.products {
		for _, w := range words(c.products[i].Name) {
			if strings.HasPrefix(strings.ToLower(w), prefix) {
				if !add(strings.ToLower(w), "product") {
					return res
				}
			}
		}
	}
	return res
}
