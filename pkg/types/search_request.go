package types

import (
	"net/url"

	"github.com/gorilla/schema"
)

const (
	DefaultPageSize   = 10
	MaxPageSize       = 100
	SuggestionLimit   = 8
	MaxSuggestionSize = 50
)

// FacetQuery carries the parameters shared by the product and filter endpoints.
// It never carries a category so facet counts cover every category.
type FacetQuery struct {
	Search    string   `json:"search" schema:"search"`
	MinPrice  int      `json:"minPrice" schema:"minPrice,default:0"`
	MaxPrice  int      `json:"maxPrice" schema:"maxPrice,default:1000000"`
	Material  []string `json:"material" schema:"material,omitempty"`
	StoneType []string `json:"stone_type" schema:"stone_type,omitempty"`
	Brand     []string `json:"brand" schema:"brand,omitempty"`
	Gender    []string `json:"gender" schema:"gender,omitempty"`
	Occasion  []string `json:"occasion" schema:"occasion,omitempty"`
	InStock   []bool   `json:"inStock" schema:"inStock,omitempty"`
}

// Paging is the page window of a product request.
type Paging struct {
	Page     int      `json:"page" schema:"page,default:1"`
	Limit    int      `json:"limit" schema:"limit,default:10"`
	Category []string `json:"category" schema:"category,omitempty"`
}

type ProductQuery struct {
	Paging
	Facets FacetQuery `json:"facets"`
}

type SuggestionQuery struct {
	Query string `schema:"q"`
	Limit int    `schema:"limit,default:8"`
}

var (
	encoder = schema.NewEncoder()
	decoder = schema.NewDecoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.ZeroEmpty(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// BuildFacetQuery maps filter state onto the filter endpoint parameters.
func BuildFacetQuery(f FilterState) FacetQuery {
	return FacetQuery{
		Search:    f.Term(),
		MinPrice:  f.Price.Min,
		MaxPrice:  f.Price.Max,
		Material:  []string(f.Materials.Clone()),
		StoneType: []string(f.StoneTypes.Clone()),
		Brand:     []string(f.Brands.Clone()),
		Gender:    []string(f.Genders.Clone()),
		Occasion:  []string(f.Occasions.Clone()),
		InStock:   f.StockFilter(),
	}
}

// BuildProductQuery maps filter state and a page window onto the product endpoint parameters.
// When categories is {"all"} no category parameter is sent.
func BuildProductQuery(f FilterState, page, pageSize int) ProductQuery {
	q := ProductQuery{
		Paging: Paging{
			Page:     page,
			Limit:    pageSize,
			Category: []string{},
		},
		Facets: BuildFacetQuery(f),
	}
	if !f.AllCategoriesSelected() {
		q.Category = []string(f.Categories.Without(AllCategories))
	}
	return q
}

func (q FacetQuery) Values() url.Values {
	res := url.Values{}
	// encoding a flat struct of supported kinds cannot fail
	_ = encoder.Encode(q, res)
	return res
}

func (q ProductQuery) Values() url.Values {
	res := q.Facets.Values()
	_ = encoder.Encode(q.Paging, res)
	return res
}

func (q SuggestionQuery) Values() url.Values {
	res := url.Values{}
	_ = encoder.Encode(q, res)
	return res
}

func (q *FacetQuery) Sanitize() {
	q.MinPrice = max(q.MinPrice, 0)
	q.MaxPrice = max(q.MaxPrice, q.MinPrice)
}

func (q *ProductQuery) Sanitize() {
	q.Page = max(q.Page, 1)
	q.Limit = clamp(q.Limit, 1, MaxPageSize)
	q.Facets.Sanitize()
}

func (q *SuggestionQuery) Sanitize() {
	q.Limit = clamp(q.Limit, 1, MaxSuggestionSize)
}

func DecodeFacetQuery(query url.Values) (*FacetQuery, error) {
	res := &FacetQuery{}
	if err := decoder.Decode(res, query); err != nil {
		return nil, err
	}
	res.Sanitize()
	return res, nil
}

func DecodeProductQuery(query url.Values) (*ProductQuery, error) {
	res := &ProductQuery{}
	if err := decoder.Decode(&res.Paging, query); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&res.Facets, query); err != nil {
		return nil, err
	}
	res.Sanitize()
	return res, nil
}

func DecodeSuggestionQuery(query url.Values) (*SuggestionQuery, error) {
	res := &SuggestionQuery{}
	if err := decoder.Decode(res, query); err != nil {
		return nil, err
	}
	res.Sanitize()
	return res, nil
}
