package view

import (
	"testing"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsLabel(t *testing.T) {
	assert.Equal(t, "25 RESULTS FOUND", ResultsLabel(25, ""))
	assert.Equal(t, "3 RESULTS FOUND FOR 'GOLD RING'", ResultsLabel(3, " gold ring "))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "125,000", Number(125000))
	assert.Equal(t, "1,234.5", Number(1234.5))
	assert.Equal(t, "₹0", Price(0))
}

func TestProductCardDefaults(t *testing.T) {
	c := ProductCard(types.Product{})
	assert.Equal(t, "Jewelry Product", c.Title)
	assert.Equal(t, "CaratBazaar", c.Brand)
	assert.Equal(t, "GOLD • Diamond", c.Details)
	assert.Equal(t, "From ₹0", c.Price)
	assert.Empty(t, c.OriginalPrice)
	assert.Empty(t, c.Discount)
	assert.Empty(t, c.Extras)
	assert.True(t, c.Placeholder)
}

func TestProductCard(t *testing.T) {
	c := ProductCard(types.Product{
		Name:            "Solitaire Ring",
		Material:        "white gold",
		StoneType:       "moissanite",
		BasePrice:       50000,
		DiscountedPrice: 42500,
		DiscountPercent: 15,
		Gender:          "Women",
		Occasions:       types.StringList{"Wedding", "Engagement"},
		CaratWeight:     "0.5",
		Clarity:         "VS1",
		Images:          types.ImageList{"a.jpg", "b.jpg", "c.jpg"},
	})
	assert.Equal(t, "WHITE GOLD • Moissanite", c.Details)
	assert.Equal(t, "₹50,000", c.OriginalPrice)
	assert.Equal(t, "From ₹42,500", c.Price)
	assert.Equal(t, "Save 15%", c.Discount)
	assert.Equal(t, []string{"For: Women", "Occasion: Wedding, Engagement", "Weight: 0.5", "Clarity: VS1"}, c.Extras)
	assert.Equal(t, "3 Photos", c.PhotoBadge)
	assert.False(t, c.Placeholder)

	single := ProductCard(types.Product{Images: types.ImageList{"a.jpg"}})
	assert.Empty(t, single.PhotoBadge)
	assert.False(t, single.Placeholder)
}

func TestProductDetail(t *testing.T) {
	d := ProductDetail(types.Product{DiscountedPrice: 999, Cut: "Round", ReturnPolicy: "30 days"})
	assert.Equal(t, "Product Details", d.Title)
	assert.Equal(t, []Field{
		{"Brand", "N/A"},
		{"SKU", "N/A"},
		{"Price", "₹999"},
		{"Material", "N/A"},
		{"Stone Type", "N/A"},
		{"Cut", "Round"},
	}, d.Fields)
	assert.Equal(t, []Section{{"Return Policy", "30 days"}}, d.Sections)
}

func TestFacetSections(t *testing.T) {
	filters := types.DefaultFilterState()
	filters.Materials = types.NewValueSet("Gold")
	summary := &types.FacetSummary{
		Categories: []types.FacetValue{{Value: "Necklace", Count: 5}},
		Materials:  []types.FacetValue{{Value: "Gold", Count: 7}, {Value: "Silver", Count: 2}},
		Stock:      &types.StockCounts{InStock: 9, OutOfStock: 1},
		PriceRange: &types.PriceBounds{Min: 1200, Max: 99000},
	}
	sections := FacetSections(filters, summary)
	require.Len(t, sections, 7)

	cat := sections[0]
	assert.Equal(t, "CATEGORIES", cat.Title)
	assert.Equal(t, []Option{
		{Value: "all", Label: "All Products", Checked: true},
		{Value: "Necklace", Label: "Necklace (5)", Checked: false},
	}, cat.Options)

	avail := sections[1]
	assert.Equal(t, []Option{
		{Value: types.InStock, Label: "In Stock (9)", Checked: true},
		{Value: types.OutOfStock, Label: "Out of Stock (1)", Checked: false},
	}, avail.Options)

	mat := sections[2]
	assert.Equal(t, types.FacetMaterial, mat.Facet)
	assert.True(t, mat.Options[0].Checked)
	assert.Equal(t, "Silver (2)", mat.Options[1].Label)

	lo, hi := PricePlaceholders(summary)
	assert.Equal(t, "Min: 1200", lo)
	assert.Equal(t, "Max: 99000", hi)
}

func TestFacetSectionsWithoutSummary(t *testing.T) {
	sections := FacetSections(types.DefaultFilterState(), nil)
	assert.Len(t, sections[0].Options, 1)
	assert.Equal(t, "In Stock", sections[1].Options[0].Label)
	lo, hi := PricePlaceholders(nil)
	assert.Empty(t, lo)
	assert.Empty(t, hi)
}

func TestPriceInputClamp(t *testing.T) {
	p := NewPriceInput(types.PriceRange{Min: 0, Max: 5000})
	p.SetMin("8000")
	assert.Equal(t, "5000", p.Min)
	p.SetMin("1000")
	p.SetMax("500")
	assert.Equal(t, "1000", p.Max)
	p.SetMax("")
	assert.Equal(t, types.PriceRange{Min: 1000, Max: 1_000_000}, p.Range())

	p.SetMin("abc")
	assert.Equal(t, 0, p.Range().Min)
}

func TestPriceSlider(t *testing.T) {
	p := NewPriceInput(types.DefaultFilterState().Price)
	p.SetBounds(&types.FacetSummary{PriceRange: &types.PriceBounds{Min: 10, Max: 20000}})
	p.Slide(50000)
	assert.Equal(t, "20000", p.Max)
	p.Slide(7500)
	assert.Equal(t, types.PriceRange{Min: 0, Max: 7500}, p.Range())
}

func TestSlider(t *testing.T) {
	s := NewSlider([]string{"a", "b", "c"})
	s.Prev()
	assert.Equal(t, 2, s.Current)
	s.Next()
	assert.Equal(t, 0, s.Current)
	s.GoTo(1)
	assert.Equal(t, "b", s.Image())
	s.GoTo(9)
	assert.Equal(t, 1, s.Current)

	s.Swipe(200, 100)
	assert.Equal(t, 2, s.Current)
	s.Swipe(100, 130)
	assert.Equal(t, 2, s.Current)
	s.Swipe(100, 200)
	assert.Equal(t, 1, s.Current)

	s.Focused = true
	assert.False(t, s.Tick())
	s.Focused = false
	assert.True(t, s.Tick())
	assert.Equal(t, "3 / 3", s.Counter())
	assert.True(t, s.ShowDots())

	many := NewSlider(make([]string, 9))
	assert.False(t, many.ShowDots())
	assert.False(t, NewSlider([]string{"x"}).Tick())
}

func TestSuggestionIcon(t *testing.T) {
	assert.Equal(t, BrandIcon, SuggestionIcon(types.Suggestion{Text: "CaratBazaar", Type: "brand"}))
	assert.Equal(t, ProductIcon, SuggestionIcon(types.Suggestion{Text: "ring", Type: "product"}))
}
