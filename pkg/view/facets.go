package view

import (
	"fmt"

	"github.com/matst80/slask-storefront/pkg/types"
)

type Option struct {
	Value   string
	Label   string
	Checked bool
}

type FacetSection struct {
	Facet   types.Facet
	Title   string
	Options []Option
}

var sectionTitles = []struct {
	facet types.Facet
	title string
}{
	{types.FacetCategory, "CATEGORIES"},
	{types.FacetAvailability, "AVAILABILITY"},
	{types.FacetMaterial, "MATERIALS"},
	{types.FacetStoneType, "STONE TYPES"},
	{types.FacetBrand, "BRANDS"},
	{types.FacetGender, "GENDER"},
	{types.FacetOccasion, "OCCASIONS"},
}

var availabilityLabels = map[string]string{
	types.InStock:    "In Stock",
	types.OutOfStock: "Out of Stock",
}

func OptionLabel(v types.FacetValue) string {
	return fmt.Sprintf("%s (%d)", v.Value, v.Count)
}

// FacetSections lists the filter panel. Options come from the summary and
// their checked state from the selection only.
func FacetSections(filters types.FilterState, summary *types.FacetSummary) []FacetSection {
	res := make([]FacetSection, 0, len(sectionTitles))
	for _, st := range sectionTitles {
		selected := filters.Values(st.facet)
		section := FacetSection{Facet: st.facet, Title: st.title}
		switch st.facet {
		case types.FacetCategory:
			section.Options = append(section.Options, Option{
				Value:   types.AllCategories,
				Label:   "All Products",
				Checked: selected.Contains(types.AllCategories),
			})
		case types.FacetAvailability:
			counts := map[string]int{}
			for _, v := range summary.Values(st.facet) {
				counts[v.Value] = v.Count
			}
			for _, value := range []string{types.InStock, types.OutOfStock} {
				label := availabilityLabels[value]
				if n, ok := counts[value]; ok {
					label = fmt.Sprintf("%s (%d)", label, n)
				}
				section.Options = append(section.Options, Option{Value: value, Label: label, Checked: selected.Contains(value)})
			}
			res = append(res, section)
			continue
		}
		for _, v := range summary.Values(st.facet) {
			section.Options = append(section.Options, Option{
				Value:   v.Value,
				Label:   OptionLabel(v),
				Checked: selected.Contains(v.Value),
			})
		}
		res = append(res, section)
	}
	return res
}

// PricePlaceholders hints the available price range, empty strings without a summary.
func PricePlaceholders(summary *types.FacetSummary) (string, string) {
	if summary == nil || summary.PriceRange == nil {
		return "", ""
	}
	return "Min: " + plain(summary.PriceRange.Min), "Max: " + plain(summary.PriceRange.Max)
}
