package view

import (
	"strconv"
	"strings"

	"github.com/matst80/slask-storefront/pkg/types"
)

// PriceInput is the min/max editor with its range slider. The two bounds are
// kept as typed text; an edit that crosses the other bound is clamped to it.
type PriceInput struct {
	Min       string
	Max       string
	SliderMax int
}

func NewPriceInput(r types.PriceRange) PriceInput {
	return PriceInput{
		Min:       strconv.Itoa(r.Min),
		Max:       strconv.Itoa(r.Max),
		SliderMax: types.DefaultMaxPrice,
	}
}

// parseLeadingInt reads the leading integer of s, ignoring anything after it.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *PriceInput) SetMin(value string) {
	p.Min = value
	v, ok := parseLeadingInt(value)
	limit, limitOk := parseLeadingInt(p.Max)
	if ok && limitOk && v > limit {
		p.Min = p.Max
	}
}

func (p *PriceInput) SetMax(value string) {
	p.Max = value
	v, ok := parseLeadingInt(value)
	limit, limitOk := parseLeadingInt(p.Min)
	if ok && limitOk && v < limit {
		p.Max = p.Min
	}
}

// Slide moves the slider, which drives the max bound.
func (p *PriceInput) Slide(value int) {
	p.Max = strconv.Itoa(clampInt(value, 0, p.SliderMax))
}

// SetBounds adopts the summary's price range for the slider without touching the inputs.
func (p *PriceInput) SetBounds(summary *types.FacetSummary) {
	if summary != nil && summary.PriceRange != nil && summary.PriceRange.Max > 0 {
		p.SliderMax = int(summary.PriceRange.Max)
	}
}

// Range is the committed range. Unparsable or zero bounds fall back to the defaults.
func (p PriceInput) Range() types.PriceRange {
	lo, ok := parseLeadingInt(p.Min)
	if !ok {
		lo = types.DefaultMinPrice
	}
	hi, ok := parseLeadingInt(p.Max)
	if !ok || hi == 0 {
		hi = types.DefaultMaxPrice
	}
	lo = max(lo, 0)
	hi = max(hi, lo)
	return types.PriceRange{Min: lo, Max: hi}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
