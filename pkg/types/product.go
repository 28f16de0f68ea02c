package types

import (
	"bytes"
	"strings"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
)

// Product is passed through from the catalog backend as is; only the fields
// the listing and detail views use are declared.
type Product struct {
	Name                 string     `json:"product_name,omitempty"`
	Brand                string     `json:"brand,omitempty"`
	Sku                  string     `json:"sku,omitempty"`
	Category             string     `json:"category,omitempty"`
	BasePrice            float64    `json:"price_before_discount_inr,omitempty"`
	DiscountedPrice      float64    `json:"price_after_discount_inr,omitempty"`
	DiscountPercent      float64    `json:"discount_pct,omitempty"`
	Material             string     `json:"base_metal,omitempty"`
	StoneType            string     `json:"stone_type,omitempty"`
	Gender               string     `json:"gender,omitempty"`
	Occasions            StringList `json:"occasion,omitempty"`
	CaratWeight          Text       `json:"total_carat_weight,omitempty"`
	Clarity              string     `json:"stone_clarity,omitempty"`
	Color                string     `json:"stone_color,omitempty"`
	Cut                  string     `json:"stone_cut,omitempty"`
	Images               ImageList  `json:"images,omitempty"`
	Description          string     `json:"product_description,omitempty"`
	ManufacturingDetails string     `json:"manufacturing_details,omitempty"`
	CareInstructions     string     `json:"care_instructions,omitempty"`
	Warranty             string     `json:"warranty_guarantee_of_polish,omitempty"`
	ReturnPolicy         string     `json:"return_policy,omitempty"`
	DeliveryTime         string     `json:"delivery_time,omitempty"`
	InStock              *bool      `json:"in_stock,omitempty"`
}

// FacetValues returns the values a product contributes to a facet.
func (p *Product) FacetValues(facet Facet) []string {
	single := func(v string) []string {
		if v == "" {
			return nil
		}
		return []string{v}
	}
	switch facet {
	case FacetCategory:
		return single(p.Category)
	case FacetMaterial:
		return single(p.Material)
	case FacetStoneType:
		return single(p.StoneType)
	case FacetBrand:
		return single(p.Brand)
	case FacetGender:
		return single(p.Gender)
	case FacetOccasion:
		return p.Occasions
	case FacetAvailability:
		if p.IsInStock() {
			return []string{InStock}
		}
		return []string{OutOfStock}
	}
	return nil
}

// IsInStock treats a missing stock flag as in stock.
func (p *Product) IsInStock() bool {
	return p.InStock == nil || *p.InStock
}

var null = []byte("null")

// StringList accepts either a single string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, null) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := jsoncompat.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var values []string
	if err := jsoncompat.Unmarshal(data, &values); err != nil {
		return err
	}
	*l = values
	return nil
}

// ImageList accepts an array of URLs or a single ";"-separated string.
// Entries are trimmed and empty entries dropped.
type ImageList []string

func SplitImages(value string) ImageList {
	res := ImageList{}
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var raw StringList
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if len(raw) == 1 {
		*l = SplitImages(raw[0])
		return nil
	}
	res := ImageList{}
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	*l = res
	return nil
}

// Text accepts a string, number or boolean and keeps its textual form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, null) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := jsoncompat.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}
