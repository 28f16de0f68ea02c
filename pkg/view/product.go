package view

import (
	"strconv"
	"strings"

	"github.com/matst80/slask-storefront/pkg/types"
)

type Card struct {
	Title         string
	Brand         string
	OriginalPrice string
	Price         string
	Discount      string
	Details       string
	Extras        []string
	Images        []string
	// PhotoBadge is set when there is more than one image.
	PhotoBadge  string
	Placeholder bool
}

func ProductCard(p types.Product) Card {
	c := Card{
		Title:   orDefault(p.Name, "Jewelry Product"),
		Brand:   orDefault(p.Brand, "CaratBazaar"),
		Price:   "From " + Price(p.DiscountedPrice),
		Details: strings.ToUpper(orDefault(p.Material, "Gold")) + " • " + capitalize(orDefault(p.StoneType, "Diamond")),
		Images:  []string(p.Images),
	}
	if p.BasePrice > 0 {
		c.OriginalPrice = Price(p.BasePrice)
	}
	if p.DiscountPercent > 0 {
		c.Discount = "Save " + plain(p.DiscountPercent) + "%"
	}
	if p.Gender != "" {
		c.Extras = append(c.Extras, "For: "+p.Gender)
	}
	if len(p.Occasions) > 0 {
		c.Extras = append(c.Extras, "Occasion: "+strings.Join(p.Occasions, ", "))
	}
	if p.CaratWeight != "" {
		c.Extras = append(c.Extras, "Weight: "+string(p.CaratWeight))
	}
	if p.Clarity != "" {
		c.Extras = append(c.Extras, "Clarity: "+p.Clarity)
	}
	if p.Color != "" {
		c.Extras = append(c.Extras, "Color: "+p.Color)
	}
	switch n := len(p.Images); {
	case n == 0:
		c.Placeholder = true
	case n > 1:
		c.PhotoBadge = strconv.Itoa(n) + " Photos"
	}
	return c
}

type Field struct {
	Label string
	Value string
}

type Section struct {
	Title string
	Body  string
}

type Detail struct {
	Title    string
	Fields   []Field
	Sections []Section
}

func ProductDetail(p types.Product) Detail {
	d := Detail{Title: orDefault(p.Name, "Product Details")}
	add := func(label, value string) {
		d.Fields = append(d.Fields, Field{Label: label, Value: value})
	}
	add("Brand", orDefault(p.Brand, "N/A"))
	add("SKU", orDefault(p.Sku, "N/A"))
	add("Price", Price(p.DiscountedPrice))
	if p.BasePrice > 0 {
		add("Original Price", Price(p.BasePrice))
	}
	if p.DiscountPercent > 0 {
		add("Discount", plain(p.DiscountPercent)+"%")
	}
	add("Material", orDefault(p.Material, "N/A"))
	add("Stone Type", orDefault(p.StoneType, "N/A"))
	optional := []Field{
		{"Gender", p.Gender},
		{"Occasion", strings.Join(p.Occasions, ", ")},
		{"Weight", string(p.CaratWeight)},
		{"Clarity", p.Clarity},
		{"Color", p.Color},
		{"Cut", p.Cut},
	}
	for _, f := range optional {
		if f.Value != "" {
			d.Fields = append(d.Fields, f)
		}
	}
	sections := []Section{
		{"Description", p.Description},
		{"Manufacturing Details", p.ManufacturingDetails},
		{"Care Instructions", p.CareInstructions},
		{"Warranty", p.Warranty},
		{"Return Policy", p.ReturnPolicy},
		{"Delivery Time", p.DeliveryTime},
	}
	for _, s := range sections {
		if s.Body != "" {
			d.Sections = append(d.Sections, s)
		}
	}
	return d
}
