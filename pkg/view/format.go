// Package view computes everything the listing shows from state snapshots.
// Nothing here keeps state of its own beyond small widget models.
package view

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/matst80/slask-storefront/pkg/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Rupee            = "₹"
	NotificationTTL  = 3 * time.Second
	EmptyTitle       = "No products found"
	EmptyHint        = "Try adjusting your search or filters"
	BrandIcon        = "🏷️"
	ProductIcon      = "💎"
	ImagePlaceholder = ProductIcon
)

var printer = message.NewPrinter(language.English)

// Number groups thousands and keeps up to three fraction digits.
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func Price(v float64) string {
	return Rupee + Number(v)
}

// plain renders a number the way it was sent, without grouping.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ResultsLabel is the headline above the product grid.
func ResultsLabel(total int, term string) string {
	label := strconv.Itoa(total) + " RESULTS FOUND"
	if term = strings.TrimSpace(term); term != "" {
		label += " FOR '" + strings.ToUpper(term) + "'"
	}
	return label
}

func SuggestionIcon(s types.Suggestion) string {
	if s.Type == "brand" {
		return BrandIcon
	}
	return ProductIcon
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
