package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matst80/slask-storefront/pkg/browse"
	"github.com/matst80/slask-storefront/pkg/view"
)

const (
	sidebarWidth = 34
	helpLine     = "/ search • tab filters/price • ↑↓ move • ←→ photos • enter open • m load more • q quit"
)

func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CaratBazaar"))
	b.WriteString("  ")
	b.WriteString(a.search.View())
	if a.snap.Phase != browse.Idle {
		b.WriteString("  " + a.spinner.View())
	}
	b.WriteString("\n")
	if a.suggestions.Visible {
		b.WriteString(a.renderSuggestions())
	}
	for _, n := range a.notes {
		b.WriteString(noteStyles[n.Kind == browse.KindError].Render(n.Message))
		b.WriteString("\n")
	}

	if a.focus == focusDetail && a.detail != nil {
		b.WriteString(focusStyle.Render(renderDetail(view.ProductDetail(*a.detail))))
		b.WriteString("\n" + mutedStyle.Render("esc close"))
		return b.String()
	}

	sidebar := a.renderFilters() + "\n" + a.renderPrice()
	listing := a.renderProducts()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, listing))
	b.WriteString("\n" + mutedStyle.Render(helpLine))
	return b.String()
}

func (a App) renderSuggestions() string {
	var b strings.Builder
	for i, s := range a.suggestions.Items {
		line := fmt.Sprintf("%s %s %s", view.SuggestionIcon(s), s.Text, mutedStyle.Render(s.Type))
		if i == a.suggestions.Selected {
			line = selectedStyle.Render("▌" + line)
		} else {
			line = " " + line
		}
		b.WriteString(line + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (a App) renderFilters() string {
	style := panelStyle
	if a.focus == focusFilters {
		style = focusStyle
	}
	var b strings.Builder
	row := 0
	for _, section := range view.FacetSections(a.snap.Filters, a.snap.Summary) {
		b.WriteString(headerStyle.Render(section.Title) + "\n")
		for _, o := range section.Options {
			box := "[ ]"
			if o.Checked {
				box = "[x]"
			}
			line := box + " " + o.Label
			if a.focus == focusFilters && row == a.filterCursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
			row++
		}
	}
	return style.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (a App) renderPrice() string {
	style := panelStyle
	if a.focus == focusPrice {
		style = focusStyle
	}
	lo, hi := view.PricePlaceholders(a.snap.Summary)
	lines := []string{
		headerStyle.Render("PRICE RANGE"),
		a.priceMin.View() + " " + mutedStyle.Render(lo),
		a.priceMax.View() + " " + mutedStyle.Render(hi),
		mutedStyle.Render(fmt.Sprintf("slider ↑↓ up to %s", view.Price(float64(a.price.SliderMax)))),
	}
	return style.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (a App) renderProducts() string {
	s := a.snap
	var b strings.Builder
	b.WriteString(headerStyle.Render(view.ResultsLabel(s.Total, s.Filters.SearchTerm)) + "\n\n")
	if s.Loaded && len(s.Products) == 0 {
		b.WriteString(headerStyle.Render(view.EmptyTitle) + "\n" + mutedStyle.Render(view.EmptyHint))
		return panelStyle.Render(b.String())
	}
	height := a.height - 8
	if height <= 0 {
		height = 24
	}
	perCard := 6
	first := 0
	if visible := max(height/perCard, 1); a.cursor >= visible {
		first = a.cursor - visible + 1
	}
	for i := first; i < len(s.Products); i++ {
		if (i-first)*perCard > height {
			break
		}
		b.WriteString(a.renderCard(i, view.ProductCard(s.Products[i])))
		b.WriteString("\n")
	}
	if s.Pagination.HasMore() {
		label := "[ Load more ]"
		if s.Phase == browse.FetchingAppend {
			label = "[ Loading... ]"
		}
		b.WriteString(selectedStyle.Render(label))
	}
	style := panelStyle
	if a.focus == focusProducts {
		style = focusStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (a App) renderCard(i int, c view.Card) string {
	title := c.Title
	if a.focus == focusProducts && i == a.cursor {
		title = selectedStyle.Render("▶ " + title)
	} else {
		title = headerStyle.Render("  " + title)
	}
	image := view.ImagePlaceholder
	if slider, ok := a.sliders[i]; ok {
		image = slider.Image()
		if slider.ShowDots() {
			image += " " + dots(slider)
		} else {
			image += " " + slider.Counter()
		}
		image += " " + badgeStyle.Render(c.PhotoBadge)
	} else if len(c.Images) == 1 {
		image = c.Images[0]
	}

	price := priceStyle.Render(c.Price)
	if c.OriginalPrice != "" {
		price = strikeStyle.Render(c.OriginalPrice) + " " + price
	}
	if c.Discount != "" {
		price += " " + badgeStyle.Render(c.Discount)
	}
	lines := []string{
		title,
		"  " + mutedStyle.Render(c.Brand),
		"  " + price,
		"  " + c.Details,
	}
	if len(c.Extras) > 0 {
		lines = append(lines, "  "+mutedStyle.Render(strings.Join(c.Extras, " | ")))
	}
	lines = append(lines, "  "+mutedStyle.Render(image))
	return strings.Join(lines, "\n")
}

func dots(s *view.Slider) string {
	var b strings.Builder
	for i := range s.Images {
		if i == s.Current {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

func renderDetail(d view.Detail) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title) + "\n\n")
	for _, f := range d.Fields {
		b.WriteString(headerStyle.Render(f.Label+":") + " " + f.Value + "\n")
	}
	for _, s := range d.Sections {
		b.WriteString("\n" + headerStyle.Render(s.Title+":") + "\n" + s.Body + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
