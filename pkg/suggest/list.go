package suggest

import "github.com/matst80/slask-storefront/pkg/types"

// List is the visible suggestion dropdown. Selected is -1 when nothing is highlighted.
type List struct {
	Query    string
	Items    []types.Suggestion
	Selected int
	Visible  bool
}

func NewList() List {
	return List{Selected: -1}
}

// Show replaces the entries and clears the highlight.
func (l *List) Show(query string, items []types.Suggestion) {
	l.Query = query
	l.Items = items
	l.Selected = -1
	l.Visible = len(items) > 0
}

func (l *List) Hide() {
	l.Items = nil
	l.Selected = -1
	l.Visible = false
}

func (l *List) Down() {
	if !l.Visible {
		return
	}
	l.Selected = min(l.Selected+1, len(l.Items)-1)
}

func (l *List) Up() {
	if !l.Visible {
		return
	}
	l.Selected = max(l.Selected-1, -1)
}

// Current returns the highlighted entry.
func (l *List) Current() (types.Suggestion, bool) {
	if !l.Visible || l.Selected < 0 || l.Selected >= len(l.Items) {
		return types.Suggestion{}, false
	}
	return l.Items[l.Selected], true
}
