// Package tui renders a browsing session in the terminal with bubbletea.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matst80/slask-storefront/pkg/browse"
	"github.com/matst80/slask-storefront/pkg/suggest"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
	"go.uber.org/zap"
)

type focus int

const (
	focusProducts focus = iota
	focusFilters
	focusPrice
	focusSearch
	focusDetail
)

type opDone struct {
	err error
}

type noteExpired struct {
	id int
}

type slideTick struct{}

type note struct {
	id int
	browse.Notification
}

type filterRow struct {
	facet  types.Facet
	option view.Option
}

// App is the root model. All listing data comes from controller snapshots.
type App struct {
	ctrl      *browse.Controller
	debouncer *suggest.Debouncer
	log       *zap.Logger
	toggles   map[types.Facet]browse.ToggleFunc

	snap    browse.Snapshot
	focus   focus
	width   int
	height  int
	spinner spinner.Model

	search      textinput.Model
	suggestions suggest.List

	filterCursor int

	price      view.PriceInput
	priceMin   textinput.Model
	priceMax   textinput.Model
	priceField int

	cursor  int
	sliders map[int]*view.Slider
	detail  *types.Product

	notes  []note
	nextID int
}

func New(ctrl *browse.Controller, debouncer *suggest.Debouncer, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	search := textinput.New()
	search.Placeholder = "Search jewelry..."
	search.Prompt = "🔍 "
	search.CharLimit = 100
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = priceStyle

	toggles := make(map[types.Facet]browse.ToggleFunc)
	for _, f := range append([]types.Facet{types.FacetCategory, types.FacetAvailability}, types.MultiValueFacets...) {
		toggles[f] = ctrl.Bind(f)
	}

	snap := ctrl.Snapshot()
	a := App{
		ctrl:        ctrl,
		debouncer:   debouncer,
		log:         log,
		toggles:     toggles,
		snap:        snap,
		spinner:     s,
		search:      search,
		suggestions: suggest.NewList(),
		price:       view.NewPriceInput(snap.Filters.Price),
		priceMin:    newPriceField("Min"),
		priceMax:    newPriceField("Max"),
		sliders:     map[int]*view.Slider{},
	}
	a.priceMin.SetValue(a.price.Min)
	a.priceMax.SetValue(a.price.Max)
	return a
}

func newPriceField(label string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = label + " ₹"
	ti.CharLimit = 9
	ti.Width = 12
	return ti
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.run(a.ctrl.LoadInitial), slideEvery())
}

func slideEvery() tea.Cmd {
	return tea.Tick(view.AutoplayInterval, func(time.Time) tea.Msg {
		return slideTick{}
	})
}

// run executes a controller intent off the update loop.
func (a App) run(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDone{err: fn(context.Background())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case stateChanged:
		a.refresh()
		return a, nil

	case opDone:
		if msg.err != nil {
			a.log.Debug("intent finished with error", zap.Error(msg.err))
		}
		a.refresh()
		return a, nil

	case notified:
		a.nextID++
		id := a.nextID
		a.notes = append(a.notes, note{id: id, Notification: msg.note})
		return a, tea.Tick(view.NotificationTTL, func(time.Time) tea.Msg {
			return noteExpired{id: id}
		})

	case noteExpired:
		kept := make([]note, 0, len(a.notes))
		for _, n := range a.notes {
			if n.id != msg.id {
				kept = append(kept, n)
			}
		}
		a.notes = kept
		return a, nil

	case suggestionsLoaded:
		if a.focus == focusSearch && strings.TrimSpace(a.search.Value()) == msg.query {
			a.suggestions.Show(msg.query, msg.items)
		}
		return a, nil

	case suggestionsCleared:
		a.suggestions.Hide()
		return a, nil

	case slideTick:
		for i, s := range a.sliders {
			s.Focused = a.focus == focusProducts && i == a.cursor
			s.Tick()
		}
		return a, slideEvery()
	}
	return a, nil
}

// refresh takes a new snapshot and keeps cursors and sliders in range.
func (a *App) refresh() {
	prev := a.snap
	a.snap = a.ctrl.Snapshot()
	a.price.SetBounds(a.snap.Summary)
	if len(a.snap.Products) == 0 {
		a.cursor = 0
	} else if a.cursor >= len(a.snap.Products) {
		a.cursor = len(a.snap.Products) - 1
	}
	if a.snap.Generation != prev.Generation {
		a.sliders = map[int]*view.Slider{}
		a.cursor = 0
	}
	for i, p := range a.snap.Products {
		if _, ok := a.sliders[i]; !ok && len(p.Images) > 1 {
			a.sliders[i] = view.NewSlider(p.Images)
		}
	}
	if rows := a.filterRows(); a.filterCursor >= len(rows) {
		a.filterCursor = max(len(rows)-1, 0)
	}
}

func (a App) filterRows() []filterRow {
	var rows []filterRow
	for _, section := range view.FacetSections(a.snap.Filters, a.snap.Summary) {
		for _, o := range section.Options {
			rows = append(rows, filterRow{facet: section.Facet, option: o})
		}
	}
	return rows
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch a.focus {
	case focusSearch:
		return a.handleSearchKey(msg)
	case focusPrice:
		return a.handlePriceKey(msg)
	case focusDetail:
		return a.handleDetailKey(msg)
	case focusFilters:
		return a.handleFilterKey(msg)
	}
	return a.handleProductKey(msg)
}

func (a App) cycleFocus() (App, tea.Cmd) {
	switch a.focus {
	case focusProducts:
		a.focus = focusFilters
	case focusFilters:
		a.focus = focusPrice
		a.priceField = 0
		return a, a.priceMin.Focus()
	default:
		a.priceMin.Blur()
		a.priceMax.Blur()
		a.focus = focusProducts
	}
	return a, nil
}

func (a App) focusSearchBox() (tea.Model, tea.Cmd) {
	a.focus = focusSearch
	return a, a.search.Focus()
}

func (a App) handleProductKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		return a.cycleFocus()
	case tea.KeyUp:
		a.cursor = max(a.cursor-1, 0)
		return a, nil
	case tea.KeyDown:
		a.cursor = min(a.cursor+1, max(len(a.snap.Products)-1, 0))
		return a, nil
	case tea.KeyLeft:
		if s, ok := a.sliders[a.cursor]; ok {
			s.Prev()
		}
		return a, nil
	case tea.KeyRight:
		if s, ok := a.sliders[a.cursor]; ok {
			s.Next()
		}
		return a, nil
	case tea.KeyEnter:
		if a.cursor < len(a.snap.Products) {
			p := a.snap.Products[a.cursor]
			a.detail = &p
			a.focus = focusDetail
		}
		return a, nil
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "/":
		return a.focusSearchBox()
	case "j":
		a.cursor = min(a.cursor+1, max(len(a.snap.Products)-1, 0))
	case "k":
		a.cursor = max(a.cursor-1, 0)
	case "m":
		if a.snap.Pagination.HasMore() {
			return a, a.run(a.ctrl.LoadMore)
		}
	case "1", "2", "3", "4", "5", "6", "7", "8":
		if s, ok := a.sliders[a.cursor]; ok && s.ShowDots() {
			s.GoTo(int(msg.Runes[0] - '1'))
		}
	}
	return a, nil
}

func (a App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		a.detail = nil
		a.focus = focusProducts
		return a, nil
	}
	if msg.String() == "q" {
		a.detail = nil
		a.focus = focusProducts
	}
	return a, nil
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.filterRows()
	switch msg.Type {
	case tea.KeyTab:
		return a.cycleFocus()
	case tea.KeyEsc:
		a.focus = focusProducts
		return a, nil
	case tea.KeyUp:
		a.filterCursor = max(a.filterCursor-1, 0)
		return a, nil
	case tea.KeyDown:
		a.filterCursor = min(a.filterCursor+1, max(len(rows)-1, 0))
		return a, nil
	case tea.KeySpace, tea.KeyEnter:
		if a.filterCursor >= len(rows) {
			return a, nil
		}
		row := rows[a.filterCursor]
		toggle := a.toggles[row.facet]
		return a, a.run(func(ctx context.Context) error {
			return toggle(ctx, row.option.Value, !row.option.Checked)
		})
	}
	switch msg.String() {
	case "/":
		return a.focusSearchBox()
	case "j":
		a.filterCursor = min(a.filterCursor+1, max(len(rows)-1, 0))
	case "k":
		a.filterCursor = max(a.filterCursor-1, 0)
	}
	return a, nil
}

func (a App) handlePriceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		if a.priceField == 0 {
			a.priceField = 1
			a.priceMin.Blur()
			return a, a.priceMax.Focus()
		}
		return a.cycleFocus()
	case tea.KeyEsc:
		a.priceMin.Blur()
		a.priceMax.Blur()
		a.focus = focusProducts
		return a, nil
	case tea.KeyEnter:
		r := a.price.Range()
		return a, a.run(func(ctx context.Context) error {
			return a.ctrl.ApplyPriceRange(ctx, r.Min, r.Max)
		})
	case tea.KeyUp, tea.KeyDown:
		step := max(a.price.SliderMax/20, 1)
		current := a.price.Range().Max
		if msg.Type == tea.KeyUp {
			a.price.Slide(current + step)
		} else {
			a.price.Slide(current - step)
		}
		a.priceMax.SetValue(a.price.Max)
		return a, nil
	}

	var cmd tea.Cmd
	if a.priceField == 0 {
		a.priceMin, cmd = a.priceMin.Update(msg)
		a.price.SetMin(a.priceMin.Value())
		a.priceMin.SetValue(a.price.Min)
	} else {
		a.priceMax, cmd = a.priceMax.Update(msg)
		a.price.SetMax(a.priceMax.Value())
		a.priceMax.SetValue(a.price.Max)
	}
	return a, cmd
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.suggestions.Hide()
		a.debouncer.Cancel()
		a.search.Blur()
		a.focus = focusProducts
		return a, nil
	case tea.KeyDown:
		a.suggestions.Down()
		return a, nil
	case tea.KeyUp:
		a.suggestions.Up()
		return a, nil
	case tea.KeyTab:
		a.search.Blur()
		a.suggestions.Hide()
		a.focus = focusProducts
		return a.cycleFocus()
	case tea.KeyEnter:
		a.debouncer.Cancel()
		if s, ok := a.suggestions.Current(); ok {
			a.search.SetValue(s.Text)
			a.suggestions.Hide()
			a.search.Blur()
			a.focus = focusProducts
			return a, a.run(func(ctx context.Context) error {
				return a.ctrl.SelectSuggestion(ctx, s)
			})
		}
		term := a.search.Value()
		a.suggestions.Hide()
		a.search.Blur()
		a.focus = focusProducts
		return a, a.run(func(ctx context.Context) error {
			return a.ctrl.SubmitSearch(ctx, term)
		})
	}
	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before && a.debouncer.Input(a.search.Value()) {
		a.suggestions.Hide()
	}
	return a, cmd
}
