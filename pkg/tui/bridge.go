package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matst80/slask-storefront/pkg/browse"
	"github.com/matst80/slask-storefront/pkg/types"
)

type stateChanged struct{}

type notified struct {
	note browse.Notification
}

type suggestionsLoaded struct {
	query string
	items []types.Suggestion
}

type suggestionsCleared struct{}

// Bridge forwards callbacks from background goroutines into the program's
// message loop. Messages sent before Attach are dropped. Send blocks until the
// loop reads the message, so the callbacks must never run inside Update.
type Bridge struct {
	mu      sync.RWMutex
	program *tea.Program
}

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

func (b *Bridge) Changed() {
	b.send(stateChanged{})
}

func (b *Bridge) Notify(n browse.Notification) {
	b.send(notified{note: n})
}

func (b *Bridge) Suggestions(query string, items []types.Suggestion) {
	b.send(suggestionsLoaded{query: query, items: items})
}

func (b *Bridge) ClearSuggestions() {
	b.send(suggestionsCleared{})
}
