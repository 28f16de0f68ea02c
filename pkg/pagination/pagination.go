// Package pagination tracks the page window of the product listing and the
// single in-flight request guard.
package pagination

import "sync"

type State struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	IsLoading   bool `json:"isLoading"`
}

// HasMore reports whether a load-more can fetch another page.
func (s State) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

type Controller struct {
	mu    sync.Mutex
	state State
}

// New starts on page 1 with no known pages.
func New() *Controller {
	return &Controller{state: State{CurrentPage: 1}}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin takes the loading guard. It returns false when a request is already
// in flight, in which case the caller must drop its trigger.
func (c *Controller) Begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsLoading {
		return false
	}
	c.state.IsLoading = true
	return true
}

func (c *Controller) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = false
}

func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.IsLoading
}

// Reset moves back to the first page, total pages are kept until the next response.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentPage = 1
}

// Update applies the page block of a successful response.
func (c *Controller) Update(page, pages int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pages = max(pages, 0)
	page = max(page, 1)
	if pages > 0 && page > pages {
		page = pages
	}
	c.state.CurrentPage = page
	c.state.TotalPages = pages
}

func (c *Controller) HasMore() bool {
	return c.State().HasMore()
}

// NextPage returns the page a load-more would fetch.
func (c *Controller) NextPage() (int, bool) {
	s := c.State()
	if s.IsLoading || !s.HasMore() {
		return 0, false
	}
	return s.CurrentPage + 1, true
}
