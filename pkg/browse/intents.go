package browse

import (
	"context"
	"errors"

	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

type Notification struct {
	Kind    Kind
	Message string
}

type Notifier func(Notification)

// ToggleFunc is the handler bound to one facet's checkboxes.
type ToggleFunc func(ctx context.Context, value string, checked bool) error

// Bind returns the checkbox handler for a facet.
func (c *Controller) Bind(facet types.Facet) ToggleFunc {
	return func(ctx context.Context, value string, checked bool) error {
		return c.ToggleFacet(ctx, facet, value, checked)
	}
}

func (c *Controller) ToggleCategory(ctx context.Context, value string, checked bool) error {
	c.store.ToggleCategory(value, checked)
	return c.commit(ctx)
}

func (c *Controller) ToggleFacet(ctx context.Context, facet types.Facet, value string, checked bool) error {
	if err := c.store.ToggleFacet(facet, value, checked); err != nil {
		return err
	}
	return c.commit(ctx)
}

func (c *Controller) SetAvailability(ctx context.Context, value string, checked bool) error {
	if err := c.store.SetAvailability(value, checked); err != nil {
		return err
	}
	return c.commit(ctx)
}

// ApplyPriceRange commits bounds already clamped by the price editor.
func (c *Controller) ApplyPriceRange(ctx context.Context, min, max int) error {
	c.store.SetPriceRange(min, max)
	return c.commit(ctx)
}

// SubmitSearch commits a search term. Submitting the current term again
// reloads, which is how a failed search is retried.
func (c *Controller) SubmitSearch(ctx context.Context, term string) error {
	c.store.SetSearchTerm(term)
	return c.commit(ctx)
}

func (c *Controller) SelectSuggestion(ctx context.Context, s types.Suggestion) error {
	return c.SubmitSearch(ctx, s.Text)
}

// commit restarts the listing from page 1. The selection change is kept even
// when the fetch is dropped because another request is in flight.
func (c *Controller) commit(ctx context.Context) error {
	err := c.LoadProducts(ctx, 1, false)
	if errors.Is(err, ErrBusy) {
		c.log.Debug("selection committed while loading, fetch dropped")
		c.pages.Reset()
		c.changed()
		return nil
	}
	if err != nil {
		c.log.Debug("commit failed", zap.Error(err))
	}
	return err
}
