// Package browse drives one browsing session: it turns selection changes
// into catalog requests and folds the responses back into listing state.
package browse

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/slask-storefront/pkg/pagination"
	"github.com/matst80/slask-storefront/pkg/store"
	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgInitialLoadFailed = "Failed to load data. Please refresh the page."
	MsgLoadFailed        = "Failed to load products. Please try again."
)

const DefaultTimeout = 15 * time.Second

var (
	ErrBusy        = errors.New("a product request is already in flight")
	ErrNoMorePages = errors.New("no more pages")
)

type Phase int

const (
	Idle Phase = iota
	FetchingReplace
	FetchingAppend
)

func (p Phase) String() string {
	switch p {
	case FetchingReplace:
		return "fetching"
	case FetchingAppend:
		return "appending"
	}
	return "idle"
}

// Catalog is the part of the catalog api the controller needs.
type Catalog interface {
	Products(ctx context.Context, q types.ProductQuery) (*types.ProductPage, error)
	Filters(ctx context.Context, q types.FacetQuery) (*types.FacetSummary, error)
}

// Snapshot is a read only copy of everything the listing renders.
type Snapshot struct {
	Filters    types.FilterState
	Products   []types.Product
	Summary    *types.FacetSummary
	Pagination pagination.State
	Total      int
	Phase      Phase
	// Loaded is set after the first successful product response.
	Loaded bool
	// Generation counts successful replacing loads.
	Generation uint64
}

type Controller struct {
	catalog  Catalog
	store    *store.Store
	pages    *pagination.Controller
	log      *zap.Logger
	timeout  time.Duration
	pageSize int
	notify   Notifier
	changed  func()

	mu          sync.Mutex
	products    []types.Product
	summary     *types.FacetSummary
	total       int
	phase       Phase
	loaded      bool
	generation  uint64
	facetSeq    uint64
	facetLatest uint64

	wg sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notify = n
	}
}

// WithChangeListener registers fn to run after every state change. It is
// called without the controller lock held.
func WithChangeListener(fn func()) Option {
	return func(c *Controller) {
		c.changed = fn
	}
}

func NewController(catalog Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog:  catalog,
		store:    store.New(),
		pages:    pagination.New(),
		log:      zap.NewNop(),
		timeout:  DefaultTimeout,
		pageSize: types.DefaultPageSize,
		notify:   func(Notification) {},
		changed:  func() {},
		products: []types.Product{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Filters:    c.store.Snapshot(),
		Products:   append([]types.Product{}, c.products...),
		Summary:    c.summary.Clone(),
		Pagination: c.pages.State(),
		Total:      c.total,
		Phase:      c.phase,
		Loaded:     c.loaded,
		Generation: c.generation,
	}
}

// Wait blocks until background facet refreshes have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

type loadRequest struct {
	page          int
	append        bool
	refreshFacets bool
	failure       string
}

// LoadInitial fetches the first page and the facet summary concurrently.
// Neither fetch cancels the other.
func (c *Controller) LoadInitial(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return c.load(ctx, loadRequest{page: 1})
	})
	g.Go(func() error {
		return c.fetchFacets(ctx, c.nextFacetSeq())
	})
	if err := g.Wait(); err != nil {
		c.notify(Notification{Kind: KindError, Message: MsgInitialLoadFailed})
		return err
	}
	return nil
}

// LoadProducts requests a page. A replacing load restarts at the given page
// and refreshes the facet summary on success; an appending load adds the
// page to the current list.
func (c *Controller) LoadProducts(ctx context.Context, page int, appendResults bool) error {
	return c.load(ctx, loadRequest{
		page:          page,
		append:        appendResults,
		refreshFacets: !appendResults,
		failure:       MsgLoadFailed,
	})
}

// LoadMore appends the next page when one is available.
func (c *Controller) LoadMore(ctx context.Context) error {
	next, ok := c.pages.NextPage()
	if !ok {
		if c.pages.IsLoading() {
			return ErrBusy
		}
		return ErrNoMorePages
	}
	return c.LoadProducts(ctx, next, true)
}

func (c *Controller) load(ctx context.Context, req loadRequest) error {
	if !c.pages.Begin() {
		c.log.Debug("product load dropped, request in flight", zap.Int("page", req.page))
		return ErrBusy
	}
	phase := FetchingReplace
	if req.append {
		phase = FetchingAppend
	} else {
		c.pages.Reset()
	}
	c.setPhase(phase)

	q := types.BuildProductQuery(c.store.Snapshot(), max(req.page, 1), c.pageSize)
	log := c.log.With(zap.Int("page", q.Page), zap.Bool("append", req.append))

	fctx, cancel := context.WithTimeout(ctx, c.timeout)
	res, err := c.catalog.Products(fctx, q)
	cancel()

	if err != nil {
		log.Error("product load failed", zap.Error(err))
		c.pages.End()
		c.setPhase(Idle)
		if req.failure != "" {
			c.notify(Notification{Kind: KindError, Message: req.failure})
		}
		return err
	}

	c.mu.Lock()
	if req.append {
		c.products = append(c.products, res.Products...)
	} else {
		c.products = append([]types.Product{}, res.Products...)
		c.generation++
	}
	page := res.Pagination.Page
	if page == 0 {
		page = q.Page
	}
	c.pages.Update(page, res.Pagination.Pages)
	c.total = int(res.Pagination.Total)
	c.loaded = true
	c.phase = Idle
	c.pages.End()
	c.mu.Unlock()

	log.Debug("products loaded", zap.Int("count", len(res.Products)), zap.Int("total", int(res.Pagination.Total)))
	c.changed()

	if req.refreshFacets {
		c.refreshFacets(context.WithoutCancel(ctx))
	}
	return nil
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) nextFacetSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facetSeq++
	return c.facetSeq
}

// LoadFacets refreshes the facet summary synchronously.
func (c *Controller) LoadFacets(ctx context.Context) error {
	return c.fetchFacets(ctx, c.nextFacetSeq())
}

func (c *Controller) refreshFacets(ctx context.Context) {
	seq := c.nextFacetSeq()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		// failures are logged in fetchFacets
		_ = c.fetchFacets(ctx, seq)
	}()
}

// fetchFacets applies a summary unless a later request was already applied.
func (c *Controller) fetchFacets(ctx context.Context, seq uint64) error {
	fctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	summary, err := c.catalog.Filters(fctx, types.BuildFacetQuery(c.store.Snapshot()))
	if err != nil {
		c.log.Warn("facet load failed", zap.Error(err))
		return err
	}
	c.mu.Lock()
	if seq < c.facetLatest {
		c.mu.Unlock()
		c.log.Debug("stale facet summary discarded", zap.Uint64("seq", seq))
		return nil
	}
	c.facetLatest = seq
	c.summary = summary
	c.mu.Unlock()
	c.changed()
	return nil
}
