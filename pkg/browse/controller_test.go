package browse

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/matst80/slask-storefront/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	mu           sync.Mutex
	pages        map[int]*types.ProductPage
	productErr   error
	filterErr    error
	block        chan struct{}
	productCalls []url.Values
	filterCalls  []url.Values
}

func newFake() *fakeCatalog {
	return &fakeCatalog{pages: map[int]*types.ProductPage{}}
}

func (f *fakeCatalog) Products(ctx context.Context, q types.ProductQuery) (*types.ProductPage, error) {
	f.mu.Lock()
	f.productCalls = append(f.productCalls, q.Values())
	block := f.block
	err := f.productErr
	page, ok := f.pages[q.Page]
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &catalog.NetworkError{Endpoint: catalog.ProductsPath, Err: ctx.Err()}
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return &types.ProductPage{Products: []types.Product{}}, nil
	}
	return page, nil
}

func (f *fakeCatalog) Filters(ctx context.Context, q types.FacetQuery) (*types.FacetSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filterCalls = append(f.filterCalls, q.Values())
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return &types.FacetSummary{
		Categories: []types.FacetValue{{Value: "Necklace", Count: 5}},
		Stock:      &types.StockCounts{InStock: 20, OutOfStock: 5},
	}, nil
}

func (f *fakeCatalog) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.productCalls), len(f.filterCalls)
}

func (f *fakeCatalog) lastProductCall() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productCalls[len(f.productCalls)-1]
}

func products(names ...string) []types.Product {
	res := make([]types.Product, 0, len(names))
	for _, n := range names {
		res = append(res, types.Product{Name: n})
	}
	return res
}

func names(list []types.Product) []string {
	res := make([]string, 0, len(list))
	for _, p := range list {
		res = append(res, p.Name)
	}
	return res
}

type notifications struct {
	mu   sync.Mutex
	msgs []Notification
}

func (n *notifications) add(m Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
}

func (n *notifications) all() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification{}, n.msgs...)
}

func TestReplaceFetchScenario(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{
		Products:   products("A", "B"),
		Pagination: types.Pagination{Page: 1, Pages: 3, Total: 25},
	}
	c := NewController(fake)

	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, []string{"A", "B"}, names(s.Products))
	assert.Equal(t, 1, s.Pagination.CurrentPage)
	assert.Equal(t, 3, s.Pagination.TotalPages)
	assert.Equal(t, "25 RESULTS FOUND", view.ResultsLabel(s.Total, s.Filters.SearchTerm))
	assert.Equal(t, Idle, s.Phase)
	assert.True(t, s.Loaded)

	_, filterCalls := fake.counts()
	assert.Equal(t, 1, filterCalls)
	assert.NotNil(t, s.Summary)
}

func TestCheckCategoryScenario(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("N1"), Pagination: types.Pagination{Page: 1, Pages: 1, Total: 1}}
	c := NewController(fake)

	require.NoError(t, c.Bind(types.FacetCategory)(context.Background(), "Necklace", true))
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, types.ValueSet{"Necklace"}, s.Filters.Categories)
	assert.False(t, s.Filters.Categories.Contains(types.AllCategories))
	assert.Equal(t, 1, s.Pagination.CurrentPage)

	productCalls, filterCalls := fake.counts()
	assert.Equal(t, 1, productCalls)
	assert.Equal(t, 1, filterCalls)
	q := fake.lastProductCall()
	assert.Equal(t, []string{"Necklace"}, q["category"])
	assert.Equal(t, "1", q.Get("page"))

	fake.mu.Lock()
	_, hasCategory := fake.filterCalls[0]["category"]
	fake.mu.Unlock()
	assert.False(t, hasCategory)
}

func TestLoadMoreScenario(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("A", "B"), Pagination: types.Pagination{Page: 1, Pages: 3, Total: 6}}
	fake.pages[2] = &types.ProductPage{Products: products("C", "D"), Pagination: types.Pagination{Page: 2, Pages: 3, Total: 6}}
	fake.pages[3] = &types.ProductPage{Products: products("F", "E"), Pagination: types.Pagination{Page: 3, Pages: 3, Total: 6}}
	c := NewController(fake)
	ctx := context.Background()

	require.NoError(t, c.LoadProducts(ctx, 1, false))
	require.NoError(t, c.LoadMore(ctx))
	c.Wait()
	_, filtersBefore := fake.counts()

	require.NoError(t, c.LoadMore(ctx))
	c.Wait()

	assert.Equal(t, "3", fake.lastProductCall().Get("page"))
	s := c.Snapshot()
	assert.Equal(t, []string{"A", "B", "C", "D", "F", "E"}, names(s.Products))
	assert.Equal(t, 3, s.Pagination.CurrentPage)
	assert.False(t, s.Pagination.HasMore())

	_, filtersAfter := fake.counts()
	assert.Equal(t, filtersBefore, filtersAfter)
	assert.Equal(t, 1, filtersAfter)

	assert.ErrorIs(t, c.LoadMore(ctx), ErrNoMorePages)
}

func TestAppendKeepsDuplicates(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("A"), Pagination: types.Pagination{Page: 1, Pages: 2, Total: 2}}
	fake.pages[2] = &types.ProductPage{Products: products("A"), Pagination: types.Pagination{Page: 2, Pages: 2, Total: 2}}
	c := NewController(fake)
	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	require.NoError(t, c.LoadMore(context.Background()))
	c.Wait()
	assert.Equal(t, []string{"A", "A"}, names(c.Snapshot().Products))
}

func TestSecondLoadWhileLoadingIsNoop(t *testing.T) {
	fake := newFake()
	fake.block = make(chan struct{})
	fake.pages[1] = &types.ProductPage{Products: products("A"), Pagination: types.Pagination{Page: 1, Pages: 2, Total: 2}}
	c := NewController(fake)

	done := make(chan error, 1)
	go func() {
		done <- c.LoadProducts(context.Background(), 1, false)
	}()
	require.Eventually(t, func() bool {
		n, _ := fake.counts()
		return n == 1
	}, time.Second, time.Millisecond)

	before := c.Snapshot()
	assert.Equal(t, FetchingReplace, before.Phase)
	assert.ErrorIs(t, c.LoadProducts(context.Background(), 2, true), ErrBusy)
	after := c.Snapshot()
	assert.Equal(t, before.Products, after.Products)
	assert.Equal(t, before.Pagination, after.Pagination)
	n, _ := fake.counts()
	assert.Equal(t, 1, n)

	// a committed change while loading keeps the selection without fetching
	require.NoError(t, c.ToggleFacet(context.Background(), types.FacetMaterial, "Gold", true))
	n, _ = fake.counts()
	assert.Equal(t, 1, n)
	assert.Equal(t, types.ValueSet{"Gold"}, c.Snapshot().Filters.Materials)

	close(fake.block)
	require.NoError(t, <-done)
	c.Wait()
}

func TestCommitWhileLoadingResetsPage(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("A"), Pagination: types.Pagination{Page: 1, Pages: 3, Total: 3}}
	fake.pages[2] = &types.ProductPage{Products: products("B"), Pagination: types.Pagination{Page: 2, Pages: 3, Total: 3}}
	c := NewController(fake)
	ctx := context.Background()
	require.NoError(t, c.LoadProducts(ctx, 1, false))
	require.NoError(t, c.LoadMore(ctx))
	c.Wait()
	require.Equal(t, 2, c.Snapshot().Pagination.CurrentPage)

	block := make(chan struct{})
	fake.mu.Lock()
	fake.block = block
	fake.mu.Unlock()
	done := make(chan error, 1)
	go func() {
		done <- c.LoadMore(ctx)
	}()
	require.Eventually(t, func() bool {
		n, _ := fake.counts()
		return n == 3
	}, time.Second, time.Millisecond)

	require.NoError(t, c.ToggleCategory(ctx, "Ring", true))
	assert.Equal(t, 1, c.Snapshot().Pagination.CurrentPage)

	close(block)
	require.NoError(t, <-done)
	c.Wait()
}

func TestFailureKeepsState(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("A", "B"), Pagination: types.Pagination{Page: 1, Pages: 3, Total: 25}}
	note := &notifications{}
	c := NewController(fake, WithNotifier(note.add))
	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	c.Wait()

	fake.mu.Lock()
	fake.productErr = &catalog.ApplicationError{Endpoint: catalog.ProductsPath, Message: "boom"}
	fake.mu.Unlock()

	err := c.LoadMore(context.Background())
	require.Error(t, err)
	assert.True(t, catalog.IsApplicationError(err))

	s := c.Snapshot()
	assert.Equal(t, []string{"A", "B"}, names(s.Products))
	assert.Equal(t, 1, s.Pagination.CurrentPage)
	assert.Equal(t, 3, s.Pagination.TotalPages)
	assert.False(t, s.Pagination.IsLoading)
	assert.Equal(t, Idle, s.Phase)
	assert.Equal(t, []Notification{{Kind: KindError, Message: MsgLoadFailed}}, note.all())
}

func TestTimeoutReleasesGuard(t *testing.T) {
	fake := newFake()
	fake.block = make(chan struct{})
	note := &notifications{}
	c := NewController(fake, WithTimeout(20*time.Millisecond), WithNotifier(note.add))

	err := c.LoadProducts(context.Background(), 1, false)
	require.Error(t, err)
	assert.True(t, catalog.IsNetworkError(err))
	assert.False(t, c.Snapshot().Pagination.IsLoading)
	assert.Len(t, note.all(), 1)
	close(fake.block)
}

func TestLoadInitial(t *testing.T) {
	fake := newFake()
	fake.pages[1] = &types.ProductPage{Products: products("A"), Pagination: types.Pagination{Page: 1, Pages: 1, Total: 1}}
	c := NewController(fake)
	require.NoError(t, c.LoadInitial(context.Background()))
	c.Wait()

	productCalls, filterCalls := fake.counts()
	assert.Equal(t, 1, productCalls)
	assert.Equal(t, 1, filterCalls)
	assert.Equal(t, 20, c.Snapshot().Summary.Stock.InStock)
}

func TestLoadInitialFailure(t *testing.T) {
	fake := newFake()
	fake.productErr = errors.New("connection refused")
	note := &notifications{}
	c := NewController(fake, WithNotifier(note.add))
	require.Error(t, c.LoadInitial(context.Background()))
	assert.Equal(t, []Notification{{Kind: KindError, Message: MsgInitialLoadFailed}}, note.all())
}

func TestLoadInitialFacetFailureKeepsProducts(t *testing.T) {
	fake := newFake()
	fake.filterErr = errors.New("filters down")
	fake.block = make(chan struct{})
	fake.pages[1] = &types.ProductPage{
		Products:   products("Ring A", "Ring B"),
		Pagination: types.Pagination{Page: 1, Pages: 1, Total: 2},
	}
	note := &notifications{}
	c := NewController(fake, WithNotifier(note.add))

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(fake.block)
	}()
	require.Error(t, c.LoadInitial(context.Background()))
	c.Wait()

	snap := c.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, []string{"Ring A", "Ring B"}, names(snap.Products))
	assert.Equal(t, []Notification{{Kind: KindError, Message: MsgInitialLoadFailed}}, note.all())
}

func TestResubmitSearchRetries(t *testing.T) {
	fake := newFake()
	fake.productErr = errors.New("connection refused")
	fake.pages[1] = &types.ProductPage{
		Products:   products("Ruby Ring"),
		Pagination: types.Pagination{Page: 1, Pages: 1, Total: 1},
	}
	c := NewController(fake)
	ctx := context.Background()

	require.Error(t, c.SubmitSearch(ctx, "ring"))
	assert.Empty(t, c.Snapshot().Products)

	fake.mu.Lock()
	fake.productErr = nil
	fake.mu.Unlock()
	require.NoError(t, c.SubmitSearch(ctx, "ring"))
	c.Wait()

	n, _ := fake.counts()
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Ruby Ring"}, names(c.Snapshot().Products))
}

func TestFacetFailureIsLoggedOnly(t *testing.T) {
	fake := newFake()
	fake.filterErr = errors.New("filters down")
	note := &notifications{}
	c := NewController(fake, WithNotifier(note.add))
	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	c.Wait()
	assert.Empty(t, note.all())
	assert.Nil(t, c.Snapshot().Summary)
}

func TestSearchSubmit(t *testing.T) {
	fake := newFake()
	c := NewController(fake)
	ctx := context.Background()

	require.NoError(t, c.SubmitSearch(ctx, "  ring "))
	c.Wait()
	assert.Equal(t, "ring", fake.lastProductCall().Get("search"))
	assert.Equal(t, "0 RESULTS FOUND FOR 'RING'", view.ResultsLabel(c.Snapshot().Total, c.Snapshot().Filters.SearchTerm))

	require.NoError(t, c.SubmitSearch(ctx, "ring"))
	c.Wait()
	n, _ := fake.counts()
	assert.Equal(t, 2, n)

	require.NoError(t, c.SelectSuggestion(ctx, types.Suggestion{Text: "CaratBazaar", Type: "brand"}))
	c.Wait()
	assert.Equal(t, "CaratBazaar", fake.lastProductCall().Get("search"))
}

func TestPriceAndAvailability(t *testing.T) {
	fake := newFake()
	c := NewController(fake)
	ctx := context.Background()

	require.NoError(t, c.ApplyPriceRange(ctx, 500, 2000))
	q := fake.lastProductCall()
	assert.Equal(t, "500", q.Get("minPrice"))
	assert.Equal(t, "2000", q.Get("maxPrice"))

	require.NoError(t, c.SetAvailability(ctx, types.OutOfStock, true))
	assert.Equal(t, []string{"true", "false"}, fake.lastProductCall()["inStock"])

	assert.Error(t, c.SetAvailability(ctx, "maybe", true))
	assert.Error(t, c.ToggleFacet(ctx, types.Facet("colour"), "red", true))
	c.Wait()
}

func TestChangeListener(t *testing.T) {
	fake := newFake()
	var mu sync.Mutex
	changes := 0
	c := NewController(fake, WithChangeListener(func() {
		mu.Lock()
		changes++
		mu.Unlock()
	}))
	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	c.Wait()
	mu.Lock()
	defer mu.Unlock()
	// phase change, products, facet summary
	assert.Equal(t, 3, changes)
}

func TestPageSize(t *testing.T) {
	fake := newFake()
	c := NewController(fake, WithPageSize(24))
	require.NoError(t, c.LoadProducts(context.Background(), 1, false))
	c.Wait()
	assert.Equal(t, "24", fake.lastProductCall().Get("limit"))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "fetching", FetchingReplace.String())
	assert.Equal(t, "appending", FetchingAppend.String())
}
