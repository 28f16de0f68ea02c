package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string, check func(r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestProducts(t *testing.T) {
	c := serve(t, 200, `{"success":true,"data":{"products":[{"product_name":"Ring","images":"a.jpg; b.jpg"}],"pagination":{"page":1,"pages":3,"total":25}}}`, func(r *http.Request) {
		assert.Equal(t, ProductsPath, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, []string{"true"}, q["inStock"])
		_, hasCategory := q["category"]
		assert.False(t, hasCategory)
	})
	page, err := c.Products(context.Background(), types.BuildProductQuery(types.DefaultFilterState(), 1, types.DefaultPageSize))
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Ring", page.Products[0].Name)
	assert.Equal(t, types.ImageList{"a.jpg", "b.jpg"}, page.Products[0].Images)
	assert.Equal(t, 3, page.Pagination.Pages)
	assert.Equal(t, types.TotalCount(25), page.Pagination.Total)
}

func TestProductsWrappedTotal(t *testing.T) {
	c := serve(t, 200, `{"success":true,"data":{"products":[],"pagination":{"page":1,"pages":0,"total":{"value":0}}}}`, nil)
	page, err := c.Products(context.Background(), types.BuildProductQuery(types.DefaultFilterState(), 1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, types.TotalCount(0), page.Pagination.Total)
}

func TestFilters(t *testing.T) {
	c := serve(t, 200, `{"success":true,"data":{"categories":[{"value":"rings","count":4}],"stock":{"inStock":4,"outOfStock":1},"priceRange":{"min":100,"max":9000}}}`, func(r *http.Request) {
		assert.Equal(t, FiltersPath, r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("page"))
	})
	summary, err := c.Filters(context.Background(), types.BuildFacetQuery(types.DefaultFilterState()))
	require.NoError(t, err)
	assert.Equal(t, []types.FacetValue{{Value: "rings", Count: 4}}, summary.Categories)
	assert.Equal(t, 1, summary.Stock.OutOfStock)
	assert.Equal(t, 9000.0, summary.PriceRange.Max)
}

func TestSuggestions(t *testing.T) {
	c := serve(t, 200, `{"success":true,"data":{"suggestions":[{"text":"ring","type":"product"}]}}`, func(r *http.Request) {
		assert.Equal(t, "ri", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
	})
	res, err := c.Suggestions(context.Background(), "ri", 8)
	require.NoError(t, err)
	assert.Equal(t, []types.Suggestion{{Text: "ring", Type: "product"}}, res)
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		body        string
		application bool
	}{
		{"unsuccessful", 200, `{"success":false,"error":"bad filter"}`, true},
		{"server error", 500, `oops`, false},
		{"not json", 200, `<html>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := serve(t, tc.status, tc.body, nil)
			_, err := c.Products(context.Background(), types.BuildProductQuery(types.DefaultFilterState(), 1, 10))
			require.Error(t, err)
			assert.Equal(t, tc.application, IsApplicationError(err))
			assert.Equal(t, !tc.application, IsNetworkError(err))
		})
	}
}

func TestApplicationErrorMessage(t *testing.T) {
	c := serve(t, 200, `{"success":false,"error":"bad filter"}`, nil)
	_, err := c.Filters(context.Background(), types.FacetQuery{})
	var ae *ApplicationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "bad filter", ae.Message)
}

func TestTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Products(ctx, types.BuildProductQuery(types.DefaultFilterState(), 1, 10))
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
