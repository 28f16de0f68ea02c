// Package catalog is the http client for the product catalog api.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

const (
	ProductsPath    = "/api/products"
	FiltersPath     = "/api/filters"
	SuggestionsPath = "/api/suggestions"
)

type Client struct {
	base       *url.URL
	httpClient *http.Client
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(cl *Client) {
		cl.log = log
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("catalog base url: %w", err)
	}
	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Products retrieves one page of the listing.
func (c *Client) Products(ctx context.Context, q types.ProductQuery) (*types.ProductPage, error) {
	res, err := get[types.ProductPage](ctx, c, ProductsPath, q.Values())
	if err != nil {
		return nil, err
	}
	if res.Products == nil {
		res.Products = []types.Product{}
	}
	return res, nil
}

// Filters retrieves the facet counts for the current selection.
func (c *Client) Filters(ctx context.Context, q types.FacetQuery) (*types.FacetSummary, error) {
	return get[types.FacetSummary](ctx, c, FiltersPath, q.Values())
}

func (c *Client) Suggestions(ctx context.Context, query string, limit int) ([]types.Suggestion, error) {
	q := types.SuggestionQuery{Query: query, Limit: limit}
	res, err := get[types.SuggestionList](ctx, c, SuggestionsPath, q.Values())
	if err != nil {
		return nil, err
	}
	return res.Suggestions, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	start := time.Now()
	fetches.WithLabelValues(path).Inc()
	defer func() {
		fetchDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	requestId := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestId)
	log := c.log.With(zap.String("endpoint", path), zap.String("request_id", requestId))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchFailures.WithLabelValues(path, "network").Inc()
		log.Warn("catalog request failed", zap.Error(err))
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchFailures.WithLabelValues(path, "status").Inc()
		log.Warn("catalog request unexpected status", zap.Int("status", resp.StatusCode))
		return nil, &NetworkError{Endpoint: path, Status: resp.StatusCode, Err: errUnexpectedStatus}
	}

	var envelope types.Response[T]
	if err := jsoncompat.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		fetchFailures.WithLabelValues(path, "decode").Inc()
		log.Warn("catalog response not decodable", zap.Error(err))
		return nil, &NetworkError{Endpoint: path, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	if !envelope.Success {
		fetchFailures.WithLabelValues(path, "application").Inc()
		log.Info("catalog request unsuccessful", zap.String("error", envelope.Error))
		return nil, &ApplicationError{Endpoint: path, Message: envelope.Error}
	}
	log.Debug("catalog request done", zap.Duration("elapsed", time.Since(start)))
	return &envelope.Data, nil
}
