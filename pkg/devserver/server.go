package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	catalog      *Catalog
	cache        Cache
	log          *zap.Logger
	ttl          time.Duration
	wrappedTotal bool
}

type Option func(*Server)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = cache
		s.ttl = ttl
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithWrappedTotal answers pagination.total as {"value": n} the way a search
// engine backed catalog does.
func WithWrappedTotal(wrapped bool) Option {
	return func(s *Server) {
		s.wrappedTotal = wrapped
	}
}

func NewServer(c *Catalog, opts ...Option) *Server {
	s := &Server{
		catalog: c,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	catalogSize.Set(float64(c.Len()))
	return s
}

type wrappedTotal struct {
	Value int `json:"value"`
}

type wrappedPagination struct {
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
	Total wrappedTotal `json:"total"`
}

type wrappedPage struct {
	Products   []types.Product   `json:"products"`
	Pagination wrappedPagination `json:"pagination"`
}

func cacheKey(r *http.Request) string {
	return "devcatalog:" + r.URL.Path + "?" + r.URL.Query().Encode()
}

func (s *Server) products(r *http.Request) (any, int, error) {
	q, err := types.DecodeProductQuery(r.URL.Query())
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	page, _ := cached(r.Context(), s.cache, cacheKey(r), s.ttl, func() types.ProductPage {
		return s.catalog.Products(*q)
	})
	if !s.wrappedTotal {
		return page, http.StatusOK, nil
	}
	return wrappedPage{
		Products: page.Products,
		Pagination: wrappedPagination{
			Page:  page.Pagination.Page,
			Pages: page.Pagination.Pages,
			Total: wrappedTotal{Value: int(page.Pagination.Total)},
		},
	}, http.StatusOK, nil
}

func (s *Server) filters(r *http.Request) (types.FacetSummary, int, error) {
	q, err := types.DecodeFacetQuery(r.URL.Query())
	if err != nil {
		return types.FacetSummary{}, http.StatusBadRequest, err
	}
	summary, _ := cached(r.Context(), s.cache, cacheKey(r), s.ttl, func() types.FacetSummary {
		return s.catalog.Filters(*q)
	})
	return summary, http.StatusOK, nil
}

func (s *Server) suggestions(r *http.Request) (types.SuggestionList, int, error) {
	q, err := types.DecodeSuggestionQuery(r.URL.Query())
	if err != nil {
		return types.SuggestionList{}, http.StatusBadRequest, err
	}
	return types.SuggestionList{Suggestions: s.catalog.Suggestions(*q)}, http.StatusOK, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc(catalog.ProductsPath, common.JsonHandler(s.log, s.products))
	mux.HandleFunc(catalog.FiltersPath, common.JsonHandler(s.log, s.filters))
	mux.HandleFunc(catalog.SuggestionsPath, common.JsonHandler(s.log, s.suggestions))
	mux.Handle("/metrics", promhttp.Handler())
	return Chain(mux, RequestID(), Recover(s.log), AccessLog(s.log))
}

// Close releases the cache connection when it holds one.
func (s *Server) Close(ctx context.Context) error {
	if c, ok := s.cache.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}
