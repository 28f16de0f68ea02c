// Package suggest schedules autocomplete lookups for the search box.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	DefaultDelay     = 300 * time.Millisecond
	DefaultMinLength = 2
	fetchTimeout     = 5 * time.Second
)

type Fetcher interface {
	Suggestions(ctx context.Context, query string, limit int) ([]types.Suggestion, error)
}

// Debouncer turns keystrokes into at most one lookup per pause in typing.
// Only the latest input is ever looked up and results for an input the user
// has already moved past are dropped.
type Debouncer struct {
	fetcher   Fetcher
	delay     time.Duration
	minLength int
	limit     int
	cache     *cache.Cache
	log       *zap.Logger
	onResults func(query string, suggestions []types.Suggestion)
	onClear   func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

type Option func(*Debouncer)

func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) {
		db.delay = d
	}
}

func WithLimit(n int) Option {
	return func(db *Debouncer) {
		if n > 0 {
			db.limit = n
		}
	}
}

// WithCache keeps results per query for ttl. A ttl of 0 disables caching.
func WithCache(ttl time.Duration) Option {
	return func(db *Debouncer) {
		if ttl > 0 {
			db.cache = cache.New(ttl, 2*ttl)
		} else {
			db.cache = nil
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(db *Debouncer) {
		db.log = log
	}
}

// OnResults is called from the timer goroutine with a non-empty result list.
func OnResults(fn func(query string, suggestions []types.Suggestion)) Option {
	return func(db *Debouncer) {
		db.onResults = fn
	}
}

// OnClear is called when the suggestion list should be hidden.
func OnClear(fn func()) Option {
	return func(db *Debouncer) {
		db.onClear = fn
	}
}

func NewDebouncer(fetcher Fetcher, opts ...Option) *Debouncer {
	d := &Debouncer{
		fetcher:   fetcher,
		delay:     DefaultDelay,
		minLength: DefaultMinLength,
		limit:     types.SuggestionLimit,
		cache:     cache.New(time.Minute, 2*time.Minute),
		log:       zap.NewNop(),
		onResults: func(string, []types.Suggestion) {},
		onClear:   func() {},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Input registers the current content of the search box. It reports true
// when the input is too short to look up, in which case the caller hides the
// list itself. OnClear only fires from the lookup goroutine so Input is safe
// to call from a UI event loop.
func (d *Debouncer) Input(value string) bool {
	query := strings.TrimSpace(value)
	d.mu.Lock()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if utf8.RuneCountInString(query) < d.minLength {
		d.mu.Unlock()
		return true
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, query)
	})
	d.mu.Unlock()
	return false
}

// Cancel drops any pending or in-flight lookup, as on submit or escape.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

func (d *Debouncer) fire(gen uint64, query string) {
	if !d.current(gen) {
		return
	}
	key := strings.ToLower(query)
	if d.cache != nil {
		if hit, ok := d.cache.Get(key); ok {
			d.deliver(gen, query, hit.([]types.Suggestion))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	res, err := d.fetcher.Suggestions(ctx, query, d.limit)
	if err != nil {
		d.log.Warn("suggestions failed", zap.String("query", query), zap.Error(err))
		if d.current(gen) {
			d.onClear()
		}
		return
	}
	if d.cache != nil {
		d.cache.SetDefault(key, res)
	}
	d.deliver(gen, query, res)
}

func (d *Debouncer) deliver(gen uint64, query string, res []types.Suggestion) {
	if !d.current(gen) {
		d.log.Debug("stale suggestions discarded", zap.String("query", query))
		return
	}
	if len(res) == 0 {
		d.onClear()
		return
	}
	d.onResults(query, res)
}
