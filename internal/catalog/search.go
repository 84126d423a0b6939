package catalog

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/services"
	"github.com/desertthunder/packdex/internal/shared"
)

// Controller translates user input into catalog searches and applies the
// responses to a [Store].
//
// Overlapping searches are sequenced with a generation counter: a response
// that resolves after a newer search was issued is discarded instead of
// overwriting the newer results.
type Controller struct {
	svc        services.CatalogService
	store      *Store
	logger     *log.Logger
	limit      int
	generation atomic.Int64

	mu   sync.Mutex
	last models.SearchQuery // last is the most recent winning query
}

// NewController creates a Controller bound to a service and store.
// limit caps every search request; it defaults to 1000.
func NewController(svc services.CatalogService, store *Store, logger *log.Logger, limit int) *Controller {
	if limit <= 0 {
		limit = 1000
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{svc: svc, store: store, logger: logger, limit: limit}
}

// Store returns the controller's store.
func (c *Controller) Store() *Store { return c.store }

// ParsePriceBound converts user price text into an optional bound.
// Empty, non-numeric, and zero input all mean "no bound".
func ParsePriceBound(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// BuildQuery assembles a [models.SearchQuery] from raw input fields,
// trimming free text and parsing the price bounds.
func (c *Controller) BuildQuery(text, exclude, priceMin, priceMax string) models.SearchQuery {
	return models.SearchQuery{
		Text:     strings.TrimSpace(text),
		Exclude:  strings.TrimSpace(exclude),
		PriceMin: ParsePriceBound(priceMin),
		PriceMax: ParsePriceBound(priceMax),
		Limit:    c.limit,
	}
}

// Search issues the query and replaces the store's result set with the
// response. It reports whether the render is fresh (grid must clear).
// Returns [shared.ErrSuperseded] when a newer search finished first; the
// store is left untouched in that case.
func (c *Controller) Search(ctx context.Context, query models.SearchQuery) (fresh bool, err error) {
	gen := c.generation.Add(1)
	logger := c.logger.With("query", query.Text, "exclude", query.Exclude, "generation", gen)

	results, err := c.svc.Search(ctx, query)
	if err != nil {
		logger.Error("search failed", "err", err)
		return false, err
	}

	if gen != c.generation.Load() {
		logger.Debug("discarding stale search response")
		return false, shared.ErrSuperseded
	}

	c.mu.Lock()
	c.last = query
	c.mu.Unlock()

	logger.Debug("search complete", "results", len(results))
	return c.store.Apply(results, query.Text, query.Exclude), nil
}

// LoadAll fetches the unfiltered catalog and records it as both the full
// catalog and the current result set.
func (c *Controller) LoadAll(ctx context.Context) error {
	gen := c.generation.Add(1)

	results, err := c.svc.Search(ctx, models.SearchQuery{Limit: c.limit})
	if err != nil {
		c.logger.Error("catalog load failed", "err", err)
		return err
	}

	if gen != c.generation.Load() {
		return shared.ErrSuperseded
	}

	c.mu.Lock()
	c.last = models.SearchQuery{Limit: c.limit}
	c.mu.Unlock()

	c.store.SetAll(results)
	return nil
}

// Repeat re-runs the last winning query, price bounds included, against
// the backend. Mutation actions call this after a successful write so the
// displayed state reconciles with backend truth instead of being patched
// locally.
func (c *Controller) Repeat(ctx context.Context) error {
	c.mu.Lock()
	query := c.last
	c.mu.Unlock()

	if query.Limit == 0 {
		query.Limit = c.limit
	}
	_, err := c.Search(ctx, query)
	return err
}
