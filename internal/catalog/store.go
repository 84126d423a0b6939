package catalog

import (
	"sync"

	"github.com/desertthunder/packdex/internal/models"
)

// PageSize is the fixed number of cards revealed per "load more" step.
const PageSize = 20

// Store is the single source of truth for rendering: it holds the most
// recently fetched result set, the unfiltered catalog, and the load-more
// cursor. One Store exists per front end session and is never persisted.
//
// Methods are safe for use from bubbletea command goroutines.
type Store struct {
	mu           sync.Mutex
	all          []models.Pack
	filtered     []models.Pack
	page         int
	lastQuery    string
	lastExclude  string
	failedCovers map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{page: 1, failedCovers: map[string]struct{}{}}
}

// SetAll records the unfiltered catalog load and makes it the current
// result set (fresh render, empty query/exclude pair).
func (s *Store) SetAll(packs []models.Pack) {
	s.mu.Lock()
	s.all = packs
	s.mu.Unlock()
	s.Apply(packs, "", "")
}

// All returns the unfiltered catalog.
func (s *Store) All() []models.Pack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all
}

// Empty reports whether the unfiltered catalog has not been loaded yet.
// The status poller uses this to trigger exactly one initial load.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.all) == 0
}

// Apply replaces the current result set wholesale. When the
// (query, exclude) pair differs from the last rendered pair the cursor
// resets to page 1 and Apply reports a fresh render (the grid must be
// cleared); otherwise this is a load-more continuation of the same set.
func (s *Store) Apply(packs []models.Pack, query, exclude string) (fresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query != s.lastQuery || exclude != s.lastExclude || s.filtered == nil {
		s.page = 1
		s.lastQuery = query
		s.lastExclude = exclude
		s.failedCovers = map[string]struct{}{}
		fresh = true
	}
	s.filtered = packs
	if s.filtered == nil {
		s.filtered = []models.Pack{}
	}
	return fresh
}

// Advance moves the cursor to the next page. It reports false, without
// moving, when the current page already reaches the end of the set.
func (s *Store) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page*PageSize >= len(s.filtered) {
		return false
	}
	s.page++
	return true
}

// PageSlice returns only the current page window [(page-1)*PageSize,
// page*PageSize) of the result set: the cards appended by this render.
func (s *Store) PageSlice() []models.Pack {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := (s.page - 1) * PageSize
	if start >= len(s.filtered) {
		return nil
	}
	end := min(start+PageSize, len(s.filtered))
	return s.filtered[start:end]
}

// Rendered returns every pack revealed so far, pages 1 through the
// current one.
func (s *Store) Rendered() []models.Pack {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := min(s.page*PageSize, len(s.filtered))
	return s.filtered[:end]
}

// HasMore reports whether packs beyond the current page remain hidden,
// i.e. whether a "load more" control belongs under the grid.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page*PageSize < len(s.filtered)
}

// Page returns the current page number (1-based).
func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Len returns the size of the current result set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filtered)
}

// Current returns the full current result set with the pair it was
// rendered for.
func (s *Store) Current() (packs []models.Pack, query, exclude string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered, s.lastQuery, s.lastExclude
}

// MarkCoverFailed records that a pack's cover image could not be loaded.
// Reclassification is one-directional: the pack renders the fallback
// pattern until a fresh result set is applied.
func (s *Store) MarkCoverFailed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedCovers[id] = struct{}{}
}

// CoverFailed reports whether the pack's cover was marked as failed.
func (s *Store) CoverFailed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.failedCovers[id]
	return ok
}

// Find returns the pack with the given id from the current result set,
// falling back to the unfiltered catalog.
func (s *Store) Find(id string) (models.Pack, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.filtered {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range s.all {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pack{}, false
}
