package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/services"
	"github.com/desertthunder/packdex/internal/shared"
	"golang.org/x/time/rate"
)

// coverBatchSize caps how many cover updates travel in one request;
// larger submissions are split into batches paced by a rate limiter.
const coverBatchSize = 100

// CoverEngine performs bulk manual-cover updates against the backend.
type CoverEngine struct {
	svc       services.CatalogService
	logger    *log.Logger
	rateLimit float64
}

// NewCoverEngine creates a CoverEngine. rateLimit is batches per second
// and defaults to 2.
func NewCoverEngine(svc services.CatalogService, logger *log.Logger, rateLimit float64) *CoverEngine {
	if rateLimit <= 0 {
		rateLimit = 2.0
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CoverEngine{svc: svc, logger: logger, rateLimit: rateLimit}
}

// ParseCoverLines tokenizes free-form multi-line "ID URL" text into cover
// updates. Each non-empty line splits on whitespace into an id plus the
// remaining tokens joined with no separator as the url; lines yielding an
// empty id or url are dropped.
func ParseCoverLines(text string) []models.CoverUpdate {
	var covers []models.CoverUpdate
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		id := parts[0]
		coverURL := strings.Join(parts[1:], "")
		if id == "" || coverURL == "" {
			continue
		}
		covers = append(covers, models.CoverUpdate{ID: id, URL: coverURL})
	}
	return covers
}

// BulkCoverResult summarizes a bulk cover submission.
type BulkCoverResult struct {
	Submitted int // Submitted is the number of valid parsed entries
	Updated   int // Updated is the backend-reported update count
	Batches   int // Batches is how many requests were issued
}

// BulkSetCovers parses the text block and submits the updates. A block
// with zero valid lines is rejected locally before any request is made.
func (e *CoverEngine) BulkSetCovers(ctx context.Context, text string) (*BulkCoverResult, error) {
	covers := ParseCoverLines(text)
	if len(covers) == 0 {
		return nil, fmt.Errorf("%w: no se detectaron líneas válidas (Formato: ID URL)", shared.ErrInvalidInput)
	}

	limiter := rate.NewLimiter(rate.Limit(e.rateLimit), 1)
	result := &BulkCoverResult{Submitted: len(covers)}

	for start := 0; start < len(covers); start += coverBatchSize {
		end := min(start+coverBatchSize, len(covers))

		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("bulk cover update interrupted: %w", err)
		}

		updated, err := e.svc.BulkSetCovers(ctx, covers[start:end])
		if err != nil {
			return result, err
		}

		result.Updated += updated
		result.Batches++
		e.logger.Debug("cover batch applied", "batch", result.Batches, "updated", updated)
	}

	return result, nil
}
