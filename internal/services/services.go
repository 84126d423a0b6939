package services

import (
	"context"

	"github.com/desertthunder/packdex/internal/models"
)

// CatalogService defines the operations both front ends perform against the
// pack catalog backend. The admin console uses the full surface; the
// customer catalog only searches.
type CatalogService interface {
	// Status reports backend connectivity and the cached pack count.
	Status(ctx context.Context) (*models.ServiceStatus, error)

	// Search queries the catalog. Free-text parameters are URL-encoded;
	// nil price bounds are omitted from the request.
	Search(ctx context.Context, query models.SearchQuery) ([]models.Pack, error)

	// Refresh asks the backend to rescan the given number of source
	// messages and returns how many packs were found.
	// Returns [shared.ErrNotAuthenticated] on a 401.
	Refresh(ctx context.Context, count int) (int, error)

	// SetCover sets a manual cover for a pack. A nil url clears the
	// manual cover and restores the automatic one.
	SetCover(ctx context.Context, id string, url *string) error

	// BulkSetCovers applies many cover updates at once and returns the
	// number of packs updated.
	BulkSetCovers(ctx context.Context, covers []models.CoverUpdate) (int, error)

	// DeletePack removes a pack from the catalog.
	DeletePack(ctx context.Context, id string) error

	// Name returns the service name for logging.
	Name() string
}
