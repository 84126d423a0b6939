package models

// Pack represents a sellable bundle of games as served by the catalog API.
// Packs are owned by the backend; the front ends never modify one in place.
type Pack struct {
	ID            string   `json:"id"`             // ID is the opaque stable pack identifier
	Games         []string `json:"games"`          // Games lists game names in display order
	PriceLocal    int      `json:"price_local"`    // PriceLocal is the non-negative price in local currency units
	CoverURL      string   `json:"cover_url"`      // CoverURL is optional; empty means "use the fallback visual"
	FormattedText string   `json:"formatted_text"` // FormattedText is the pre-rendered clipboard blob, reproduced byte-for-byte on copy
}

// HasCover reports whether the pack carries a usable cover image URL.
// The backend sends the literal "default" for packs without one.
func (p Pack) HasCover() bool { return p.CoverURL != "" && p.CoverURL != "default" }

// SearchQuery holds the parameters for a single catalog search.
// Built fresh per search action; never persisted.
type SearchQuery struct {
	Text     string // Text is the free-text game filter
	Exclude  string // Exclude removes packs whose games match this text
	PriceMin *int   // PriceMin is the optional lower price bound
	PriceMax *int   // PriceMax is the optional upper price bound
	Limit    int    // Limit caps the number of results
}

// ServiceStatus mirrors the GET /api/status response.
type ServiceStatus struct {
	TelegramConnected bool `json:"telegram_connected"`
	CachedPacks       int  `json:"cached_packs"`
}

// SearchResponse mirrors the GET /api/search response envelope.
type SearchResponse struct {
	Results []Pack `json:"results"`
	Error   string `json:"error,omitempty"`
}

// RefreshResponse mirrors the POST /api/refresh response.
// PacksFound is a pointer so a missing field can be told apart from zero.
type RefreshResponse struct {
	PacksFound *int   `json:"packs_found,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CoverUpdate is one id → url entry for the bulk cover endpoint.
type CoverUpdate struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SetCoverRequest mirrors the POST /api/admin/set-cover body.
// A nil URL clears the manual cover and restores the automatic one.
type SetCoverRequest struct {
	ID  string  `json:"id"`
	URL *string `json:"url"`
}

// BulkSetCoversRequest mirrors the POST /api/admin/bulk-set-covers body.
type BulkSetCoversRequest struct {
	Covers []CoverUpdate `json:"covers"`
}

// BulkSetCoversResponse mirrors the bulk cover endpoint response.
type BulkSetCoversResponse struct {
	Updated int    `json:"updated"`
	Error   string `json:"error,omitempty"`
}

// DeletePackRequest mirrors the POST /api/admin/delete-pack body.
type DeletePackRequest struct {
	ID string `json:"id"`
}

// APIError is the application-level error payload some endpoints return
// alongside a non-2xx status.
type APIError struct {
	Error string `json:"error"`
}
