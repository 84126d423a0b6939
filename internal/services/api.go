package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/shared"
)

const defaultBaseURL = "http://localhost:5000"

// PackService provides methods for calling the catalog REST API.
type PackService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

var _ CatalogService = (*PackService)(nil)

// NewPackService creates a new catalog API client.
func NewPackService(baseURL string, client *http.Client, logger *log.Logger) *PackService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &PackService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Name returns the service name for logging.
func (s *PackService) Name() string { return "catalog" }

// Status reports backend connectivity and the cached pack count.
func (s *PackService) Status(ctx context.Context) (*models.ServiceStatus, error) {
	body, err := s.get(ctx, "/api/status", nil)
	if err != nil {
		return nil, err
	}

	var status models.ServiceStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: failed to parse status response: %v", shared.ErrAPIResponse, err)
	}

	return &status, nil
}

// Search queries the catalog with the given parameters.
func (s *PackService) Search(ctx context.Context, query models.SearchQuery) ([]models.Pack, error) {
	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("exclude", query.Exclude)
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.PriceMin != nil {
		params.Set("price_min", strconv.Itoa(*query.PriceMin))
	}
	if query.PriceMax != nil {
		params.Set("price_max", strconv.Itoa(*query.PriceMax))
	}

	body, err := s.get(ctx, "/api/search", params)
	if err != nil {
		return nil, err
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse search response: %v", shared.ErrAPIResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIResponse, resp.Error)
	}

	return resp.Results, nil
}

// Refresh asks the backend to rescan the given number of source messages.
func (s *PackService) Refresh(ctx context.Context, count int) (int, error) {
	path := fmt.Sprintf("/api/refresh?count=%d", count)
	body, err := s.post(ctx, path, nil)
	if err != nil {
		return 0, err
	}

	var resp models.RefreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: failed to parse refresh response: %v", shared.ErrAPIResponse, err)
	}
	if resp.PacksFound == nil {
		if resp.Error != "" {
			return 0, fmt.Errorf("%w: %s", shared.ErrAPIResponse, resp.Error)
		}
		return 0, fmt.Errorf("%w: refresh response missing packs_found", shared.ErrAPIResponse)
	}

	return *resp.PacksFound, nil
}

// SetCover sets or clears (nil url) a manual pack cover.
func (s *PackService) SetCover(ctx context.Context, id string, coverURL *string) error {
	payload, err := json.Marshal(models.SetCoverRequest{ID: id, URL: coverURL})
	if err != nil {
		return fmt.Errorf("failed to marshal set-cover request: %w", err)
	}

	_, err = s.post(ctx, "/api/admin/set-cover", payload)
	return err
}

// BulkSetCovers applies many cover updates at once.
func (s *PackService) BulkSetCovers(ctx context.Context, covers []models.CoverUpdate) (int, error) {
	payload, err := json.Marshal(models.BulkSetCoversRequest{Covers: covers})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal bulk-set-covers request: %w", err)
	}

	body, err := s.post(ctx, "/api/admin/bulk-set-covers", payload)
	if err != nil {
		return 0, err
	}

	var resp models.BulkSetCoversResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: failed to parse bulk-set-covers response: %v", shared.ErrAPIResponse, err)
	}
	if resp.Error != "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrAPIResponse, resp.Error)
	}

	return resp.Updated, nil
}

// DeletePack removes a pack from the catalog.
func (s *PackService) DeletePack(ctx context.Context, id string) error {
	payload, err := json.Marshal(models.DeletePackRequest{ID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal delete-pack request: %w", err)
	}

	_, err = s.post(ctx, "/api/admin/delete-pack", payload)
	return err
}

func (s *PackService) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := s.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req)
}

func (s *PackService) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.do(req)
}

// do executes the request and classifies failures. The body is always read
// as text first so an HTML error page from an intermediary proxy never
// reaches a JSON decoder.
func (s *PackService) do(req *http.Request) ([]byte, error) {
	reqID := shared.GenerateID()
	logger := s.logger.With("request_id", reqID, "path", req.URL.Path)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, shared.ErrNotAuthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrAPIResponse, apiErr.Error)
		}

		// Not JSON: likely a full HTML error page from Cloudflare or a
		// reverse proxy. Keep the body out of the user-facing message.
		if looksLikeHTML(body) {
			logger.Debug("server returned HTML error page", "status", resp.StatusCode, "body", string(body))
		} else {
			logger.Debug("server returned non-JSON error body", "status", resp.StatusCode, "body", string(body))
		}
		return nil, fmt.Errorf("%w: server status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return body, nil
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html") || strings.HasPrefix(trimmed, "<")
}
