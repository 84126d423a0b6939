// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/packdex/internal/models"
)

// MockCatalog is a configurable test double for [services.CatalogService].
// The zero value answers every call successfully with empty data.
type MockCatalog struct {
	mu sync.Mutex

	StatusResp  models.ServiceStatus
	StatusErr   error
	SearchResp  []models.Pack
	SearchErr   error
	SearchFn    func(ctx context.Context, query models.SearchQuery) ([]models.Pack, error)
	RefreshResp int
	RefreshErr  error
	CoverErr    error
	BulkResp    int
	BulkErr     error
	DeleteErr   error

	StatusCalls  int
	SearchCalls  int
	RefreshCalls int
	CoverCalls   []models.SetCoverRequest
	BulkCalls    [][]models.CoverUpdate
	DeleteCalls  []string
	Queries      []models.SearchQuery
}

func (m *MockCatalog) Status(ctx context.Context) (*models.ServiceStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls++
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	status := m.StatusResp
	return &status, nil
}

func (m *MockCatalog) Search(ctx context.Context, query models.SearchQuery) ([]models.Pack, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.Queries = append(m.Queries, query)
	fn := m.SearchFn
	resp, err := m.SearchResp, m.SearchErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}
	return resp, err
}

func (m *MockCatalog) Refresh(ctx context.Context, count int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls++
	return m.RefreshResp, m.RefreshErr
}

func (m *MockCatalog) SetCover(ctx context.Context, id string, url *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CoverCalls = append(m.CoverCalls, models.SetCoverRequest{ID: id, URL: url})
	return m.CoverErr
}

func (m *MockCatalog) BulkSetCovers(ctx context.Context, covers []models.CoverUpdate) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BulkCalls = append(m.BulkCalls, covers)
	if m.BulkErr != nil {
		return 0, m.BulkErr
	}
	if m.BulkResp != 0 {
		return m.BulkResp, nil
	}
	return len(covers), nil
}

func (m *MockCatalog) DeletePack(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteErr
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
