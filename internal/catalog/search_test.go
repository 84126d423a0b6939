package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/packdex/internal/models"
	"github.com/desertthunder/packdex/internal/shared"
	tu "github.com/desertthunder/packdex/internal/testing"
)

func TestParsePriceBound(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"non-numeric", "abc", nil},
		{"zero", "0", nil},
		{"valid", "1500", intPtr(1500)},
		{"trimmed", " 25 ", intPtr(25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceBound(tt.input)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected no bound, got %d", *got)
			case tt.want != nil && got == nil:
				t.Errorf("expected bound %d, got nil", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("expected bound %d, got %d", *tt.want, *got)
			}
		})
	}
}

func intPtr(n int) *int { return &n }

func TestController(t *testing.T) {
	t.Run("BuildQuery", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		c := NewController(mock, NewStore(), nil, 500)

		query := c.BuildQuery("  mario  ", " kart ", "100", "bad")
		if query.Text != "mario" {
			t.Errorf("expected trimmed text 'mario', got %q", query.Text)
		}
		if query.Exclude != "kart" {
			t.Errorf("expected trimmed exclude 'kart', got %q", query.Exclude)
		}
		if query.PriceMin == nil || *query.PriceMin != 100 {
			t.Error("expected price min bound of 100")
		}
		if query.PriceMax != nil {
			t.Error("expected non-numeric max to mean no bound")
		}
		if query.Limit != 500 {
			t.Errorf("expected limit 500, got %d", query.Limit)
		}
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Applies Results", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: makePacks(3)}
			c := NewController(mock, NewStore(), nil, 0)

			fresh, err := c.Search(context.Background(), c.BuildQuery("mario", "", "", ""))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !fresh {
				t.Error("expected fresh render for a new pair")
			}
			if c.Store().Len() != 3 {
				t.Errorf("expected 3 results in store, got %d", c.Store().Len())
			}
		})

		t.Run("Propagates Service Error", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchErr: errors.New("boom")}
			c := NewController(mock, NewStore(), nil, 0)

			if _, err := c.Search(context.Background(), models.SearchQuery{}); err == nil {
				t.Error("expected error from the service")
			}
			if c.Store().Len() != 0 {
				t.Error("expected store untouched after a failed search")
			}
		})

		t.Run("Discards Stale Response", func(t *testing.T) {
			store := NewStore()
			mock := &tu.MockCatalog{}
			c := NewController(mock, store, nil, 0)

			release := make(chan struct{})
			started := make(chan struct{})
			mock.SearchFn = func(ctx context.Context, query models.SearchQuery) ([]models.Pack, error) {
				if query.Text == "slow" {
					close(started)
					<-release
					return makePacks(50), nil
				}
				return makePacks(2), nil
			}

			done := make(chan error, 1)
			go func() {
				_, err := c.Search(context.Background(), models.SearchQuery{Text: "slow"})
				done <- err
			}()

			// Second search supersedes the in-flight one.
			<-started
			if _, err := c.Search(context.Background(), models.SearchQuery{Text: "fast"}); err != nil {
				t.Fatalf("expected second search to succeed, got %v", err)
			}

			close(release)
			if err := <-done; !errors.Is(err, shared.ErrSuperseded) {
				t.Errorf("expected ErrSuperseded for stale response, got %v", err)
			}

			packs, query, _ := store.Current()
			if query != "fast" || len(packs) != 2 {
				t.Errorf("expected the newer result set to win, got %d packs for %q", len(packs), query)
			}
		})
	})

	t.Run("LoadAll", func(t *testing.T) {
		mock := &tu.MockCatalog{SearchResp: makePacks(10)}
		c := NewController(mock, NewStore(), nil, 1000)

		if err := c.LoadAll(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Store().Empty() {
			t.Error("expected store catalog to be populated")
		}
		if mock.Queries[0].Limit != 1000 {
			t.Errorf("expected limit 1000 on the catalog load, got %d", mock.Queries[0].Limit)
		}
	})

	t.Run("Repeat", func(t *testing.T) {
		t.Run("Re-runs Last Pair", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: makePacks(4)}
			c := NewController(mock, NewStore(), nil, 0)

			if _, err := c.Search(context.Background(), models.SearchQuery{Text: "mario", Exclude: "kart"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := c.Repeat(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			last := mock.Queries[len(mock.Queries)-1]
			if last.Text != "mario" || last.Exclude != "kart" {
				t.Errorf("expected repeat of (mario, kart), got (%q, %q)", last.Text, last.Exclude)
			}
		})

		t.Run("Keeps Price Bounds", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: makePacks(4)}
			c := NewController(mock, NewStore(), nil, 0)

			query := models.SearchQuery{Text: "mario", PriceMin: intPtr(100), PriceMax: intPtr(500), Limit: 1000}
			if _, err := c.Search(context.Background(), query); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := c.Repeat(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			last := mock.Queries[len(mock.Queries)-1]
			if last.PriceMin == nil || *last.PriceMin != 100 {
				t.Error("expected repeat to keep the lower price bound")
			}
			if last.PriceMax == nil || *last.PriceMax != 500 {
				t.Error("expected repeat to keep the upper price bound")
			}
		})

		t.Run("After LoadAll Repeats Unfiltered", func(t *testing.T) {
			mock := &tu.MockCatalog{SearchResp: makePacks(4)}
			c := NewController(mock, NewStore(), nil, 1000)

			priceMin := 100
			if _, err := c.Search(context.Background(), models.SearchQuery{Text: "mario", PriceMin: &priceMin}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := c.LoadAll(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := c.Repeat(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			last := mock.Queries[len(mock.Queries)-1]
			if last.Text != "" || last.PriceMin != nil {
				t.Errorf("expected unfiltered repeat after a full load, got %+v", last)
			}
		})
	})
}
