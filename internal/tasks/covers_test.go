package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/packdex/internal/shared"
	tu "github.com/desertthunder/packdex/internal/testing"
)

func TestParseCoverLines(t *testing.T) {
	t.Run("Valid Lines", func(t *testing.T) {
		covers := ParseCoverLines("AB12 https://example.com/a.jpg\nCD34 https://example.com/b.jpg")
		if len(covers) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(covers))
		}
		if covers[0].ID != "AB12" || covers[0].URL != "https://example.com/a.jpg" {
			t.Errorf("unexpected first entry %+v", covers[0])
		}
	})

	t.Run("Blank And Partial Lines Are Dropped", func(t *testing.T) {
		text := "\nAB12 https://example.com/a.jpg\n\nonly-an-id\n   \n"
		covers := ParseCoverLines(text)
		if len(covers) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(covers))
		}
	})

	t.Run("Extra Tokens Join Into URL", func(t *testing.T) {
		covers := ParseCoverLines("AB12 https://example.com/a b.jpg")
		if len(covers) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(covers))
		}
		if covers[0].URL != "https://example.com/ab.jpg" {
			t.Errorf("expected tokens joined without separator, got %q", covers[0].URL)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if covers := ParseCoverLines(""); len(covers) != 0 {
			t.Errorf("expected no entries, got %d", len(covers))
		}
	})
}

func TestCoverEngine(t *testing.T) {
	t.Run("Rejects Empty Block Locally", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		engine := NewCoverEngine(mock, nil, 100)

		_, err := engine.BulkSetCovers(context.Background(), "\n  \nno-url-here\n")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(mock.BulkCalls) != 0 {
			t.Error("expected no request for an empty block")
		}
	})

	t.Run("Single Batch", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		engine := NewCoverEngine(mock, nil, 100)

		result, err := engine.BulkSetCovers(context.Background(), "AB12 https://example.com/a.jpg\nCD34 https://example.com/b.jpg")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Submitted != 2 || result.Updated != 2 || result.Batches != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Splits Into Batches", func(t *testing.T) {
		var lines strings.Builder
		for i := 0; i < 150; i++ {
			fmt.Fprintf(&lines, "PK%03d https://example.com/%d.jpg\n", i, i)
		}

		mock := &tu.MockCatalog{}
		engine := NewCoverEngine(mock, nil, 1000)

		result, err := engine.BulkSetCovers(context.Background(), lines.String())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Batches != 2 {
			t.Errorf("expected 2 batches, got %d", result.Batches)
		}
		if result.Updated != 150 {
			t.Errorf("expected 150 updated, got %d", result.Updated)
		}
		if len(mock.BulkCalls) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(mock.BulkCalls))
		}
		if len(mock.BulkCalls[0]) != 100 || len(mock.BulkCalls[1]) != 50 {
			t.Errorf("expected batch sizes 100 and 50, got %d and %d", len(mock.BulkCalls[0]), len(mock.BulkCalls[1]))
		}
	})

	t.Run("Stops On Backend Error", func(t *testing.T) {
		mock := &tu.MockCatalog{BulkErr: errors.New("boom")}
		engine := NewCoverEngine(mock, nil, 100)

		result, err := engine.BulkSetCovers(context.Background(), "AB12 https://example.com/a.jpg")
		if err == nil {
			t.Fatal("expected backend error to surface")
		}
		if result.Updated != 0 {
			t.Errorf("expected no updates recorded, got %d", result.Updated)
		}
	})
}
