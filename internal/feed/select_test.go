package feed

import (
	"context"
	"testing"
	"time"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/domain"
)

func selectFixtureCatalog() *catalog.MemoryCatalog {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	return catalog.NewMemoryCatalog(
		domain.Product{ID: 1, Name: "Cheap", Price: "5.00", Status: domain.StatusPublish, InStock: true, Kind: domain.KindSimple, CreatedAt: base.Add(1 * time.Hour)},
		domain.Product{ID: 2, Name: "Mid", Price: "25.00", Status: domain.StatusPublish, InStock: true, Kind: domain.KindSimple, CreatedAt: base.Add(2 * time.Hour)},
		domain.Product{ID: 3, Name: "Expensive", Price: "250.00", Status: domain.StatusPublish, InStock: true, Kind: domain.KindSimple, CreatedAt: base.Add(3 * time.Hour)},
		domain.Product{ID: 4, Name: "OutOfStock", Price: "25.00", Status: domain.StatusPublish, InStock: false, Kind: domain.KindSimple, CreatedAt: base.Add(4 * time.Hour)},
		domain.Product{ID: 5, Name: "Draft", Price: "25.00", Status: "draft", InStock: true, Kind: domain.KindSimple, CreatedAt: base.Add(5 * time.Hour)},
	)
}

func TestSelectProducts_DefaultsExcludeOutOfStockAndNonPublish(t *testing.T) {
	cat := selectFixtureCatalog()

	got, err := SelectProducts(context.Background(), cat, Settings{})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got))
	}
	// Newest first.
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %d %d %d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSelectProducts_IncludeOutOfStock(t *testing.T) {
	cat := selectFixtureCatalog()

	got, err := SelectProducts(context.Background(), cat, Settings{IncludeOutOfStock: true})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 products, got %d", len(got))
	}
	if got[0].ID != 4 {
		t.Fatalf("expected newest product first, got id=%d", got[0].ID)
	}
}

func TestSelectProducts_PriceRange(t *testing.T) {
	cat := selectFixtureCatalog()

	got, err := SelectProducts(context.Background(), cat, Settings{MinPrice: "10", MaxPrice: "100"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only product 2, got %v", got)
	}
}

func TestSelectProducts_PriceRangeOpenEnded(t *testing.T) {
	cat := selectFixtureCatalog()

	got, err := SelectProducts(context.Background(), cat, Settings{MinPrice: "10"})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	// Everything at or above 10, unbounded above.
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
}

func TestSelectProducts_Limit(t *testing.T) {
	cat := selectFixtureCatalog()

	got, err := SelectProducts(context.Background(), cat, Settings{Limit: 2})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("limit must keep the newest products, got %d %d", got[0].ID, got[1].ID)
	}
}
