package optimize

import (
	"testing"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

type stubFinder struct {
	products []catalog.Product
}

func (s stubFinder) Candidates(item Item, cat catalog.Catalog) []catalog.Product {
	return s.products
}

func TestMatchCandidatesSubstringPrecedence(t *testing.T) {
	cat := testCatalog()

	matched, cross := matchCandidates(Item{ProductName: "whole milk", Category: "dairy"}, cat, nil)
	if cross {
		t.Fatal("expected an in-category match")
	}
	if len(matched) != 3 {
		t.Fatalf("expected 3 substring matches, got %d", len(matched))
	}
	for _, p := range matched {
		if p.ID == "m4" {
			t.Fatal("almond milk should not match the full name")
		}
	}
}

func TestMatchCandidatesFirstTokenFallback(t *testing.T) {
	cat := testCatalog()

	// "whole wheat" has no substring match in bakery; the first token does.
	matched, cross := matchCandidates(Item{ProductName: "whole wheat", Category: "bakery"}, cat, nil)
	if cross {
		t.Fatal("expected an in-category match")
	}
	if len(matched) != 1 || matched[0].ID != "b2" {
		t.Fatalf("expected the whole grain bread via token match, got %v", matched)
	}
}

func TestMatchCandidatesCategoryFallback(t *testing.T) {
	cat := testCatalog()

	matched, cross := matchCandidates(Item{ProductName: "queso fresco", Category: "dairy"}, cat, nil)
	if cross {
		t.Fatal("category fallback is not cross-category")
	}
	if len(matched) != len(cat.Category("dairy")) {
		t.Fatalf("expected the whole dairy category, got %d products", len(matched))
	}
}

func TestMatchCandidatesCrossCategoryFinder(t *testing.T) {
	cat := testCatalog()
	fallback := cat.Category("bakery")[:1]

	matched, cross := matchCandidates(Item{ProductName: "croissant"}, cat, stubFinder{products: fallback})
	if !cross {
		t.Fatal("expected the cross-category flag")
	}
	if len(matched) != 1 || matched[0].ID != "b1" {
		t.Fatalf("expected the finder's products, got %v", matched)
	}
}

func TestMatchCandidatesNoMatch(t *testing.T) {
	matched, cross := matchCandidates(Item{ProductName: "croissant"}, testCatalog(), nil)
	if cross || len(matched) != 0 {
		t.Fatalf("expected no match, got %v (cross=%v)", matched, cross)
	}
}

func TestFilterCandidatesDropsOutOfStock(t *testing.T) {
	products := []catalog.Product{
		{ID: "p1", Name: "Milk", Price: 1000, InStock: true},
		{ID: "p2", Name: "Milk", Price: 900, InStock: false},
	}

	filtered := filterCandidates(Item{ProductName: "milk"}, products)
	if len(filtered) != 1 || filtered[0].ID != "p1" {
		t.Fatalf("expected only the in-stock product, got %v", filtered)
	}
}
