package substitute

import (
	"testing"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

func TestSimilarityIdenticalProducts(t *testing.T) {
	p := catalog.Product{
		ID:       "p1",
		Name:     "Whole Milk",
		Brand:    "Colun",
		Category: "dairy",
		Price:    1200,
		Labels:   []string{"organic"},
	}

	got := similarity(p, p)
	// 40 category + 20 name + 15 price + 10 brand + 5 shared label.
	if got != 90 {
		t.Fatalf("similarity of identical products = %v, want 90", got)
	}
}

func TestSimilarityRelatedCategories(t *testing.T) {
	milk := catalog.Product{Name: "Milk", Category: "milk", Price: 1000}
	yogurt := catalog.Product{Name: "Yogurt", Category: "yogurt", Price: 900}

	got := similarity(milk, yogurt)
	if got < categoryRelatedPoints {
		t.Fatalf("related categories should contribute at least %v, got %v", categoryRelatedPoints, got)
	}
	if got >= categoryExactPoints+namePoints {
		t.Fatalf("related categories scored too high: %v", got)
	}
}

func TestSimilarityBoundedAndSymmetricPrice(t *testing.T) {
	a := catalog.Product{Name: "Rice 1kg", Category: "grains", Price: 1500}
	b := catalog.Product{Name: "Rice 1kg", Category: "grains", Price: 2000}

	forward := similarity(a, b)
	backward := similarity(b, a)
	if forward != backward {
		t.Fatalf("similarity is not symmetric: %v vs %v", forward, backward)
	}
	if forward < 0 || forward > 100 {
		t.Fatalf("similarity out of range: %v", forward)
	}
}

func TestNameSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"milk", "milk", 1},
		{"Milk", "milk", 1},
		{"", "milk", 0},
		{"milk", "", 0},
	}
	for _, tc := range cases {
		if got := nameSimilarity(tc.a, tc.b); got != tc.want {
			t.Fatalf("nameSimilarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}

	partial := nameSimilarity("whole milk", "whole milk 1l")
	if partial <= 0 || partial >= 1 {
		t.Fatalf("expected partial name match in (0,1), got %v", partial)
	}
}

func TestPriceRatioTiers(t *testing.T) {
	a := catalog.Product{Name: "Bread", Category: "bakery", Price: 1000}

	tight := a
	tight.Price = 900
	loose := a
	loose.Price = 1600
	far := a
	far.Price = 5000

	base := similarity(a, a) - priceTightPoints

	if got := similarity(a, tight); got != base+priceTightPoints {
		t.Fatalf("tight price ratio: got %v, want %v", got, base+priceTightPoints)
	}
	if got := similarity(a, loose); got != base+priceLoosePoints {
		t.Fatalf("loose price ratio: got %v, want %v", got, base+priceLoosePoints)
	}
	if got := similarity(a, far); got != base {
		t.Fatalf("distant price ratio: got %v, want %v", got, base)
	}
}

func TestSharedLabelCap(t *testing.T) {
	a := catalog.Product{
		Name:     "Granola",
		Category: "cereals",
		Price:    2000,
		Labels:   []string{"organic", "vegan", "gluten-free", "no sugar", "local"},
	}
	b := a
	b.Name = "Muesli"

	withLabels := similarity(a, b)
	aNoLabels := a
	aNoLabels.Labels = nil
	bNoLabels := b
	bNoLabels.Labels = nil
	withoutLabels := similarity(aNoLabels, bNoLabels)

	if withLabels-withoutLabels != labelPointsCap {
		t.Fatalf("shared label contribution = %v, want cap %v", withLabels-withoutLabels, labelPointsCap)
	}
}
