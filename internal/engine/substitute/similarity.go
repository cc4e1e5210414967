package substitute

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

// Similarity component weights, expressed on the 0-100 scale.
const (
	categoryExactPoints   = 40.0
	categoryRelatedPoints = 20.0
	namePoints            = 20.0
	priceTightPoints      = 15.0
	priceLoosePoints      = 8.0
	brandPoints           = 10.0
	labelPoints           = 5.0
	labelPointsCap        = 15.0

	priceTightRatio = 0.7
	priceLooseRatio = 0.5
)

// relatedCategories groups category names that are close enough to act as
// substitution sources for one another.
var relatedCategories = [][]string{
	{"dairy", "milk", "yogurt", "cheese"},
	{"fruit", "fruits", "fresh_fruit"},
	{"vegetable", "vegetables", "fresh_vegetables"},
	{"meat", "poultry", "beef", "chicken"},
	{"bread", "bakery", "cereals"},
	{"beverages", "drinks", "juice", "soda"},
}

// similarity computes how interchangeable two products are, in [0,100].
func similarity(a, b catalog.Product) float64 {
	total := 0.0

	switch {
	case strings.EqualFold(a.Category, b.Category):
		total += categoryExactPoints
	case categoriesRelated(a.Category, b.Category):
		total += categoryRelatedPoints
	}

	total += nameSimilarity(a.Name, b.Name) * namePoints

	switch ratio := priceRatio(a.Price, b.Price); {
	case ratio > priceTightRatio:
		total += priceTightPoints
	case ratio > priceLooseRatio:
		total += priceLoosePoints
	}

	if a.Brand != "" && strings.EqualFold(a.Brand, b.Brand) {
		total += brandPoints
	}

	shared := sharedLabelCount(a, b)
	labelScore := float64(shared) * labelPoints
	if labelScore > labelPointsCap {
		labelScore = labelPointsCap
	}
	total += labelScore

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

// nameSimilarity returns a [0,1] ratio based on the normalized Levenshtein
// distance between the lowercased names.
func nameSimilarity(a, b string) float64 {
	left := strings.ToLower(strings.TrimSpace(a))
	right := strings.ToLower(strings.TrimSpace(b))
	if left == "" || right == "" {
		return 0
	}
	if left == right {
		return 1
	}
	longest := len(left)
	if len(right) > longest {
		longest = len(right)
	}
	distance := levenshtein.ComputeDistance(left, right)
	ratio := 1 - float64(distance)/float64(longest)
	if ratio < 0 {
		return 0
	}
	return ratio
}

func categoriesRelated(a, b string) bool {
	left := strings.ToLower(a)
	right := strings.ToLower(b)
	for _, group := range relatedCategories {
		foundLeft, foundRight := false, false
		for _, member := range group {
			if member == left {
				foundLeft = true
			}
			if member == right {
				foundRight = true
			}
		}
		if foundLeft && foundRight {
			return true
		}
	}
	return false
}

// priceRatio returns min/max of the two prices, in (0,1].
func priceRatio(a, b int64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}

func sharedLabelCount(a, b catalog.Product) int {
	set := a.LabelSet()
	count := 0
	for label := range b.LabelSet() {
		if _, ok := set[label]; ok {
			count++
		}
	}
	return count
}
