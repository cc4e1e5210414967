package substitute

import (
	"sort"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

// minNameRatio is the weakest fuzzy name match CandidatesByName accepts.
const minNameRatio = 0.4

// CandidatesByName returns the pool products whose names most resemble the
// query, best match first. Used when a shopping list item matches nothing in
// its own category and the search widens to the whole catalog.
func CandidatesByName(query string, pool []catalog.Product, limit int) []catalog.Product {
	type scored struct {
		product catalog.Product
		ratio   float64
	}

	matches := make([]scored, 0, len(pool))
	for _, p := range pool {
		ratio := nameSimilarity(query, p.Name)
		if ratio < minNameRatio {
			continue
		}
		matches = append(matches, scored{product: p, ratio: ratio})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ratio > matches[j].ratio
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]catalog.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}
