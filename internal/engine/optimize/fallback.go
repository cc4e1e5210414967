package optimize

import (
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/substitute"
)

// NameFallback finds cross-category candidates by fuzzy name match across
// the whole catalog. It backs the optimizer's last matching step.
type NameFallback struct {
	Limit int
}

// Candidates implements CandidateFinder.
func (f NameFallback) Candidates(item Item, cat catalog.Catalog) []catalog.Product {
	limit := f.Limit
	if limit <= 0 {
		limit = maxAlternatives + 1
	}
	pool := candidatePool(Item{ProductName: item.ProductName}, cat)
	return substitute.CandidatesByName(item.ProductName, pool, limit)
}
