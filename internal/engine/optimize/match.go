package optimize

import (
	"sort"
	"strings"

	"github.com/liquiverde/liquiverde-backend/internal/catalog"
)

// CandidateFinder supplies cross-category fallback candidates when nothing in
// the item's own category matches. The substitution engine satisfies this.
type CandidateFinder interface {
	Candidates(item Item, cat catalog.Catalog) []catalog.Product
}

// matchCandidates resolves a shopping list item to catalog products. The
// precedence is: full-name substring match, then first-token match, then the
// whole requested category, then a cross-category lookup through the finder.
// The returned flag reports whether the cross-category fallback was taken.
func matchCandidates(item Item, cat catalog.Catalog, finder CandidateFinder) ([]catalog.Product, bool) {
	pool := candidatePool(item, cat)

	if matched := substringMatches(item.ProductName, pool); len(matched) > 0 {
		return matched, false
	}
	if matched := firstTokenMatches(item.ProductName, pool); len(matched) > 0 {
		return matched, false
	}
	if item.Category != "" && len(pool) > 0 {
		return pool, false
	}
	if finder != nil {
		if matched := finder.Candidates(item, cat); len(matched) > 0 {
			return matched, true
		}
	}
	return nil, false
}

// candidatePool returns the products eligible for matching. With a category
// on the item only that category is searched; otherwise every category is,
// in sorted key order so the result is deterministic.
func candidatePool(item Item, cat catalog.Catalog) []catalog.Product {
	if item.Category != "" {
		return cat.Category(strings.ToLower(item.Category))
	}

	keys := make([]string, 0, len(cat))
	for key := range cat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pool := make([]catalog.Product, 0, cat.Size())
	for _, key := range keys {
		pool = append(pool, cat[key]...)
	}
	return pool
}

func substringMatches(query string, pool []catalog.Product) []catalog.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	var matched []catalog.Product
	for _, p := range pool {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			matched = append(matched, p)
		}
	}
	return matched
}

func firstTokenMatches(query string, pool []catalog.Product) []catalog.Product {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(tokens) == 0 {
		return nil
	}
	token := tokens[0]
	var matched []catalog.Product
	for _, p := range pool {
		if strings.Contains(strings.ToLower(p.Name), token) {
			matched = append(matched, p)
		}
	}
	return matched
}

// filterCandidates drops products the item can never accept: out of stock,
// over the per-unit price cap, or violating a dietary constraint.
func filterCandidates(item Item, candidates []catalog.Product) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(candidates))
	for _, p := range candidates {
		if !p.InStock {
			continue
		}
		if item.MaxPrice != nil && p.Price > *item.MaxPrice {
			continue
		}
		if !p.SatisfiesDiet(item.Preferences) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
