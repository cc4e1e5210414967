package catalog

import "strings"

// dietaryFilters are the preference tags treated as hard constraints: a
// product that does not carry the matching label is excluded outright rather
// than merely ranked lower.
var dietaryFilters = map[string]struct{}{
	"vegan":        {},
	"vegetarian":   {},
	"gluten-free":  {},
	"lactose-free": {},
}

// IsDietaryFilter reports whether the preference tag is a mandatory dietary
// constraint.
func IsDietaryFilter(pref string) bool {
	_, ok := dietaryFilters[normalizePref(pref)]
	return ok
}

// SatisfiesDiet reports whether the product carries labels for every dietary
// constraint in prefs. Non-dietary preferences are ignored here.
func (p Product) SatisfiesDiet(prefs []string) bool {
	for _, pref := range prefs {
		norm := normalizePref(pref)
		if _, ok := dietaryFilters[norm]; !ok {
			continue
		}
		if !p.matchesPreference(norm) {
			return false
		}
	}
	return true
}

// PreferenceMatch returns the fraction of preference tags the product
// satisfies, in [0,1]. An empty preference list counts as a full match.
func (p Product) PreferenceMatch(prefs []string) float64 {
	if len(prefs) == 0 {
		return 1
	}
	matched := 0
	for _, pref := range prefs {
		if p.matchesPreference(normalizePref(pref)) {
			matched++
		}
	}
	return float64(matched) / float64(len(prefs))
}

// matchesPreference checks the tag against labels and the sustainability
// flags that double as preference targets.
func (p Product) matchesPreference(pref string) bool {
	for _, label := range p.Labels {
		if strings.Contains(strings.ToLower(label), pref) {
			return true
		}
	}
	if p.Sustainability != nil {
		switch pref {
		case "local":
			return p.Sustainability.LocalProduct
		case "fair-trade", "fair trade":
			return p.Sustainability.FairTrade
		case "recyclable":
			return p.Sustainability.PackagingRecyclable
		}
	}
	return false
}

func normalizePref(pref string) string {
	norm := strings.ToLower(strings.TrimSpace(pref))
	return strings.ReplaceAll(norm, "_", "-")
}
