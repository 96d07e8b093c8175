package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/renatomh/gorestaurant-web/internal/food"
)

// maxTypoDistance is how far a query word may be from a name word and still match.
const maxTypoDistance = 2

// Search filters foods by name and description, tolerating small typos in names.
// An empty query returns foods unchanged.
func Search(foods []food.Food, query string) []food.Food {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return foods
	}
	var out []food.Food
	for _, f := range foods {
		if matches(f, q) {
			out = append(out, f)
		}
	}
	return out
}

// Search filters the current snapshot.
func (c *Collection) Search(query string) []food.Food {
	return Search(c.Snapshot(), query)
}

func matches(f food.Food, q string) bool {
	name := strings.ToLower(f.Name)
	if strings.Contains(name, q) || strings.Contains(strings.ToLower(f.Description), q) {
		return true
	}
	words := strings.Fields(name)
	for _, qw := range strings.Fields(q) {
		if len(qw) < 4 {
			// short words match too much at distance 2
			return false
		}
		if !fuzzyWord(words, qw) {
			return false
		}
	}
	return len(words) > 0
}

func fuzzyWord(words []string, qw string) bool {
	for _, w := range words {
		if levenshtein.ComputeDistance(w, qw) <= maxTypoDistance {
			return true
		}
	}
	return false
}
