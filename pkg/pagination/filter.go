package pagination

import "sort"

// FilterOptions controls which items enter the default run.
type FilterOptions struct {
	// ExcludedCategories drops any item carrying at least one of these labels.
	ExcludedCategories []string
}

// Filter returns the visible items that carry none of the excluded
// categories, preserving order. The input slice is not modified.
func Filter(items []Item, opts FilterOptions) []Item {
	excluded := make(map[string]struct{}, len(opts.ExcludedCategories))
	for _, c := range opts.ExcludedCategories {
		excluded[c] = struct{}{}
	}

	out := make([]Item, 0, len(items))
	var hidden, dropped int
	for _, item := range items {
		if item.Hidden {
			hidden++
			continue
		}
		if hasAny(item.Categories, excluded) {
			dropped++
			continue
		}
		out = append(out, item)
	}

	itemsFiltered.WithLabelValues("hidden").Add(float64(hidden))
	itemsFiltered.WithLabelValues("excluded").Add(float64(dropped))
	return out
}

// ForCategory returns the visible items carrying category, preserving
// order. Exclusions do not apply to category runs.
func ForCategory(items []Item, category string) []Item {
	out := make([]Item, 0)
	var hidden int
	for _, item := range items {
		if !item.HasCategory(category) {
			continue
		}
		if item.Hidden {
			hidden++
			continue
		}
		out = append(out, item)
	}

	itemsFiltered.WithLabelValues("hidden").Add(float64(hidden))
	return out
}

// Categories returns the sorted distinct category labels of visible items.
func Categories(items []Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if item.Hidden {
			continue
		}
		for _, c := range item.Categories {
			seen[c] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func hasAny(categories []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, c := range categories {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}
