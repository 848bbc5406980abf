package pagination

// Item is one content unit being paginated (e.g. a blog post).
// The paginator only reads Hidden and Categories.
type Item struct {
	ID         string         `json:"id" yaml:"id"`
	Title      string         `json:"title,omitempty" yaml:"title"`
	Categories []string       `json:"categories,omitempty" yaml:"categories"`
	Hidden     bool           `json:"hidden,omitempty" yaml:"hidden"`
	Data       map[string]any `json:"data,omitempty" yaml:"data"`
}

// HasCategory reports whether the item carries the given label.
func (i Item) HasCategory(category string) bool {
	for _, c := range i.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Window is one page worth of pagination data.
// Pointer fields are nil when absent (no previous page on page 1, no next
// page on the last page, no category on uncategorized runs).
type Window struct {
	Page             int     `json:"page"`
	PerPage          int     `json:"per_page"`
	Items            []Item  `json:"posts"`
	TotalItems       int     `json:"total_posts"`
	TotalPages       int     `json:"total_pages"`
	PreviousPage     *int    `json:"previous_page"`
	PreviousPagePath *string `json:"previous_page_path"`
	NextPage         *int    `json:"next_page"`
	NextPagePath     *string `json:"next_page_path"`
	Category         *string `json:"category"`
	FirstPagePath    *string `json:"first_page_path"`

	// PagePath is where this window is materialized. It is not part of the
	// render-time field set.
	PagePath string `json:"-"`
}

// Liquid returns the render-time field set consumed by template engines.
func (w Window) Liquid() map[string]any {
	return map[string]any{
		"page":               w.Page,
		"per_page":           w.PerPage,
		"posts":              w.Items,
		"total_posts":        w.TotalItems,
		"total_pages":        w.TotalPages,
		"previous_page":      derefInt(w.PreviousPage),
		"previous_page_path": derefString(w.PreviousPagePath),
		"next_page":          derefInt(w.NextPage),
		"next_page_path":     derefString(w.NextPagePath),
		"category":           derefString(w.Category),
		"first_page_path":    derefString(w.FirstPagePath),
	}
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
