package testutil

import (
	"fmt"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/Sternrassler/site-paginate/pkg/site"
)

// SiteSource is the source directory used by fixture sites.
const SiteSource = "/srv/site"

// Items returns n visible items with IDs "post-1" through "post-n".
func Items(n int) []pagination.Item {
	items := make([]pagination.Item, n)
	for i := range items {
		items[i] = pagination.Item{
			ID:    fmt.Sprintf("post-%d", i+1),
			Title: fmt.Sprintf("Post %d", i+1),
		}
	}
	return items
}

// CategorizedItems returns n items per category, interleaved in category
// order. IDs are "<category>-<i>".
func CategorizedItems(n int, categories ...string) []pagination.Item {
	items := make([]pagination.Item, 0, n*len(categories))
	for i := 1; i <= n; i++ {
		for _, c := range categories {
			items = append(items, pagination.Item{
				ID:         fmt.Sprintf("%s-%d", c, i),
				Title:      fmt.Sprintf("%s post %d", c, i),
				Categories: []string{c},
			})
		}
	}
	return items
}

// Pages returns pages for the given source paths.
func Pages(sourcePaths ...string) []*site.Page {
	pages := make([]*site.Page, len(sourcePaths))
	for i, p := range sourcePaths {
		pages[i] = &site.Page{Path: p, Data: map[string]any{"layout": "default"}}
	}
	return pages
}

// NewSite returns a site rooted at SiteSource.
func NewSite(items []pagination.Item, sourcePaths ...string) *site.Site {
	return &site.Site{
		Source: SiteSource,
		Pages:  Pages(sourcePaths...),
		Items:  items,
	}
}

// ItemIDs returns the IDs of items in order.
func ItemIDs(items []pagination.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
