// Package pagination splits an ordered collection of content items into
// fixed-size page windows with previous/next navigation data.
//
// A Paginator is configured with a page size, a path template containing
// the ":num" placeholder and the path of the first page (the template
// page's own URL). Paginate returns one Window per page:
//
//	p, err := pagination.New(pagination.Config{
//		PerPage:       10,
//		PathTemplate:  "/blog/page:num/",
//		FirstPagePath: "/blog/",
//	})
//	windows, err := p.Paginate(pagination.Filter(items, pagination.FilterOptions{
//		ExcludedCategories: []string{"drafts"},
//	}))
//
// Page 1 always resolves to FirstPagePath; pages 2..N resolve through the
// path template. Zero items produce zero windows.
//
// Filtering runs before counting:
//   - Filter drops hidden items and items carrying an excluded category
//   - ForCategory keeps the visible items carrying one category label
//
// Independent runs (one per category) can be executed in parallel with a
// Runner. Runs share nothing but read-only inputs, so no locking is needed.
//
// # Errors
//
//   - *paths.ConfigurationError: bad page size or path template (user-facing)
//   - *PageRangeError: a page outside [1, total pages] was requested (caller bug)
package pagination
