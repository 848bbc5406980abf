package pagination

import (
	"errors"

	"github.com/Sternrassler/site-paginate/pkg/paths"
)

// Config holds the settings of one pagination run.
type Config struct {
	// PerPage is the number of items per window. Must be positive.
	PerPage int

	// PathTemplate is the output path pattern for pages 2..N.
	// It must contain paths.Placeholder.
	PathTemplate string

	// FirstPagePath is the template page's own URL, used for page 1.
	FirstPagePath string

	// Category labels every window of a category run. Empty for the
	// default run.
	Category string
}

// Paginator computes page windows for one run.
// It holds no mutable state and is safe for concurrent use.
type Paginator struct {
	config Config
}

// New creates a Paginator after validating the page size and path template.
func New(cfg Config) (*Paginator, error) {
	if cfg.PerPage <= 0 {
		return nil, &paths.ConfigurationError{
			Field: "per_page",
			Err:   errors.New("must be a positive integer"),
		}
	}
	// Validated up front, including for single-page runs.
	if _, err := paths.WithPageNumber(cfg.PathTemplate, 2); err != nil {
		return nil, err
	}
	return &Paginator{config: cfg}, nil
}

// CalculatePages returns ceil(n / perPage), or 0 when there are no items.
func CalculatePages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n-1)/perPage + 1
}

// Paginate returns one window per page, in page order.
func (p *Paginator) Paginate(items []Item) ([]Window, error) {
	total := CalculatePages(len(items), p.config.PerPage)
	if total == 0 {
		return nil, nil
	}

	windows := make([]Window, 0, total)
	for page := 1; page <= total; page++ {
		w, err := p.window(items, page, total)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	windowsTotal.WithLabelValues(categoryLabel(p.config.Category)).Add(float64(total))
	return windows, nil
}

// Window returns the window for a single page.
// A page outside [1, total pages] yields a *PageRangeError.
func (p *Paginator) Window(items []Item, page int) (Window, error) {
	return p.window(items, page, CalculatePages(len(items), p.config.PerPage))
}

// PagePath returns the output path of a page.
// Page 1 is the first page path regardless of the template. Pages below 1
// yield a *PageRangeError.
func (p *Paginator) PagePath(page int) (string, error) {
	if page < 1 {
		return "", &PageRangeError{Page: page}
	}
	if page == 1 {
		return p.config.FirstPagePath, nil
	}
	path, err := paths.WithPageNumber(p.config.PathTemplate, page)
	if err != nil {
		return "", err
	}
	return paths.EnsureLeadingSlash(path), nil
}

func (p *Paginator) window(items []Item, page, total int) (Window, error) {
	if page < 1 || page > total {
		return Window{}, &PageRangeError{Page: page, TotalPages: total}
	}

	perPage := p.config.PerPage
	start := (page - 1) * perPage
	end := start + min(perPage, len(items)-start)

	path, err := p.PagePath(page)
	if err != nil {
		return Window{}, err
	}

	w := Window{
		Page:       page,
		PerPage:    perPage,
		Items:      items[start:end:end],
		TotalItems: len(items),
		TotalPages: total,
		PagePath:   path,
	}

	if p.config.FirstPagePath != "" {
		first := p.config.FirstPagePath
		w.FirstPagePath = &first
	}
	if p.config.Category != "" {
		category := p.config.Category
		w.Category = &category
	}

	if page > 1 {
		prev := page - 1
		prevPath, err := p.PagePath(prev)
		if err != nil {
			return Window{}, err
		}
		w.PreviousPage = &prev
		if prevPath != "" {
			w.PreviousPagePath = &prevPath
		}
	}
	if page < total {
		next := page + 1
		nextPath, err := p.PagePath(next)
		if err != nil {
			return Window{}, err
		}
		w.NextPage = &next
		w.NextPagePath = &nextPath
	}

	return w, nil
}

func categoryLabel(category string) string {
	if category == "" {
		return "default"
	}
	return category
}
