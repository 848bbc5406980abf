// Package locator finds the page that serves as the pagination template.
//
// Among all pages named like the template (index.html by default), the
// winner is the page whose directory lies on the ancestor chain of the
// paginated output directory and whose source path is the longest, that
// is the most specific match. Equal lengths keep the first page in input
// order so that repeated runs select the same page.
package locator

import (
	"errors"
	"path/filepath"

	"github.com/Sternrassler/site-paginate/pkg/paths"
)

// DefaultTemplateName is the file name a template page must have.
const DefaultTemplateName = "index.html"

// probePage is substituted into the path template to derive the output
// directory. Any page number > 1 gives the same directory.
const probePage = 2

// ErrNoTemplate is returned when no page qualifies as template.
// Callers should warn and skip pagination for the run.
var ErrNoTemplate = errors.New("no template page found")

// Candidate is a page known to the host.
type Candidate interface {
	// FileName is the base name of the page source (e.g. "index.html").
	FileName() string

	// SourcePath is the page source path relative to the site source.
	SourcePath() string
}

// Options controls template lookup.
type Options struct {
	// SourceRoot is the absolute site source directory.
	SourceRoot string

	// PathTemplate is the pagination output path pattern (contains ":num").
	PathTemplate string

	// TemplateName overrides DefaultTemplateName.
	TemplateName string
}

// Find returns the best template page for opts.
// It returns ErrNoTemplate when no page qualifies and a
// *paths.ConfigurationError when the path template has no placeholder.
// pages is only read.
func Find[P Candidate](pages []P, opts Options) (P, error) {
	var zero P

	target, err := TargetDir(opts.SourceRoot, opts.PathTemplate)
	if err != nil {
		return zero, err
	}

	name := opts.TemplateName
	if name == "" {
		name = DefaultTemplateName
	}

	best := -1
	bestLen := -1
	for i, page := range pages {
		if page.FileName() != name {
			continue
		}
		if !paths.InHierarchy(opts.SourceRoot, PageDir(opts.SourceRoot, page.SourcePath()), target) {
			continue
		}
		if l := len(page.SourcePath()); l > bestLen {
			best, bestLen = i, l
		}
	}

	if best < 0 {
		return zero, ErrNoTemplate
	}
	return pages[best], nil
}

// TargetDir returns the absolute directory that numbered pages are written
// under, relative to which template candidates are matched.
func TargetDir(sourceRoot, pathTemplate string) (string, error) {
	path, err := paths.WithPageNumber(pathTemplate, probePage)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(sourceRoot, paths.RemoveLeadingSlash(path))
	return filepath.Dir(abs), nil
}

// PageDir returns the absolute source directory of a page.
func PageDir(sourceRoot, sourcePath string) string {
	return filepath.Dir(filepath.Join(sourceRoot, paths.RemoveLeadingSlash(sourcePath)))
}
