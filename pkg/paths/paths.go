// Package paths provides the path-string helpers used by pagination:
// leading-slash normalization, page-number substitution into path
// templates and the ancestor-directory test used to locate template pages.
package paths

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Placeholder is the token replaced by the page number in a path template.
const Placeholder = ":num"

// EnsureLeadingSlash returns path unchanged if it starts with "/",
// otherwise it prepends one.
func EnsureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// RemoveLeadingSlash returns path without its leading "/".
func RemoveLeadingSlash(path string) string {
	return EnsureLeadingSlash(path)[1:]
}

// WithPageNumber replaces the first Placeholder in template with the
// decimal page number.
//
// Example:
//
//	WithPageNumber("/blog/page:num/", 3) // "/blog/page3/"
func WithPageNumber(template string, page int) (string, error) {
	if !strings.Contains(template, Placeholder) {
		return "", &ConfigurationError{
			Field: "path",
			Value: template,
			Err:   ErrMissingPlaceholder,
		}
	}
	return strings.Replace(template, Placeholder, strconv.Itoa(page), 1), nil
}

// InHierarchy reports whether candidateDir lies on the ancestor chain
// walked upward from targetDir toward sourceRoot.
//
// The walk stops with false at a filesystem fixed point (a directory that
// is its own parent) or once it reaches the parent of sourceRoot. Both
// stop checks run before the comparison at each level. The loop is
// bounded by the segment count of targetDir.
func InHierarchy(sourceRoot, candidateDir, targetDir string) bool {
	sourceParent := filepath.Dir(filepath.Clean(sourceRoot))
	candidate := filepath.Clean(candidateDir)
	dir := filepath.Clean(targetDir)

	for steps := segments(dir); steps >= 0; steps-- {
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		if dir == sourceParent {
			return false
		}
		if dir == candidate {
			return true
		}
		dir = parent
	}
	return false
}

// segments counts the path elements of a cleaned path.
func segments(dir string) int {
	n := 0
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part != "" && part != "." {
			n++
		}
	}
	return n
}
