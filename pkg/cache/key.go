package cache

import (
	"strings"
)

// KeyPrefix is the namespace of every plan key.
const KeyPrefix = "paginate"

// PlanKey identifies the stored plan of one pagination run.
type PlanKey struct {
	// Site is the site source directory or another stable site identifier.
	Site string

	// Category is the category of the run, empty for the default run.
	Category string
}

// String generates a deterministic cache key string.
// Format: paginate:<site>:<category>, where the default run uses "_".
//
// Example:
//
//	paginate:srv/blog:go
func (k PlanKey) String() string {
	site := strings.Trim(k.Site, "/")
	category := k.Category
	if category == "" {
		category = "_"
	}
	return strings.Join([]string{KeyPrefix, site, category}, ":")
}
