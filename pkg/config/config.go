// Package config loads the site pagination settings from YAML.
//
// The current layout is a single "pagination" block:
//
//	pagination:
//	  per_page: 10
//	  path: /blog/page:num/
//	  template: index.html
//	  exclude_categories: [drafts]
//	  categories:
//	    enabled: true
//	    names: [go, rust]
//	    paths:
//	      go: {per_page: 5, path: /categories/go/:num/}
//
// The flat legacy keys (paginate, paginate_path, paginate_categories,
// paginate_paths, paginate_exclude_categories) are still read and upgraded
// into the block with a deprecation warning.
package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/Sternrassler/site-paginate/pkg/paths"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPerPage is the page size when none is configured.
	DefaultPerPage = 10

	// DefaultPath is the numbered page pattern when none is configured.
	DefaultPath = "/page:num/"

	// DefaultTemplateName is the file name of template pages.
	DefaultTemplateName = "index.html"
)

// Config is the root of the site configuration file.
type Config struct {
	Pagination Pagination
}

// Pagination holds the pagination settings.
type Pagination struct {
	// Enabled is true when a pagination block or a legacy key is present,
	// unless explicitly switched off.
	Enabled bool `yaml:"enabled"`

	// PerPage is the number of items per page.
	PerPage int `yaml:"per_page" validate:"gt=0"`

	// Path is the output pattern for numbered pages; it must contain ":num".
	Path string `yaml:"path" validate:"required,pagepath"`

	// TemplateName is the file name a template page must have.
	TemplateName string `yaml:"template"`

	// ExcludeCategories removes items with any of these labels from the
	// default run.
	ExcludeCategories CategoryList `yaml:"exclude_categories"`

	// Categories configures category-partitioned pagination.
	Categories CategoryConfig `yaml:"categories"`
}

// CategoryConfig configures per-category runs.
type CategoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Names lists the categories to paginate. Empty means every category
	// found on visible items.
	Names []string `yaml:"names"`

	// Paths overrides page size and path pattern per category.
	Paths map[string]CategoryPath `yaml:"paths" validate:"dive"`
}

// CategoryPath is the per-category override.
type CategoryPath struct {
	PerPage int    `yaml:"per_page" validate:"gte=0"`
	Path    string `yaml:"path" validate:"omitempty,pagepath"`
}

// DefaultPagination returns the default pagination settings.
func DefaultPagination() Pagination {
	return Pagination{
		Enabled:      true,
		PerPage:      DefaultPerPage,
		Path:         DefaultPath,
		TemplateName: DefaultTemplateName,
	}
}

// ForCategory returns the page size and path pattern of a category run.
// Missing overrides fall back to the global page size and to
// "/<category>/page:num/".
func (p Pagination) ForCategory(category string) (int, string) {
	perPage := p.PerPage
	pattern := path.Join("/", category) + "/page" + paths.Placeholder + "/"

	if override, ok := p.Categories.Paths[category]; ok {
		if override.PerPage > 0 {
			perPage = override.PerPage
		}
		if override.Path != "" {
			pattern = override.Path
		}
	}
	return perPage, pattern
}

// Warning is a non-fatal configuration problem.
type Warning struct {
	Field   string
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// CategoryList is a list of category labels. A value that is not a YAML
// sequence decodes as empty and is flagged Malformed.
type CategoryList struct {
	Names     []string
	Malformed bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CategoryList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		c.Names = nil
		c.Malformed = !isNull(value)
		return nil
	}
	var names []string
	if err := value.Decode(&names); err != nil {
		c.Names = nil
		c.Malformed = true
		return nil
	}
	c.Names = names
	c.Malformed = false
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c CategoryList) MarshalYAML() (any, error) {
	return c.Names, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || strings.TrimSpace(n.Value) == "")
}

// present reports whether a key was set to a non-null value. Absent keys
// leave the node zero.
func present(n *yaml.Node) bool {
	return n.Kind != 0 && !isNull(n)
}

// Load reads and parses a configuration file.
func Load(filename string) (Config, []Warning, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config %s: %w", filename, err)
	}
	return Parse(data)
}

// document mirrors the file layout including legacy keys.
type document struct {
	Pagination yaml.Node `yaml:"pagination"`

	Paginate                  *int              `yaml:"paginate"`
	PaginatePath              *string           `yaml:"paginate_path"`
	PaginateCategories        yaml.Node         `yaml:"paginate_categories"`
	PaginatePaths             map[string]string `yaml:"paginate_paths"`
	PaginateExcludeCategories *CategoryList     `yaml:"paginate_exclude_categories"`
}

// Parse decodes configuration data, upgrades legacy keys and validates the
// result when pagination is enabled. Warnings are returned for deprecated
// keys and malformed exclusion lists.
func Parse(data []byte) (Config, []Warning, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, nil, fmt.Errorf("parse config: %w", err)
	}

	var warnings []Warning
	cfg := Config{Pagination: DefaultPagination()}
	cfg.Pagination.Enabled = false

	hasBlock := present(&doc.Pagination)
	if hasBlock {
		p := DefaultPagination()
		if err := doc.Pagination.Decode(&p); err != nil {
			return Config{}, nil, fmt.Errorf("parse pagination block: %w", err)
		}
		cfg.Pagination = p
	}

	warnings = append(warnings, upgradeLegacy(&cfg.Pagination, doc, hasBlock)...)

	if cfg.Pagination.ExcludeCategories.Malformed {
		warnings = append(warnings, Warning{
			Field:   "exclude_categories",
			Message: "expected a list of categories, ignoring value",
		})
		cfg.Pagination.ExcludeCategories = CategoryList{}
	}
	if cfg.Pagination.TemplateName == "" {
		cfg.Pagination.TemplateName = DefaultTemplateName
	}

	if cfg.Pagination.Enabled {
		if err := cfg.Pagination.Validate(); err != nil {
			return cfg, warnings, err
		}
	}
	return cfg, warnings, nil
}

// upgradeLegacy copies flat legacy keys into p. Values set in the
// pagination block win over legacy keys.
func upgradeLegacy(p *Pagination, doc document, hasBlock bool) []Warning {
	var warnings []Warning
	deprecated := func(key string) {
		warnings = append(warnings, Warning{
			Field:   key,
			Message: "deprecated, use the pagination block instead",
		})
	}

	if doc.Paginate != nil {
		deprecated("paginate")
		if !hasBlock {
			p.Enabled = true
			p.PerPage = *doc.Paginate
		}
	}
	if doc.PaginatePath != nil {
		deprecated("paginate_path")
		if !hasBlock {
			p.Path = *doc.PaginatePath
		}
	}
	if present(&doc.PaginateCategories) {
		deprecated("paginate_categories")
		if !p.Categories.Enabled {
			applyLegacyCategories(&p.Categories, &doc.PaginateCategories)
		}
	}
	if len(doc.PaginatePaths) > 0 {
		deprecated("paginate_paths")
		if p.Categories.Paths == nil {
			p.Categories.Paths = make(map[string]CategoryPath, len(doc.PaginatePaths))
		}
		for category, pattern := range doc.PaginatePaths {
			override := p.Categories.Paths[category]
			if override.Path == "" {
				override.Path = pattern
			}
			p.Categories.Paths[category] = override
		}
	}
	if doc.PaginateExcludeCategories != nil {
		deprecated("paginate_exclude_categories")
		if len(p.ExcludeCategories.Names) == 0 && !p.ExcludeCategories.Malformed {
			p.ExcludeCategories = *doc.PaginateExcludeCategories
		}
	}
	return warnings
}

// applyLegacyCategories accepts either a boolean or a list of names.
func applyLegacyCategories(c *CategoryConfig, node *yaml.Node) {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err == nil {
			c.Enabled = enabled
		}
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err == nil {
			c.Enabled = true
			c.Names = names
		}
	}
}
