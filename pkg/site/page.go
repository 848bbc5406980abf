package site

import (
	"maps"
	"path"
	"strings"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"github.com/Sternrassler/site-paginate/pkg/paths"
)

const indexName = "index.html"

// Page is a page known to the host site.
type Page struct {
	// Name is the file name of the page source, e.g. "index.html".
	// Empty means the base name of Path.
	Name string `json:"name" yaml:"name"`

	// Path is the source path relative to the site source.
	Path string `json:"path" yaml:"path"`

	// Dir is the output directory. Empty means the directory of Path.
	Dir string `json:"dir,omitempty" yaml:"dir"`

	// Permalink overrides the computed URL when set.
	Permalink string `json:"permalink,omitempty" yaml:"permalink"`

	// Data is the page front matter.
	Data map[string]any `json:"data,omitempty" yaml:"data"`

	// Pager is set on pages produced or claimed by pagination.
	Pager *pagination.Window `json:"paginator,omitempty" yaml:"-"`
}

// FileName returns the base name of the page source.
func (p *Page) FileName() string {
	if p.Name != "" {
		return p.Name
	}
	return path.Base(p.Path)
}

// SourcePath returns the page source path relative to the site source.
func (p *Page) SourcePath() string {
	return p.Path
}

// OutputDir returns the directory the page is written to, always with a
// leading slash.
func (p *Page) OutputDir() string {
	dir := p.Dir
	if dir == "" {
		dir = path.Dir(paths.RemoveLeadingSlash(p.Path))
		if dir == "." {
			dir = ""
		}
	}
	return paths.EnsureLeadingSlash(dir)
}

// URL returns the public URL of the page. Index pages resolve to their
// directory with a trailing slash.
func (p *Page) URL() string {
	if p.Permalink != "" {
		return p.Permalink
	}
	dir := p.OutputDir()
	if p.FileName() == indexName {
		if !strings.HasSuffix(dir, "/") {
			dir += "/"
		}
		return dir
	}
	return path.Join(dir, p.FileName())
}

// Clone returns a copy of the page without pager data. Data is copied one
// level deep.
func (p *Page) Clone() *Page {
	c := *p
	c.Data = maps.Clone(p.Data)
	c.Pager = nil
	return &c
}

// TemplateData returns the front matter merged with the render-time
// "paginator" variable.
func (p *Page) TemplateData() map[string]any {
	data := make(map[string]any, len(p.Data)+1)
	maps.Copy(data, p.Data)
	if p.Pager != nil {
		data["paginator"] = p.Pager.Liquid()
	}
	return data
}
