package site

import (
	"fmt"
	"io"

	"github.com/Sternrassler/site-paginate/pkg/config"
	"github.com/Sternrassler/site-paginate/pkg/ingest"
	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"gopkg.in/yaml.v3"
)

// Manifest describes a site for offline planning:
//
//	source: /srv/blog
//	config:
//	  pagination:
//	    per_page: 5
//	    path: /page:num/
//	pages:
//	  - path: index.html
//	  - path: about.html
//	items:
//	  - id: first-post
//	    title: First post
//	feed: feed.xml
type Manifest struct {
	Source string            `yaml:"source"`
	Config yaml.Node         `yaml:"config"`
	Pages  []*Page           `yaml:"pages"`
	Items  []pagination.Item `yaml:"items"`

	// Feed is an optional RSS, Atom or JSON feed, or a YAML item list
	// (.yml, .yaml), whose entries are appended to Items.
	Feed string `yaml:"feed"`
}

// LoadManifest decodes a manifest from r.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode manifest: empty document")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Source == "" {
		return nil, fmt.Errorf("decode manifest: source is required")
	}
	if err := ingest.CheckIDs(m.Items); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Pagination parses the embedded configuration block.
func (m *Manifest) Pagination() (config.Config, []config.Warning, error) {
	if m.Config.Kind == 0 {
		return config.Parse(nil)
	}
	data, err := yaml.Marshal(&m.Config)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("encode manifest config: %w", err)
	}
	return config.Parse(data)
}

// Site builds the host site state. Items are copied so that the manifest
// can be reused.
func (m *Manifest) Site() *Site {
	pages := make([]*Page, len(m.Pages))
	for i, p := range m.Pages {
		pages[i] = p.Clone()
	}
	return &Site{
		Source: m.Source,
		Pages:  pages,
		Items:  append([]pagination.Item(nil), m.Items...),
	}
}
