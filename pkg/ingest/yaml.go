package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
	"gopkg.in/yaml.v3"
)

// ErrNoItemID is returned for items declared without an id.
var ErrNoItemID = errors.New("item has no id")

// FromYAML decodes a YAML sequence of items. An empty document yields no
// items.
func FromYAML(r io.Reader) ([]pagination.Item, error) {
	var items []pagination.Item
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := CheckIDs(items); err != nil {
		return nil, err
	}
	return items, nil
}

// CheckIDs reports the first item without an id.
func CheckIDs(items []pagination.Item) error {
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d (%q): %w", i, item.Title, ErrNoItemID)
		}
	}
	return nil
}
