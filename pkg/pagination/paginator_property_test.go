// Property tests for window partitioning.

package pagination

import (
	"testing"
	"testing/quick"
)

// TestPropertyWindowsPartitionItems verifies that windows are a contiguous,
// non-overlapping partition of the input in original order.
func TestPropertyWindowsPartitionItems(t *testing.T) {
	f := func(n uint16, perPage uint8) bool {
		count := int(n % 500)
		size := int(perPage%50) + 1

		p, err := New(Config{PerPage: size, PathTemplate: "/page:num/", FirstPagePath: "/"})
		if err != nil {
			return false
		}
		items := makeItems(count)
		windows, err := p.Paginate(items)
		if err != nil {
			return false
		}

		total := CalculatePages(count, size)
		if len(windows) != total {
			return false
		}

		pos := 0
		for i, w := range windows {
			last := i == len(windows)-1
			if !last && len(w.Items) != size {
				return false
			}
			if last && len(w.Items) != count-(total-1)*size {
				return false
			}
			if len(w.Items) < 1 || len(w.Items) > size {
				return false
			}
			for _, item := range w.Items {
				if item.ID != items[pos].ID {
					return false
				}
				pos++
			}
		}
		return pos == count
	}

	cfg := &quick.Config{MaxCount: 500}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}

// TestPropertyNavigationChain verifies that previous/next numbers form a
// doubly linked chain over the windows.
func TestPropertyNavigationChain(t *testing.T) {
	f := func(n uint16, perPage uint8) bool {
		count := int(n%300) + 1
		size := int(perPage%20) + 1

		p, err := New(Config{PerPage: size, PathTemplate: "/page:num/", FirstPagePath: "/"})
		if err != nil {
			return false
		}
		windows, err := p.Paginate(makeItems(count))
		if err != nil {
			return false
		}

		total := len(windows)
		for k, w := range windows {
			page := k + 1
			if page < total {
				if w.NextPage == nil || *w.NextPage != page+1 {
					return false
				}
				if *w.NextPagePath != windows[k+1].PagePath {
					return false
				}
			} else if w.NextPage != nil || w.NextPagePath != nil {
				return false
			}

			if page > 1 {
				if w.PreviousPage == nil || *w.PreviousPage != page-1 {
					return false
				}
				if *w.PreviousPagePath != windows[k-1].PagePath {
					return false
				}
			} else if w.PreviousPage != nil || w.PreviousPagePath != nil {
				return false
			}
		}
		return true
	}

	cfg := &quick.Config{MaxCount: 300}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}

// TestPropertyPaginateDoesNotAliasAcrossWindows verifies that appending to
// one window's items never overwrites the next window.
func TestPropertyPaginateDoesNotAliasAcrossWindows(t *testing.T) {
	p, err := New(Config{PerPage: 2, PathTemplate: "/page:num/", FirstPagePath: "/"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	items := makeItems(4)
	windows, err := p.Paginate(items)
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}

	_ = append(windows[0].Items, Item{ID: "intruder"})
	if windows[1].Items[0].ID != "item-3" {
		t.Errorf("window 2 first item = %q, want item-3", windows[1].Items[0].ID)
	}
}
