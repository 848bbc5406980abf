package pagination

import (
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		excluded []string
		want     []string
	}{
		{
			name: "hidden items removed",
			items: []Item{
				{ID: "a"},
				{ID: "b", Hidden: true},
				{ID: "c"},
			},
			want: []string{"a", "c"},
		},
		{
			name: "excluded category removed",
			items: []Item{
				{ID: "toto-post", Categories: []string{"toto"}},
				{ID: "titi-post", Categories: []string{"titi"}},
			},
			excluded: []string{"toto"},
			want:     []string{"titi-post"},
		},
		{
			name: "any excluded label removes the item",
			items: []Item{
				{ID: "a", Categories: []string{"go", "drafts"}},
				{ID: "b", Categories: []string{"go"}},
				{ID: "c"},
			},
			excluded: []string{"drafts", "private"},
			want:     []string{"b", "c"},
		},
		{
			name: "hidden and excluded combined",
			items: []Item{
				{ID: "a", Hidden: true, Categories: []string{"go"}},
				{ID: "b", Categories: []string{"private"}},
				{ID: "c", Categories: []string{"go"}},
			},
			excluded: []string{"private"},
			want:     []string{"c"},
		},
		{
			name:  "empty input",
			items: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(tt.items, FilterOptions{ExcludedCategories: tt.excluded}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_HiddenItemsSinglePage(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b", Hidden: true}, {ID: "c"}}

	p, err := New(Config{PerPage: 10, PathTemplate: "/page:num/", FirstPagePath: "/"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	windows, err := p.Paginate(Filter(items, FilterOptions{}))
	if err != nil {
		t.Fatalf("Paginate failed: %v", err)
	}

	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if got := ids(windows[0].Items); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("window items = %v, want [a c]", got)
	}
	if windows[0].TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", windows[0].TotalItems)
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	items := []Item{{ID: "a", Hidden: true}, {ID: "b"}}
	_ = Filter(items, FilterOptions{})

	if items[0].ID != "a" || items[1].ID != "b" || !items[0].Hidden {
		t.Error("Filter modified its input")
	}
}

func TestFilter_Metrics(t *testing.T) {
	hiddenBefore := testutil.ToFloat64(itemsFiltered.WithLabelValues("hidden"))
	excludedBefore := testutil.ToFloat64(itemsFiltered.WithLabelValues("excluded"))

	Filter([]Item{
		{ID: "a", Hidden: true},
		{ID: "b", Categories: []string{"x"}},
		{ID: "c", Categories: []string{"x"}},
	}, FilterOptions{ExcludedCategories: []string{"x"}})

	if got := testutil.ToFloat64(itemsFiltered.WithLabelValues("hidden")) - hiddenBefore; got != 1 {
		t.Errorf("hidden counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(itemsFiltered.WithLabelValues("excluded")) - excludedBefore; got != 2 {
		t.Errorf("excluded counter delta = %v, want 2", got)
	}
}

func TestForCategory(t *testing.T) {
	items := []Item{
		{ID: "a", Categories: []string{"go"}},
		{ID: "b", Categories: []string{"rust"}},
		{ID: "c", Categories: []string{"go", "drafts"}},
		{ID: "d", Categories: []string{"go"}, Hidden: true},
		{ID: "e"},
	}

	tests := []struct {
		category string
		want     []string
	}{
		{"go", []string{"a", "c"}},
		{"rust", []string{"b"}},
		{"drafts", []string{"c"}},
		{"missing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := ids(ForCategory(items, tt.category))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ForCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	items := []Item{
		{ID: "a", Categories: []string{"web", "go"}},
		{ID: "b", Categories: []string{"go"}},
		{ID: "c", Categories: []string{"secret"}, Hidden: true},
		{ID: "d"},
	}

	got := Categories(items)
	want := []string{"go", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
