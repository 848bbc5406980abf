package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Sternrassler/site-paginate/pkg/pagination"
)

// PageRecord is the stored state of one generated page.
type PageRecord struct {
	Page    int      `json:"page"`
	Path    string   `json:"path"`
	ItemIDs []string `json:"item_ids"`

	// Digest is the hex SHA-256 of the page's render-time data.
	Digest string `json:"digest"`
}

// Plan is the stored result of one pagination run.
type Plan struct {
	Pages     []PageRecord `json:"pages"`
	CreatedAt time.Time    `json:"created_at"`
}

// PlanFromWindows builds a plan from computed windows.
func PlanFromWindows(windows []pagination.Window) (Plan, error) {
	plan := Plan{
		Pages:     make([]PageRecord, 0, len(windows)),
		CreatedAt: time.Now().UTC(),
	}
	for _, w := range windows {
		digest, err := windowDigest(w)
		if err != nil {
			return Plan{}, err
		}
		ids := make([]string, len(w.Items))
		for i, item := range w.Items {
			ids[i] = item.ID
		}
		plan.Pages = append(plan.Pages, PageRecord{
			Page:    w.Page,
			Path:    w.PagePath,
			ItemIDs: ids,
			Digest:  digest,
		})
	}
	return plan, nil
}

// Changed returns the page numbers of next whose digest or path differs
// from prev, or that prev does not have. Pages only present in prev are
// not reported.
func Changed(prev, next Plan) []int {
	old := make(map[int]PageRecord, len(prev.Pages))
	for _, p := range prev.Pages {
		old[p.Page] = p
	}

	var changed []int
	for _, p := range next.Pages {
		before, ok := old[p.Page]
		if !ok || before.Digest != p.Digest || before.Path != p.Path {
			changed = append(changed, p.Page)
		}
	}
	return changed
}

// Removed returns the page numbers of prev that next no longer has.
func Removed(prev, next Plan) []int {
	current := make(map[int]struct{}, len(next.Pages))
	for _, p := range next.Pages {
		current[p.Page] = struct{}{}
	}

	var removed []int
	for _, p := range prev.Pages {
		if _, ok := current[p.Page]; !ok {
			removed = append(removed, p.Page)
		}
	}
	return removed
}

// windowDigest hashes the JSON form of the window. Map keys in item data
// are encoded sorted, so equal windows give equal digests.
func windowDigest(w pagination.Window) (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
