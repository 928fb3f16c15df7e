// Package catalog filters, sorts, and paginates the college/degree listing.
//
// Everything operates on the fully fetched listing: the upstream API has
// no server-side filtering or paging, so a page is a slice over the
// filtered, sorted list. View state is explicit so the browser can be
// instantiated more than once (and tested) instead of living in globals.
package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// Degree levels selectable in the browser.
const (
	LevelUndergraduate = "undergraduate"
	LevelGraduate      = "graduate"
)

// DefaultPageSize is the number of degree cards per page.
const DefaultPageSize = 20

// ViewState identifies what the browser currently shows.
type ViewState struct {
	Level string
	Page  int
}

// NewViewState returns the default view: undergraduate degrees, page one.
func NewViewState() ViewState {
	return ViewState{Level: LevelUndergraduate, Page: 1}
}

// Page is one rendered page of the filtered listing.
type Page struct {
	Items   []roadmap.Listing
	Number  int
	Total   int // total page count
	HasPrev bool
	HasNext bool
}

// FilterByLevel returns the listings whose degree name matches the level:
// "undergraduate" selects degrees containing "bachelor", "graduate" those
// containing "master" (case-insensitive). Degrees matching neither level
// are excluded from both.
func FilterByLevel(listings []roadmap.Listing, level string) []roadmap.Listing {
	var keyword string
	switch level {
	case LevelUndergraduate:
		keyword = "bachelor"
	case LevelGraduate:
		keyword = "master"
	default:
		return nil
	}

	var out []roadmap.Listing
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Degree), keyword) {
			out = append(out, l)
		}
	}
	return out
}

// SortListings orders listings ascending by course name, case-insensitive
// and stable, so equal-named entries keep their fetch order.
func SortListings(listings []roadmap.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return strings.ToLower(listings[i].Course) < strings.ToLower(listings[j].Course)
	})
}

// PageCount returns ceil(n/size) for a positive page size.
func PageCount(n, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(size)))
}

// Paginate slices one page out of items. Page numbers are 1-based; page p
// holds items [(p-1)*size, p*size) clipped to the list length. An
// out-of-range page yields an empty item set with correct Prev/Next flags.
func Paginate(items []roadmap.Listing, page, size int) Page {
	total := PageCount(len(items), size)
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := min(page*size, len(items))
	var slice []roadmap.Listing
	if start < len(items) {
		slice = items[start:end]
	}

	return Page{
		Items:   slice,
		Number:  page,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < total,
	}
}

// Browse runs the full pipeline for a view: filter by level, sort by
// course name, and slice the requested page.
func Browse(listings []roadmap.Listing, state ViewState, size int) Page {
	filtered := FilterByLevel(listings, state.Level)
	SortListings(filtered)
	return Paginate(filtered, state.Page, size)
}
