package catalog

import (
	"fmt"
	"testing"

	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

func listings() []roadmap.Listing {
	return []roadmap.Listing{
		{Course: "Social Work", Degree: "Bachelor of Social Work", College: "Health Affairs", CourseType: "bachelor-social-work-courses"},
		{Course: "computer science", Degree: "Bachelor of Science", College: "Engineering", CourseType: "bachelor-computer-science-courses"},
		{Course: "Business Administration", Degree: "Master of Business Administration", College: "Business", CourseType: "master-business-administration-courses"},
		{Course: "Art History", Degree: "Doctor of Philosophy", College: "Liberal Arts", CourseType: "phd-art-history-courses"},
		{Course: "Accounting", Degree: "BACHELOR of Business Administration", College: "Business", CourseType: "bachelor-accounting-courses"},
	}
}

func TestFilterByLevelUndergraduate(t *testing.T) {
	got := FilterByLevel(listings(), LevelUndergraduate)
	if len(got) != 3 {
		t.Fatalf("undergraduate matches = %d, want 3", len(got))
	}
	for _, l := range got {
		if l.Degree == "Master of Business Administration" || l.Degree == "Doctor of Philosophy" {
			t.Errorf("unexpected listing %q", l.Degree)
		}
	}
}

func TestFilterByLevelGraduate(t *testing.T) {
	got := FilterByLevel(listings(), LevelGraduate)
	if len(got) != 1 || got[0].Course != "Business Administration" {
		t.Errorf("graduate matches = %v", got)
	}
}

func TestFilterExcludesOtherLevels(t *testing.T) {
	// Doctoral degrees match neither keyword and appear in neither filter.
	for _, level := range []string{LevelUndergraduate, LevelGraduate} {
		for _, l := range FilterByLevel(listings(), level) {
			if l.Course == "Art History" {
				t.Errorf("doctoral degree leaked into %s filter", level)
			}
		}
	}
	if got := FilterByLevel(listings(), "alumni"); got != nil {
		t.Errorf("unknown level should select nothing, got %v", got)
	}
}

func TestSortListingsCaseInsensitive(t *testing.T) {
	ls := FilterByLevel(listings(), LevelUndergraduate)
	SortListings(ls)

	want := []string{"Accounting", "computer science", "Social Work"}
	for i, w := range want {
		if ls[i].Course != w {
			t.Errorf("sorted[%d] = %q, want %q", i, ls[i].Course, w)
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
	}
	for _, c := range cases {
		if got := PageCount(c.n, c.size); got != c.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}

func TestPaginateSpecExample(t *testing.T) {
	// 45 degrees, page size 20, page 3: items 40-44, Previous but no Next.
	items := make([]roadmap.Listing, 45)
	for i := range items {
		items[i] = roadmap.Listing{Course: fmt.Sprintf("Course %02d", i)}
	}

	p := Paginate(items, 3, 20)
	if len(p.Items) != 5 {
		t.Errorf("page 3 items = %d, want 5", len(p.Items))
	}
	if p.Items[0].Course != "Course 40" || p.Items[4].Course != "Course 44" {
		t.Errorf("page 3 holds %q..%q, want Course 40..Course 44",
			p.Items[0].Course, p.Items[4].Course)
	}
	if p.Total != 3 {
		t.Errorf("Total = %d, want 3", p.Total)
	}
	if !p.HasPrev {
		t.Error("page 3 should render Previous")
	}
	if p.HasNext {
		t.Error("last page should not render Next")
	}
}

func TestPaginateFirstPage(t *testing.T) {
	items := make([]roadmap.Listing, 25)
	p := Paginate(items, 1, 20)
	if len(p.Items) != 20 {
		t.Errorf("page 1 items = %d, want 20", len(p.Items))
	}
	if p.HasPrev {
		t.Error("page 1 should not render Previous")
	}
	if !p.HasNext {
		t.Error("page 1 of 2 should render Next")
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := make([]roadmap.Listing, 5)
	p := Paginate(items, 9, 20)
	if len(p.Items) != 0 {
		t.Errorf("out-of-range page items = %d, want 0", len(p.Items))
	}
	if p.HasNext {
		t.Error("out-of-range page should not render Next")
	}
}

func TestBrowse(t *testing.T) {
	state := NewViewState()
	if state.Level != LevelUndergraduate || state.Page != 1 {
		t.Fatalf("default view state = %+v", state)
	}

	p := Browse(listings(), state, 2)
	if len(p.Items) != 2 || p.Total != 2 || !p.HasNext {
		t.Errorf("Browse page = %+v", p)
	}
	if p.Items[0].Course != "Accounting" {
		t.Errorf("first card = %q, want sorted order", p.Items[0].Course)
	}
}
