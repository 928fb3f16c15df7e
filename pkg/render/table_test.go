package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/utrgv-dp/roadmap/pkg/roadmap"
	"github.com/utrgv-dp/roadmap/pkg/roadmap/layout"
)

func sampleRoadmap() *roadmap.Roadmap {
	year := func(label, season string, titles ...string) roadmap.Year {
		courses := make([]roadmap.Course, len(titles))
		for i, t := range titles {
			courses[i] = roadmap.Course{
				Hours: 3, CourseNumber: "SOCW 1301", Title: t, MinGrade: "C",
			}
		}
		return roadmap.Year{Year: label, Semesters: []roadmap.Semester{
			{Semester: season, TotalSemesterHours: 3 * len(titles), Courses: courses},
		}}
	}
	return &roadmap.Roadmap{
		Department:                 "Department of Social Work",
		TotalDegreeHours:           120,
		AdvancedMinimumCreditHours: 42,
		Approved:                   "Approved 04/2024",
		Revised:                    "Revised 08/2024",
		BelowYearTwo:               "Meet with your academic advisor.",
		AboveYearThree:             "Apply for program admission.",
		AboveYearFour:              "Apply for graduation.",
		Years: []roadmap.Year{
			year("First Year", "Fall 2024", "Composition I", "College Algebra", "Intro to Social Work"),
			year("Second Year", "Spring 2025", "Human Behavior I"),
			year("Third Year", "Summer 2026", "Practice I"),
			year("Fourth Year", "Fall 2027", "Field Instruction"),
		},
	}
}

func renderDoc(t *testing.T, r *roadmap.Roadmap) *goquery.Document {
	t.Helper()
	plan, err := layout.BuildPlan(r)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	html := "<table><tbody>" + Table(plan, r) + "</tbody></table>"
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered table: %v", err)
	}
	return doc
}

func TestTableYearRowSpans(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	// First year: one semester of three courses. Semester block is 4 rows,
	// year block is 5.
	yearCell := doc.Find("td.bg-custom-orange").First()
	if got, _ := yearCell.Attr("rowspan"); got != "5" {
		t.Errorf("first year rowspan = %q, want 5", got)
	}
	if got := yearCell.Find("span.rotate").Text(); got != "First Year" {
		t.Errorf("first year label = %q", got)
	}

	semCell := doc.Find("td.bg-custom-green").First()
	if got, _ := semCell.Attr("rowspan"); got != "4" {
		t.Errorf("first semester rowspan = %q, want 4", got)
	}
}

func TestTableSeasonClasses(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	if n := doc.Find("td.bg-custom-green").Length(); n != 2 {
		t.Errorf("fall cells = %d, want 2", n) // Fall 2024 and Fall 2027
	}
	if n := doc.Find("td.bg-custom-blue").Length(); n != 1 {
		t.Errorf("spring cells = %d, want 1", n)
	}
	if n := doc.Find("td.bg-gray-500").Length(); n != 1 {
		t.Errorf("neutral cells = %d, want 1", n) // Summer 2026
	}
}

func TestTableCourseCellDataKeys(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	first := doc.Find("td[data-key]").First().Parent()
	var keys []string
	first.Find("td[data-key]").Each(func(_ int, s *goquery.Selection) {
		k, _ := s.Attr("data-key")
		keys = append(keys, k)
	})
	if len(keys) != len(roadmap.CourseFields) {
		t.Fatalf("course row has %d data-key cells, want %d", len(keys), len(roadmap.CourseFields))
	}
	for i, want := range roadmap.CourseFields {
		if keys[i] != want {
			t.Errorf("cell %d key = %q, want %q", i, keys[i], want)
		}
	}

	title := first.Find(`td[data-key="title"]`).Text()
	if title != "Composition I" {
		t.Errorf("title cell = %q", title)
	}
}

func TestTableSemesterTotals(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	totals := doc.Find("td.bg-gray-300")
	if totals.Length() != 4 {
		t.Fatalf("total rows = %d, want 4", totals.Length())
	}
	if got := totals.First().Text(); got != "9 Semester Total Hours" {
		t.Errorf("first total = %q", got)
	}
	if got, _ := totals.First().Attr("colspan"); got != "8" {
		t.Errorf("total colspan = %q, want 8", got)
	}
}

func TestTableBannerPlacement(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	// Notices appear in document order: below-year-two, above-year-three,
	// above-year-four.
	var notices []string
	doc.Find("tr.bg-custom-orange p").Each(func(_ int, s *goquery.Selection) {
		notices = append(notices, s.Text())
	})
	want := []string{
		"Meet with your academic advisor.",
		"Apply for program admission.",
		"Apply for graduation.",
	}
	if len(notices) != len(want) {
		t.Fatalf("notices = %v", notices)
	}
	for i := range want {
		if notices[i] != want[i] {
			t.Errorf("notice %d = %q, want %q", i, notices[i], want[i])
		}
	}

	// Header rows: after years one, two, and three.
	if n := doc.Find("tr.bg-gray-600").Length(); n != 3 {
		t.Errorf("header rows = %d, want 3", n)
	}

	// Legend block renders all its lines once.
	if n := doc.Find("td.legend").Parent().Length(); n != layout.LegendLines {
		t.Errorf("legend rows = %d, want %d", n, layout.LegendLines)
	}
}

func TestTableSummaryRows(t *testing.T) {
	r := sampleRoadmap()
	doc := renderDoc(t, r)

	body := doc.Find("tbody").Text()
	for _, want := range []string{
		"120 TOTAL HOURS",
		"(42) Advanced minimum credit hours",
		"Approved 04/2024",
		"Revised 08/2024",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}
}

func TestTableEscapesContent(t *testing.T) {
	r := sampleRoadmap()
	r.Years[0].Semesters[0].Courses[0].Notes = `<script>alert("x")</script>`
	doc := renderDoc(t, r)

	if doc.Find("script").Length() != 0 {
		t.Error("unescaped markup survived rendering")
	}
	notes := doc.Find(`td[data-key="notes"]`).First().Text()
	if !strings.Contains(notes, "<script>") {
		t.Errorf("notes text = %q, want literal markup", notes)
	}
}

func TestTableEmptyRoadmap(t *testing.T) {
	r := &roadmap.Roadmap{}
	plan, err := layout.BuildPlan(r)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if got := Table(plan, r); got != "" {
		t.Errorf("empty roadmap rendered %q", got)
	}
}

func TestSeasonClass(t *testing.T) {
	cases := map[string]string{
		"Fall 2024":   "bg-custom-green",
		"SPRING 2025": "bg-custom-blue",
		"Summer 2026": "bg-gray-500",
		"":            "bg-gray-500",
	}
	for label, want := range cases {
		if got := SeasonClass(label); got != want {
			t.Errorf("SeasonClass(%q) = %q, want %q", label, got, want)
		}
	}
}
