// Package render produces the HTML projection of a roadmap and its PDF
// export. The table body is generated row by row from a layout.Plan, so
// rendering is a pure function of the plan and the model: same input,
// same markup. Every course cell carries a data-key attribute naming the
// logical field it displays, which is what edit requests address.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/utrgv-dp/roadmap/pkg/roadmap"
	"github.com/utrgv-dp/roadmap/pkg/roadmap/layout"
)

// tableColumns is the physical column count: year, semester, and the
// eight course fields.
const tableColumns = 10

// courseFieldColumns spans the course-field cells (total rows, summaries).
const courseFieldColumns = 8

// columnCaptions maps field keys to the captions of the repeated header row.
var columnCaptions = map[string]string{
	roadmap.FieldImportant:    "!",
	roadmap.FieldHours:        "H",
	roadmap.FieldCourseNumber: "Course #",
	roadmap.FieldTitle:        "Course Title",
	roadmap.FieldMinGrade:     "Min. Grade",
	roadmap.FieldGEC:          "GEC",
	roadmap.FieldPrerequisite: "Prerequisite",
	roadmap.FieldNotes:        "Additional Notes",
}

// Table renders the <tbody> rows for a roadmap according to its plan.
// An empty plan yields an empty string: the page stays usable when the
// fetch produced nothing.
func Table(p layout.Plan, r *roadmap.Roadmap) string {
	var b strings.Builder
	for _, row := range p.Rows {
		switch row.Kind {
		case layout.RowYear:
			writeYearRow(&b, r.Years[row.Year].Year, row.YearSpan)
		case layout.RowCourse:
			writeCourseRow(&b, r, row)
		case layout.RowSemesterTotal:
			writeSemesterTotalRow(&b, r.Years[row.Year].Semesters[row.Semester])
		case layout.RowColumnHeader:
			writeColumnHeaderRow(&b)
		case layout.RowNotice:
			writeNoticeRow(&b, noticeText(r, row.Notice))
		case layout.RowLegend:
			writeLegendRow(&b, row.Line)
		case layout.RowSummaryHours:
			writeSummaryRow(&b, fmt.Sprintf("%d TOTAL HOURS", r.TotalDegreeHours), r.Approved)
		case layout.RowSummaryAdvanced:
			writeSummaryRow(&b,
				fmt.Sprintf("(%d) Advanced minimum credit hours", r.AdvancedMinimumCreditHours),
				r.Revised)
		}
	}
	return b.String()
}

func noticeText(r *roadmap.Roadmap, n layout.Notice) string {
	switch n {
	case layout.NoticeBelowYearTwo:
		return r.BelowYearTwo
	case layout.NoticeAboveYearThree:
		return r.AboveYearThree
	case layout.NoticeAboveYearFour:
		return r.AboveYearFour
	}
	return ""
}

// SeasonClass returns the background class for a semester label: labels
// containing "fall" render green, "spring" blue, anything else neutral.
func SeasonClass(label string) string {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "fall"):
		return "bg-custom-green"
	case strings.Contains(lower, "spring"):
		return "bg-custom-blue"
	default:
		return "bg-gray-500"
	}
}

func writeYearRow(b *strings.Builder, label string, span int) {
	fmt.Fprintf(b,
		`<tr><td class="border p-2 text-center bg-custom-orange" rowspan="%d">`+
			`<span class="rotate text-white">%s</span></td></tr>`,
		span, html.EscapeString(label))
	b.WriteString("\n")
}

func writeCourseRow(b *strings.Builder, r *roadmap.Roadmap, row layout.Row) {
	sem := r.Years[row.Year].Semesters[row.Semester]
	course := sem.Courses[row.Course]

	b.WriteString("<tr>")
	if row.LeadsSemester {
		fmt.Fprintf(b,
			`<td class="border p-2 text-center %s" rowspan="%d">`+
				`<span class="rotate text-white">%s</span></td>`,
			SeasonClass(sem.Semester), row.SemesterSpan, html.EscapeString(sem.Semester))
	}
	for _, field := range roadmap.CourseFields {
		fmt.Fprintf(b, `<td class="border p-2" data-key="%s">%s</td>`,
			field, html.EscapeString(course.Field(field)))
	}
	b.WriteString("</tr>\n")
}

func writeSemesterTotalRow(b *strings.Builder, sem roadmap.Semester) {
	fmt.Fprintf(b,
		`<tr><td class="border p-2 text-left font-bold bg-gray-300" colspan="%d">`+
			`%d Semester Total Hours</td></tr>`,
		courseFieldColumns, sem.TotalSemesterHours)
	b.WriteString("\n")
}

func writeColumnHeaderRow(b *strings.Builder) {
	b.WriteString(`<tr class="bg-gray-600">`)
	// Two blank captions cover the year and semester columns.
	b.WriteString(`<th class="border p-2 font-normal text-white border-transparent"></th>`)
	b.WriteString(`<th class="border p-2 font-normal text-white border-transparent"></th>`)
	for _, field := range roadmap.CourseFields {
		fmt.Fprintf(b,
			`<th class="border p-2 font-normal text-white border-transparent" data-key="%s">%s</th>`,
			field, html.EscapeString(columnCaptions[field]))
	}
	b.WriteString("</tr>\n")
}

func writeNoticeRow(b *strings.Builder, text string) {
	fmt.Fprintf(b,
		`<tr class="bg-custom-orange"><th colspan="%d" class="text-white border-transparent">`+
			`<h6 class="text-center font-semibold notice"><p>%s</p></h6></th></tr>`,
		tableColumns, html.EscapeString(text))
	b.WriteString("\n")
}

// legendLines is the fixed content of the legend block: catalog
// reference, symbols key heading, and the grade/GEC section tables.
var legendLines = [layout.LegendLines]string{
	`<td colspan="10" class="text-center font-bold legend">CORE: The 2024-2026 list of core courses can be found in the 2024-2026 Undergraduate Catalog: <a href="https://www.utrgv.edu/catalog" target="_blank">www.utrgv.edu/catalog</a> &gt; See &#39;Core Curriculum&#39;</td>`,
	`<td colspan="10" class="text-left font-bold legend">Symbols Key</td>`,
	`<td colspan="8" class="text-left legend"><strong>Minimum Grade:</strong> A - Excellent; B - Good; C - Satisfactory; D - Below Average; CR - Credit; P - Passing; S - Satisfactory.</td><td colspan="2" class="text-right legend"><strong>General Education Core (GEC) Sections:</strong> 010 - Communication; 020 - Mathematics; 030 - Life and Physical Sciences; 040 - Language, Philosophy &amp; Culture;</td>`,
	`<td colspan="7" class="text-left legend"><strong>Bolded Course #:</strong> Program Admission Requirement</td><td colspan="3" class="text-right legend">050 - Creative Arts; 060 - American History; 070 - Government/Political Science; 080 - Social and Behavioral Sciences; 090 - Applied Communication and Literacies;</td>`,
	`<td colspan="10" class="text-right legend">090 - Humanities; 090 - Leadership; 090 - Science Labs; 090 - Interdisciplinary; 090 - Technologies; 090 - Language Diversity &amp; Writing.</td>`,
}

func writeLegendRow(b *strings.Builder, line int) {
	if line < 0 || line >= layout.LegendLines {
		return
	}
	b.WriteString("<tr>")
	b.WriteString(legendLines[line])
	b.WriteString("</tr>\n")
}

func writeSummaryRow(b *strings.Builder, left, right string) {
	fmt.Fprintf(b,
		`<tr><td class="text-left" colspan="%d">%s</td>`+
			`<td class="text-right" colspan="2">%s</td></tr>`,
		courseFieldColumns, html.EscapeString(left), html.EscapeString(right))
	b.WriteString("\n")
}
