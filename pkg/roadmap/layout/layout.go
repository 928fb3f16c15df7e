// Package layout computes the physical row structure of the roadmap table.
//
// The table interleaves three kinds of content: the year/semester/course
// grid itself (with merged, row-spanning cells), per-semester total rows,
// and fixed informational rows (column headers, milestone notices, the
// legend block, degree summary rows) anchored around specific years.
//
// Rather than matching year label strings while rendering, BuildPlan
// derives an explicit ordered plan of physical rows once from the data.
// The renderer walks the plan; the span arithmetic and the banner anchors
// live here and nowhere else.
package layout

import (
	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// RowKind identifies what a physical table row contains.
type RowKind int

const (
	// RowYear opens a year: a single merged cell spanning the year's rows,
	// holding the rotated year label.
	RowYear RowKind = iota

	// RowCourse is one course line. The first course row of a semester also
	// carries the semester's merged, rotated label cell.
	RowCourse

	// RowSemesterTotal closes a semester with its total-hours line.
	RowSemesterTotal

	// RowColumnHeader repeats the column captions (!, H, Course #, ...).
	RowColumnHeader

	// RowNotice is a full-width milestone banner (belowYearTwo,
	// aboveYearThree, aboveYearFour).
	RowNotice

	// RowLegend is one line of the legend block: catalog reference,
	// symbols key, grade/GEC tables.
	RowLegend

	// RowSummaryHours is the total-degree-hours line with the approval date.
	RowSummaryHours

	// RowSummaryAdvanced is the advanced-minimum-credit-hours line with the
	// revision date.
	RowSummaryAdvanced
)

// Notice identifies which roadmap text a RowNotice row displays.
type Notice int

const (
	NoticeBelowYearTwo Notice = iota
	NoticeAboveYearThree
	NoticeAboveYearFour
)

// LegendLines is the number of physical rows in the legend block.
const LegendLines = 5

// Row describes one physical <tr> of the table body.
type Row struct {
	Kind RowKind

	// Indexes into the roadmap for RowYear, RowCourse, and RowSemesterTotal.
	Year     int
	Semester int
	Course   int

	// YearSpan is set on RowYear rows.
	YearSpan int

	// LeadsSemester marks the first course row of a semester, which carries
	// the semester cell; SemesterSpan is set on those rows.
	LeadsSemester bool
	SemesterSpan  int

	// Notice selects the banner text for RowNotice rows.
	Notice Notice

	// Line numbers the legend rows 0..LegendLines-1.
	Line int
}

// Plan is the ordered list of physical rows for one roadmap.
type Plan struct {
	Rows []Row
}

// SemesterRowSpan returns the number of physical rows a semester's merged
// cell spans: one per course plus the trailing total-hours row.
func SemesterRowSpan(s roadmap.Semester) (int, error) {
	if s.Courses == nil {
		return 0, errors.New(errors.ErrCodeInvalidRoadmap,
			"semester %q has no course list", s.Semester)
	}
	return len(s.Courses) + 1, nil
}

// YearRowSpan returns the number of physical rows a year's merged cell
// spans: the year row itself plus every semester's span. Informational
// rows are inserted adjacent to year spans, never inside them, so this
// count is exact.
func YearRowSpan(y roadmap.Year) (int, error) {
	if y.Semesters == nil {
		return 0, errors.New(errors.ErrCodeInvalidRoadmap,
			"year %q has no semester list", y.Year)
	}
	span := 1
	for _, s := range y.Semesters {
		n, err := SemesterRowSpan(s)
		if err != nil {
			return 0, err
		}
		span += n
	}
	return span, nil
}

// BuildPlan derives the physical row plan for a roadmap. Banner anchors
// are positioned by year ordinal: the column header repeats after the
// first year; the milestone notices, legend block, and another header
// follow the second year; a notice and header follow the third; the
// degree summary rows follow the fourth.
//
// A roadmap with no years yields an empty plan (the page stays usable);
// missing semester or course lists fail fast.
func BuildPlan(r *roadmap.Roadmap) (Plan, error) {
	var p Plan
	if r == nil || len(r.Years) == 0 {
		return p, nil
	}

	for yi, y := range r.Years {
		ySpan, err := YearRowSpan(y)
		if err != nil {
			return Plan{}, err
		}
		p.Rows = append(p.Rows, Row{Kind: RowYear, Year: yi, YearSpan: ySpan})

		for si, s := range y.Semesters {
			sSpan, err := SemesterRowSpan(s)
			if err != nil {
				return Plan{}, err
			}
			for ci := range s.Courses {
				row := Row{Kind: RowCourse, Year: yi, Semester: si, Course: ci}
				if ci == 0 {
					row.LeadsSemester = true
					row.SemesterSpan = sSpan
				}
				p.Rows = append(p.Rows, row)
			}
			p.Rows = append(p.Rows, Row{Kind: RowSemesterTotal, Year: yi, Semester: si})
		}

		p.Rows = append(p.Rows, bannersAfterYear(yi)...)
	}
	return p, nil
}

// bannersAfterYear returns the informational rows inserted after the year
// with the given index (0-based ordinal).
func bannersAfterYear(yi int) []Row {
	switch yi {
	case 0:
		return []Row{{Kind: RowColumnHeader}}
	case 1:
		rows := []Row{{Kind: RowNotice, Notice: NoticeBelowYearTwo}}
		for line := range LegendLines {
			rows = append(rows, Row{Kind: RowLegend, Line: line})
		}
		rows = append(rows,
			Row{Kind: RowNotice, Notice: NoticeAboveYearThree},
			Row{Kind: RowColumnHeader},
		)
		return rows
	case 2:
		return []Row{
			{Kind: RowNotice, Notice: NoticeAboveYearFour},
			{Kind: RowColumnHeader},
		}
	case 3:
		return []Row{
			{Kind: RowSummaryHours},
			{Kind: RowSummaryAdvanced},
		}
	}
	return nil
}
