// Package roadmap defines the degree-roadmap domain model.
//
// A [Roadmap] is the department record returned by the course API: four
// years, each split into semesters, each holding an ordered list of
// courses. The model is the single source of truth for edits; rendered
// HTML is a projection of it. Course titles act as the natural key for
// edit targeting, so updates are addressed by (collection, title, field)
// rather than by row position.
package roadmap

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/utrgv-dp/roadmap/pkg/errors"
)

// Reserved year labels. Rendering anchors are derived from year ordinals,
// but the labels are validated at load so malformed documents surface early.
var YearLabels = []string{"First Year", "Second Year", "Third Year", "Fourth Year"}

// Field keys carried on every rendered course cell (data-key attribute).
// The same keys address fields in update requests.
const (
	FieldImportant    = "important"
	FieldHours        = "hours"
	FieldCourseNumber = "courseNumber"
	FieldTitle        = "title"
	FieldMinGrade     = "minGrade"
	FieldGEC          = "gec"
	FieldPrerequisite = "prerequisite"
	FieldNotes        = "notes"
)

// CourseFields lists the course field keys in rendering order.
var CourseFields = []string{
	FieldImportant,
	FieldHours,
	FieldCourseNumber,
	FieldTitle,
	FieldMinGrade,
	FieldGEC,
	FieldPrerequisite,
	FieldNotes,
}

// Roadmap is a department's multi-year curriculum document.
type Roadmap struct {
	Department                 string `json:"department" bson:"department"`
	BelowYearTwo               string `json:"belowYearTwo" bson:"belowYearTwo"`
	AboveYearThree             string `json:"aboveYearThree" bson:"aboveYearThree"`
	AboveYearFour              string `json:"aboveYearFour" bson:"aboveYearFour"`
	TotalDegreeHours           int    `json:"totalDegreeHours" bson:"totalDegreeHours"`
	AdvancedMinimumCreditHours int    `json:"advancedMinimumCreditHours" bson:"advancedMinimumCreditHours"`
	Approved                   string `json:"approved" bson:"approved"`
	Revised                    string `json:"revised" bson:"revised"`
	Years                      []Year `json:"years" bson:"years"`
}

// Year is one academic year of the roadmap, identified by a reserved label.
type Year struct {
	Year      string     `json:"year" bson:"year"`
	Semesters []Semester `json:"semesters" bson:"semesters"`
}

// Semester groups the courses of one term. Labels containing "fall" or
// "spring" (case-insensitive) select the seasonal styling; anything else
// renders neutral.
type Semester struct {
	Semester           string   `json:"semester" bson:"semester"`
	TotalSemesterHours int      `json:"totalSemesterHours" bson:"totalSemesterHours"`
	Courses            []Course `json:"courses" bson:"courses"`
}

// Course is a single row of the roadmap table.
type Course struct {
	Important    string `json:"important" bson:"important"`
	Hours        int    `json:"hours" bson:"hours"`
	CourseNumber string `json:"courseNumber" bson:"courseNumber"`
	Title        string `json:"title" bson:"title"`
	MinGrade     string `json:"minGrade" bson:"minGrade"`
	GEC          string `json:"gec" bson:"gec"`
	Prerequisite string `json:"prerequisite" bson:"prerequisite"`
	Notes        string `json:"notes" bson:"notes"`
}

// Listing is one entry of the college/degree catalog, used by the degree
// browser. It lives in a separate collection from roadmap documents.
type Listing struct {
	Course     string `json:"course" bson:"course"`
	Degree     string `json:"degree" bson:"degree"`
	College    string `json:"college" bson:"college"`
	CourseType string `json:"courseType" bson:"courseType"`
}

// UpdateRequest is the wire form of a single-field course edit, sent as
// the JSON body of PUT /api/update-course.
type UpdateRequest struct {
	CollectionName string `json:"collectionName" validate:"required"`
	CourseTitle    string `json:"courseTitle" validate:"required"`
	Field          string `json:"field" validate:"required"`
	Value          string `json:"value"`
}

var validate = validator.New()

// Validate checks the request for presence of its addressing fields and
// rejects field names outside the editable set.
func (r UpdateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "incomplete update request")
	}
	if !EditableField(r.Field) {
		return errors.New(errors.ErrCodeInvalidField, "field %q is not editable", r.Field)
	}
	return nil
}

// EditableField reports whether key names a course field that accepts edits.
func EditableField(key string) bool {
	for _, f := range CourseFields {
		if f == key {
			return true
		}
	}
	return false
}

// Validate checks structural invariants of the roadmap document. Years,
// semesters, and courses must be present (possibly empty at the course
// level); year labels must follow the reserved order. Duplicate course
// titles are legal but make edits ambiguous, so callers may want to log
// the titles reported by DuplicateTitles.
func (r *Roadmap) Validate() error {
	if r.Years == nil {
		return errors.New(errors.ErrCodeInvalidRoadmap, "roadmap %q has no years", r.Department)
	}
	for i, y := range r.Years {
		if i < len(YearLabels) && y.Year != YearLabels[i] {
			return errors.New(errors.ErrCodeInvalidRoadmap,
				"year %d is labeled %q, want %q", i+1, y.Year, YearLabels[i])
		}
		if y.Semesters == nil {
			return errors.New(errors.ErrCodeInvalidRoadmap, "year %q has no semesters", y.Year)
		}
		for _, s := range y.Semesters {
			if s.Courses == nil {
				return errors.New(errors.ErrCodeInvalidRoadmap,
					"semester %q of %q has no courses", s.Semester, y.Year)
			}
		}
	}
	return nil
}

// DuplicateTitles returns course titles that appear more than once.
// Edits targeting such titles land on the first match in document order.
func (r *Roadmap) DuplicateTitles() []string {
	seen := map[string]int{}
	var dups []string
	for _, y := range r.Years {
		for _, s := range y.Semesters {
			for _, c := range s.Courses {
				seen[c.Title]++
				if seen[c.Title] == 2 {
					dups = append(dups, c.Title)
				}
			}
		}
	}
	return dups
}

// FindCourse returns the first course with the given title in document
// order (years, then semesters, then courses), matching the traversal the
// backend uses so both sides agree on which row an edit targets.
func (r *Roadmap) FindCourse(title string) *Course {
	for yi := range r.Years {
		for si := range r.Years[yi].Semesters {
			courses := r.Years[yi].Semesters[si].Courses
			for ci := range courses {
				if courses[ci].Title == title {
					return &courses[ci]
				}
			}
		}
	}
	return nil
}

// ApplyEdit sets one field of the first course titled title. The value is
// applied as-is for text fields; the hours field must parse as an integer.
func (r *Roadmap) ApplyEdit(title, field, value string) error {
	c := r.FindCourse(title)
	if c == nil {
		return errors.New(errors.ErrCodeCourseNotFound, "no course titled %q", title)
	}
	return c.SetField(field, value)
}

// SetField assigns value to the named field.
func (c *Course) SetField(field, value string) error {
	switch field {
	case FieldImportant:
		c.Important = value
	case FieldCourseNumber:
		c.CourseNumber = value
	case FieldTitle:
		c.Title = value
	case FieldMinGrade:
		c.MinGrade = value
	case FieldGEC:
		c.GEC = value
	case FieldPrerequisite:
		c.Prerequisite = value
	case FieldNotes:
		c.Notes = value
	case FieldHours:
		h, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "hours value %q is not a number", value)
		}
		c.Hours = h
	default:
		return errors.New(errors.ErrCodeInvalidField, "unknown course field %q", field)
	}
	return nil
}

// Field returns the current value of the named field as displayed text.
func (c *Course) Field(field string) string {
	switch field {
	case FieldImportant:
		return c.Important
	case FieldHours:
		return strconv.Itoa(c.Hours)
	case FieldCourseNumber:
		return c.CourseNumber
	case FieldTitle:
		return c.Title
	case FieldMinGrade:
		return c.MinGrade
	case FieldGEC:
		return c.GEC
	case FieldPrerequisite:
		return c.Prerequisite
	case FieldNotes:
		return c.Notes
	}
	return ""
}

// CollectionName derives the backing collection for a course type taken
// from the page's query parameters: hyphens become underscores, e.g.
// "bachelor-social-work-courses" -> "bachelor_social_work_courses".
func CollectionName(courseType string) (string, error) {
	if courseType == "" {
		return "", errors.New(errors.ErrCodeInvalidCourseType, "course type is empty")
	}
	return strings.ReplaceAll(courseType, "-", "_"), nil
}
