package store

import (
	"context"
	"testing"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

func seedStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	docs := []roadmap.Roadmap{{
		Department: "Department of Social Work",
		Years: []roadmap.Year{
			{Year: "First Year", Semesters: []roadmap.Semester{
				{Semester: "Fall 2024", TotalSemesterHours: 6, Courses: []roadmap.Course{
					{Hours: 3, CourseNumber: "ENGL 1301", Title: "Composition I", MinGrade: "C"},
					{Hours: 3, CourseNumber: "SOCW 1313", Title: "Intro to Social Work", MinGrade: "B"},
				}},
			}},
		},
	}}
	if err := s.InsertRoadmaps(context.Background(), "bachelor_social_work_courses", docs); err != nil {
		t.Fatalf("InsertRoadmaps: %v", err)
	}
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	docs, err := s.Roadmaps(ctx, "bachelor_social_work_courses")
	if err != nil {
		t.Fatalf("Roadmaps: %v", err)
	}
	if len(docs) != 1 || docs[0].Department != "Department of Social Work" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestFileStoreUpdateCourse(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	err := s.UpdateCourse(ctx, "bachelor_social_work_courses", "Composition I", roadmap.FieldMinGrade, "B")
	if err != nil {
		t.Fatalf("UpdateCourse: %v", err)
	}

	docs, err := s.Roadmaps(ctx, "bachelor_social_work_courses")
	if err != nil {
		t.Fatal(err)
	}
	if got := docs[0].FindCourse("Composition I").MinGrade; got != "B" {
		t.Errorf("MinGrade after update = %q, want B (persisted)", got)
	}
}

func TestFileStoreUpdateUnknownCourse(t *testing.T) {
	s := seedStore(t)
	err := s.UpdateCourse(context.Background(), "bachelor_social_work_courses",
		"No Such Course", roadmap.FieldNotes, "x")
	if !errors.Is(err, errors.ErrCodeCourseNotFound) {
		t.Errorf("error = %v, want COURSE_NOT_FOUND", err)
	}
}

func TestFileStoreUpdateUnknownCollection(t *testing.T) {
	s := seedStore(t)
	err := s.UpdateCourse(context.Background(), "missing", "Composition I", roadmap.FieldNotes, "x")
	if !errors.Is(err, errors.ErrCodeCollectionNotFound) {
		t.Errorf("error = %v, want COLLECTION_NOT_FOUND", err)
	}
}

func TestFileStoreListings(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	// Empty before seeding
	ls, err := s.Listings(ctx)
	if err != nil {
		t.Fatalf("Listings: %v", err)
	}
	if len(ls) != 0 {
		t.Errorf("unseeded listings = %v", ls)
	}

	want := []roadmap.Listing{
		{Course: "Social Work", Degree: "Bachelor of Social Work", College: "Health Affairs", CourseType: "bachelor-social-work-courses"},
	}
	if err := s.ReplaceListings(ctx, want); err != nil {
		t.Fatalf("ReplaceListings: %v", err)
	}
	ls, err = s.Listings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ls) != 1 || ls[0] != want[0] {
		t.Errorf("listings = %v", ls)
	}
}

func TestFileStoreCollections(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	if err := s.ReplaceListings(ctx, nil); err != nil {
		t.Fatal(err)
	}

	names, err := s.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}
	if len(names) != 1 || names[0] != "bachelor_social_work_courses" {
		t.Errorf("collections = %v (listing file must be excluded)", names)
	}
}

func TestFileStorePing(t *testing.T) {
	s := seedStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
