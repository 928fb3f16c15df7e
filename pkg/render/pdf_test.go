package render

import (
	"context"
	"strings"
	"testing"

	"github.com/utrgv-dp/roadmap/pkg/errors"
)

const rotatedDoc = `<html><body><table>
<tr><td><span class="rotate text-white">First Year</span></td></tr>
<tr><td><span class="rotate text-white">Fall 2024</span></td></tr>
</table></body></html>`

func TestExportSwapsRotationClasses(t *testing.T) {
	var converted string
	e := NewExporter(WithConverter(func(ctx context.Context, html []byte) ([]byte, error) {
		converted = string(html)
		return []byte("%PDF-1.7"), nil
	}))

	pdf, err := e.Export(context.Background(), rotatedDoc, "bachelor-social-work-courses")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(pdf) != "%PDF-1.7" {
		t.Errorf("pdf = %q", pdf)
	}

	if strings.Contains(converted, `class="rotate `) || strings.Contains(converted, ` rotate"`) {
		t.Errorf("converter received screen rotation class:\n%s", converted)
	}
	if got := strings.Count(converted, "rotate-pdf"); got != 2 {
		t.Errorf("rotate-pdf occurrences = %d, want 2", got)
	}
	// Unrelated classes survive the swap.
	if !strings.Contains(converted, "text-white") {
		t.Error("sibling classes were dropped during the swap")
	}
}

func TestExportLeavesInputUntouched(t *testing.T) {
	input := rotatedDoc
	e := NewExporter(WithConverter(func(ctx context.Context, html []byte) ([]byte, error) {
		return []byte("ok"), nil
	}))
	if _, err := e.Export(context.Background(), input, ""); err != nil {
		t.Fatal(err)
	}
	if input != rotatedDoc {
		t.Error("input document modified")
	}
}

func TestExportConverterFailure(t *testing.T) {
	e := NewExporter(WithConverter(func(ctx context.Context, html []byte) ([]byte, error) {
		return nil, errors.New(errors.ErrCodeExport, "converter unavailable")
	}))
	_, err := e.Export(context.Background(), rotatedDoc, "x")
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("error = %v, want EXPORT", err)
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"bachelor-social-work-courses": "bachelor_social_work_courses_2024-2025.pdf",
		"master-nursing-courses":       "master_nursing_courses_2024-2025.pdf",
		"":                             "Degree_Roadmap_2024-2025.pdf",
	}
	for courseType, want := range cases {
		if got := Filename(courseType); got != want {
			t.Errorf("Filename(%q) = %q, want %q", courseType, got, want)
		}
	}
}
