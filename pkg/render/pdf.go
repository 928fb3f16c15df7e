package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/observability"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// PDF page geometry. The roadmap table only fits legibly on an oversized
// landscape sheet; margins are minimal so the ten columns keep their width.
const (
	PageWidthIn  = 16.5
	PageHeightIn = 13.2
	MarginIn     = 0.1
)

// AcademicYear appears in export filenames.
const AcademicYear = "2024-2025"

// Converter turns a complete HTML document into PDF bytes.
// The default shells out to wkhtmltopdf.
type Converter func(ctx context.Context, html []byte) ([]byte, error)

// Filename derives the download name for a course type's export.
// An empty course type falls back to a generic name.
func Filename(courseType string) string {
	base := "Degree_Roadmap"
	if collection, err := roadmap.CollectionName(courseType); err == nil {
		base = collection
	}
	return fmt.Sprintf("%s_%s.pdf", base, AcademicYear)
}

// Exporter converts rendered roadmap pages to PDF.
type Exporter struct {
	convert Converter
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithConverter replaces the external wkhtmltopdf call, mainly for tests.
func WithConverter(c Converter) ExporterOption {
	return func(e *Exporter) { e.convert = c }
}

// NewExporter returns an Exporter using wkhtmltopdf unless overridden.
func NewExporter(opts ...ExporterOption) *Exporter {
	e := &Exporter{convert: wkhtmltopdf}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export converts an HTML roadmap document to PDF. Rotated year and
// semester labels use a CSS transform the converter cannot honor, so the
// document is re-marked from rotate to rotate-pdf before conversion. The
// input string is never modified; the swap happens on a parsed copy.
func (e *Exporter) Export(ctx context.Context, html string, courseType string) ([]byte, error) {
	start := time.Now()
	filename := Filename(courseType)

	pdf, err := e.export(ctx, html)
	observability.Render().OnExportComplete(ctx, filename, len(pdf), time.Since(start), err)
	return pdf, err
}

func (e *Exporter) export(ctx context.Context, html string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "parsing document")
	}

	swapRotationClasses(doc)
	printable, err := doc.Html()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "serializing document")
	}

	pdf, err := e.convert(ctx, []byte(printable))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "converting to PDF")
	}
	return pdf, nil
}

// swapRotationClasses replaces the screen rotation class with its print
// variant on every labeled span.
func swapRotationClasses(doc *goquery.Document) {
	doc.Find(".rotate").Each(func(_ int, s *goquery.Selection) {
		s.RemoveClass("rotate").AddClass("rotate-pdf")
	})
}

// wkhtmltopdf shells out to the external converter, writing the document
// to stdin and reading the PDF from stdout.
func wkhtmltopdf(ctx context.Context, html []byte) ([]byte, error) {
	if _, err := exec.LookPath("wkhtmltopdf"); err != nil {
		return nil, fmt.Errorf("PDF export requires wkhtmltopdf. Install with:\n  macOS:  brew install wkhtmltopdf\n  Linux:  apt install wkhtmltopdf")
	}

	args := []string{
		"--quiet",
		"--orientation", "Landscape",
		"--page-width", fmt.Sprintf("%.1fin", PageWidthIn),
		"--page-height", fmt.Sprintf("%.1fin", PageHeightIn),
		"--margin-top", fmt.Sprintf("%.1fin", MarginIn),
		"--margin-bottom", fmt.Sprintf("%.1fin", MarginIn),
		"--margin-left", fmt.Sprintf("%.1fin", MarginIn),
		"--margin-right", fmt.Sprintf("%.1fin", MarginIn),
		"-", "-",
	}
	cmd := exec.CommandContext(ctx, "wkhtmltopdf", args...)
	cmd.Stdin = bytes.NewReader(html)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
