package cli

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/client"
	"github.com/utrgv-dp/roadmap/pkg/render"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
	"github.com/utrgv-dp/roadmap/pkg/roadmap/layout"
)

// newExportCmd creates the export command: fetch a roadmap from the API
// and write its PDF rendition.
func newExportCmd(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <course-type>",
		Short: "Export a degree roadmap to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return runExport(cmd, cfg.Client.BaseURL, args[0], outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory for the PDF")
	return cmd
}

func runExport(cmd *cobra.Command, baseURL, courseType, outDir string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	api := client.New(baseURL)

	spin := newSpinner(ctx, "Fetching roadmap "+courseType)
	spin.Start()
	doc, err := api.FetchRoadmap(ctx, courseType)
	if err != nil {
		spin.Stop()
		return err
	}
	listing := findListing(ctx, api, courseType)
	spin.Stop()

	plan, err := layout.BuildPlan(doc)
	if err != nil {
		return err
	}
	table := render.Table(plan, doc)

	var page bytes.Buffer
	err = render.WriteRoadmapPage(&page, render.RoadmapPage{
		Course:     listing.Course,
		Degree:     listing.Degree,
		College:    listing.College,
		CourseType: courseType,
		Department: doc.Department,
		Table:      template.HTML(table),
	})
	if err != nil {
		return err
	}

	track := newProgress(logger)
	pdf, err := render.NewExporter().Export(ctx, page.String(), courseType)
	if err != nil {
		return err
	}
	track.done("Converted to PDF")

	path := filepath.Join(outDir, render.Filename(courseType))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return err
	}

	printSuccess("Exported %s", courseType)
	printFile(path)
	return nil
}

// findListing resolves the display names for a course type. The catalog
// is advisory here; a fetch failure or missing entry just leaves the
// header names empty.
func findListing(ctx context.Context, api *client.Client, courseType string) roadmap.Listing {
	listings, err := api.FetchListings(ctx)
	if err != nil {
		loggerFromContext(ctx).Debug("listing lookup failed", "err", err)
		return roadmap.Listing{CourseType: courseType}
	}
	for _, l := range listings {
		if l.CourseType == courseType {
			return l
		}
	}
	return roadmap.Listing{CourseType: courseType}
}
