package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/client"
	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// newEditCmd creates the edit command: change one field of a course and
// persist it through the API. Without --field/--value the command runs
// an interactive prompt.
func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		field string
		value string
	)

	cmd := &cobra.Command{
		Use:   "edit <course-type> <course-title>",
		Short: "Edit a course field on a roadmap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return runEdit(cmd, cfg.Client.BaseURL, args[0], args[1], field, value)
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "field to edit (e.g. minGrade, hours, title)")
	cmd.Flags().StringVar(&value, "value", "", "new value; empty keeps the current one")
	return cmd
}

func runEdit(cmd *cobra.Command, baseURL, courseType, courseTitle, field, value string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	collection, err := roadmap.CollectionName(courseType)
	if err != nil {
		return err
	}

	api := client.New(baseURL)
	spin := newSpinner(ctx, "Fetching roadmap "+courseType)
	spin.Start()
	model, err := api.FetchRoadmap(ctx, courseType)
	spin.Stop()
	if err != nil {
		return err
	}

	editor := roadmap.NewEditor(model, collection, api, logger)
	interactive := !cmd.Flags().Changed("field")

	if interactive {
		prompt := huh.NewSelect[string]().
			Title("Field to edit").
			Options(huh.NewOptions(roadmap.CourseFields...)...).
			Value(&field)
		if err := huh.NewForm(huh.NewGroup(prompt)).RunWithContext(ctx); err != nil {
			return err
		}
	}

	current, ok := editor.Begin(courseTitle, field)
	if !ok {
		return errors.New(errors.ErrCodeCourseNotFound,
			"no editable course %q with field %q", courseTitle, field)
	}

	if interactive {
		value = current
		input := huh.NewInput().
			Title("New value for " + field).
			Description("Current: " + current).
			Value(&value)
		if err := huh.NewForm(huh.NewGroup(input)).RunWithContext(ctx); err != nil {
			return err
		}
	}

	applied, err := editor.Commit(ctx, value)
	if err != nil {
		return err
	}

	if applied == current {
		printInfo("%s unchanged (%q)", field, applied)
	} else {
		printSuccess("%s: %q %s %q", field, current, iconArrow, applied)
	}
	return nil
}
